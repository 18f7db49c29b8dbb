package asn1error

import (
	"fmt"
)

type Kind int

const (
	EncodeError Kind = iota // eg a value cannot be represented in BER
	DecodeError             // eg the framing is wrong or the buffer is truncated
)

type Interface interface {
	error
	Kind() Kind
}

type Unexpected[T any] struct {
	inner            error
	units            string
	kind             Kind
	expected, actual T
}

func (e *Unexpected[T]) Error() string {
	if e.units == "" {
		return fmt.Sprintf("asn1: %s: expected=%v, actual=%v", e.inner.Error(), e.expected, e.actual)
	}
	return fmt.Sprintf("asn1: %s: expected=%v %s, actual=%v %s", e.inner.Error(), e.expected, e.units, e.actual, e.units)
}

func (e *Unexpected[T]) Unwrap() error {
	return e.inner
}

func (e *Unexpected[T]) WithUnits(units string) *Unexpected[T] {
	e.units = units
	return e
}

func (e *Unexpected[T]) Kind() Kind {
	return e.kind
}

func (e *Unexpected[T]) WithKind(kind Kind) *Unexpected[T] {
	e.kind = kind
	return e
}

func NewUnexpectedError[T any](expected, actual T, format string, args ...any) *Unexpected[T] {
	return &Unexpected[T]{
		inner:    fmt.Errorf(format, args...),
		kind:     DecodeError,
		expected: expected,
		actual:   actual,
	}
}

type General struct {
	inner error
	kind  Kind
}

func (e *General) Error() string {
	return e.inner.Error()
}

func (e *General) Kind() Kind {
	return e.kind
}

func (e *General) Unwrap() error {
	return e.inner
}

func NewEncodeError(format string, args ...any) *General {
	return &General{inner: fmt.Errorf("asn1: "+format, args...), kind: EncodeError}
}

func NewDecodeError(format string, args ...any) *General {
	return &General{inner: fmt.Errorf("asn1: "+format, args...), kind: DecodeError}
}

// IsKind reports whether err (or anything it wraps) carries the given kind.
func IsKind(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(Interface); ok {
			return e.Kind() == kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
