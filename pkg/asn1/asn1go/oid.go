package asn1go

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1binary"
	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1core"
	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1error"
)

type OID []int

func ParseOID(s string) (OID, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), ".")
	if s == "" {
		return nil, asn1error.NewEncodeError("empty OID")
	}
	parts := strings.Split(s, ".")
	oid := make(OID, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, asn1error.NewEncodeError("OID element %q is not a number", part)
		}
		if n < 0 {
			return nil, asn1error.NewEncodeError("OID element %d is negative", n)
		}
		oid = append(oid, n)
	}
	if len(oid) < 2 {
		return nil, asn1error.NewUnexpectedError(2, len(oid), "OID prefix").WithUnits("elements").WithKind(asn1error.EncodeError)
	}
	return oid, nil
}

// MustParseOID is for package-level OID constants; it panics on bad input.
func MustParseOID(s string) OID {
	oid, err := ParseOID(s)
	if err != nil {
		panic(err)
	}
	return oid
}

func (o OID) String() string {
	sb := strings.Builder{}
	for i, v := range o {
		if i != 0 {
			sb.WriteString(".")
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String()
}

func (o OID) Equal(other OID) bool {
	if len(o) != len(other) {
		return false
	}
	for i := range o {
		if o[i] != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether base is a proper dotted prefix of o. An OID is
// not a prefix of itself; a table walk that lands back on the base has left
// the subtree.
func (o OID) HasPrefix(base OID) bool {
	if len(o) <= len(base) {
		return false
	}
	for i := range base {
		if o[i] != base[i] {
			return false
		}
	}
	return true
}

// Append returns a copy with the extra arcs added; the receiver is not
// modified.
func (o OID) Append(arcs ...int) OID {
	out := make(OID, 0, len(o)+len(arcs))
	out = append(out, o...)
	out = append(out, arcs...)
	return out
}

func (o OID) Pack() (asn1binary.Value, error) {
	if len(o) < 2 {
		return asn1binary.Value{}, asn1error.NewUnexpectedError(2, len(o), "OID prefix").WithUnits("elements").WithKind(asn1error.EncodeError)
	}
	if o[0] < 0 || o[0] > 2 || o[1] < 0 || (o[0] < 2 && o[1] > 39) {
		return asn1binary.Value{}, asn1error.NewEncodeError("OID prefix %d.%d is invalid", o[0], o[1])
	}
	b := bytes.Buffer{}
	appendArc(&b, o[0]*40+o[1])
	for i := 2; i < len(o); i++ {
		n := o[i]
		if n < 0 {
			return asn1binary.Value{}, asn1error.NewEncodeError("OID element %d is negative", n)
		}
		appendArc(&b, n)
	}
	return asn1binary.Value{
		Envelope: asn1binary.Envelope{Tag: asn1core.TagOID},
		Bytes:    b.Bytes(),
	}, nil
}

// appendArc writes one subidentifier in base 128, continuation bit on every
// byte but the last, most significant group first.
func appendArc(b *bytes.Buffer, n int) {
	if n < 128 {
		b.WriteByte(byte(n))
		return
	}
	var reverse [10]byte
	j := 0
	for n > 0 {
		reverse[j] = byte(n & 0x7F)
		n >>= 7
		j++
	}
	for j--; j >= 0; j-- {
		if j > 0 {
			b.WriteByte(reverse[j] | 0x80)
		} else {
			b.WriteByte(reverse[j])
		}
	}
}

func (o *OID) Unpack(v *asn1binary.Value) error {
	content, err := v.ExpectUniversal(asn1core.TagOID)
	if err != nil {
		return err
	}
	if len(content) < 1 {
		return asn1error.NewUnexpectedError(1, 0, "OID content").WithUnits("byte(s)")
	}
	arcs := make([]int, 0, 12)
	for i := 0; i < len(content); {
		n := 0
		endOfArc := false
		for ; i < len(content); i++ {
			n = n<<7 + int(content[i]&0x7F)
			if content[i]&0x80 == 0 {
				endOfArc = true
				i++
				break
			}
		}
		if !endOfArc {
			return asn1error.NewDecodeError("OID element %d is truncated", n)
		}
		arcs = append(arcs, n)
	}
	// the first subidentifier folds the first two arcs together
	first := arcs[0]
	out := make(OID, 0, len(arcs)+1)
	switch {
	case first < 40:
		out = append(out, 0, first)
	case first < 80:
		out = append(out, 1, first-40)
	default:
		out = append(out, 2, first-80)
	}
	out = append(out, arcs[1:]...)
	*o = out
	return nil
}
