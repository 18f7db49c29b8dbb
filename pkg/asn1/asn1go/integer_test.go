package asn1go

import (
	"strconv"
	"testing"

	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1binary"
	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1core"
)

type IntegerTest struct {
	Bytes  []byte
	String string
}

func TestInteger(t *testing.T) {
	integerTests := []IntegerTest{
		{Bytes: []byte{0x00}, String: "0"},
		{Bytes: []byte{0x01}, String: "1"},
		{Bytes: []byte{0x7F}, String: "127"},
		{Bytes: []byte{0x00, 0x80}, String: "128"},
		{Bytes: []byte{0x80}, String: "-128"},
		{Bytes: []byte{0xFF, 0x7F}, String: "-129"},
		{Bytes: []byte{0xFF}, String: "-1"},
		{Bytes: []byte{0x07, 0xE4}, String: "2020"},
		{Bytes: []byte{0x7F, 0xFF, 0xFF, 0xFF}, String: "2147483647"},
		{Bytes: []byte{0x80, 0x00, 0x00, 0x00}, String: "-2147483648"},
	}
	for _, test := range integerTests {
		t.Run("decode to "+test.String, func(t *testing.T) {
			var v Integer
			raw := asn1binary.Value{
				Envelope: asn1binary.Envelope{Tag: asn1core.TagInteger},
				Bytes:    test.Bytes,
			}
			if err := v.Unpack(&raw); err != nil {
				t.Error(err)
			}
			if got := v.String(); got != test.String {
				t.Errorf("got %q, want %q", got, test.String)
			}
		})
		t.Run("encode "+test.String, func(t *testing.T) {
			var v Integer
			n, err := strconv.ParseInt(test.String, 10, 64)
			if err != nil {
				t.Error(err)
			}
			v.SetInt(n)
			if got := string(v); got != string(test.Bytes) {
				t.Errorf("got 0x%X, want 0x%X", got, test.Bytes)
			}
		})
	}
}

func TestIntegerWidth(t *testing.T) {
	var v Integer
	if err := v.SetIntWidth(5, 4); err != nil {
		t.Fatal(err)
	}
	if got := string(v); got != string([]byte{0x00, 0x00, 0x00, 0x05}) {
		t.Errorf("got 0x%X, want 0x00000005", got)
	}
	if err := v.SetIntWidth(300, 1); err == nil {
		t.Error("expected overflow error")
	}
}

func TestIntegerGetIntLimits(t *testing.T) {
	v := Integer{0x01, 0x00, 0x00, 0x00, 0x00} // 2^32
	if _, err := v.GetInt(32); err == nil {
		t.Error("expected out of range error for 32 bits")
	}
	if n, err := v.GetInt(64); err != nil || n != 1<<32 {
		t.Errorf("got (%d,%v), want (%d,nil)", n, err, int64(1)<<32)
	}
}

func TestIntegerGetIntSignPadding(t *testing.T) {
	// padding says negative but the retained window flips positive: the
	// value is -129*2^56 scaled past int64 and must not decode silently
	flipped := Integer{0xFF, 0x7F, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	if n, err := flipped.GetInt(64); err == nil {
		t.Errorf("decoded out-of-range integer as %d, want error", n)
	}
	// a zero pad with the next sign bit set is >= 2^63, also out of range
	overflow := Integer{0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	if n, err := overflow.GetInt(64); err == nil {
		t.Errorf("decoded out-of-range integer as %d, want error", n)
	}
	// genuine sign padding still decodes
	padded := Integer{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFE}
	if n, err := padded.GetInt(64); err != nil || n != -2 {
		t.Errorf("got (%d,%v), want (-2,nil)", n, err)
	}
	wide := Integer{0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	if n, err := wide.GetInt(64); err != nil || n != int64(0x80)<<48 {
		t.Errorf("got (%d,%v), want (%d,nil)", n, err, int64(0x80)<<48)
	}
}
