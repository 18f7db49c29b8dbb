package asn1binary

import (
	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1core"
	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1error"
)

// Value is one tag-length-value triple. Bytes holds the content octets only;
// for constructed values they are the concatenated child encodings.
type Value struct {
	Envelope
	Bytes []byte
}

func (v *Value) Marshal() ([]byte, error) {
	header := byte(int(v.Class)<<6 | (int(v.Tag) & 0x3F))
	b := make([]byte, 0, 2+len(v.Bytes))
	b = append(b, header)
	b, err := AppendLength(b, len(v.Bytes))
	if err != nil {
		return nil, err
	}
	b = append(b, v.Bytes...)
	return b, nil
}

// Unmarshal reads one TLV from the front of data and returns the remaining
// tail. Every read is bounds-checked; a truncated frame is a decode error,
// never a slice panic.
func (v *Value) Unmarshal(data []byte) ([]byte, error) {
	if len(data) < 2 {
		return nil, asn1error.NewUnexpectedError(2, len(data), "envelope truncated").WithUnits("byte(s)")
	}
	header := data[0]
	v.Class = asn1core.Class(header >> 6)
	v.Tag = asn1core.Tag(header & 0x3F)
	length, consumed, err := DecodeLength(data[1:])
	if err != nil {
		return nil, err
	}
	start := 1 + consumed
	if len(data) < start+length {
		return nil, asn1error.NewUnexpectedError(start+length, len(data), "frame truncated").WithUnits("byte(s)")
	}
	v.Bytes = data[start : start+length]
	return data[start+length:], nil
}

// Children splits the content of a constructed value into its elements.
func (v *Value) Children() ([]Value, error) {
	if constructed, _ := v.Tag.IsConstructed(); !constructed {
		return nil, asn1error.NewDecodeError("%s is not constructed", v.Envelope.String())
	}
	var children []Value
	rest := v.Bytes
	for len(rest) > 0 {
		var child Value
		var err error
		rest, err = child.Unmarshal(rest)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

// ExpectUniversal returns the value's content when the envelope matches the
// given universal tag, or a decode error naming both.
func (v *Value) ExpectUniversal(tag asn1core.Tag) ([]byte, error) {
	if v.Class != asn1core.ClassUniversal || v.Tag != tag {
		return nil, asn1error.NewUnexpectedError(tag.String(), v.Envelope.String(), "unexpected tag")
	}
	return v.Bytes, nil
}
