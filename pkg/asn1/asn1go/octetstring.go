package asn1go

import (
	"strings"
	"unicode"

	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1binary"
	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1core"
)

type OctetString []byte

func (v OctetString) Pack() (asn1binary.Value, error) {
	return asn1binary.Value{
		Envelope: asn1binary.Envelope{Tag: asn1core.TagOctetString},
		Bytes:    v,
	}, nil
}

func (v *OctetString) Unpack(raw *asn1binary.Value) error {
	content, err := raw.ExpectUniversal(asn1core.TagOctetString)
	if err != nil {
		return err
	}
	*v = make([]byte, len(content))
	copy(*v, content)
	return nil
}

// String renders the octets byte for byte. Community strings and printer
// descriptions are Latin-1/ASCII on the wire; no UTF-8 re-interpretation.
func (v OctetString) String() string {
	return strings.TrimRight(string(v), "\x00")
}

// IsPrintable reports whether every octet is printable ASCII, which decides
// between text and hex rendering at display time.
func (v OctetString) IsPrintable() bool {
	for _, b := range v {
		if b > unicode.MaxASCII || (!unicode.IsPrint(rune(b)) && b != '\n' && b != '\r' && b != '\t') {
			return false
		}
	}
	return true
}
