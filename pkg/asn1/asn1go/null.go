package asn1go

import (
	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1binary"
	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1core"
	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1error"
)

//--------------------------------------------------------------------------------------------

type Null struct {
}

func (v Null) Pack() (asn1binary.Value, error) {
	return asn1binary.Value{
		Envelope: asn1binary.Envelope{Tag: asn1core.TagNull},
	}, nil
}

func (v *Null) Unpack(raw *asn1binary.Value) error {
	content, err := raw.ExpectUniversal(asn1core.TagNull)
	if err != nil {
		return err
	}
	if len(content) != 0 {
		return asn1error.NewUnexpectedError(0, len(content), "null").WithUnits("byte(s)")
	}
	return nil
}

func (v Null) String() string {
	return "null"
}
