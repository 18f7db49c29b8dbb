package asn1binary

import (
	"fmt"

	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1core"
)

type Envelope struct {
	Class asn1core.Class
	Tag   asn1core.Tag
}

func (e *Envelope) String() string {
	if e.Class == asn1core.ClassUniversal {
		return fmt.Sprintf("[%s]", e.Tag)
	}
	return fmt.Sprintf("[%s tag=%d]", e.Class, int(e.Tag))
}

// Equal compares class and tag, ignoring nothing.
func (e *Envelope) Equal(other Envelope) bool {
	return e.Class == other.Class && e.Tag == other.Tag
}
