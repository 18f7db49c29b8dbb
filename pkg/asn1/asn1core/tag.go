package asn1core

import "fmt"

type Tag int

// Constructed is the encoding bit, not part of the tag number proper.
const Constructed = Tag(0x20)

const (
	TagBoolean     = Tag(0x01)
	TagInteger     = Tag(0x02)
	TagBitString   = Tag(0x03)
	TagOctetString = Tag(0x04)
	TagNull        = Tag(0x05)
	TagOID         = Tag(0x06)
	TagEnum        = Tag(0x0A)
	TagSequence    = Tag(0x10)
	TagSet         = Tag(0x11)
)

// Application-class tags used by SNMP (RFC 2578 SMI types).
const (
	TagIPAddress = Tag(0x00)
	TagCounter32 = Tag(0x01)
	TagGauge32   = Tag(0x02)
	TagTimeTicks = Tag(0x03)
	TagOpaque    = Tag(0x04)
	TagCounter64 = Tag(0x06)
)

var tagMap mapping[Tag]

func init() {
	tagMap.Add("Boolean", TagBoolean)
	tagMap.Add("Integer", TagInteger)
	tagMap.Add("BitString", TagBitString)
	tagMap.Add("OctetString", TagOctetString)
	tagMap.Add("Null", TagNull)
	tagMap.Add("OID", TagOID)
	tagMap.Add("Enum", TagEnum)
	tagMap.Add("Sequence", TagSequence)
	tagMap.Add("Set", TagSet)
	tagMap.AddAlias("Sequence", "SequenceOf")
}

func (t Tag) String() string {
	name, err := tagMap.Name(t)
	if err == nil {
		return name
	}
	constructed, baseTag := t.IsConstructed()
	if constructed {
		name, err := tagMap.Name(baseTag)
		if err == nil {
			return name + fmt.Sprintf("( constructed 0x%02X )", int(t))
		}
	}
	return fmt.Sprintf("tag=%02X", int(t))
}

func (t Tag) IsConstructed() (bool, Tag) {
	return t&Constructed != 0, t &^ Constructed
}

func ParseTag(tag string) (Tag, error) {
	return tagMap.Value(tag)
}
