package snmp

import (
	"encoding/hex"
	"fmt"
	"net"

	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1binary"
	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1core"
	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1error"
	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1go"
)

type ValueType int

const (
	NullValue ValueType = iota
	IntegerValue
	StringValue
	OidValue
	CounterValue
	GaugeValue
	TimeTicksValue
	Counter64Value
	IPValue
	OpaqueValue
	NoSuchObjectValue
	NoSuchInstanceValue
	EndOfMibViewValue
	RawValue
)

func (t ValueType) String() string {
	switch t {
	case NullValue:
		return "Null"
	case IntegerValue:
		return "Integer"
	case StringValue:
		return "String"
	case OidValue:
		return "OID"
	case CounterValue:
		return "Counter"
	case GaugeValue:
		return "Gauge"
	case TimeTicksValue:
		return "TimeTicks"
	case Counter64Value:
		return "Counter64"
	case IPValue:
		return "IP"
	case OpaqueValue:
		return "Opaque"
	case NoSuchObjectValue:
		return "NoSuchObject"
	case NoSuchInstanceValue:
		return "NoSuchInstance"
	case EndOfMibViewValue:
		return "EndOfMibView"
	}
	return "Unknown"
}

// Value is the tagged union carried in a VarBind. Exactly one of the payload
// fields is meaningful, selected by Type.
type Value struct {
	Type  ValueType
	Int   int64
	Uint  uint64
	Bytes []byte
	OID   asn1go.OID
	Raw   asn1binary.Value
}

func NullVal() Value              { return Value{Type: NullValue} }
func IntVal(n int64) Value        { return Value{Type: IntegerValue, Int: n} }
func StrVal(s string) Value       { return Value{Type: StringValue, Bytes: []byte(s)} }
func OidVal(oid asn1go.OID) Value { return Value{Type: OidValue, OID: oid} }
func CounterVal(n uint64) Value   { return Value{Type: CounterValue, Uint: n} }
func GaugeVal(n uint64) Value     { return Value{Type: GaugeValue, Uint: n} }

// IsException reports the v2c exception markers that carry no data.
func (v Value) IsException() bool {
	switch v.Type {
	case NoSuchObjectValue, NoSuchInstanceValue, EndOfMibViewValue:
		return true
	}
	return false
}

func (v Value) String() string {
	switch v.Type {
	case NullValue:
		return "null"
	case IntegerValue:
		return fmt.Sprintf("%d", v.Int)
	case StringValue:
		s := asn1go.OctetString(v.Bytes)
		if s.IsPrintable() {
			return s.String()
		}
		return "0x" + hex.EncodeToString(v.Bytes)
	case OidValue:
		return v.OID.String()
	case CounterValue, GaugeValue, TimeTicksValue, Counter64Value:
		return fmt.Sprintf("%d", v.Uint)
	case IPValue:
		if len(v.Bytes) == 4 {
			return net.IP(v.Bytes).String()
		}
		return "0x" + hex.EncodeToString(v.Bytes)
	case OpaqueValue:
		return "0x" + hex.EncodeToString(v.Bytes)
	case NoSuchObjectValue, NoSuchInstanceValue, EndOfMibViewValue:
		return v.Type.String()
	}
	return v.Raw.Envelope.String()
}

// DecodeValue maps a raw TLV onto the union. Unrecognised envelopes land in
// RawValue rather than failing, so a walk over exotic vendor objects still
// returns something usable.
func DecodeValue(raw *asn1binary.Value) (Value, error) {
	switch raw.Class {
	case asn1core.ClassUniversal:
		switch raw.Tag {
		case asn1core.TagNull:
			return Value{Type: NullValue}, nil
		case asn1core.TagInteger:
			var i asn1go.Integer
			if err := i.Unpack(raw); err != nil {
				return Value{}, err
			}
			n, err := i.GetInt(64)
			if err != nil {
				return Value{}, err
			}
			return Value{Type: IntegerValue, Int: n}, nil
		case asn1core.TagOctetString:
			var s asn1go.OctetString
			if err := s.Unpack(raw); err != nil {
				return Value{}, err
			}
			return Value{Type: StringValue, Bytes: s}, nil
		case asn1core.TagOID:
			var oid asn1go.OID
			if err := oid.Unpack(raw); err != nil {
				return Value{}, err
			}
			return Value{Type: OidValue, OID: oid}, nil
		}
	case asn1core.ClassApplication:
		switch raw.Tag {
		case asn1core.TagIPAddress:
			return Value{Type: IPValue, Bytes: raw.Bytes}, nil
		case asn1core.TagCounter32:
			n, err := decodeUint(raw.Bytes)
			return Value{Type: CounterValue, Uint: n}, err
		case asn1core.TagGauge32:
			n, err := decodeUint(raw.Bytes)
			return Value{Type: GaugeValue, Uint: n}, err
		case asn1core.TagTimeTicks:
			n, err := decodeUint(raw.Bytes)
			return Value{Type: TimeTicksValue, Uint: n}, err
		case asn1core.TagCounter64:
			n, err := decodeUint(raw.Bytes)
			return Value{Type: Counter64Value, Uint: n}, err
		case asn1core.TagOpaque:
			return Value{Type: OpaqueValue, Bytes: raw.Bytes}, nil
		}
	case asn1core.ClassContextSpecific:
		switch raw.Tag {
		case 0x00:
			return Value{Type: NoSuchObjectValue}, nil
		case 0x01:
			return Value{Type: NoSuchInstanceValue}, nil
		case 0x02:
			return Value{Type: EndOfMibViewValue}, nil
		}
	}
	return Value{Type: RawValue, Raw: *raw}, nil
}

func decodeUint(content []byte) (uint64, error) {
	if len(content) == 0 {
		return 0, asn1error.NewDecodeError("empty unsigned integer")
	}
	// a leading 0x00 pad is legal, anything wider than 9 bytes is not
	if len(content) > 9 || (len(content) == 9 && content[0] != 0) {
		return 0, asn1error.NewUnexpectedError(9, len(content), "unsigned integer too wide").WithUnits("byte(s)")
	}
	n := uint64(0)
	for _, b := range content {
		n = n<<8 | uint64(b)
	}
	return n, nil
}

func (v *Value) pack() (asn1binary.Value, error) {
	switch v.Type {
	case NullValue:
		return asn1go.Null{}.Pack()
	case IntegerValue:
		var i asn1go.Integer
		i.SetInt(v.Int)
		return i.Pack()
	case StringValue:
		return asn1go.OctetString(v.Bytes).Pack()
	case OidValue:
		return v.OID.Pack()
	case CounterValue, GaugeValue, TimeTicksValue, Counter64Value:
		return packUint(v.Type, v.Uint)
	case IPValue, OpaqueValue:
		tag := asn1core.TagIPAddress
		if v.Type == OpaqueValue {
			tag = asn1core.TagOpaque
		}
		return asn1binary.Value{
			Envelope: asn1binary.Envelope{Class: asn1core.ClassApplication, Tag: tag},
			Bytes:    v.Bytes,
		}, nil
	case NoSuchObjectValue, NoSuchInstanceValue, EndOfMibViewValue:
		tag := asn1core.Tag(v.Type - NoSuchObjectValue)
		return asn1binary.Value{
			Envelope: asn1binary.Envelope{Class: asn1core.ClassContextSpecific, Tag: tag},
		}, nil
	case RawValue:
		return v.Raw, nil
	}
	return asn1binary.Value{}, asn1error.NewEncodeError("cannot encode value type %s", v.Type)
}

func packUint(t ValueType, n uint64) (asn1binary.Value, error) {
	var tag asn1core.Tag
	switch t {
	case CounterValue:
		tag = asn1core.TagCounter32
	case GaugeValue:
		tag = asn1core.TagGauge32
	case TimeTicksValue:
		tag = asn1core.TagTimeTicks
	case Counter64Value:
		tag = asn1core.TagCounter64
	}
	var scratch [9]byte
	count := 1
	for v := n; v > 0xFF; v >>= 8 {
		count++
	}
	for i := 0; i < count; i++ {
		scratch[count-1-i] = byte(n >> (8 * i))
	}
	content := scratch[:count]
	if content[0]&0x80 != 0 {
		content = append([]byte{0}, content...)
	}
	return asn1binary.Value{
		Envelope: asn1binary.Envelope{Class: asn1core.ClassApplication, Tag: tag},
		Bytes:    content,
	}, nil
}
