package snmp

import (
	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1binary"
	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1core"
	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1error"
	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1go"
)

var sequenceEnvelope = asn1binary.Envelope{
	Class: asn1core.ClassUniversal,
	Tag:   asn1core.TagSequence | asn1core.Constructed,
}

// EncodeOptions captures per-target encoding quirks. FixedWidthRequestID
// forces the request-id INTEGER to 4 bytes; some embedded printer agents
// reject the minimal-length encoding.
type EncodeOptions struct {
	FixedWidthRequestID bool
}

// Marshal serialises the message: SEQUENCE{version, community, PDU} where
// the PDU is a context-class constructed TLV holding request-id,
// error-status, error-index and the VarBind list.
func (m *Message) Marshal(opts *EncodeOptions) ([]byte, error) {
	var version, requestID, errorStatus, errorIndex asn1go.Integer

	version.SetInt(int64(m.Version))
	if opts != nil && opts.FixedWidthRequestID {
		if err := requestID.SetIntWidth(int64(m.PDU.RequestID), 4); err != nil {
			return nil, err
		}
	} else {
		requestID.SetInt(int64(m.PDU.RequestID))
	}
	errorStatus.SetInt(int64(m.PDU.ErrorStatus))
	errorIndex.SetInt(int64(m.PDU.ErrorIndex))

	varBinds := make([]*asn1binary.Value, 0, len(m.PDU.VarBinds))
	for i := range m.PDU.VarBinds {
		vb, err := m.PDU.VarBinds[i].pack()
		if err != nil {
			return nil, err
		}
		varBinds = append(varBinds, vb)
	}
	varBindList, err := asn1binary.Wrap(sequenceEnvelope, varBinds...)
	if err != nil {
		return nil, err
	}

	versionValue, err := version.Pack()
	if err != nil {
		return nil, err
	}
	communityValue, err := asn1go.OctetString(m.Community).Pack()
	if err != nil {
		return nil, err
	}
	requestIDValue, err := requestID.Pack()
	if err != nil {
		return nil, err
	}
	errorStatusValue, err := errorStatus.Pack()
	if err != nil {
		return nil, err
	}
	errorIndexValue, err := errorIndex.Pack()
	if err != nil {
		return nil, err
	}

	pdu, err := asn1binary.Wrap(
		asn1binary.Envelope{Class: asn1core.ClassContextSpecific, Tag: m.PDU.Type},
		&requestIDValue, &errorStatusValue, &errorIndexValue, varBindList,
	)
	if err != nil {
		return nil, err
	}
	message, err := asn1binary.Wrap(sequenceEnvelope, &versionValue, &communityValue, pdu)
	if err != nil {
		return nil, err
	}
	return message.Marshal()
}

func (vb *VarBind) pack() (*asn1binary.Value, error) {
	oidValue, err := vb.OID.Pack()
	if err != nil {
		return nil, err
	}
	value, err := vb.Value.pack()
	if err != nil {
		return nil, err
	}
	return asn1binary.Wrap(sequenceEnvelope, &oidValue, &value)
}

// UnmarshalMessage decodes one reply datagram. The whole frame must parse;
// trailing garbage is a decode error.
func UnmarshalMessage(frame []byte) (*Message, error) {
	var root asn1binary.Value
	rest, err := root.Unmarshal(frame)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, asn1error.NewUnexpectedError(0, len(rest), "trailing bytes after message").WithUnits("byte(s)")
	}
	if !root.Envelope.Equal(sequenceEnvelope) {
		return nil, asn1error.NewUnexpectedError(sequenceEnvelope.String(), root.Envelope.String(), "message envelope")
	}
	children, err := root.Children()
	if err != nil {
		return nil, err
	}
	if len(children) != 3 {
		return nil, asn1error.NewUnexpectedError(3, len(children), "message elements")
	}

	message := Message{}

	var version asn1go.Integer
	if err := version.Unpack(&children[0]); err != nil {
		return nil, err
	}
	v, err := version.GetInt(32)
	if err != nil {
		return nil, err
	}
	message.Version = int(v)

	var community asn1go.OctetString
	if err := community.Unpack(&children[1]); err != nil {
		return nil, err
	}
	message.Community = string(community)

	if err := message.PDU.unpack(&children[2]); err != nil {
		return nil, err
	}
	return &message, nil
}

func (pdu *PDU) unpack(raw *asn1binary.Value) error {
	if raw.Class != asn1core.ClassContextSpecific {
		return asn1error.NewUnexpectedError(asn1core.ClassContextSpecific.String(), raw.Class.String(), "PDU class")
	}
	if constructed, _ := raw.Tag.IsConstructed(); !constructed {
		return asn1error.NewDecodeError("PDU tag 0x%02X is not constructed", int(raw.Tag))
	}
	pdu.Type = raw.Tag

	fields, err := raw.Children()
	if err != nil {
		return err
	}
	if len(fields) != 4 {
		return asn1error.NewUnexpectedError(4, len(fields), "PDU fields")
	}

	var requestID, errorStatus, errorIndex asn1go.Integer
	if err := requestID.Unpack(&fields[0]); err != nil {
		return err
	}
	id, err := requestID.GetInt(32)
	if err != nil {
		return err
	}
	pdu.RequestID = int32(id)

	if err := errorStatus.Unpack(&fields[1]); err != nil {
		return err
	}
	status, err := errorStatus.GetInt(32)
	if err != nil {
		return err
	}
	pdu.ErrorStatus = int(status)

	if err := errorIndex.Unpack(&fields[2]); err != nil {
		return err
	}
	index, err := errorIndex.GetInt(32)
	if err != nil {
		return err
	}
	pdu.ErrorIndex = int(index)

	if !fields[3].Envelope.Equal(sequenceEnvelope) {
		return asn1error.NewUnexpectedError(sequenceEnvelope.String(), fields[3].Envelope.String(), "VarBindList envelope")
	}
	items, err := fields[3].Children()
	if err != nil {
		return err
	}
	pdu.VarBinds = make([]VarBind, 0, len(items))
	for i := range items {
		var vb VarBind
		if err := vb.unpack(&items[i]); err != nil {
			return err
		}
		pdu.VarBinds = append(pdu.VarBinds, vb)
	}
	return nil
}

func (vb *VarBind) unpack(raw *asn1binary.Value) error {
	if !raw.Envelope.Equal(sequenceEnvelope) {
		return asn1error.NewUnexpectedError(sequenceEnvelope.String(), raw.Envelope.String(), "VarBind envelope")
	}
	parts, err := raw.Children()
	if err != nil {
		return err
	}
	if len(parts) != 2 {
		return asn1error.NewUnexpectedError(2, len(parts), "VarBind elements")
	}
	if err := vb.OID.Unpack(&parts[0]); err != nil {
		return err
	}
	vb.Value, err = DecodeValue(&parts[1])
	return err
}

// NewRequest builds a GetRequest or GetNextRequest for a single OID with the
// customary NULL placeholder value. Multi-OID requests are a documented
// extension; nothing in this tool needs them.
func NewRequest(pduType asn1core.Tag, community string, requestID int32, oid asn1go.OID) *Message {
	return &Message{
		Version:   v2c,
		Community: community,
		PDU: PDU{
			Type:      pduType,
			RequestID: requestID,
			VarBinds:  []VarBind{{OID: oid, Value: NullVal()}},
		},
	}
}
