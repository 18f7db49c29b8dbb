package snmp

import (
	"context"

	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1core"
	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1go"
)

// PDU tags, context-specific class. Only requests are ever encoded here;
// RESPONSE exists so replies can be validated and captures decoded.
const (
	GET      = asn1core.Constructed | asn1core.Tag(0x00)
	GET_NEXT = asn1core.Constructed | asn1core.Tag(0x01)
	RESPONSE = asn1core.Constructed | asn1core.Tag(0x02)
)

const v2c = 1

const DefaultPort = 161

type Connection interface {
	Get(ctx context.Context, oid asn1go.OID) (*VarBind, error)
	GetNext(ctx context.Context, oid asn1go.OID) (*VarBind, error)
	Close() error
}

type Protocol interface {
	Dial(target string) (Connection, error)
}

type VarBind struct {
	OID   asn1go.OID
	Value Value
}

type PDU struct {
	Type        asn1core.Tag
	RequestID   int32
	ErrorStatus int
	ErrorIndex  int
	VarBinds    []VarBind
}

type Message struct {
	Version   int
	Community string
	PDU       PDU
}
