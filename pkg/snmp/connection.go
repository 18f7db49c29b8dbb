package snmp

import (
	"context"
	"fmt"
	"math/rand"
	"net"
	"time"

	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1core"
	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1error"
	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1go"
)

type connection struct {
	protocol *protocol
	conn     *net.UDPConn
	buffer   []byte
	rnd      *rand.Rand
}

func (c *connection) Close() error {
	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		return err
	}
	return fmt.Errorf("connection already closed")
}

func (c *connection) Get(ctx context.Context, oid asn1go.OID) (*VarBind, error) {
	return c.exchange(ctx, GET, oid)
}

func (c *connection) GetNext(ctx context.Context, oid asn1go.OID) (*VarBind, error) {
	return c.exchange(ctx, GET_NEXT, oid)
}

// nextRequestID keeps minimal-BER ids inside a 15 bit window so they encode
// in 2 bytes; fixed-width mode can use the full positive 31 bit range.
func (c *connection) nextRequestID() int32 {
	if c.protocol.fixedWidthRequestID {
		return c.rnd.Int31()
	}
	return c.rnd.Int31n(1 << 15)
}

// exchange performs one request/response round trip. Retries reuse the same
// request id; the agents this tool speaks to tolerate duplicates and it
// keeps a late reply to attempt N matchable against attempt N+1.
func (c *connection) exchange(ctx context.Context, pduType asn1core.Tag, oid asn1go.OID) (*VarBind, error) {
	if c.conn == nil {
		return nil, fmt.Errorf("connection already closed")
	}

	requestID := c.nextRequestID()
	message := NewRequest(pduType, c.protocol.community, requestID, oid)
	frame, err := message.Marshal(&EncodeOptions{FixedWidthRequestID: c.protocol.fixedWidthRequestID})
	if err != nil {
		return nil, err
	}

	target := c.conn.RemoteAddr().String()
	attempts := c.protocol.retries + 1
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if _, err := c.conn.Write(frame); err != nil {
			return nil, &TransportError{Op: "send", Target: target, Err: err}
		}

		deadline := time.Now().Add(c.protocol.timeout)
		if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
			deadline = d
		}
		if err := c.conn.SetReadDeadline(deadline); err != nil {
			return nil, &TransportError{Op: "set deadline", Target: target, Err: err}
		}

		n, err := c.conn.Read(c.buffer)
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				continue
			}
			return nil, &TransportError{Op: "receive", Target: target, Err: err}
		}

		reply, err := UnmarshalMessage(c.buffer[:n])
		if err != nil {
			return nil, err
		}
		if err := validateReply(reply, requestID); err != nil {
			return nil, err
		}
		if reply.PDU.ErrorStatus != 0 {
			return nil, &StatusError{Status: reply.PDU.ErrorStatus, Index: reply.PDU.ErrorIndex}
		}
		if len(reply.PDU.VarBinds) == 0 {
			return nil, asn1error.NewUnexpectedError(1, 0, "VarBinds in response")
		}
		vb := reply.PDU.VarBinds[0]
		return &vb, nil
	}
	return nil, ErrNoResponse
}

// validateReply enforces what the protocol requires of a response even
// though plenty of field scripts skip it: the PDU must be a GetResponse and
// the request ids must match.
func validateReply(reply *Message, requestID int32) error {
	if reply.Version != v2c {
		return asn1error.NewUnexpectedError(v2c, reply.Version, "version")
	}
	if reply.PDU.Type != RESPONSE {
		return asn1error.NewUnexpectedError(int(RESPONSE), int(reply.PDU.Type), "response PDU tag")
	}
	if reply.PDU.RequestID != requestID {
		return asn1error.NewUnexpectedError(requestID, reply.PDU.RequestID, "request id")
	}
	return nil
}
