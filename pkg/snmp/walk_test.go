package snmp

import (
	"context"
	"testing"

	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1go"
)

// scriptedConnection maps each GetNext OID to the next VarBind in a canned
// subtree.
type scriptedConnection struct {
	next map[string]VarBind
	err  error
}

func (c *scriptedConnection) Get(ctx context.Context, oid asn1go.OID) (*VarBind, error) {
	return c.GetNext(ctx, oid)
}

func (c *scriptedConnection) GetNext(ctx context.Context, oid asn1go.OID) (*VarBind, error) {
	if c.err != nil {
		return nil, c.err
	}
	vb, ok := c.next[oid.String()]
	if !ok {
		return nil, ErrNoResponse
	}
	return &vb, nil
}

func (c *scriptedConnection) Close() error { return nil }

func TestWalkStopsOutsideSubtree(t *testing.T) {
	base := asn1go.MustParseOID("1.3.6.1.2.1.43.11.1.1.9")
	conn := &scriptedConnection{next: map[string]VarBind{
		"1.3.6.1.2.1.43.11.1.1.9":     {OID: base.Append(1, 1), Value: IntVal(80)},
		"1.3.6.1.2.1.43.11.1.1.9.1.1": {OID: base.Append(1, 2), Value: IntVal(-2)},
		// next column; the walk must not follow it
		"1.3.6.1.2.1.43.11.1.1.9.1.2": {OID: asn1go.MustParseOID("1.3.6.1.2.1.43.11.1.1.10.1.1"), Value: IntVal(1)},
	}}

	result, err := Walk(context.Background(), conn, base, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.VarBinds) != 2 {
		t.Fatalf("got %d varbinds, want 2", len(result.VarBinds))
	}
	if !result.CompletedNaturally {
		t.Error("walk should have completed naturally")
	}
	if got := result.VarBinds[0].Value.Int; got != 80 {
		t.Errorf("first value = %d", got)
	}
}

func TestWalkStopsAtEndOfMibView(t *testing.T) {
	base := asn1go.MustParseOID("1.3.6.1.2.1.43.11.1.1.9")
	conn := &scriptedConnection{next: map[string]VarBind{
		"1.3.6.1.2.1.43.11.1.1.9":     {OID: base.Append(1, 1), Value: IntVal(80)},
		"1.3.6.1.2.1.43.11.1.1.9.1.1": {OID: base.Append(1, 1), Value: Value{Type: EndOfMibViewValue}},
	}}

	result, err := Walk(context.Background(), conn, base, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.VarBinds) != 1 || !result.CompletedNaturally {
		t.Errorf("got %d varbinds, natural=%v", len(result.VarBinds), result.CompletedNaturally)
	}
}

func TestWalkSilenceMidWalk(t *testing.T) {
	base := asn1go.MustParseOID("1.3.6.1.2.1.43.11.1.1.9")
	conn := &scriptedConnection{next: map[string]VarBind{
		"1.3.6.1.2.1.43.11.1.1.9": {OID: base.Append(1, 1), Value: IntVal(80)},
		// no entry for .1.1 so the next step gets ErrNoResponse
	}}

	result, err := Walk(context.Background(), conn, base, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.VarBinds) != 1 {
		t.Fatalf("got %d varbinds, want 1", len(result.VarBinds))
	}
	if result.CompletedNaturally {
		t.Error("silence must not count as natural completion")
	}
}

func TestWalkStepCeiling(t *testing.T) {
	base := asn1go.MustParseOID("1.3.6.1.2.1.43.11.1.1.9")
	// an agent that always answers with the base's first child, looping forever
	looping := map[string]VarBind{}
	current := base
	for i := 1; i <= 100; i++ {
		next := base.Append(1, i)
		looping[current.String()] = VarBind{OID: next, Value: IntVal(int64(i))}
		current = next
	}
	conn := &scriptedConnection{next: looping}

	result, err := Walk(context.Background(), conn, base, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.VarBinds) != 5 {
		t.Fatalf("got %d varbinds, want 5", len(result.VarBinds))
	}
	if result.CompletedNaturally {
		t.Error("hitting the ceiling must not count as natural completion")
	}
}

func TestWalkPropagatesTransportError(t *testing.T) {
	base := asn1go.MustParseOID("1.3.6.1.2.1.43.11.1.1.9")
	conn := &scriptedConnection{err: &TransportError{Op: "send", Target: "10.0.0.9:161"}}

	_, err := Walk(context.Background(), conn, base, 0)
	if err == nil {
		t.Fatal("expected transport error to propagate")
	}
}
