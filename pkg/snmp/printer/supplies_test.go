package printer

import (
	"context"
	"testing"

	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1go"
	"github.com/davidjspooner/printer-probe/pkg/snmp"
)

// fakeAgent scripts Get by exact OID and GetNext by lexicographic chain.
type fakeAgent struct {
	scalars map[string]snmp.VarBind
	next    map[string]snmp.VarBind
}

func (a *fakeAgent) Get(ctx context.Context, oid asn1go.OID) (*snmp.VarBind, error) {
	vb, ok := a.scalars[oid.String()]
	if !ok {
		return nil, snmp.ErrNoResponse
	}
	return &vb, nil
}

func (a *fakeAgent) GetNext(ctx context.Context, oid asn1go.OID) (*snmp.VarBind, error) {
	vb, ok := a.next[oid.String()]
	if !ok {
		return nil, snmp.ErrNoResponse
	}
	return &vb, nil
}

func (a *fakeAgent) Close() error { return nil }

func chain(next map[string]snmp.VarBind, base asn1go.OID, rows []snmp.VarBind) {
	current := base
	for _, vb := range rows {
		next[current.String()] = vb
		current = vb.OID
	}
	// step past the last row into a different column
	next[current.String()] = snmp.VarBind{
		OID:   asn1go.MustParseOID("1.3.6.1.2.1.43.12.1.1.1.1"),
		Value: snmp.IntVal(0),
	}
}

func newSuppliesAgent() *fakeAgent {
	agent := &fakeAgent{
		scalars: map[string]snmp.VarBind{},
		next:    map[string]snmp.VarBind{},
	}
	chain(agent.next, OidSuppliesDescriptionColumn, []snmp.VarBind{
		{OID: OidSuppliesDescriptionColumn.Append(1, 1), Value: snmp.StrVal("Black Toner")},
		{OID: OidSuppliesDescriptionColumn.Append(1, 2), Value: snmp.StrVal("Drum Unit")},
	})
	chain(agent.next, OidSuppliesMaxColumn, []snmp.VarBind{
		{OID: OidSuppliesMaxColumn.Append(1, 1), Value: snmp.IntVal(100)},
		{OID: OidSuppliesMaxColumn.Append(1, 2), Value: snmp.IntVal(-2)},
	})
	chain(agent.next, OidSuppliesLevelColumn, []snmp.VarBind{
		{OID: OidSuppliesLevelColumn.Append(1, 1), Value: snmp.IntVal(80)},
		{OID: OidSuppliesLevelColumn.Append(1, 2), Value: snmp.IntVal(-3)},
		// a row the description column never mentioned
		{OID: OidSuppliesLevelColumn.Append(1, 3), Value: snmp.IntVal(55)},
	})
	return agent
}

func TestCollectSupplies(t *testing.T) {
	supplies, err := CollectSupplies(context.Background(), newSuppliesAgent(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(supplies.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(supplies.Rows))
	}

	toner := supplies.Rows[0]
	if toner.Description != "Black Toner" {
		t.Errorf("row 0 description = %q", toner.Description)
	}
	if pct := toner.Percent(); pct == nil || *pct != 80.0 {
		t.Errorf("row 0 percent = %v", pct)
	}
	if got := toner.LevelDisplay(); got != "80" {
		t.Errorf("row 0 level display = %q", got)
	}

	drum := supplies.Rows[1]
	if drum.Description != "Drum Unit" {
		t.Errorf("row 1 description = %q", drum.Description)
	}
	if pct := drum.Percent(); pct != nil {
		t.Errorf("row 1 percent = %v, want nil for sentinel level", pct)
	}
	if got := drum.LevelDisplay(); got != "some remaining" {
		t.Errorf("row 1 level display = %q", got)
	}

	// index 1.3 exists only in the level column and sorts after described rows
	orphan := supplies.Rows[2]
	if orphan.Index != "1.3" || orphan.Description != "" {
		t.Errorf("row 2 = %+v", orphan)
	}
	if orphan.Level == nil || *orphan.Level != 55 {
		t.Errorf("row 2 level = %v", orphan.Level)
	}
	if pct := orphan.Percent(); pct != nil {
		t.Errorf("row 2 percent = %v, want nil without max", pct)
	}

	if !supplies.Complete {
		t.Error("all walks completed naturally, Complete should be true")
	}
}

func TestCollectSuppliesIncomplete(t *testing.T) {
	agent := newSuppliesAgent()
	// silence the level column after its first row
	delete(agent.next, OidSuppliesLevelColumn.Append(1, 1).String())

	supplies, err := CollectSupplies(context.Background(), agent, 0)
	if err != nil {
		t.Fatal(err)
	}
	if supplies.Complete {
		t.Error("a silenced walk must clear Complete")
	}
	toner := findRow(t, supplies, "1.1")
	if toner.Level == nil || *toner.Level != 80 {
		t.Errorf("toner level = %v", toner.Level)
	}
	drum := findRow(t, supplies, "1.2")
	if drum.Level != nil {
		t.Errorf("drum level = %v, want nil", drum.Level)
	}
	if got := drum.LevelDisplay(); got != "unavailable" {
		t.Errorf("drum level display = %q", got)
	}
}

func findRow(t *testing.T, supplies *Supplies, index string) *SupplyRow {
	t.Helper()
	for i := range supplies.Rows {
		if supplies.Rows[i].Index == index {
			return &supplies.Rows[i]
		}
	}
	t.Fatalf("no row with index %s", index)
	return nil
}

func TestLevelSentinels(t *testing.T) {
	level := func(n int64) *SupplyRow {
		max := int64(100)
		return &SupplyRow{Level: &n, Max: &max}
	}
	if got := level(LevelOther).LevelDisplay(); got != "unavailable" {
		t.Errorf("other = %q", got)
	}
	if got := level(LevelUnknown).LevelDisplay(); got != "unavailable" {
		t.Errorf("unknown = %q", got)
	}
	if got := level(LevelSomeRemaining).LevelDisplay(); got != "some remaining" {
		t.Errorf("someRemaining = %q", got)
	}
	for _, n := range []int64{LevelOther, LevelUnknown, LevelSomeRemaining} {
		if pct := level(n).Percent(); pct != nil {
			t.Errorf("sentinel %d percent = %v, want nil", n, pct)
		}
	}
	if pct := level(0).Percent(); pct == nil || *pct != 0.0 {
		t.Errorf("a genuinely empty supply is 0%%, got %v", pct)
	}
}
