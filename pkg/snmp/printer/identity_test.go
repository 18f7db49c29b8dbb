package printer

import (
	"context"
	"errors"
	"testing"

	"github.com/davidjspooner/printer-probe/pkg/snmp"
)

func newIdentityAgent() *fakeAgent {
	agent := &fakeAgent{
		scalars: map[string]snmp.VarBind{
			OidSysDescr.String(): {OID: OidSysDescr, Value: snmp.StrVal("Brother HL-L2350DW series")},
			OidSysName.String():  {OID: OidSysName, Value: snmp.StrVal("BRN3C2AF4")},
		},
		next: map[string]snmp.VarBind{},
	}
	chain(agent.next, OidSerialNumberColumn, []snmp.VarBind{
		{OID: OidSerialNumberColumn.Append(1), Value: snmp.StrVal("E78123A4J567890")},
	})
	chain(agent.next, OidMarkerLifeCountColumn, []snmp.VarBind{
		{OID: OidMarkerLifeCountColumn.Append(1, 1), Value: snmp.CounterVal(10423)},
	})
	return agent
}

func TestCollectIdentity(t *testing.T) {
	identity, err := CollectIdentity(context.Background(), newIdentityAgent(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if identity.Description != "Brother HL-L2350DW series" {
		t.Errorf("description = %q", identity.Description)
	}
	if identity.Name != "BRN3C2AF4" {
		t.Errorf("name = %q", identity.Name)
	}
	if identity.SerialNumber != "E78123A4J567890" {
		t.Errorf("serial = %q", identity.SerialNumber)
	}
	if identity.PageCount == nil || *identity.PageCount != 10423 {
		t.Errorf("page count = %v", identity.PageCount)
	}
}

func TestCollectIdentityBestEffort(t *testing.T) {
	agent := newIdentityAgent()
	delete(agent.scalars, OidSysName.String())
	agent.next = map[string]snmp.VarBind{} // no tables at all

	identity, err := CollectIdentity(context.Background(), agent, 0)
	if err != nil {
		t.Fatal(err)
	}
	if identity.Description == "" {
		t.Error("description should survive")
	}
	if identity.Name != "" || identity.SerialNumber != "" || identity.PageCount != nil {
		t.Errorf("optional fields should be empty, got %+v", identity)
	}
}

func TestCollectIdentityDeadAgent(t *testing.T) {
	agent := &fakeAgent{} // nil maps answer nothing
	_, err := CollectIdentity(context.Background(), agent, 0)
	if !errors.Is(err, snmp.ErrNoResponse) {
		t.Fatalf("got %v, want ErrNoResponse", err)
	}
}
