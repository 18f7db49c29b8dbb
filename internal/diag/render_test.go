package diag

import (
	"strings"
	"testing"

	"github.com/davidjspooner/printer-probe/pkg/snmp/printer"
)

func TestSummaryLine(t *testing.T) {
	result := &Result{
		Target:    "192.168.1.50",
		HTTPSPass: true,
		SNMPPass:  false,
		Scope:     "diff-subnet",
		From:      "10.20.30.7/24",
	}
	want := "SUMMARY: Target=192.168.1.50 | HTTPS(443)=PASS | SNMP(161)=FAIL | Scope=diff-subnet | From=10.20.30.7/24"
	if got := result.Summary(); got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestSummaryNonDefaultPort(t *testing.T) {
	result := &Result{
		Target:    "192.168.1.50",
		HTTPSPort: 8443,
		Scope:     "unknown",
		From:      "unknown",
	}
	want := "SUMMARY: Target=192.168.1.50 | HTTPS(8443)=FAIL | SNMP(161)=FAIL | Scope=unknown | From=unknown"
	if got := result.Summary(); got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestWriteText(t *testing.T) {
	level := int64(80)
	max := int64(100)
	pages := int64(10423)
	result := &Result{
		Target:    "192.168.1.50",
		HTTPSPass: true,
		SNMPPass:  true,
		Scope:     "same-subnet",
		From:      "192.168.1.7/24",
		Checks: []Check{
			{Name: "HTTPS(443)", Passed: true, Detail: "port open"},
			{Name: "SNMP(161)", Passed: true, Detail: "Brother HL-L2350DW series"},
		},
		Identity: &printer.Identity{
			Description:  "Brother HL-L2350DW series",
			Name:         "BRN3C2AF4",
			SerialNumber: "E78123A4J567890",
			PageCount:    &pages,
		},
		Supplies: &printer.Supplies{
			Rows: []printer.SupplyRow{
				{Index: "1.1", Description: "Black Toner", Level: &level, Max: &max},
				{Index: "1.2", Description: "Drum Unit"},
			},
			Complete: true,
		},
	}

	text := &strings.Builder{}
	result.WriteText(text)
	got := text.String()

	for _, want := range []string{
		"[PASS] HTTPS(443): port open",
		"[PASS] SNMP(161): Brother HL-L2350DW series",
		"serial: E78123A4J567890",
		"pages printed: 10423",
		"supply: Black Toner = 80.0% (80 of 100)",
		"supply: Drum Unit = unavailable",
		"SUMMARY: Target=192.168.1.50 | HTTPS(443)=PASS | SNMP(161)=PASS | Scope=same-subnet | From=192.168.1.7/24",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("transcript missing %q\n%s", want, got)
		}
	}
	if strings.Contains(got, "may be incomplete") {
		t.Error("complete supplies must not carry the incomplete note")
	}
}

func TestWriteTextFailureHints(t *testing.T) {
	result := &Result{
		Target: "192.168.9.9",
		Scope:  "unknown",
		From:   "unknown",
		Checks: []Check{
			{Name: "HTTPS(443)", Detail: "connect failed: timeout", Hint: "check firewall ACLs for TCP/443"},
			{Name: "SNMP(161)", Detail: "SNMP did not respond", Hint: "check firewall ACLs for UDP/161 and the community string"},
		},
	}

	text := &strings.Builder{}
	result.WriteText(text)
	got := text.String()

	for _, want := range []string{
		"[FAIL] HTTPS(443): connect failed: timeout",
		"hint: check firewall ACLs for TCP/443",
		"[FAIL] SNMP(161): SNMP did not respond",
		"hint: check firewall ACLs for UDP/161 and the community string",
		"SUMMARY: Target=192.168.9.9 | HTTPS(443)=FAIL | SNMP(161)=FAIL | Scope=unknown | From=unknown",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("transcript missing %q\n%s", want, got)
		}
	}
}
