// Package printer maps the subset of Printer-MIB (RFC 3805) and MIB-II this
// tool polls onto Go types: device identity scalars plus the marker-supplies
// table reconstructed from per-column walks.
package printer

import (
	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1go"
)

var (
	OidSysDescr = asn1go.MustParseOID("1.3.6.1.2.1.1.1.0")
	OidSysName  = asn1go.MustParseOID("1.3.6.1.2.1.1.5.0")

	// table column bases, walked per column and joined on the row index
	OidSerialNumberColumn        = asn1go.MustParseOID("1.3.6.1.2.1.43.5.1.1.17")
	OidMarkerLifeCountColumn     = asn1go.MustParseOID("1.3.6.1.2.1.43.10.2.1.4")
	OidSuppliesTypeColumn        = asn1go.MustParseOID("1.3.6.1.2.1.43.11.1.1.5")
	OidSuppliesDescriptionColumn = asn1go.MustParseOID("1.3.6.1.2.1.43.11.1.1.6")
	OidSuppliesUnitColumn        = asn1go.MustParseOID("1.3.6.1.2.1.43.11.1.1.7")
	OidSuppliesMaxColumn         = asn1go.MustParseOID("1.3.6.1.2.1.43.11.1.1.8")
	OidSuppliesLevelColumn       = asn1go.MustParseOID("1.3.6.1.2.1.43.11.1.1.9")
)

// trailingIndex renders the arcs after the column base, eg "1.1" for
// prtMarkerSuppliesLevel.1.1. Rows from different column walks join on this
// string.
func trailingIndex(oid, column asn1go.OID) string {
	if !oid.HasPrefix(column) {
		return ""
	}
	return asn1go.OID(oid[len(column):]).String()
}
