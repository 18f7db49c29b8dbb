package printer

import (
	"context"
	"sort"
	"strconv"

	"github.com/davidjspooner/printer-probe/pkg/snmp"
)

// SupplyRow is one reconstructed marker-supplies table row. A row may be
// partially populated when one column's walk terminated early; Level and Max
// are nil when the column had no value for this index.
type SupplyRow struct {
	Index       string
	Description string
	Level       *int64
	Max         *int64
}

// RFC 3805 sentinel levels: the supply exists but its level is not a
// measurable quantity.
const (
	LevelOther         = -1
	LevelUnknown       = -2
	LevelSomeRemaining = -3
)

// Percent computes the remaining percentage, or nil when it cannot be known:
// a missing column, a sentinel level, or a non-positive max. Never zero by
// default — "we don't know" must not render as "empty".
func (r *SupplyRow) Percent() *float64 {
	if r.Level == nil || r.Max == nil {
		return nil
	}
	if *r.Level < 0 || *r.Max <= 0 {
		return nil
	}
	p := float64(*r.Level) / float64(*r.Max) * 100.0
	return &p
}

// LevelDisplay renders the level for humans, normalising the RFC 3805
// sentinels to text rather than showing -3 as a magnitude.
func (r *SupplyRow) LevelDisplay() string {
	if r.Level == nil {
		return "unavailable"
	}
	switch *r.Level {
	case LevelOther, LevelUnknown:
		return "unavailable"
	case LevelSomeRemaining:
		return "some remaining"
	}
	return strconv.FormatInt(*r.Level, 10)
}

// Supplies is the joined result of the three column walks.
type Supplies struct {
	Rows []SupplyRow
	// Complete is false when any column walk stopped early (silence or step
	// ceiling), so absent fields may mean "not collected" rather than "not
	// present on the device".
	Complete bool
}

// CollectSupplies walks the description, max-capacity and level columns and
// joins them on the trailing row index. The three walks are sequential; each
// one's steps are inherently serial anyway.
func CollectSupplies(ctx context.Context, conn snmp.Connection, maxSteps int) (*Supplies, error) {
	descriptions, err := snmp.Walk(ctx, conn, OidSuppliesDescriptionColumn, maxSteps)
	if err != nil {
		return nil, err
	}
	maxima, err := snmp.Walk(ctx, conn, OidSuppliesMaxColumn, maxSteps)
	if err != nil {
		return nil, err
	}
	levels, err := snmp.Walk(ctx, conn, OidSuppliesLevelColumn, maxSteps)
	if err != nil {
		return nil, err
	}

	byIndex := map[string]*SupplyRow{}
	var order []string
	row := func(index string) *SupplyRow {
		r, ok := byIndex[index]
		if !ok {
			r = &SupplyRow{Index: index}
			byIndex[index] = r
			order = append(order, index)
		}
		return r
	}

	for i := range descriptions.VarBinds {
		vb := &descriptions.VarBinds[i]
		index := trailingIndex(vb.OID, OidSuppliesDescriptionColumn)
		if index == "" {
			continue
		}
		if vb.Value.Type == snmp.StringValue {
			row(index).Description = vb.Value.String()
		}
	}
	describedRows := len(order)
	for i := range maxima.VarBinds {
		vb := &maxima.VarBinds[i]
		index := trailingIndex(vb.OID, OidSuppliesMaxColumn)
		if index == "" {
			continue
		}
		if n, ok := asInt64(&vb.Value); ok {
			r := row(index)
			r.Max = &n
		}
	}
	for i := range levels.VarBinds {
		vb := &levels.VarBinds[i]
		index := trailingIndex(vb.OID, OidSuppliesLevelColumn)
		if index == "" {
			continue
		}
		if n, ok := asInt64(&vb.Value); ok {
			r := row(index)
			r.Level = &n
		}
	}

	// description order first, then indexes seen only in other columns
	sortTail(order, describedRows)

	result := &Supplies{
		Complete: descriptions.CompletedNaturally && maxima.CompletedNaturally && levels.CompletedNaturally,
	}
	for _, index := range order {
		result.Rows = append(result.Rows, *byIndex[index])
	}
	return result, nil
}

// asInt64 accepts the integer-ish encodings agents actually send for the
// numeric supply columns.
func asInt64(v *snmp.Value) (int64, bool) {
	switch v.Type {
	case snmp.IntegerValue:
		return v.Int, true
	case snmp.CounterValue, snmp.GaugeValue:
		return int64(v.Uint), true
	}
	return 0, false
}

func sortTail(order []string, head int) {
	if head > len(order) {
		return
	}
	sort.Strings(order[head:])
}
