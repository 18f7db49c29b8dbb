package snmp

import (
	"context"
	"errors"

	"github.com/davidjspooner/printer-probe/internal/genericutils"
	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1error"
	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1go"
)

// DefaultMaxSteps bounds a table walk; printer supplies tables are tiny so a
// walk that hits this ceiling has almost certainly escaped into a loop.
const DefaultMaxSteps = 40

// WalkResult is the ordered slice of VarBinds collected under a base OID.
// CompletedNaturally is true when the walk terminated because the agent
// moved past the subtree or reported endOfMibView. False means silence or
// the step ceiling cut it short, which callers may want to surface since the
// two are otherwise indistinguishable from an empty table.
type WalkResult struct {
	VarBinds           []VarBind
	CompletedNaturally bool
}

// Walk enumerates the subtree under base with sequential GetNext requests.
// The first request is for base itself; GetNext returns the lexicographic
// successor so the base is never part of the result. Steps are strictly
// sequential; each depends on the previous response's OID.
func Walk(ctx context.Context, conn Connection, base asn1go.OID, maxSteps int) (*WalkResult, error) {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	maxSteps = genericutils.Clamp(maxSteps, 1, 10000)

	result := &WalkResult{}
	current := base
	for step := 0; step < maxSteps; step++ {
		vb, err := conn.GetNext(ctx, current)
		switch {
		case err == nil:
			// fall through
		case errors.Is(err, ErrNoResponse):
			// a device that stops answering mid-walk yields what we have
			return result, nil
		case asn1error.IsKind(err, asn1error.DecodeError):
			// a garbled reply is treated as an absent one
			return result, nil
		default:
			return result, err
		}
		if vb.Value.Type == EndOfMibViewValue || !vb.OID.HasPrefix(base) {
			result.CompletedNaturally = true
			return result, nil
		}
		result.VarBinds = append(result.VarBinds, *vb)
		current = vb.OID
	}
	return result, nil
}
