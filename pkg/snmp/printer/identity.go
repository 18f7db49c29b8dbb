package printer

import (
	"context"
	"errors"

	"github.com/davidjspooner/printer-probe/pkg/snmp"
)

// Identity is the handful of scalars that name a device. Any field may be
// empty/nil; only sysDescr is treated as the liveness probe.
type Identity struct {
	Description  string
	Name         string
	SerialNumber string
	PageCount    *int64
}

// CollectIdentity fetches sysDescr/sysName and the first rows of the serial
// and marker-life-count columns. A missing sysDescr means the device is not
// answering SNMP at all and the error (ErrNoResponse or a transport error)
// is returned as-is; the remaining fields are best effort.
func CollectIdentity(ctx context.Context, conn snmp.Connection, maxSteps int) (*Identity, error) {
	vb, err := conn.Get(ctx, OidSysDescr)
	if err != nil {
		return nil, err
	}
	identity := &Identity{}
	if vb.Value.Type == snmp.StringValue {
		identity.Description = vb.Value.String()
	}

	if vb, err := conn.Get(ctx, OidSysName); err == nil && vb.Value.Type == snmp.StringValue {
		identity.Name = vb.Value.String()
	} else if isFatal(err) {
		return identity, err
	}

	if walk, err := snmp.Walk(ctx, conn, OidSerialNumberColumn, maxSteps); err == nil {
		for i := range walk.VarBinds {
			if walk.VarBinds[i].Value.Type == snmp.StringValue {
				identity.SerialNumber = walk.VarBinds[i].Value.String()
				break
			}
		}
	} else if isFatal(err) {
		return identity, err
	}

	if walk, err := snmp.Walk(ctx, conn, OidMarkerLifeCountColumn, maxSteps); err == nil {
		for i := range walk.VarBinds {
			if n, ok := asInt64(&walk.VarBinds[i].Value); ok {
				identity.PageCount = &n
				break
			}
		}
	} else if isFatal(err) {
		return identity, err
	}

	return identity, nil
}

// isFatal distinguishes errors worth aborting for (cancellation, transport)
// from a device that simply has no value for an optional object.
func isFatal(err error) bool {
	if err == nil {
		return false
	}
	var transport *snmp.TransportError
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.As(err, &transport)
}
