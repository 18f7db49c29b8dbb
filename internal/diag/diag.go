// Package diag runs the printer diagnostic: an HTTPS reachability check, an
// SNMP identity/supplies poll, and a routing-scope heuristic, rendered as
// per-check PASS/FAIL lines plus one machine-parseable SUMMARY line.
package diag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/davidjspooner/printer-probe/pkg/snmp"
	"github.com/davidjspooner/printer-probe/pkg/snmp/printer"
)

type Options struct {
	Target              string
	Community           string
	LocalAddress        string
	Timeout             time.Duration
	Retries             int
	MaxSteps            int
	FixedWidthRequestID bool
	HTTPSPort           int
	Logger              *slog.Logger
}

type Check struct {
	Name   string
	Passed bool
	Detail string
	Hint   string
}

type Result struct {
	Target    string
	Checks    []Check
	HTTPSPort int
	HTTPSPass bool
	SNMPPass  bool
	Scope     string
	From      string
	Identity  *printer.Identity
	Supplies  *printer.Supplies
}

func (r *Result) addCheck(c Check) {
	r.Checks = append(r.Checks, c)
}

// OK reports whether the SNMP leg of the diagnostic succeeded; strict mode
// maps this to the process exit code.
func (r *Result) OK() bool {
	return r.SNMPPass
}

// Run executes the full diagnostic. It never returns an error: every failure
// is a reported check outcome, matching the tool's advisory nature.
func Run(ctx context.Context, opts Options) *Result {
	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Second
	}
	if opts.HTTPSPort <= 0 {
		opts.HTTPSPort = 443
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	result := &Result{Target: opts.Target, HTTPSPort: opts.HTTPSPort}
	result.Scope, result.From = resolveScope(opts.Target, opts.LocalAddress)

	result.HTTPSPass = runHTTPSCheck(result, opts)
	result.SNMPPass = runSNMPCheck(ctx, result, opts, logger)

	logger.Info("diagnostic finished",
		slog.String("event", "diag_finished"),
		slog.String("target", opts.Target),
		slog.Bool("https", result.HTTPSPass),
		slog.Bool("snmp", result.SNMPPass),
		slog.String("scope", result.Scope),
	)
	return result
}

func runHTTPSCheck(result *Result, opts Options) bool {
	address := net.JoinHostPort(opts.Target, strconv.Itoa(opts.HTTPSPort))
	conn, err := net.DialTimeout("tcp", address, opts.Timeout)
	if err != nil {
		result.addCheck(Check{
			Name:   fmt.Sprintf("HTTPS(%d)", opts.HTTPSPort),
			Detail: fmt.Sprintf("connect failed: %v", err),
			Hint:   fmt.Sprintf("check firewall ACLs for TCP/%d", opts.HTTPSPort),
		})
		return false
	}
	conn.Close()
	result.addCheck(Check{
		Name:   fmt.Sprintf("HTTPS(%d)", opts.HTTPSPort),
		Passed: true,
		Detail: "port open",
	})
	return true
}

func runSNMPCheck(ctx context.Context, result *Result, opts Options, logger *slog.Logger) bool {
	options := []snmp.ProtocolOption{
		snmp.WithV2(opts.Community),
		snmp.WithTimeout(opts.Timeout),
		snmp.WithRetries(opts.Retries),
	}
	if opts.LocalAddress != "" {
		options = append(options, snmp.WithLocalAddress(opts.LocalAddress))
	}
	if opts.FixedWidthRequestID {
		options = append(options, snmp.WithFixedWidthRequestID())
	}

	protocol, err := snmp.NewProtocol(options...)
	if err != nil {
		result.addCheck(Check{Name: "SNMP(161)", Detail: err.Error()})
		return false
	}
	conn, err := protocol.Dial(opts.Target)
	if err != nil {
		result.addCheck(Check{
			Name:   "SNMP(161)",
			Detail: fmt.Sprintf("dial failed: %v", err),
			Hint:   "verify the target address resolves and is routable",
		})
		return false
	}
	defer conn.Close()

	identity, err := printer.CollectIdentity(ctx, conn, opts.MaxSteps)
	switch {
	case err == nil:
		// fall through
	case errors.Is(err, snmp.ErrNoResponse):
		result.addCheck(Check{
			Name:   "SNMP(161)",
			Detail: "SNMP did not respond",
			Hint:   "check firewall ACLs for UDP/161 and the community string",
		})
		return false
	default:
		var transport *snmp.TransportError
		if errors.As(err, &transport) {
			result.addCheck(Check{
				Name:   "SNMP(161)",
				Detail: fmt.Sprintf("network error: %v", err),
				Hint:   "the network rejected the probe; this is not the same as a silent device",
			})
			return false
		}
		result.addCheck(Check{
			Name:   "SNMP(161)",
			Detail: fmt.Sprintf("bad response: %v", err),
			Hint:   "the device answered with something unparseable",
		})
		return false
	}

	result.Identity = identity
	result.addCheck(Check{
		Name:   "SNMP(161)",
		Passed: true,
		Detail: identity.Description,
	})

	supplies, err := printer.CollectSupplies(ctx, conn, opts.MaxSteps)
	if err != nil {
		logger.Warn("supplies walk failed",
			slog.String("event", "supplies_walk_failed"),
			slog.String("target", opts.Target),
			slog.String("error", err.Error()),
		)
		return true
	}
	result.Supplies = supplies
	return true
}
