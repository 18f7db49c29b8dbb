package snmp

import (
	"errors"
	"fmt"
)

// ErrNoResponse is the normal outcome of probing a device that does not run
// SNMP or silently drops the request. It is returned only after every retry
// has been exhausted, and is distinct from a TransportError.
var ErrNoResponse = errors.New("snmp: no response")

// TransportError wraps a socket or OS level failure, eg destination
// unreachable. Callers can tell "device silent" from "network broken".
type TransportError struct {
	Op     string
	Target string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("snmp: %s %s: %v", e.Op, e.Target, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError reports a non-zero error-status in a GetResponse.
type StatusError struct {
	Status int
	Index  int
}

var statusNames = map[int]string{
	0: "noError",
	1: "tooBig",
	2: "noSuchName",
	3: "badValue",
	4: "readOnly",
	5: "genErr",
}

func (e *StatusError) Error() string {
	name, ok := statusNames[e.Status]
	if !ok {
		name = fmt.Sprintf("status=%d", e.Status)
	}
	return fmt.Sprintf("snmp: agent returned %s (index %d)", name, e.Index)
}
