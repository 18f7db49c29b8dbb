package framework

import (
	"fmt"
	"slices"
	"strings"
)

// Config is the loosely typed argument bag a yaml plugin block decodes into.
type Config map[string]any

func CheckFields(args Config, fields ...string) error {
	unexpected := make([]string, 0)
	for k := range args {
		if !slices.Contains(fields, k) {
			unexpected = append(unexpected, fmt.Sprintf("%q", k))
		}
	}
	if len(unexpected) > 0 {
		slices.Sort(unexpected)
		return fmt.Errorf("unexpected fields: %s", strings.Join(unexpected, ", "))
	}
	return nil
}

// ConsumeArg removes and returns a required field, failing when it is absent
// or has the wrong type.
func ConsumeArg[T any](cfg Config, field string) (T, error) {
	var null T
	v, ok := cfg[field]
	if !ok {
		return null, fmt.Errorf("missing required field %q", field)
	}
	tv, ok := v.(T)
	if !ok {
		return null, fmt.Errorf("invalid type %T for field %q", v, field)
	}
	delete(cfg, field)
	return tv, nil
}

// ConsumeOptionalArg removes and returns a field, or the default when the
// field is absent.
func ConsumeOptionalArg[T any](cfg Config, field string, defaultValue T) (T, error) {
	v, ok := cfg[field]
	if !ok {
		return defaultValue, nil
	}
	tv, ok := v.(T)
	if !ok {
		return defaultValue, fmt.Errorf("invalid type %T for field %q", v, field)
	}
	delete(cfg, field)
	return tv, nil
}
