// Package timex contains small time helpers used by configuration loaders and
// persisted models.
package timex

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrInvalidDuration = errors.New("invalid duration")

// Duration wraps time.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds. The same forms are accepted
// from YAML.
type Duration struct {
	time.Duration
}

// MarshalJSON encodes the duration as a string ("1m30s").
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts "3s" style strings or integer nanoseconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	default:
		return ErrInvalidDuration
	}
}

// UnmarshalYAML accepts the same two forms as UnmarshalJSON.
func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return ErrInvalidDuration
	}
	if parsed, err := time.ParseDuration(n.Value); err == nil {
		d.Duration = parsed
		return nil
	}
	ns, err := strconv.ParseInt(n.Value, 10, 64)
	if err != nil {
		return ErrInvalidDuration
	}
	d.Duration = time.Duration(ns)
	return nil
}
