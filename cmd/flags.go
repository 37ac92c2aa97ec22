package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// enumValue restricts a flag to a fixed token set, so a typo fails at
// parse time instead of deep inside a command.
type enumValue struct {
	value   *string
	allowed []string
}

var _ pflag.Value = (*enumValue)(nil)

func newEnumValue(value *string, allowed ...string) *enumValue {
	return &enumValue{value: value, allowed: allowed}
}

// String is an implementation of the pflag.Value interface
func (e *enumValue) String() string { return *e.value }

// Type is an implementation of the pflag.Value interface
func (e *enumValue) Type() string { return "string" }

// Set is an implementation of the pflag.Value interface
func (e *enumValue) Set(value string) error {
	for _, a := range e.allowed {
		if value == a {
			*e.value = value
			return nil
		}
	}
	return fmt.Errorf("must be one of: %s", strings.Join(e.allowed, ", "))
}
