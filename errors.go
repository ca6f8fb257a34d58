package toolcache

import (
	"fmt"
)

// OptionsError reports a missing or invalid constructor option.
// Constructors are the only public surface that returns errors; every
// store operation degrades silently instead.
type OptionsError struct {
	Component string // "store", "invoker" or "config"
	Field     string
	Reason    string
}

func (e *OptionsError) Error() string {
	return fmt.Sprintf("toolcache: %s: %s %s", e.Component, e.Field, e.Reason)
}

func optErr(component, field, reason string) error {
	return &OptionsError{Component: component, Field: field, Reason: reason}
}
