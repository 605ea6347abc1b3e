package enginecache

import (
	"errors"
	"fmt"
)

// InvalidEngineError reports a registration whose resolved descriptor lacks a
// callable render. It is the only error kind the registry raises; every other
// miss (unknown extension, unset option, clearing an absent key) is an
// absent-value return.
type InvalidEngineError struct {
	// Ext is the normalized extension the caller attempted to register.
	Ext string
}

func (e *InvalidEngineError) Error() string {
	return fmt.Sprintf("enginecache: engine for %q has no render function", e.Ext)
}

// IsInvalidEngine reports whether err is (or wraps) an InvalidEngineError.
func IsInvalidEngine(err error) bool {
	var target *InvalidEngineError
	return errors.As(err, &target)
}
