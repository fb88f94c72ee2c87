package pipeline

import (
	"errors"
	"fmt"
)

// ErrUpstream marks failures of the search provider, as opposed to an empty result
var ErrUpstream = errors.New("upstream unavailable")

// FanoutError reports which query failed during fanout
type FanoutError struct {
	Query string
	Err   error
}

func (e *FanoutError) Error() string {
	return fmt.Sprintf("%s: query %q: %v", ErrUpstream, e.Query, e.Err)
}

// Unwrap exposes both the cause and ErrUpstream to errors.Is
func (e *FanoutError) Unwrap() []error {
	return []error{ErrUpstream, e.Err}
}
