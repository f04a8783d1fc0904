package services

import (
	"errors"
	"fmt"
)

// ErrRateLimitExceeded reports an admission denial. The API boundary maps it
// to a 400 response rather than 429; existing clients key off the 400.
var ErrRateLimitExceeded = errors.New("too many requests, rate limit exceeded")

// InvalidParameterError reports a request parameter that is missing or out
// of range, naming the offending field and the violated bound.
type InvalidParameterError struct {
	Field  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}
