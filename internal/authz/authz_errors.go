package authz

import "errors"

// ErrMissingCheckInput is returned when a handler needs input the caller did
// not put on the Context. It signals a wiring mistake, not a denied request.
var ErrMissingCheckInput = errors.New("authorization check input missing")
