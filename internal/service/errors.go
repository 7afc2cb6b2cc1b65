package service

import "errors"

// ErrInvalid wraps every validation failure so transport adapters can map it
// to a client error instead of a server fault.
var ErrInvalid = errors.New("invalid input")
