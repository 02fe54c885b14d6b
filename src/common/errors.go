package common

import "errors"

// Sentinel errors the handlers map onto HTTP conflict/forbidden responses.
var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrBookingTerminal   = errors.New("booking is in a terminal state")
	ErrRequestNotPending = errors.New("request has already been responded to")
	ErrTalentNotAccepted = errors.New("talent has not accepted the booking request")
	ErrAlreadySigned     = errors.New("contract has already been signed")
	ErrStaleStatus       = errors.New("status was changed by another request")
	ErrNotSigner         = errors.New("caller is not the designated signer")
	ErrForbidden         = errors.New("not allowed to perform this action")
)
