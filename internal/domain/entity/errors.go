package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrNoAddresses is returned when an address list is absent or empty
	ErrNoAddresses = errors.New("no wallet addresses configured")
	// ErrInvalidAddressList is returned when an address list cannot be decoded
	ErrInvalidAddressList = errors.New("invalid wallet address list")
	// ErrInvalidAddress is returned for addresses that are not 0x + 40 hex chars
	ErrInvalidAddress = errors.New("invalid wallet address")
	// ErrMalformedResponse is returned when the explorer payload does not match the txlist schema
	ErrMalformedResponse = errors.New("malformed explorer response")
	// ErrNoRecipient is returned when a scheduled report has nowhere to go
	ErrNoRecipient = errors.New("no report recipient configured")
)

// ExplorerError describes a query the explorer answered but refused
type ExplorerError struct {
	Status  string
	Message string
	Reason  string
}

func (e *ExplorerError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("explorer rejected query: status=%s message=%s", e.Status, e.Message)
	}
	return fmt.Sprintf("explorer rejected query: status=%s message=%s: %s", e.Status, e.Message, e.Reason)
}
