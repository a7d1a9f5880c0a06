package database

import (
	"errors"
	"fmt"
)

var ErrEmployeeNotFound = errors.New("employee not found")

// Reasons reported by InvalidRangeError
const (
	ReasonInvalidIndex = "index is invalid"
	ReasonInvalidRange = "invalid range"
)

// ReadError is returned when the store cannot be read.
type ReadError struct {
	Op    string
	Table string
	Err   error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("store read failed (%s %s): %v", e.Op, e.Table, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// WriteError is returned when a write transaction cannot commit.
type WriteError struct {
	Op    string
	Table string
	Err   error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("store write failed (%s %s): %v", e.Op, e.Table, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// InvalidRangeError reports a malformed or out-of-bound index range.
type InvalidRangeError struct {
	From   int
	To     int
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("%s (from %d, to %d)", e.Reason, e.From, e.To)
}
