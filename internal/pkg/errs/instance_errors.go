package errs

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedMetadata    = errors.New("malformed metadata")
	ErrUnexpectedEndOfInput = errors.New("unexpected end of input")
	ErrReferenceOutOfRange  = errors.New("reference out of range")
	ErrUnknownPeer          = errors.New("unknown peer")
	ErrRouteNotResolved     = errors.New("route not resolved")
)

// MalformedMetadataError reports a required instance header key that is missing
// or cannot be parsed.
type MalformedMetadataError struct {
	Key   string
	Cause error
}

func NewMalformedMetadataError(key string) *MalformedMetadataError {
	return &MalformedMetadataError{Key: key}
}

func NewMalformedMetadataErrorWithCause(key string, cause error) *MalformedMetadataError {
	return &MalformedMetadataError{Key: key, Cause: cause}
}

func (e *MalformedMetadataError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrMalformedMetadata, e.Key, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrMalformedMetadata, e.Key)
}

func (e *MalformedMetadataError) Unwrap() error {
	return ErrMalformedMetadata
}

// UnexpectedEndOfInputError reports a stream that ended before Section was terminated.
type UnexpectedEndOfInputError struct {
	Section string
	Line    int
	Cause   error
}

func NewUnexpectedEndOfInputError(section string, line int) *UnexpectedEndOfInputError {
	return &UnexpectedEndOfInputError{Section: section, Line: line}
}

func NewUnexpectedEndOfInputErrorWithCause(section string, line int, cause error) *UnexpectedEndOfInputError {
	return &UnexpectedEndOfInputError{Section: section, Line: line, Cause: cause}
}

func (e *UnexpectedEndOfInputError) Error() string {
	msg := fmt.Sprintf("%s: section %s is not terminated (after line %d)", ErrUnexpectedEndOfInput, e.Section, e.Line)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *UnexpectedEndOfInputError) Unwrap() error {
	return ErrUnexpectedEndOfInput
}

// ReferenceOutOfRangeError reports a positional reference outside of [0..Size).
type ReferenceOutOfRangeError struct {
	ParamName string
	Index     int
	Size      int
}

func NewReferenceOutOfRangeError(paramName string, index, size int) *ReferenceOutOfRangeError {
	return &ReferenceOutOfRangeError{ParamName: paramName, Index: index, Size: size}
}

func (e *ReferenceOutOfRangeError) Error() string {
	return fmt.Sprintf("%s: %s %d is outside of [0..%d)", ErrReferenceOutOfRange, e.ParamName, e.Index, e.Size)
}

func (e *ReferenceOutOfRangeError) Unwrap() error {
	return ErrReferenceOutOfRange
}

// UnknownPeerError reports a peer distance lookup with no entry for To.
type UnknownPeerError struct {
	From string
	To   string
}

func NewUnknownPeerError(from, to string) *UnknownPeerError {
	return &UnknownPeerError{From: from, To: to}
}

func (e *UnknownPeerError) Error() string {
	return fmt.Sprintf("%s: no distance from %q to %q", ErrUnknownPeer, sanitize(e.From), sanitize(e.To))
}

func (e *UnknownPeerError) Unwrap() error {
	return ErrUnknownPeer
}

// RouteNotResolvedError reports metrics requested for a vehicle whose route was never assigned.
type RouteNotResolvedError struct {
	VehicleIndex int
}

func NewRouteNotResolvedError(vehicleIndex int) *RouteNotResolvedError {
	return &RouteNotResolvedError{VehicleIndex: vehicleIndex}
}

func (e *RouteNotResolvedError) Error() string {
	return fmt.Sprintf("%s: vehicle %d has no route, the plan is not solved yet", ErrRouteNotResolved, e.VehicleIndex)
}

func (e *RouteNotResolvedError) Unwrap() error {
	return ErrRouteNotResolved
}
