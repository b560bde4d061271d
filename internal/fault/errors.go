package fault

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateID is returned when a vertex is inserted with an id that is
	// already indexed.
	ErrDuplicateID = errors.New("duplicate vertex id")
	// ErrDanglingEndpoint is returned when an edge references a vertex that
	// is not in the graph.
	ErrDanglingEndpoint = errors.New("dangling edge endpoint")
	// ErrUnknownPipeType is reported when a program names a pipe type that
	// was never registered.
	ErrUnknownPipeType = errors.New("unknown pipe type")
	// ErrDuplicatePipeType is returned when a pipe type name is registered twice.
	ErrDuplicatePipeType = errors.New("duplicate pipe type")
	// ErrInvalidFilter is reported when a filter argument is neither a
	// property map nor a predicate.
	ErrInvalidFilter = errors.New("invalid filter argument")
	// ErrInvalidTransformer is returned when a transformer without a
	// rewrite function is registered.
	ErrInvalidTransformer = errors.New("invalid transformer")
	// ErrInvalidValue is returned when a property value is not one of the
	// supported scalar kinds.
	ErrInvalidValue = errors.New("invalid property value")
)

// Side names the endpoint of an edge.
type Side string

const (
	SideIn  Side = "in"
	SideOut Side = "out"
)

// DuplicateIDError identifies the id that collided.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDuplicateID, e.ID)
}

func (e *DuplicateIDError) Unwrap() error { return ErrDuplicateID }

// DanglingEndpointError identifies which side of an edge could not be resolved.
type DanglingEndpointError struct {
	Side Side
	ID   string
}

func (e *DanglingEndpointError) Error() string {
	return fmt.Sprintf("%s: %s vertex %q not found", ErrDanglingEndpoint, e.Side, e.ID)
}

func (e *DanglingEndpointError) Unwrap() error { return ErrDanglingEndpoint }

// UnknownPipeTypeError names the step that referenced a missing pipe type.
type UnknownPipeTypeError struct {
	Name string
}

func (e *UnknownPipeTypeError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownPipeType, e.Name)
}

func (e *UnknownPipeTypeError) Unwrap() error { return ErrUnknownPipeType }

// InvalidFilterError describes a filter argument of an unsupported kind.
type InvalidFilterError struct {
	Arg any
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("%s: %T", ErrInvalidFilter, e.Arg)
}

func (e *InvalidFilterError) Unwrap() error { return ErrInvalidFilter }

// Kind returns a short, stable label for a known error, suitable for metric
// labels and structured log attributes. Unknown errors map to "other".
func Kind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrDuplicateID):
		return "duplicate_id"
	case errors.Is(err, ErrDanglingEndpoint):
		return "dangling_endpoint"
	case errors.Is(err, ErrUnknownPipeType):
		return "unknown_pipe_type"
	case errors.Is(err, ErrDuplicatePipeType):
		return "duplicate_pipe_type"
	case errors.Is(err, ErrInvalidFilter):
		return "invalid_filter"
	case errors.Is(err, ErrInvalidTransformer):
		return "invalid_transformer"
	case errors.Is(err, ErrInvalidValue):
		return "invalid_value"
	default:
		return "other"
	}
}
