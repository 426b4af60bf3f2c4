package sdf

import "fmt"

// The core's error taxonomy (spec-level "kinds", not sentinel values):
// InvalidParameter, NotFound, TopologyMismatch, StateViolation, and
// NumericLimit. Each gets its own type so callers can `errors.As` against
// a kind instead of string-matching, while Error() keeps the teacher's
// message shape: operation name, offending field, offending value.

// InvalidParameterError reports a non-positive dimension, zero normal,
// negative offset, or invalid enum passed to a constructor or operation.
type InvalidParameterError struct {
	Op    string
	Field string
	Value interface{}
	Why   string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s: invalid %s=%v: %s", e.Op, e.Field, e.Value, e.Why)
}

// NotFoundError reports a face/edge/entity name lookup that failed,
// listing the currently valid names — the primary feedback loop for an
// LLM caller per spec.md §7.
type NotFoundError struct {
	Op        string
	Name      string
	Available []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: no entity named %q (available: %v)", e.Op, e.Name, e.Available)
}

// TopologyMismatchError reports a non-planar face where planar is
// required, or a non-axis-aligned normal where axis-aligned is required.
type TopologyMismatchError struct {
	Op   string
	Face string
	Why  string
}

func (e *TopologyMismatchError) Error() string {
	return fmt.Sprintf("%s: face %q has unsuitable topology: %s", e.Op, e.Face, e.Why)
}

// StateViolationError reports misuse such as exporting an empty mesh.
type StateViolationError struct {
	Op  string
	Why string
}

func (e *StateViolationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Why)
}

// NumericLimitError reports a grid too large for marching cubes, or a
// zero direction vector passed to the root finder.
type NumericLimitError struct {
	Op    string
	Field string
	Value interface{}
	Limit interface{}
}

func (e *NumericLimitError) Error() string {
	return fmt.Sprintf("%s: %s=%v exceeds limit %v", e.Op, e.Field, e.Value, e.Limit)
}

func invalidParam(op, field string, value interface{}, why string) error {
	return &InvalidParameterError{Op: op, Field: field, Value: value, Why: why}
}
