package story

import (
	"fmt"
	"strings"
)

// NoJSONError indicates the model response contains no JSON object at all.
// Excerpt is a truncated prefix of the original raw text so the response can
// be inspected without re-running the model.
type NoJSONError struct {
	Excerpt string
}

func (e *NoJSONError) Error() string {
	return fmt.Sprintf("no JSON object found in model response. Raw response was:\n%s...", e.Excerpt)
}

// MalformedJSONError indicates the extracted span between braces failed to
// decode. It carries the underlying parser error and a truncated prefix of
// the cleaned text, so "model produced non-JSON" is distinguishable from
// "model produced JSON missing fields".
type MalformedJSONError struct {
	Err     error
	Excerpt string
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("failed to parse model response as JSON.\nParse error: %v\nCleaned response was:\n%s...", e.Err, e.Excerpt)
}

func (e *MalformedJSONError) Unwrap() error { return e.Err }

// MissingFieldError indicates a required top-level key is absent from the
// decoded story object.
type MissingFieldError struct {
	Field   string
	Present []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("story is missing required top-level field %q. Keys present: [%s]", e.Field, strings.Join(e.Present, ", "))
}

// WrongTypeError indicates a field decoded to an unexpected JSON shape.
type WrongTypeError struct {
	Field    string
	Expected string
	Actual   string
}

func (e *WrongTypeError) Error() string {
	return fmt.Sprintf("%q should be %s, got %s", e.Field, e.Expected, e.Actual)
}

// UnknownSlideTypeError indicates a slide's type tag is outside the known
// set. Position is 1-based.
type UnknownSlideTypeError struct {
	Position int
	Value    string
	Known    []string
}

func (e *UnknownSlideTypeError) Error() string {
	return fmt.Sprintf("slide %d has unknown type %q. Expected one of: [%s]", e.Position, e.Value, strings.Join(e.Known, ", "))
}

// MissingSlideFieldError indicates a slide lacks a field required by its
// declared type. Position is 1-based.
type MissingSlideFieldError struct {
	Position  int
	SlideType string
	Field     string
	Present   []string
}

func (e *MissingSlideFieldError) Error() string {
	return fmt.Sprintf("slide %d (type %q) is missing required field %q. Fields present: [%s]",
		e.Position, e.SlideType, e.Field, strings.Join(e.Present, ", "))
}
