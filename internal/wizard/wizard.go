// Package wizard holds the multi-step trip request form state machine. Every
// transition takes the current state and returns a new one; nothing here talks
// to the network or storage. The Submit side effect is delegated to a Submitter
// owned by the caller, which reports back through ApplySubmitResult.
package wizard

import (
	"context"
	"strconv"
	"strings"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/schema"
)

// AgeUnset marks a child age slot that has not been filled in yet. Slots are
// created when the children count grows and truncated when it shrinks.
const AgeUnset = -1

// Submitter delivers a completed payload to the intake endpoint.
type Submitter interface {
	Submit(ctx context.Context, payload map[string]any) (models.Enquiry, error)
}

// Step titles shown by the terminal client; fields per step come from the
// schema's step indices.
var StepTitles = [schema.StepCount]string{
	"Personal Information",
	"Travel Details",
	"Group Information",
	"Accommodation Preferences",
	"Additional Information",
}

// State is an immutable snapshot of the wizard. Transitions return copies.
type State struct {
	Step      int
	Submitted bool
	Errors    domain.FieldErrors
	Message   string
	Stored    models.Enquiry

	values    map[string]any
	submitSeq int
	inFlight  bool
}

func New() State {
	return State{Step: 1, values: map[string]any{}}
}

// Value returns the entered value for a field, if any.
func (s State) Value(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Payload serializes every entered value for submission.
func (s State) Payload() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// LastStep reports whether the wizard is on the final step.
func (s State) LastStep() bool { return s.Step == schema.StepCount }

// SubmitInFlight reports whether a submission is awaiting its result.
func (s State) SubmitInFlight() bool { return s.inFlight }

func (s State) clone() State {
	next := s
	next.values = make(map[string]any, len(s.values))
	for k, v := range s.values {
		next.values[k] = v
	}
	return next
}

// SetField records a field value. Setting "children" keeps the childrenAges
// list in lock-step: growing appends AgeUnset slots, shrinking truncates, and
// surviving indices keep their values.
func (s State) SetField(name string, value any) State {
	next := s.clone()
	next.values[name] = value
	next.Message = ""

	if name == "children" {
		if n, ok := asCount(value); ok {
			next.values["childrenAges"] = resizeAges(next.currentAges(), n)
		}
	}
	return next
}

// ClearField removes an entered value, so blanking an optional input unsets it
// instead of resubmitting the old value. Clearing "children" drops the age list
// with it.
func (s State) ClearField(name string) State {
	next := s.clone()
	delete(next.values, name)
	next.Message = ""
	if name == "children" {
		delete(next.values, "childrenAges")
	}
	return next
}

// SetChildAge fills one slot of the age list. Out-of-range indices are ignored.
func (s State) SetChildAge(index, age int) State {
	ages := s.currentAges()
	if index < 0 || index >= len(ages) {
		return s
	}
	next := s.clone()
	resized := make([]int, len(ages))
	copy(resized, ages)
	resized[index] = age
	next.values["childrenAges"] = resized
	return next
}

func (s State) currentAges() []int {
	if v, ok := s.values["childrenAges"]; ok {
		if ages, ok := v.([]int); ok {
			return ages
		}
	}
	return nil
}

// Next validates the current step's fields; on success it advances (capped at
// the last step), on failure it stays put with Errors populated. Entered
// values survive either way.
func (s State) Next() State {
	next := s.clone()
	errs := schema.ValidateFields(next.values, schema.FieldNames(next.Step)...)
	if len(errs) > 0 {
		next.Errors = errs
		return next
	}
	next.Errors = nil
	if next.Step < schema.StepCount {
		next.Step++
	}
	return next
}

// Previous steps back without validation and never discards values.
func (s State) Previous() State {
	next := s.clone()
	next.Errors = nil
	if next.Step > 1 {
		next.Step--
	}
	return next
}

// BeginSubmit validates the full record and, when clean, marks a submission in
// flight. The returned sequence number must accompany the eventual result;
// results for a stale sequence are ignored, which covers submissions the user
// navigated away from before the call resolved. While one submission is
// awaiting its result no second one can start.
func (s State) BeginSubmit() (State, int, bool) {
	next := s.clone()
	if !next.LastStep() || next.Submitted || next.inFlight {
		return next, 0, false
	}
	errs := schema.ValidateFields(next.values, allFieldNames()...)
	if len(errs) > 0 {
		next.Errors = errs
		return next, 0, false
	}
	next.Errors = nil
	next.submitSeq++
	next.inFlight = true
	return next, next.submitSeq, true
}

// CancelSubmit abandons an in-flight submission; the late result will carry a
// sequence that no longer matches and be dropped.
func (s State) CancelSubmit() State {
	next := s.clone()
	next.inFlight = false
	next.submitSeq++
	return next
}

// ApplySubmitResult folds the submitter's outcome back into the state. Success
// reaches the terminal Submitted state and clears all field values; rejection
// keeps the final step and every entered value, surfacing the reasons.
func (s State) ApplySubmitResult(seq int, stored models.Enquiry, err error) State {
	if seq != s.submitSeq || !s.inFlight {
		return s
	}
	next := s.clone()
	next.inFlight = false

	if err != nil {
		if fields, ok := domain.AsFieldErrors(err); ok {
			next.Errors = fields
		} else {
			next.Message = err.Error()
		}
		return next
	}

	next.Submitted = true
	next.Stored = stored
	next.values = map[string]any{}
	next.Errors = nil
	next.Message = "Thank you! Your trip request has been received."
	return next
}

func resizeAges(ages []int, n int) []int {
	if n < 0 {
		n = 0
	}
	out := make([]int, n)
	for i := range out {
		if i < len(ages) {
			out[i] = ages[i]
		} else {
			out[i] = AgeUnset
		}
	}
	return out
}

func asCount(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case float64:
		return int(val), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func allFieldNames() []string {
	var names []string
	for step := 1; step <= schema.StepCount; step++ {
		names = append(names, schema.FieldNames(step)...)
	}
	return names
}
