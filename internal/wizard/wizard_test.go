package wizard

import (
	"errors"
	"reflect"
	"testing"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/schema"
)

var stepValues = map[int]map[string]any{
	1: {
		"fullName":          "Jane Doe",
		"email":             "jane@example.com",
		"phone":             "1234567890",
		"contactPreference": "email",
		"referralSource":    "search",
	},
	2: {
		"departureAirport": "LHR",
		"destination":      "Maldives",
		"fromDate":         "2025-06-01",
		"toDate":           "2025-06-10",
		"travelReason":     "holiday",
	},
	3: {
		"adults":       "2",
		"children":     "1",
		"childrenAges": []int{8},
	},
	4: {
		"hotelRating": "5",
		"boardBasis":  "All Inclusive",
		"budget":      "£3000-£4000",
	},
	5: {
		"specialRequests": "sea view please",
	},
}

func fillStep(s State, step int) State {
	for name, v := range stepValues[step] {
		s = s.SetField(name, v)
	}
	return s
}

// completed returns a state on the final step with every field filled in.
func completed(t *testing.T) State {
	t.Helper()
	s := New()
	for step := 1; step <= schema.StepCount; step++ {
		s = fillStep(s, step)
		if step < schema.StepCount {
			s = s.Next()
			if len(s.Errors) > 0 {
				t.Fatalf("step %d unexpectedly invalid: %v", step, s.Errors)
			}
		}
	}
	return s
}

func TestNextBlockedUntilStepValid(t *testing.T) {
	s := New().SetField("fullName", "Jane Doe")
	s = s.Next()
	if s.Step != 1 {
		t.Fatalf("incomplete step must not advance, got step %d", s.Step)
	}
	if s.Errors["email"] == "" {
		t.Fatalf("expected email violation, got %v", s.Errors)
	}
	if v, _ := s.Value("fullName"); v != "Jane Doe" {
		t.Fatalf("entered value lost on failed advance: %v", v)
	}

	s = fillStep(s, 1).Next()
	if s.Step != 2 || len(s.Errors) > 0 {
		t.Fatalf("valid step should advance cleanly, got step %d errors %v", s.Step, s.Errors)
	}
}

func TestNavigationPreservesValues(t *testing.T) {
	s := fillStep(New(), 1).Next()
	s = fillStep(s, 2)
	before := s.Payload()

	s = s.Previous()
	if s.Step != 1 {
		t.Fatalf("expected step 1, got %d", s.Step)
	}
	s = s.Next()
	if s.Step != 2 {
		t.Fatalf("expected step 2, got %d", s.Step)
	}
	if !reflect.DeepEqual(s.Payload(), before) {
		t.Fatalf("round trip changed values:\nbefore %v\nafter  %v", before, s.Payload())
	}

	if New().Previous().Step != 1 {
		t.Fatal("previous from the first step must stay put")
	}
}

func TestChildrenCountResizesAges(t *testing.T) {
	s := New().SetField("children", "2")
	s = s.SetChildAge(0, 6).SetChildAge(1, 9)

	s = s.SetField("children", "4")
	v, _ := s.Value("childrenAges")
	if want := []int{6, 9, AgeUnset, AgeUnset}; !reflect.DeepEqual(v, want) {
		t.Fatalf("growing should pad unset slots, got %v want %v", v, want)
	}

	s = s.SetField("children", "1")
	v, _ = s.Value("childrenAges")
	if want := []int{6}; !reflect.DeepEqual(v, want) {
		t.Fatalf("shrinking should truncate, got %v want %v", v, want)
	}
}

func TestSetChildAgeIgnoresOutOfRangeIndex(t *testing.T) {
	s := New().SetField("children", "1")
	if next := s.SetChildAge(5, 10); !reflect.DeepEqual(next.Payload(), s.Payload()) {
		t.Fatal("out-of-range index must leave the state unchanged")
	}
}

func TestBeginSubmitOnlyFromFinalStep(t *testing.T) {
	s := fillStep(New(), 1)
	if _, _, ok := s.BeginSubmit(); ok {
		t.Fatal("submission must not start before the final step")
	}
}

func TestBeginSubmitValidatesFullRecord(t *testing.T) {
	s := completed(t)
	s = s.SetField("email", "not-an-email")

	next, _, ok := s.BeginSubmit()
	if ok {
		t.Fatal("invalid record must not start a submission")
	}
	if next.Errors["email"] == "" {
		t.Fatalf("expected email violation, got %v", next.Errors)
	}
}

func TestSubmitSuccessReachesTerminalState(t *testing.T) {
	s := completed(t)
	next, seq, ok := s.BeginSubmit()
	if !ok {
		t.Fatalf("complete record should submit, errors: %v", next.Errors)
	}
	if !next.SubmitInFlight() {
		t.Fatal("submission should be marked in flight")
	}

	stored := models.Enquiry{ID: 7, FullName: "Jane Doe", Status: models.StatusNew}
	next = next.ApplySubmitResult(seq, stored, nil)
	if !next.Submitted || next.Stored.ID != 7 {
		t.Fatalf("expected terminal submitted state, got %+v", next)
	}
	if len(next.Payload()) != 0 {
		t.Fatalf("success must clear entered values, got %v", next.Payload())
	}
	if next.SubmitInFlight() {
		t.Fatal("no submission should remain in flight")
	}
}

func TestBeginSubmitRejectsSecondWhileInFlight(t *testing.T) {
	s := completed(t)
	inFlight, seq, ok := s.BeginSubmit()
	if !ok {
		t.Fatalf("first submission should start, errors: %v", inFlight.Errors)
	}

	again, seq2, ok := inFlight.BeginSubmit()
	if ok || seq2 != 0 {
		t.Fatalf("a second submission must not start while one is awaiting its result, got seq %d", seq2)
	}

	// The original result still applies after the rejected attempt.
	done := again.ApplySubmitResult(seq, models.Enquiry{ID: 7}, nil)
	if !done.Submitted || done.Stored.ID != 7 {
		t.Fatalf("first submission's result should still land, got %+v", done)
	}
}

func TestClearFieldUnsetsOptionalValue(t *testing.T) {
	s := completed(t).SetField("preferredHotel", "Soneva Jani")
	s = s.ClearField("preferredHotel")

	if _, ok := s.Value("preferredHotel"); ok {
		t.Fatal("cleared field must not keep its old value")
	}
	if _, ok := s.Payload()["preferredHotel"]; ok {
		t.Fatal("cleared field must not be resubmitted")
	}

	s = s.SetField("children", "2").ClearField("children")
	if _, ok := s.Value("childrenAges"); ok {
		t.Fatal("clearing the children count must drop the age list")
	}
}

func TestSubmitRejectionKeepsValues(t *testing.T) {
	s := completed(t)
	before := s.Payload()
	next, seq, _ := s.BeginSubmit()

	reject := domain.FieldErrors{"email": "please enter a valid email address"}
	next = next.ApplySubmitResult(seq, models.Enquiry{}, reject)

	if next.Submitted {
		t.Fatal("rejection must not reach the submitted state")
	}
	if next.Errors["email"] == "" {
		t.Fatalf("rejection reasons should surface, got %v", next.Errors)
	}
	if !reflect.DeepEqual(next.Payload(), before) {
		t.Fatal("rejection must keep every entered value")
	}
}

func TestSubmitTransportErrorSurfacesMessage(t *testing.T) {
	s := completed(t)
	next, seq, _ := s.BeginSubmit()
	next = next.ApplySubmitResult(seq, models.Enquiry{}, errors.New("could not reach the server"))
	if next.Submitted || next.Message == "" {
		t.Fatalf("transport failure should keep the form with a message, got %+v", next)
	}
}

func TestStaleSubmitResultIgnored(t *testing.T) {
	s := completed(t)
	next, seq, _ := s.BeginSubmit()

	cancelled := next.CancelSubmit()
	if cancelled.SubmitInFlight() {
		t.Fatal("cancel should clear the in-flight flag")
	}

	late := cancelled.ApplySubmitResult(seq, models.Enquiry{ID: 7}, nil)
	if late.Submitted {
		t.Fatal("a result for a cancelled submission must be dropped")
	}
	if !reflect.DeepEqual(late.Payload(), cancelled.Payload()) {
		t.Fatal("a stale result must not touch entered values")
	}
}
