// Package schema is the single source of truth for trip request validation.
// The same field descriptors drive the intake endpoint (full payload, untrusted)
// and the wizard (per-step, incremental), so client-side and server-side
// acceptance cannot drift apart.
package schema

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"backend/internal/domain"
	"backend/internal/domain/models"
)

type Kind int

const (
	String Kind = iota
	Email
	Int
	Bool
	Date
	Enum
	IntList
)

// Field describes one trip request field: its type, which wizard step it
// belongs to, and its constraints.
type Field struct {
	Name     string
	Kind     Kind
	Step     int
	Required bool
	MinLen   int
	Min, Max int
	HasRange bool
	Values   []string
	ReqMsg   string
}

// StepCount is the number of wizard steps the fields are grouped into.
const StepCount = 5

// Closed enum sets. Compiled in; no runtime schema mutation.
var (
	ContactPreferences = []string{"phone", "email", "whatsapp"}
	ReferralSources    = []string{"search", "social", "recommendation", "press", "other"}
	TravelReasons      = []string{"holiday", "honeymoon", "anniversary", "family", "business", "other"}
	BoardBases         = []string{"Room Only", "Bed & Breakfast", "Half Board", "Full Board", "All Inclusive"}
)

const (
	maxChildAge  = 17
	maxTravelers = 40
)

var fields = []Field{
	{Name: "fullName", Kind: String, Step: 1, Required: true, MinLen: 2, ReqMsg: "name must be at least 2 characters"},
	{Name: "email", Kind: Email, Step: 1, Required: true, ReqMsg: "please enter a valid email address"},
	{Name: "phone", Kind: String, Step: 1, Required: true, MinLen: 7, ReqMsg: "please enter a valid phone number"},
	{Name: "contactPreference", Kind: Enum, Step: 1, Required: true, Values: ContactPreferences, ReqMsg: "please specify your contact preference"},
	{Name: "bestTimeToContact", Kind: String, Step: 1},
	{Name: "referralSource", Kind: Enum, Step: 1, Required: true, Values: ReferralSources, ReqMsg: "please let us know how you found us"},

	{Name: "departureAirport", Kind: String, Step: 2, Required: true, ReqMsg: "please specify your departure airport"},
	{Name: "destination", Kind: String, Step: 2, Required: true, MinLen: 2, ReqMsg: "please specify your desired destination"},
	{Name: "fromDate", Kind: Date, Step: 2, Required: true, ReqMsg: "please specify your travel start date"},
	{Name: "toDate", Kind: Date, Step: 2, Required: true, ReqMsg: "please specify your travel end date"},
	{Name: "flexibleDates", Kind: Bool, Step: 2},
	{Name: "travelReason", Kind: Enum, Step: 2, Required: true, Values: TravelReasons, ReqMsg: "please specify your reason for travel"},
	{Name: "otherTravelReason", Kind: String, Step: 2},

	{Name: "adults", Kind: Int, Step: 3, Required: true, Min: 1, Max: maxTravelers, HasRange: true, ReqMsg: "please specify the number of adults"},
	{Name: "children", Kind: Int, Step: 3, Min: 0, Max: maxTravelers, HasRange: true},
	{Name: "childrenAges", Kind: IntList, Step: 3, Min: 0, Max: maxChildAge, HasRange: true},

	{Name: "hotelRating", Kind: Int, Step: 4, Required: true, Min: 1, Max: 5, HasRange: true, ReqMsg: "please select a hotel rating"},
	{Name: "preferredHotel", Kind: String, Step: 4},
	{Name: "boardBasis", Kind: Enum, Step: 4, Required: true, Values: BoardBases, ReqMsg: "please specify your board basis preference"},
	{Name: "budget", Kind: String, Step: 4, Required: true, ReqMsg: "please specify your budget"},

	{Name: "specialRequests", Kind: String, Step: 5},
	{Name: "additionalInformation", Kind: String, Step: 5},
}

var fieldsByName = func() map[string]Field {
	m := make(map[string]Field, len(fields))
	for _, f := range fields {
		m[f.Name] = f
	}
	return m
}()

// Fields returns the full descriptor list in declaration order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// FieldNames returns the names belonging to one wizard step, in order.
func FieldNames(step int) []string {
	var out []string
	for _, f := range fields {
		if f.Step == step {
			out = append(out, f.Name)
		}
	}
	return out
}

// Lookup returns the descriptor for a field name.
func Lookup(name string) (Field, bool) {
	f, ok := fieldsByName[name]
	return f, ok
}

// record holds typed values parsed out of an untrusted payload.
type record struct {
	str  map[string]string
	num  map[string]int
	bl   map[string]bool
	dt   map[string]time.Time
	list map[string][]int
}

func newRecord() *record {
	return &record{
		str:  map[string]string{},
		num:  map[string]int{},
		bl:   map[string]bool{},
		dt:   map[string]time.Time{},
		list: map[string][]int{},
	}
}

// Validate checks the complete payload against every field and cross-field
// rule. On success it returns the normalized enquiry (defaults applied, dates
// parsed); otherwise FieldErrors names every violated field.
func Validate(payload map[string]any) (models.Enquiry, domain.FieldErrors) {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}

	rec := newRecord()
	errs := domain.FieldErrors{}
	for _, name := range names {
		checkField(fieldsByName[name], payload, rec, errs)
	}
	crossChecks(rec, names, errs)

	if len(errs) > 0 {
		return models.Enquiry{}, errs
	}
	return buildEnquiry(rec), nil
}

// ValidateFields runs the same checks on a subset of fields. Cross-field rules
// fire only when every participating field is in the subset, so per-step wizard
// checks agree with the endpoint for the fields each step owns.
func ValidateFields(payload map[string]any, names ...string) domain.FieldErrors {
	rec := newRecord()
	errs := domain.FieldErrors{}
	for _, name := range names {
		f, ok := fieldsByName[name]
		if !ok {
			continue
		}
		checkField(f, payload, rec, errs)
	}
	crossChecks(rec, names, errs)
	return errs
}

func checkField(f Field, payload map[string]any, rec *record, errs domain.FieldErrors) {
	raw, present := payload[f.Name]
	if !present || isEmpty(raw) {
		if f.Required {
			errs[f.Name] = requiredMessage(f)
		}
		return
	}

	switch f.Kind {
	case String:
		s, ok := coerceString(raw)
		if !ok {
			errs[f.Name] = "must be text"
			return
		}
		if len(s) < f.MinLen {
			errs[f.Name] = fmt.Sprintf("must be at least %d characters", f.MinLen)
			return
		}
		rec.str[f.Name] = s

	case Email:
		s, ok := coerceString(raw)
		if !ok || !emailRe.MatchString(s) {
			errs[f.Name] = "please enter a valid email address"
			return
		}
		rec.str[f.Name] = s

	case Int:
		n, ok := coerceInt(raw)
		if !ok {
			errs[f.Name] = "must be a whole number"
			return
		}
		if f.HasRange && (n < f.Min || n > f.Max) {
			errs[f.Name] = rangeMessage(f)
			return
		}
		rec.num[f.Name] = n

	case Bool:
		b, ok := coerceBool(raw)
		if !ok {
			errs[f.Name] = "must be true or false"
			return
		}
		rec.bl[f.Name] = b

	case Date:
		t, ok := coerceDate(raw)
		if !ok {
			errs[f.Name] = "must be a valid date"
			return
		}
		rec.dt[f.Name] = t

	case Enum:
		s, ok := coerceString(raw)
		if !ok || !contains(f.Values, s) {
			errs[f.Name] = "must be one of: " + strings.Join(f.Values, ", ")
			return
		}
		rec.str[f.Name] = s

	case IntList:
		ages, ok := coerceIntList(raw)
		if !ok {
			errs[f.Name] = "must be a list of whole numbers"
			return
		}
		if f.HasRange {
			for _, n := range ages {
				if n < f.Min || n > f.Max {
					errs[f.Name] = fmt.Sprintf("each age must be between %d and %d", f.Min, f.Max)
					return
				}
			}
		}
		rec.list[f.Name] = ages
	}
}

// crossChecks applies rules spanning multiple fields. Violations are reported
// against every field involved when the rule names more than one.
func crossChecks(rec *record, names []string, errs domain.FieldErrors) {
	in := map[string]bool{}
	for _, n := range names {
		in[n] = true
	}

	if in["fromDate"] && in["toDate"] {
		from, okFrom := rec.dt["fromDate"]
		to, okTo := rec.dt["toDate"]
		if okFrom && okTo && to.Before(from) {
			msg := "end date cannot be before start date"
			errs["fromDate"] = msg
			errs["toDate"] = msg
		}
	}

	if in["travelReason"] && in["otherTravelReason"] {
		if rec.str["travelReason"] == "other" && strings.TrimSpace(rec.str["otherTravelReason"]) == "" {
			if _, already := errs["travelReason"]; !already {
				errs["otherTravelReason"] = "please tell us your reason for travel"
			}
		}
	}

	if in["children"] && in["childrenAges"] {
		if _, bad := errs["children"]; !bad {
			if _, bad := errs["childrenAges"]; !bad {
				children := rec.num["children"]
				ages := rec.list["childrenAges"]
				if children > 0 && len(ages) != children {
					errs["childrenAges"] = "please provide an age for each child"
				}
			}
		}
	}
}

// buildEnquiry applies documented defaults: empty string for absent free text,
// empty list for absent ages, nil for an unspecified preferred hotel.
func buildEnquiry(rec *record) models.Enquiry {
	enq := models.Enquiry{
		Status: models.StatusNew,

		FullName:          rec.str["fullName"],
		Email:             rec.str["email"],
		Phone:             rec.str["phone"],
		ContactPreference: rec.str["contactPreference"],
		BestTimeToContact: rec.str["bestTimeToContact"],
		ReferralSource:    rec.str["referralSource"],

		DepartureAirport:  rec.str["departureAirport"],
		Destination:       rec.str["destination"],
		FromDate:          rec.dt["fromDate"],
		ToDate:            rec.dt["toDate"],
		FlexibleDates:     rec.bl["flexibleDates"],
		TravelReason:      rec.str["travelReason"],
		OtherTravelReason: rec.str["otherTravelReason"],

		Adults:       rec.num["adults"],
		Children:     rec.num["children"],
		ChildrenAges: []int{},

		HotelRating: rec.num["hotelRating"],
		BoardBasis:  rec.str["boardBasis"],
		Budget:      rec.str["budget"],

		SpecialRequests:       rec.str["specialRequests"],
		AdditionalInformation: rec.str["additionalInformation"],
	}

	if ages, ok := rec.list["childrenAges"]; ok {
		enq.ChildrenAges = ages
	}
	if hotel, ok := rec.str["preferredHotel"]; ok {
		enq.PreferredHotel = &hotel
	}
	return enq
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func requiredMessage(f Field) string {
	if f.ReqMsg != "" {
		return f.ReqMsg
	}
	return "is required"
}

func rangeMessage(f Field) string {
	if f.Min > 0 && f.Max >= maxTravelers {
		return fmt.Sprintf("must be at least %d", f.Min)
	}
	return fmt.Sprintf("must be between %d and %d", f.Min, f.Max)
}

func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	default:
		return false
	}
}

func coerceString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(s), true
}

func coerceInt(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		if val != math.Trunc(val) {
			return 0, false
		}
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

func coerceBool(v any) (bool, bool) {
	switch val := v.(type) {
	case bool:
		return val, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err != nil {
			return false, false
		}
		return b, true
	default:
		return false, false
	}
}

func coerceDate(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func coerceIntList(v any) ([]int, bool) {
	switch val := v.(type) {
	case []int:
		out := make([]int, len(val))
		copy(out, val)
		return out, true
	case []any:
		out := make([]int, 0, len(val))
		for _, item := range val {
			n, ok := coerceInt(item)
			if !ok {
				return nil, false
			}
			out = append(out, n)
		}
		return out, true
	default:
		return nil, false
	}
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
