package models

import "time"

// Enquiry is a tailor-your-trip request submitted by a prospective traveler.
// ID and CreatedAt are assigned by the database at insert time and are never
// accepted from clients. Status is mutated only by admin action.
type Enquiry struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Status    string    `json:"status"`

	FullName          string `json:"fullName"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	ContactPreference string `json:"contactPreference"`
	BestTimeToContact string `json:"bestTimeToContact"`
	ReferralSource    string `json:"referralSource"`

	DepartureAirport  string    `json:"departureAirport"`
	Destination       string    `json:"destination"`
	FromDate          time.Time `json:"fromDate"`
	ToDate            time.Time `json:"toDate"`
	FlexibleDates     bool      `json:"flexibleDates"`
	TravelReason      string    `json:"travelReason"`
	OtherTravelReason string    `json:"otherTravelReason"`

	Adults       int   `json:"adults"`
	Children     int   `json:"children"`
	ChildrenAges []int `json:"childrenAges"`

	HotelRating    int     `json:"hotelRating"`
	PreferredHotel *string `json:"preferredHotel"`
	BoardBasis     string  `json:"boardBasis"`
	Budget         string  `json:"budget"`

	SpecialRequests       string `json:"specialRequests"`
	AdditionalInformation string `json:"additionalInformation"`
}

// Enquiry lifecycle statuses.
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusClosed    = "closed"
)

var EnquiryStatuses = []string{StatusNew, StatusContacted, StatusClosed}

func IsEnquiryStatus(s string) bool {
	for _, v := range EnquiryStatuses {
		if v == s {
			return true
		}
	}
	return false
}
