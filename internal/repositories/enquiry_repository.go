package repositories

import (
	"context"
	"database/sql"
	"encoding/json"

	"backend/internal/domain/models"
)

// EnquiryRepository wraps DB access for the enquiries table. Inserts are a
// single atomic statement; id and created_at come from the database.
type EnquiryRepository struct {
	DB *sql.DB
}

const enquiryColumns = `
	id, created_at, status,
	full_name, email, phone, contact_preference, best_time_to_contact, referral_source,
	departure_airport, destination, from_date, to_date, flexible_dates, travel_reason, other_travel_reason,
	adults, children, children_ages,
	hotel_rating, preferred_hotel, board_basis, budget,
	special_requests, additional_information`

// Insert stores one enquiry and returns the stored row including the generated
// id and creation timestamp.
func (r EnquiryRepository) Insert(ctx context.Context, enq models.Enquiry) (models.Enquiry, error) {
	ages, err := json.Marshal(enq.ChildrenAges)
	if err != nil {
		return models.Enquiry{}, err
	}

	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO enquiries (
		  status,
		  full_name, email, phone, contact_preference, best_time_to_contact, referral_source,
		  departure_airport, destination, from_date, to_date, flexible_dates, travel_reason, other_travel_reason,
		  adults, children, children_ages,
		  hotel_rating, preferred_hotel, board_basis, budget,
		  special_requests, additional_information,
		  created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`,
		enq.Status,
		enq.FullName, enq.Email, enq.Phone, enq.ContactPreference, enq.BestTimeToContact, enq.ReferralSource,
		enq.DepartureAirport, enq.Destination, enq.FromDate, enq.ToDate, enq.FlexibleDates, enq.TravelReason, enq.OtherTravelReason,
		enq.Adults, enq.Children, string(ages),
		enq.HotelRating, nullableString(enq.PreferredHotel), enq.BoardBasis, enq.Budget,
		enq.SpecialRequests, enq.AdditionalInformation,
	)
	if err != nil {
		return models.Enquiry{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Enquiry{}, err
	}
	return r.GetByID(ctx, id)
}

// GetByID loads a single stored enquiry.
func (r EnquiryRepository) GetByID(ctx context.Context, id int64) (models.Enquiry, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+enquiryColumns+` FROM enquiries WHERE id = ?`, id)
	return scanEnquiry(row)
}

// List returns every stored enquiry, newest first. No rows is an empty slice,
// not an error.
func (r EnquiryRepository) List(ctx context.Context) ([]models.Enquiry, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+enquiryColumns+` FROM enquiries ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Enquiry{}
	for rows.Next() {
		enq, err := scanEnquiry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, enq)
	}
	return out, rows.Err()
}

// UpdateStatus moves an enquiry through its lifecycle (new/contacted/closed).
// The intake path never calls this.
func (r EnquiryRepository) UpdateStatus(ctx context.Context, id int64, status string) (models.Enquiry, error) {
	if _, err := r.DB.ExecContext(ctx, `UPDATE enquiries SET status = ? WHERE id = ?`, status, id); err != nil {
		return models.Enquiry{}, err
	}
	return r.GetByID(ctx, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEnquiry(row rowScanner) (models.Enquiry, error) {
	var (
		enq       models.Enquiry
		agesJSON  sql.NullString
		preferred sql.NullString
		bestTime  sql.NullString
		otherWhy  sql.NullString
		special   sql.NullString
		addInfo   sql.NullString
	)
	err := row.Scan(
		&enq.ID, &enq.CreatedAt, &enq.Status,
		&enq.FullName, &enq.Email, &enq.Phone, &enq.ContactPreference, &bestTime, &enq.ReferralSource,
		&enq.DepartureAirport, &enq.Destination, &enq.FromDate, &enq.ToDate, &enq.FlexibleDates, &enq.TravelReason, &otherWhy,
		&enq.Adults, &enq.Children, &agesJSON,
		&enq.HotelRating, &preferred, &enq.BoardBasis, &enq.Budget,
		&special, &addInfo,
	)
	if err != nil {
		return models.Enquiry{}, err
	}

	enq.BestTimeToContact = bestTime.String
	enq.OtherTravelReason = otherWhy.String
	enq.SpecialRequests = special.String
	enq.AdditionalInformation = addInfo.String
	if preferred.Valid {
		v := preferred.String
		enq.PreferredHotel = &v
	}

	enq.ChildrenAges = []int{}
	if agesJSON.Valid && agesJSON.String != "" {
		if err := json.Unmarshal([]byte(agesJSON.String), &enq.ChildrenAges); err != nil {
			return models.Enquiry{}, err
		}
		if enq.ChildrenAges == nil {
			enq.ChildrenAges = []int{}
		}
	}
	return enq, nil
}

func nullableString(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
