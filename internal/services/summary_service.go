package services

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// SummaryService renders a printable one-page PDF of an enquiry for the sales
// team.
type SummaryService struct {
	Repo      repositories.EnquiryRepository
	RequestID string
	Loader    func(context.Context, int64) (models.Enquiry, error)
}

func (s SummaryService) GenerateSummary(ctx context.Context, enquiryID int64) ([]byte, string, error) {
	enq, err := s.loadEnquiry(ctx, enquiryID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "summary", "generate_pdf", fmt.Sprintf("enquiry_id=%d", enquiryID))
	return buildSummaryPDF(enq)
}

func (s SummaryService) loadEnquiry(ctx context.Context, id int64) (models.Enquiry, error) {
	if s.Loader != nil {
		return s.Loader(ctx, id)
	}
	return s.Repo.GetByID(ctx, id)
}

func buildSummaryPDF(enq models.Enquiry) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Trip Request Summary", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TRIP REQUEST SUMMARY")
	pdf.Ln(12)

	preferredHotel := "-"
	if enq.PreferredHotel != nil && strings.TrimSpace(*enq.PreferredHotel) != "" {
		preferredHotel = *enq.PreferredHotel
	}
	reason := enq.TravelReason
	if reason == "other" && strings.TrimSpace(enq.OtherTravelReason) != "" {
		reason = "other (" + enq.OtherTravelReason + ")"
	}
	flexible := "no"
	if enq.FlexibleDates {
		flexible = "yes"
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Reference      : ENQ-%d", enq.ID),
		fmt.Sprintf("Received       : %s", enq.CreatedAt.Format("2006-01-02 15:04")),
		fmt.Sprintf("Status         : %s", safe(enq.Status, "-")),
		fmt.Sprintf("Name           : %s", safe(enq.FullName, "-")),
		fmt.Sprintf("Email          : %s", safe(enq.Email, "-")),
		fmt.Sprintf("Phone          : %s (%s, %s)", safe(enq.Phone, "-"), safe(enq.ContactPreference, "-"), safe(enq.BestTimeToContact, "any time")),
		fmt.Sprintf("Destination    : %s", safe(enq.Destination, "-")),
		fmt.Sprintf("Departing from : %s", safe(enq.DepartureAirport, "-")),
		fmt.Sprintf("Dates          : %s - %s (flexible: %s)", enq.FromDate.Format("2006-01-02"), enq.ToDate.Format("2006-01-02"), flexible),
		fmt.Sprintf("Reason         : %s", safe(reason, "-")),
		fmt.Sprintf("Party          : %d adults, %d children %s", enq.Adults, enq.Children, agesLabel(enq.ChildrenAges)),
		fmt.Sprintf("Hotel          : %d star, %s, %s", enq.HotelRating, preferredHotel, safe(enq.BoardBasis, "-")),
		fmt.Sprintf("Budget         : %s", safe(enq.Budget, "-")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	if strings.TrimSpace(enq.SpecialRequests) != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Special requests:")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, enq.SpecialRequests, "", "", false)
	}
	if strings.TrimSpace(enq.AdditionalInformation) != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Additional information:")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, enq.AdditionalInformation, "", "", false)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Generated "+time.Now().Format("2006-01-02 15:04")+" for internal use by the sales team.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ENQUIRY_%d_%s.pdf", enq.ID, safeFilenamePart(enq.FullName))
	return buf.Bytes(), filename, nil
}

func agesLabel(ages []int) string {
	if len(ages) == 0 {
		return ""
	}
	parts := make([]string, len(ages))
	for i, a := range ages {
		parts[i] = strconv.Itoa(a)
	}
	return "(ages " + strings.Join(parts, ", ") + ")"
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "enquiry"
	}
	return b.String()
}
