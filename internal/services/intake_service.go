package services

import (
	"context"
	"fmt"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/schema"
	"backend/internal/utils"
)

// IntakeService turns an untrusted payload into a stored enquiry: schema
// validation, normalization, then exactly one insert. Validation failure never
// reaches the repository, so acceptance is all-or-nothing.
type IntakeService struct {
	Repo      repositories.EnquiryRepository
	RequestID string
}

func (s IntakeService) Submit(ctx context.Context, payload map[string]any) (models.Enquiry, error) {
	enq, ferrs := schema.Validate(payload)
	if len(ferrs) > 0 {
		return models.Enquiry{}, ferrs
	}

	utils.LogEvent(s.RequestID, "intake", "submit", fmt.Sprintf("destination=%s adults=%d children=%d", enq.Destination, enq.Adults, enq.Children))

	stored, err := s.Repo.Insert(ctx, enq)
	if err != nil {
		return models.Enquiry{}, domain.InternalError{Msg: "failed to store enquiry", Err: err}
	}
	return stored, nil
}
