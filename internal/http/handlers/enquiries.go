package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strconv"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/trip-requests
// The payload is untrusted: it is re-validated against the shared schema and
// rejected wholesale on any violation. Nothing is written unless every field
// passes.
func CreateTripRequest(c *gin.Context) {
	var payload map[string]any
	if !BindJSONOrError(c, &payload) {
		return
	}

	svc := services.IntakeService{
		Repo:      repositories.EnquiryRepository{DB: intconfig.DB},
		RequestID: requestID(c),
	}
	stored, err := svc.Submit(c.Request.Context(), payload)
	if err != nil {
		if !domain.IsValidation(err) {
			log.Println("CreateTripRequest insert error:", err)
		}
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, stored)
}

// GET /api/enquiries (admin only, gated by middleware.RequireAdmin)
func GetEnquiries(c *gin.Context) {
	repo := repositories.EnquiryRepository{DB: intconfig.DB}
	enquiries, err := repo.List(c.Request.Context())
	if err != nil {
		log.Println("GetEnquiries query error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch enquiries"})
		return
	}
	c.JSON(http.StatusOK, enquiries)
}

// GET /api/enquiries/:id (admin only)
func GetEnquiryByID(c *gin.Context) {
	id, ok := enquiryIDParam(c)
	if !ok {
		return
	}

	repo := repositories.EnquiryRepository{DB: intconfig.DB}
	enq, err := repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondEnquiryLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, enq)
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

// PUT /api/enquiries/:id/status (admin only)
// The only mutation an enquiry sees after intake.
func UpdateEnquiryStatus(c *gin.Context) {
	id, ok := enquiryIDParam(c)
	if !ok {
		return
	}

	var req statusUpdateRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !models.IsEnquiryStatus(req.Status) {
		RespondDomainError(c, domain.ValidationError{Field: "status", Msg: "must be one of: new, contacted, closed"})
		return
	}

	repo := repositories.EnquiryRepository{DB: intconfig.DB}
	if _, err := repo.GetByID(c.Request.Context(), id); err != nil {
		respondEnquiryLookupError(c, err)
		return
	}
	enq, err := repo.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		log.Println("UpdateEnquiryStatus update error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status"})
		return
	}
	c.JSON(http.StatusOK, enq)
}

// GET /api/enquiries/:id/summary (admin only, inline PDF)
func GetEnquirySummaryPDF(c *gin.Context) {
	id, ok := enquiryIDParam(c)
	if !ok {
		return
	}

	svc := services.SummaryService{
		Repo:      repositories.EnquiryRepository{DB: intconfig.DB},
		RequestID: requestID(c),
	}
	pdfBytes, filename, err := svc.GenerateSummary(c.Request.Context(), id)
	if err != nil {
		respondEnquiryLookupError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// respondEnquiryLookupError maps a missing row to 404; anything else is a
// storage failure and must not masquerade as not-found.
func respondEnquiryLookupError(c *gin.Context, err error) {
	if errors.Is(err, sql.ErrNoRows) {
		RespondDomainError(c, domain.NotFoundError{Resource: "enquiry", Err: err})
		return
	}
	log.Println("enquiry lookup error:", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch enquiry"})
}

func enquiryIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid enquiry id"})
		return 0, false
	}
	return id, true
}
