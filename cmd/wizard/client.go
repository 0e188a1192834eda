package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"backend/internal/domain"
	"backend/internal/domain/models"
)

// apiClient submits trip requests to the intake endpoint. It satisfies
// wizard.Submitter.
type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *apiClient) Submit(ctx context.Context, payload map[string]any) (models.Enquiry, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return models.Enquiry{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/trip-requests", bytes.NewReader(body))
	if err != nil {
		return models.Enquiry{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return models.Enquiry{}, fmt.Errorf("could not reach the server: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		var stored models.Enquiry
		if err := json.NewDecoder(resp.Body).Decode(&stored); err != nil {
			return models.Enquiry{}, err
		}
		return stored, nil

	case http.StatusBadRequest:
		var reject struct {
			Error  string            `json:"error"`
			Fields map[string]string `json:"fields"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&reject); err == nil && len(reject.Fields) > 0 {
			return models.Enquiry{}, domain.FieldErrors(reject.Fields)
		}
		return models.Enquiry{}, fmt.Errorf("request rejected: %s", reject.Error)

	default:
		return models.Enquiry{}, fmt.Errorf("server error (HTTP %d), please try again", resp.StatusCode)
	}
}
