package rest

import (
	"github.com/clearcomply/contract-compliance-backend/internal/infrastructure/repository"
)

// AnalyzeRequest is the contract analysis request body. A non-empty
// Regulations list bypasses the applicability resolver.
type AnalyzeRequest struct {
	ContractText string   `json:"contract_text" validate:"required,min=1"`
	Regulations  []string `json:"regulations,omitempty" validate:"omitempty,dive,min=2,max=32"`
	Jurisdiction string   `json:"jurisdiction,omitempty" validate:"omitempty,min=2,max=16"`
	Industry     string   `json:"industry,omitempty" validate:"omitempty,min=2,max=32"`
}

// HistoryResponse wraps an analysis listing.
type HistoryResponse struct {
	History []repository.AnalysisSummary `json:"history"`
	Total   int                          `json:"total"`
	Limit   int                          `json:"limit"`
	Offset  int                          `json:"offset"`
}

// SearchResponse wraps full-text search results.
type SearchResponse struct {
	Query      string                       `json:"query"`
	Results    []repository.AnalysisSummary `json:"results"`
	TotalFound int                          `json:"total_found"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// HealthResponse reports service health per dependency.
type HealthResponse struct {
	Status   string            `json:"status"`
	Version  string            `json:"version"`
	Services map[string]string `json:"services"`
}
