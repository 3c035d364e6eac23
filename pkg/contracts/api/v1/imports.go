// Package api contains the HTTP contract of the trade-history import service.
// Version v1 represents the current stable API version.
package api

import (
	"github.com/google/uuid"

	"github.com/WayPool/ElysiumBOT-sub001/pkg/contracts/domain"
)

// ImportValidateResponse is returned for every upload that reached the engine,
// whether or not the report is valid.
type ImportValidateResponse struct {
	RunID   uuid.UUID               `json:"run_id"`
	Name    string                  `json:"name"`
	Report  domain.ValidationReport `json:"report"`
	Records []domain.TradeRecord    `json:"records,omitempty"`
}

