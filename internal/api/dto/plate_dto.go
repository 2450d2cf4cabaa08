package dto

import (
	"time"

	"github.com/iludo/profile-service/internal/domain"
)

// RegisterPlateRequest carries a plate registration.
type RegisterPlateRequest struct {
	Plate     string `json:"plate" validate:"required"`
	Expiry    string `json:"expiry" validate:"omitempty,datetime=2006-01-02"`
	Temporary bool   `json:"temporary"`
	Country   string `json:"country" validate:"required"`
}

// PlateResponse mirrors an active plate row.
type PlateResponse struct {
	ID        string    `json:"id"`
	Value     string    `json:"value"`
	Expiry    *string   `json:"expiry"`
	Temporary bool      `json:"temporary"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewPlateResponse converts the domain record.
func NewPlateResponse(plate *domain.Plate) PlateResponse {
	out := PlateResponse{
		ID:        plate.ID,
		Value:     plate.Value,
		Temporary: plate.Temporary,
		Country:   plate.Country,
		CreatedAt: plate.CreatedAt,
	}
	if plate.Expiry != nil {
		expiry := plate.Expiry.Format("2006-01-02")
		out.Expiry = &expiry
	}
	return out
}
