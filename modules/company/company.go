package company

import (
	"time"

	"github.com/google/uuid"
)

// Company is a registered organization managed through the portal.
type Company struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	RegistrationNumber string    `json:"registrationNumber"`
	Address            string    `json:"address"`
	Website            string    `json:"website"`
	Notes              string    `json:"notes"`
	CreatedBy          uuid.UUID `json:"createdBy"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
