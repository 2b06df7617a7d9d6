package clients

import (
	"time"

	"github.com/google/uuid"
)

// ClientKind distinguishes physical persons (CPF) from juridical ones (CNPJ).
type ClientKind string

const (
	KindPhysical  ClientKind = "physical"
	KindJuridical ClientKind = "juridical"
)

// Client is a registered customer of the business.
type Client struct {
	ID                uuid.UUID  `json:"id"`
	Kind              ClientKind `json:"kind"`
	Name              string     `json:"name"`
	CPF               *string    `json:"cpf,omitempty"`
	CNPJ              *string    `json:"cnpj,omitempty"`
	StateRegistration *string    `json:"state_registration,omitempty"`
	Address           string     `json:"address"`
	City              string     `json:"city"`
	ZipCode           string     `json:"zip_code"`
	Phone             string     `json:"phone"`
	Email             *string    `json:"email,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
