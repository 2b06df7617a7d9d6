package clients

type CreateClientRequest struct {
	Kind              ClientKind `json:"kind" validate:"required,oneof=physical juridical"`
	Name              string     `json:"name" validate:"required,max=200"`
	CPF               *string    `json:"cpf,omitempty" validate:"omitempty,max=20"`
	CNPJ              *string    `json:"cnpj,omitempty" validate:"omitempty,max=20"`
	StateRegistration *string    `json:"state_registration,omitempty" validate:"omitempty,max=40"`
	Address           string     `json:"address" validate:"max=300"`
	City              string     `json:"city" validate:"max=120"`
	ZipCode           string     `json:"zip_code" validate:"max=20"`
	Phone             string     `json:"phone" validate:"required,max=30"`
	Email             *string    `json:"email,omitempty" validate:"omitempty,email"`
}

type UpdateClientRequest struct {
	Kind              *ClientKind `json:"kind,omitempty" validate:"omitempty,oneof=physical juridical"`
	Name              *string     `json:"name,omitempty" validate:"omitempty,max=200"`
	CPF               *string     `json:"cpf,omitempty" validate:"omitempty,max=20"`
	CNPJ              *string     `json:"cnpj,omitempty" validate:"omitempty,max=20"`
	StateRegistration *string     `json:"state_registration,omitempty" validate:"omitempty,max=40"`
	Address           *string     `json:"address,omitempty" validate:"omitempty,max=300"`
	City              *string     `json:"city,omitempty" validate:"omitempty,max=120"`
	ZipCode           *string     `json:"zip_code,omitempty" validate:"omitempty,max=20"`
	Phone             *string     `json:"phone,omitempty" validate:"omitempty,max=30"`
	Email             *string     `json:"email,omitempty" validate:"omitempty,email"`
}

type ListClientsRequest struct {
	Search *string `json:"search,omitempty"`
	Limit  int     `json:"limit" validate:"gte=0,lte=1000"`
	Offset int     `json:"offset" validate:"gte=0"`
}
