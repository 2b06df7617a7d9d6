package clients

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service implements the client registry use cases.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req CreateClientRequest) (*Client, error) {
	client := Client{
		ID:                uuid.New(),
		Kind:              req.Kind,
		Name:              req.Name,
		CPF:               req.CPF,
		CNPJ:              req.CNPJ,
		StateRegistration: req.StateRegistration,
		Address:           req.Address,
		City:              req.City,
		ZipCode:           req.ZipCode,
		Phone:             req.Phone,
		Email:             req.Email,
	}
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return s.repo.Get(ctx, client.ID)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateClientRequest) (*Client, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}

	if req.Kind != nil {
		existing.Kind = *req.Kind
	}
	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.CPF != nil {
		existing.CPF = req.CPF
	}
	if req.CNPJ != nil {
		existing.CNPJ = req.CNPJ
	}
	if req.StateRegistration != nil {
		existing.StateRegistration = req.StateRegistration
	}
	if req.Address != nil {
		existing.Address = *req.Address
	}
	if req.City != nil {
		existing.City = *req.City
	}
	if req.ZipCode != nil {
		existing.ZipCode = *req.ZipCode
	}
	if req.Phone != nil {
		existing.Phone = *req.Phone
	}
	if req.Email != nil {
		existing.Email = req.Email
	}

	if err := s.repo.Update(ctx, *existing); err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Client, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListClientsRequest) ([]Client, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
