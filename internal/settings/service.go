package settings

import (
	"context"
	"errors"
	"fmt"
)

// Service exposes the settings documents to the rest of the application.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// QuoteSettings returns the stored settings, falling back to defaults when
// nothing has been saved yet.
func (s *Service) QuoteSettings(ctx context.Context) (QuoteSettings, error) {
	var qs QuoteSettings
	err := s.repo.Load(ctx, keyQuoteSettings, &qs)
	if errors.Is(err, ErrNotFound) {
		return DefaultQuoteSettings(), nil
	}
	if err != nil {
		return QuoteSettings{}, fmt.Errorf("load quote settings: %w", err)
	}
	return qs, nil
}

func (s *Service) SaveQuoteSettings(ctx context.Context, qs QuoteSettings) error {
	if qs.Sectors == nil {
		qs.Sectors = []string{}
	}
	return s.repo.Save(ctx, keyQuoteSettings, qs)
}

// CompanyInfo returns the stored company document. ErrNotFound passes through
// so callers can distinguish a never-configured company.
func (s *Service) CompanyInfo(ctx context.Context) (CompanyInfo, error) {
	var info CompanyInfo
	if err := s.repo.Load(ctx, keyCompanyInfo, &info); err != nil {
		return CompanyInfo{}, err
	}
	return info, nil
}

func (s *Service) SaveCompanyInfo(ctx context.Context, info CompanyInfo) error {
	return s.repo.Save(ctx, keyCompanyInfo, info)
}
