package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"japan-address-api/internal/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// ErrInvalidPage is returned for a page or limit below 1
var ErrInvalidPage = errors.New("page and limit must be positive integers")

// AddressRepository interface for dependency injection
type AddressRepository interface {
	ListAddresses(ctx context.Context, prefCode string, limit, offset int) ([]models.Address, error)
	CountAddresses(ctx context.Context, prefCode string) (int64, error)
}

// AddressQuery selects one page of addresses
type AddressQuery struct {
	PrefCode string
	CityCode string
	Text     string
	Page     int
	Limit    int
}

// AddressPage is one page of browse results
type AddressPage struct {
	Count      int64            `json:"count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"totalPages"`
	Addresses  []models.Address `json:"addresses"`
}

// AddressService browses stored addresses
type AddressService struct {
	repo     AddressRepository
	maxLimit int
}

// NewAddressService creates a new address service. Limits above maxLimit are clamped.
func NewAddressService(repo AddressRepository, maxLimit int) *AddressService {
	return &AddressService{repo: repo, maxLimit: maxLimit}
}

// ListAddresses loads one page filtered by prefecture in storage, then narrows
// it by city code and free text in memory.
func (s *AddressService) ListAddresses(ctx context.Context, q AddressQuery) (*AddressPage, error) {
	if q.Page < 1 || q.Limit < 1 {
		return nil, ErrInvalidPage
	}
	if s.maxLimit > 0 && q.Limit > s.maxLimit {
		q.Limit = s.maxLimit
	}

	addresses, err := s.repo.ListAddresses(ctx, q.PrefCode, q.Limit, (q.Page-1)*q.Limit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list addresses: %w", err)
	}

	if q.CityCode != "" {
		addresses = filter(addresses, func(a models.Address) bool { return a.CityCode == q.CityCode })
	}

	if text := normalizeText(q.Text); text != "" {
		addresses = filter(addresses, func(a models.Address) bool {
			return strings.Contains(normalizeText(a.PrefName), text) ||
				strings.Contains(normalizeText(a.CityName), text) ||
				strings.Contains(normalizeText(a.TownName), text)
		})
	}

	count, err := s.repo.CountAddresses(ctx, q.PrefCode)
	if err != nil {
		return nil, fmt.Errorf("service: failed to count addresses: %w", err)
	}

	return &AddressPage{
		Count:      count,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: int((count + int64(q.Limit) - 1) / int64(q.Limit)),
		Addresses:  addresses,
	}, nil
}

func filter(addresses []models.Address, keep func(models.Address) bool) []models.Address {
	out := make([]models.Address, 0, len(addresses))
	for _, a := range addresses {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}

// normalizeText folds width variants and case so "ＴＯＫＹＯ" matches "tokyo".
func normalizeText(s string) string {
	return cases.Fold().String(norm.NFKC.String(strings.TrimSpace(s)))
}
