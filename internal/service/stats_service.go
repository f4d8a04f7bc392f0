package service

import (
	"context"
	"errors"
	"fmt"

	"japan-address-api/internal/models"
)

// ErrUnknownPrefecture is returned for a code outside the prefecture catalog
var ErrUnknownPrefecture = errors.New("unknown prefecture code")

// StatsRepository interface for dependency injection
type StatsRepository interface {
	CountAddresses(ctx context.Context, prefCode string) (int64, error)
	CountByPrefecture(ctx context.Context) ([]models.PrefectureCount, error)
	CountByCity(ctx context.Context, prefCode string) ([]models.CityCount, error)
}

// Stats summarizes the stored dataset
type Stats struct {
	TotalCount       int64                    `json:"totalCount"`
	PrefectureCounts []models.PrefectureCount `json:"prefectureCounts"`
}

// PrefectureStats breaks one prefecture down by city
type PrefectureStats struct {
	PrefCode   string             `json:"prefCode"`
	CityCounts []models.CityCount `json:"cityCounts"`
}

// StatsService aggregates address counts
type StatsService struct {
	repo StatsRepository
}

// NewStatsService creates a new stats service
func NewStatsService(repo StatsRepository) *StatsService {
	return &StatsService{repo: repo}
}

// Summary returns the total count and the per-prefecture counts
func (s *StatsService) Summary(ctx context.Context) (*Stats, error) {
	total, err := s.repo.CountAddresses(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("service: failed to count addresses: %w", err)
	}

	counts, err := s.repo.CountByPrefecture(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to count by prefecture: %w", err)
	}
	if counts == nil {
		counts = []models.PrefectureCount{}
	}

	return &Stats{TotalCount: total, PrefectureCounts: counts}, nil
}

// Prefecture returns per-city counts for one catalog prefecture
func (s *StatsService) Prefecture(ctx context.Context, prefCode string) (*PrefectureStats, error) {
	if _, ok := models.FindPrefecture(prefCode); !ok {
		return nil, ErrUnknownPrefecture
	}

	counts, err := s.repo.CountByCity(ctx, prefCode)
	if err != nil {
		return nil, fmt.Errorf("service: failed to count by city: %w", err)
	}
	if counts == nil {
		counts = []models.CityCount{}
	}

	return &PrefectureStats{PrefCode: prefCode, CityCounts: counts}, nil
}
