package stats

import (
	"context"

	"bluecarbon-backend/internal/domain"

	"gorm.io/gorm"
)

// Service derives read-only aggregates from the project store. Nothing here
// is cached: every call recomputes from the current rows, so totals can never
// drift from the registry.
type Service struct {
	DB *gorm.DB
}

// Summary is the dashboard aggregate.
type Summary struct {
	TotalIssuedCredits float64 `json:"total_issued_credits"`
	ApprovedCount      int64   `json:"approved_count"`
	PendingCount       int64   `json:"pending_count"`
	TotalAreaHectares  float64 `json:"total_area_hectares"`
}

// TotalIssuedCredits sums credit_quantity over approved projects only.
func (s *Service) TotalIssuedCredits(ctx context.Context) (float64, error) {
	var total float64
	err := s.DB.WithContext(ctx).Model(&domain.Project{}).
		Where("status = ?", domain.StatusApproved).
		Select("COALESCE(SUM(credit_quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// GetSummary returns issued-credit totals and per-status counts.
func (s *Service) GetSummary(ctx context.Context) (*Summary, error) {
	out := &Summary{}

	total, err := s.TotalIssuedCredits(ctx)
	if err != nil {
		return nil, err
	}
	out.TotalIssuedCredits = total

	if err := s.DB.WithContext(ctx).Model(&domain.Project{}).
		Where("status = ?", domain.StatusApproved).
		Count(&out.ApprovedCount).Error; err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&domain.Project{}).
		Where("status = ?", domain.StatusPending).
		Count(&out.PendingCount).Error; err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&domain.Project{}).
		Select("COALESCE(SUM(area_hectares), 0)").
		Scan(&out.TotalAreaHectares).Error; err != nil {
		return nil, err
	}
	return out, nil
}
