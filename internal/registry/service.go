package registry

import (
	"context"
	"strings"

	"bluecarbon-backend/internal/credits"
	"bluecarbon-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service owns all Project records: identity allocation, storage and the
// pending -> approved state machine. It is the only writer of the Projects table.
type Service struct {
	DB     *gorm.DB
	Policy credits.Policy
}

// CreateInput carries the draft fields handed over by evidence intake.
type CreateInput struct {
	Name          string
	Location      string
	AreaHectares  float64
	AnalysisNotes *string
	ImageRef      *string
	AnalysisRaw   datatypes.JSON
}

// Create validates the draft, derives the credit quantity from the policy and
// persists a new pending project. This is the only way a project comes into
// existence.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Project, error) {
	name := strings.TrimSpace(in.Name)
	location := strings.TrimSpace(in.Location)
	if name == "" || location == "" {
		return nil, ErrNameLocationRequired
	}

	quantity, err := s.Policy.ComputeCredits(in.AreaHectares)
	if err != nil {
		return nil, ErrInvalidArea
	}

	project := domain.Project{
		ProjectID:      uuid.New(),
		Name:           name,
		Location:       location,
		AreaHectares:   in.AreaHectares,
		CreditQuantity: quantity,
		Status:         domain.StatusPending,
		AnalysisNotes:  in.AnalysisNotes,
		ImageRef:       in.ImageRef,
		AnalysisRaw:    in.AnalysisRaw,
	}
	if err := s.DB.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Get returns a project by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	if err := s.DB.WithContext(ctx).Where("project_id = ?", id).First(&project).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

// List returns projects most-recently-created first, optionally filtered by status.
func (s *Service) List(ctx context.Context, status *string) ([]domain.Project, error) {
	q := s.DB.WithContext(ctx).Order("created_at DESC, project_id")
	if status != nil && *status != "" {
		q = q.Where("status = ?", *status)
	}
	var projects []domain.Project
	if err := q.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// TransitionToApproved flips a pending project to approved and binds the proof,
// atomically. The status predicate in the UPDATE is the commit-time idempotency
// guard: a second call for the same id matches zero rows and fails with
// ErrAlreadyApproved, leaving the first proof untouched.
func (s *Service) TransitionToApproved(ctx context.Context, id uuid.UUID, proof domain.Proof) (*domain.Project, error) {
	var out domain.Project

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Project{}).
			Where("project_id = ? AND status = ?", id, domain.StatusPending).
			Updates(map[string]interface{}{
				"status":    domain.StatusApproved,
				"tx_hash":   proof.TransactionID,
				"minted_at": proof.MintedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var existing domain.Project
			if err := tx.Where("project_id = ?", id).First(&existing).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return ErrProjectNotFound
				}
				return err
			}
			return ErrAlreadyApproved
		}
		return tx.Where("project_id = ?", id).First(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
