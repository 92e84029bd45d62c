package issuance

import (
	"context"
	"sync"
	"time"

	"bluecarbon-backend/internal/domain"
	"bluecarbon-backend/internal/registry"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service executes the approval workflow: the single pending -> approved
// transition and the one external side effect (mint).
type Service struct {
	Registry *registry.Service
	Minter   Minter

	locks sync.Map // project id -> *sync.Mutex
}

func (s *Service) lockFor(id uuid.UUID) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Approve loads the project, mints its credit quantity on the ledger and
// binds the resulting proof. Steps are serialized per project id, so of any
// set of concurrent calls for the same id exactly one reaches the minter;
// the rest observe the approved status and fail with ErrInvalidState. A mint
// failure leaves the project pending with no partial state, and the whole
// call is safe to retry.
func (s *Service) Approve(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	project, err := s.Registry.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.Status != domain.StatusPending {
		return nil, ErrInvalidState
	}

	txID, err := s.Minter.Mint(ctx, id, project.CreditQuantity)
	if err != nil {
		log.Warn().Str("project_id", id.String()).Err(err).Msg("Mint failed; project stays pending")
		return nil, err
	}

	proof := domain.Proof{
		TransactionID: txID,
		MintedAt:      time.Now().UTC(),
	}
	approved, err := s.Registry.TransitionToApproved(ctx, id, proof)
	if err != nil {
		return nil, err
	}
	log.Info().Str("project_id", id.String()).Str("tx_hash", txID).
		Float64("credit_quantity", approved.CreditQuantity).Msg("Project approved and credits minted")
	return approved, nil
}
