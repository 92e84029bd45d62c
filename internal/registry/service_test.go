package registry

import (
	"context"
	"testing"
	"time"

	"bluecarbon-backend/internal/credits"
	"bluecarbon-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRegistryTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Project{}))
	svc := &Service{DB: db, Policy: credits.Policy{CreditsPerHectare: 5}}
	return svc, db
}

func TestCreate_PendingWithDerivedCredits(t *testing.T) {
	svc, _ := setupRegistryTest(t)

	project, err := svc.Create(context.Background(), CreateInput{
		Name:         "Mangrove A",
		Location:     "X",
		AreaHectares: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, project.Status)
	assert.Equal(t, 50.0, project.CreditQuantity)
	assert.Equal(t, 10.0, project.AreaHectares)
	assert.Nil(t, project.TxHash)
	assert.Nil(t, project.MintedAt)
	assert.NotEqual(t, uuid.Nil, project.ProjectID)
}

func TestCreate_RequiresNameAndLocation(t *testing.T) {
	svc, db := setupRegistryTest(t)

	_, err := svc.Create(context.Background(), CreateInput{Name: "", Location: "X", AreaHectares: 10})
	assert.ErrorIs(t, err, ErrNameLocationRequired)

	_, err = svc.Create(context.Background(), CreateInput{Name: "A", Location: "   ", AreaHectares: 10})
	assert.ErrorIs(t, err, ErrNameLocationRequired)

	var count int64
	require.NoError(t, db.Model(&domain.Project{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCreate_RejectsNegativeArea(t *testing.T) {
	svc, db := setupRegistryTest(t)

	_, err := svc.Create(context.Background(), CreateInput{Name: "A", Location: "X", AreaHectares: -1})
	assert.ErrorIs(t, err, ErrInvalidArea)

	var count int64
	require.NoError(t, db.Model(&domain.Project{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestGet_NotFound(t *testing.T) {
	svc, _ := setupRegistryTest(t)

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestList_NewestFirstAndStatusFilter(t *testing.T) {
	svc, _ := setupRegistryTest(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, CreateInput{Name: "First", Location: "X", AreaHectares: 1})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := svc.Create(ctx, CreateInput{Name: "Second", Location: "Y", AreaHectares: 2})
	require.NoError(t, err)

	all, err := svc.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ProjectID, all[0].ProjectID)
	assert.Equal(t, first.ProjectID, all[1].ProjectID)

	_, err = svc.TransitionToApproved(ctx, first.ProjectID, domain.Proof{TransactionID: "0xabc", MintedAt: time.Now().UTC()})
	require.NoError(t, err)

	approved := domain.StatusApproved
	got, err := svc.List(ctx, &approved)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, first.ProjectID, got[0].ProjectID)

	pending := domain.StatusPending
	got, err = svc.List(ctx, &pending)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, second.ProjectID, got[0].ProjectID)
}

func TestTransitionToApproved_BindsProofOnce(t *testing.T) {
	svc, _ := setupRegistryTest(t)
	ctx := context.Background()

	project, err := svc.Create(ctx, CreateInput{Name: "A", Location: "X", AreaHectares: 4})
	require.NoError(t, err)

	mintedAt := time.Now().UTC().Truncate(time.Second)
	approved, err := svc.TransitionToApproved(ctx, project.ProjectID, domain.Proof{TransactionID: "0xdeadbeef", MintedAt: mintedAt})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, approved.Status)
	require.NotNil(t, approved.TxHash)
	assert.Equal(t, "0xdeadbeef", *approved.TxHash)
	require.NotNil(t, approved.MintedAt)

	// Second transition must fail and leave the first proof untouched.
	_, err = svc.TransitionToApproved(ctx, project.ProjectID, domain.Proof{TransactionID: "0xother", MintedAt: time.Now().UTC()})
	assert.ErrorIs(t, err, ErrAlreadyApproved)

	reloaded, err := svc.Get(ctx, project.ProjectID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.TxHash)
	assert.Equal(t, "0xdeadbeef", *reloaded.TxHash)
}

func TestTransitionToApproved_UnknownID(t *testing.T) {
	svc, _ := setupRegistryTest(t)

	_, err := svc.TransitionToApproved(context.Background(), uuid.New(), domain.Proof{TransactionID: "0x1", MintedAt: time.Now().UTC()})
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

// Credit quantity is computed once at creation; changing the policy afterwards
// must not affect stored records.
func TestCreate_CreditQuantityNotRecomputed(t *testing.T) {
	svc, _ := setupRegistryTest(t)
	ctx := context.Background()

	project, err := svc.Create(ctx, CreateInput{Name: "A", Location: "X", AreaHectares: 10})
	require.NoError(t, err)
	assert.Equal(t, 50.0, project.CreditQuantity)

	svc.Policy = credits.Policy{CreditsPerHectare: 100}
	reloaded, err := svc.Get(ctx, project.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, reloaded.CreditQuantity)
}
