package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/alpengrip/cruxsync/internal/models"
)

// GymRepository stores the locally cached gym records. Gyms are the root of
// the cache: a gym's spraywalls and boulders are scoped under it.
type GymRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Gym, error)
	List(ctx context.Context) ([]*models.Gym, error)
	// Upsert writes a single gym as given, including its local-only
	// fields; callers merge the pin state before calling.
	Upsert(ctx context.Context, gym *models.Gym) error
	// ApplyReconcile deletes then bulk-upserts in one transaction.
	// Deletions cascade through spraywalls, boulders and holds; the
	// conflict update never touches an existing row's pin.
	ApplyReconcile(ctx context.Context, deleteIDs []uuid.UUID, upserts []models.Gym) error
	SetPinned(ctx context.Context, id uuid.UUID, pinned bool) error
	TouchLastAccessed(ctx context.Context, id uuid.UUID, at time.Time) error
	// ListStaleIDs returns unpinned gyms last accessed strictly before the
	// cutoff.
	ListStaleIDs(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error)
	// Delete removes a gym and everything under it.
	Delete(ctx context.Context, id uuid.UUID) error
}

type SpraywallRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Spraywall, error)
	ListByGym(ctx context.Context, gymID uuid.UUID) ([]*models.Spraywall, error)
	// ApplyReconcile deletes then bulk-upserts the walls of one gym in one
	// transaction. Deletions cascade through boulders and holds.
	ApplyReconcile(ctx context.Context, gymID uuid.UUID, deleteIDs []uuid.UUID, upserts []models.Spraywall) error
}

type BoulderRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Boulder, error)
	ListBySpraywall(ctx context.Context, spraywallID uuid.UUID) ([]*models.Boulder, error)
	// ApplyReconcile deletes then bulk-upserts the boulders of one wall in
	// one transaction, and fully replaces the hold rows of every parent in
	// holdsByBoulder. It returns the number of hold rows written.
	ApplyReconcile(ctx context.Context, spraywallID uuid.UUID, deleteIDs []uuid.UUID, upserts []models.Boulder, holdsByBoulder map[uuid.UUID][]models.Hold) (int, error)
}

// SyncLockRepository serializes reconciliations per scope key across
// processes. Locks expire on their own so a crashed holder cannot wedge a
// scope forever.
type SyncLockRepository interface {
	// Acquire takes the lock for the scope key or returns ErrLockHeld.
	// The returned token releases exactly the acquired lock.
	Acquire(ctx context.Context, scopeKey string, ttl time.Duration) (token string, err error)
	Release(ctx context.Context, scopeKey, token string) error
}

type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteAllForAccount(ctx context.Context, accountID uuid.UUID) error
}
