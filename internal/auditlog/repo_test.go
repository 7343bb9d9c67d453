package auditlog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sirimeals/mealops-backend/pkg/db/models"
	"github.com/sirimeals/mealops-backend/pkg/enums"
	"github.com/sirimeals/mealops-backend/pkg/pagination"
)

func setupAuditTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS audit_logs (
  id TEXT PRIMARY KEY,
  actor_id TEXT NOT NULL,
  customer_id TEXT,
  bag_id TEXT,
  event_type TEXT NOT NULL,
  detail TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func newLog(t *testing.T, db *gorm.DB, actorID uuid.UUID, event enums.AuditEvent, at time.Time) *models.AuditLog {
	t.Helper()
	log := &models.AuditLog{
		ID:        uuid.New(),
		ActorID:   actorID,
		EventType: event,
		Status:    enums.AuditStatusSuccess,
		CreatedAt: at,
	}
	require.NoError(t, db.Create(log).Error)
	return log
}

func TestAuditRepository_CreateLog(t *testing.T) {
	db := setupAuditTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	log := &models.AuditLog{
		ID:        uuid.New(),
		ActorID:   uuid.New(),
		EventType: enums.AuditEventCheckItem,
		Detail:    "scanned NRQ-MON-LN",
		Status:    enums.AuditStatusSuccess,
	}
	require.NoError(t, repo.CreateLog(ctx, log))

	var found models.AuditLog
	require.NoError(t, db.First(&found, "id = ?", log.ID).Error)
	assert.Equal(t, enums.AuditEventCheckItem, found.EventType)
	assert.Equal(t, "scanned NRQ-MON-LN", found.Detail)
}

func TestAuditRepository_ListLogs(t *testing.T) {
	db := setupAuditTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	actor := uuid.New()
	other := uuid.New()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	newLog(t, db, actor, enums.AuditEventCreateSubscription, base)
	newLog(t, db, actor, enums.AuditEventCheckBag, base.Add(time.Hour))
	newLog(t, db, other, enums.AuditEventCheckBag, base.Add(2*time.Hour))

	t.Run("newest first with count", func(t *testing.T) {
		page, err := repo.ListLogs(ctx, pagination.Params{}, Filters{})
		require.NoError(t, err)
		assert.EqualValues(t, 3, page.Count)
		require.Len(t, page.Items, 3)
		assert.Equal(t, other, page.Items[0].ActorID)
	})

	t.Run("filters by event and actor", func(t *testing.T) {
		event := enums.AuditEventCheckBag
		page, err := repo.ListLogs(ctx, pagination.Params{}, Filters{Event: &event, ActorID: &actor})
		require.NoError(t, err)
		assert.EqualValues(t, 1, page.Count)
	})

	t.Run("filters by time window", func(t *testing.T) {
		from := base.Add(30 * time.Minute)
		to := base.Add(90 * time.Minute)
		page, err := repo.ListLogs(ctx, pagination.Params{}, Filters{From: &from, To: &to})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, enums.AuditEventCheckBag, page.Items[0].EventType)
	})

	t.Run("paginates", func(t *testing.T) {
		page, err := repo.ListLogs(ctx, pagination.Params{Limit: 2}, Filters{})
		require.NoError(t, err)
		assert.EqualValues(t, 3, page.Count)
		assert.Len(t, page.Items, 2)
	})
}
