package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/customk/booking/internal/occurrence/domain"
	"github.com/customk/booking/internal/occurrence/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:memdb_occ_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&domain.ScheduledOccurrence{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	return db
}

func newService(t *testing.T, db *gorm.DB) (domain.Service, *snowflake.Node) {
	t.Helper()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, node
}

func seedOccurrence(t *testing.T, svc domain.Service, committed int) domain.ScheduledOccurrence {
	t.Helper()

	occ, err := svc.Create(context.Background(), domain.CreateOccurrenceRequest{
		ClassID:   12345,
		StartDate: time.Now().UTC().AddDate(0, 0, 14),
		StartTime: "10:00",
		EndTime:   "12:00",
	})
	require.NoError(t, err)

	if committed > 0 {
		require.NoError(t, svc.Reserve(context.Background(), occ.ID, committed))
	}
	return occ
}

func TestReserveIncrementsCommittedCount(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, _ := newService(t, db)

	occ := seedOccurrence(t, svc, 5)

	require.NoError(t, svc.Reserve(ctx, occ.ID, 2))

	got, err := svc.Get(ctx, occ.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.CommittedCount)
}

func TestReserveUnknownOccurrence(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node := newService(t, db)

	err := svc.Reserve(ctx, node.Generate(), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReserveRejectsNonPositiveSeats(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, _ := newService(t, db)

	occ := seedOccurrence(t, svc, 0)

	assert.ErrorIs(t, svc.Reserve(ctx, occ.ID, 0), domain.ErrInvalidSeats)
	assert.ErrorIs(t, svc.Reserve(ctx, occ.ID, -3), domain.ErrInvalidSeats)
}

func TestReleaseDecrementsCommittedCount(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, _ := newService(t, db)

	occ := seedOccurrence(t, svc, 5)

	require.NoError(t, svc.Release(ctx, occ.ID, 2))

	got, err := svc.Get(ctx, occ.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.CommittedCount)
}

func TestReleaseNeverGoesNegative(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, _ := newService(t, db)

	occ := seedOccurrence(t, svc, 1)

	// Releasing more seats than committed floors at zero.
	require.NoError(t, svc.Release(ctx, occ.ID, 4))
	got, err := svc.Get(ctx, occ.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.CommittedCount)

	// Releasing an empty occurrence is a successful no-op.
	require.NoError(t, svc.Release(ctx, occ.ID, 2))
	got, err = svc.Get(ctx, occ.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.CommittedCount)
}

func TestReleaseUnknownOccurrence(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node := newService(t, db)

	assert.ErrorIs(t, svc.Release(ctx, node.Generate(), 1), domain.ErrNotFound)
}

func TestConcurrentReservesDoNotLoseUpdates(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, _ := newService(t, db)

	occ := seedOccurrence(t, svc, 0)

	const workers = 10
	const seatsEach = 2

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- svc.Reserve(ctx, occ.ID, seatsEach)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	got, err := svc.Get(ctx, occ.ID)
	require.NoError(t, err)
	assert.Equal(t, workers*seatsEach, got.CommittedCount)
}

func TestCreateValidatesInput(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, _ := newService(t, db)

	_, err := svc.Create(ctx, domain.CreateOccurrenceRequest{
		StartDate: time.Now().UTC(),
		StartTime: "10:00",
		EndTime:   "12:00",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidClass)

	_, err = svc.Create(ctx, domain.CreateOccurrenceRequest{
		ClassID:   1,
		StartTime: "10:00",
		EndTime:   "12:00",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}
