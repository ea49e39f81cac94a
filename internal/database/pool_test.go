package database

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/ChatterBot_Go/internal/testing/leaktest"
)

func setupContainer(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	var pgContainer *postgres.PostgresContainer
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("Skipping integration test due to panic (likely Docker issue): %v", r)
			}
		}()
		pgContainer, err = postgres.Run(ctx,
			"postgres:15-alpine",
			postgres.WithDatabase("testdb"),
			postgres.WithUsername("testuser"),
			postgres.WithPassword("testpass"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
	}()
	if err != nil {
		t.Skipf("Skipping integration test: database not available: %v", err)
	}
	t.Cleanup(func() { _ = pgContainer.Terminate(ctx) })

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return connStr
}

func TestNewPool_InvalidConnString(t *testing.T) {
	_, err := NewPool(context.Background(), "://not a dsn", 5, time.Minute, time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedToParseConnString)
}

func TestPool_ConcurrentAccessAndMigrate(t *testing.T) {
	connStr := setupContainer(t)
	ctx := context.Background()

	pool, err := NewPool(ctx, connStr, 10, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, Migrate(ctx, pool))

	checker := leaktest.NewGoroutineChecker(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			var result int
			if err := pool.QueryRow(ctx, "SELECT $1::int", id).Scan(&result); err != nil {
				t.Errorf("worker %d query failed: %v", id, err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(0), pool.Stat().AcquiredConns(), "All connections should be released")

	var tables int
	err = pool.QueryRow(ctx, `SELECT COUNT(*) FROM information_schema.tables
		WHERE table_name IN ('user_counters', 'activity_events', 'popularity', 'mention_groups', 'chat_messages')`).Scan(&tables)
	require.NoError(t, err)
	assert.Equal(t, 5, tables)

	checker.Check(2)
}
