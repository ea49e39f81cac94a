package mongo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/osse101/ChatterBot_Go/internal/domain"
	"github.com/osse101/ChatterBot_Go/internal/repository"
	"github.com/osse101/ChatterBot_Go/internal/testing/storetest"
)

// startMongo runs a disposable mongod and returns its URI.
// The test is skipped in short mode or when Docker is unavailable.
func startMongo(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	var container testcontainers.Container
	var err error

	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("Skipping integration test due to panic (likely Docker issue): %v", r)
			}
		}()
		container, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "mongo:7",
				ExposedPorts: []string{"27017/tcp"},
				WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
			},
			Started: true,
		})
	}()
	if err != nil {
		t.Skipf("Skipping integration test: failed to start mongo container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("mongodb://%s:%s", host, port.Port())
}

func newTestStore(t *testing.T, uri string) *Store {
	t.Helper()
	ctx := context.Background()

	s, err := Connect(ctx, uri, "test_"+uuid.NewString()[:8])
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Drop(ctx)
		_ = s.Close(ctx)
	})
	return s
}

func TestStore_Integration(t *testing.T) {
	uri := startMongo(t)

	storetest.Run(t, func(t *testing.T) repository.Store {
		return newTestStore(t, uri)
	})
}

func TestStore_GroupNameUniqueIndexIgnoresCase(t *testing.T) {
	uri := startMongo(t)
	s := newTestStore(t, uri)
	ctx := context.Background()

	require.NoError(t, s.InsertGroup(ctx, "gamers", 1, time.Now()))

	// Bypass normalization: the collation on the unique index still rejects the duplicate.
	_, err := s.groups.InsertOne(ctx, bson.M{"group_name": "GAMERS", "members": bson.A{int64(2)}})
	require.Error(t, err)
	assert.ErrorIs(t, s.InsertGroup(ctx, "Gamers", 3, time.Now()), domain.ErrGroupExists)
}

func TestStore_IncrementsDoNotClobberInsertDefaults(t *testing.T) {
	uri := startMongo(t)
	s := newTestStore(t, uri)
	ctx := context.Background()

	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.ApplyIncrements(ctx, 5, domain.CounterDeltas{domain.FieldVoices: 2}, domain.ProfileUpdate{}, now))

	var raw bson.M
	require.NoError(t, s.userStats.FindOne(ctx, bson.M{"user_id": int64(5)}).Decode(&raw))
	for _, f := range domain.CounterFields {
		assert.Contains(t, raw, string(f), "every counter is materialized on insert")
	}
	assert.EqualValues(t, 2, raw["voices"])
}
