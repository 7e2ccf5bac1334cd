//go:build integration

package postgres

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"example.com/wearable/internal/domain"
)

func TestRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	pool := startPostgres(t, ctx)

	repo := NewRepository(pool)
	require.NoError(t, repo.Ping(ctx))

	older := domain.Reading{
		ID:               uuid.NewString(),
		HeartRate:        72,
		Steps:            100,
		OxygenSaturation: 98.2,
		BodyTemperature:  36.6,
		Timestamp:        time.Now().UTC().Add(-10 * time.Second),
	}
	newer := domain.Reading{
		ID:               uuid.NewString(),
		HeartRate:        128,
		Steps:            115,
		OxygenSaturation: 97.1,
		BodyTemperature:  37.0,
		Timestamp:        time.Now().UTC(),
	}

	require.NoError(t, repo.SaveReading(ctx, older))
	require.NoError(t, repo.SaveReading(ctx, newer))

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	require.Equal(t, newer.ID, latest.ID)
	require.Equal(t, 128, latest.HeartRate)
	require.InDelta(t, 97.1, latest.OxygenSaturation, 1e-9)

	history, err := repo.History(ctx, 50)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, newer.ID, history[0].ID, "history must be newest first")
	require.Equal(t, older.ID, history[1].ID)

	history, err = repo.History(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, 1)

	// Each save records an outbox event in the same transaction.
	var outboxCount int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM outbox WHERE event_type = 'reading.recorded'`).Scan(&outboxCount))
	require.Equal(t, 2, outboxCount)
}

func TestRepositoryEmptyStore(t *testing.T) {
	ctx := context.Background()
	pool := startPostgres(t, ctx)

	repo := NewRepository(pool)

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	require.Nil(t, latest, "empty store must read as not-found, not as an error")

	history, err := repo.History(ctx, 50)
	require.NoError(t, err)
	require.Empty(t, history)
}

func TestRepositorySavesSensorEvents(t *testing.T) {
	ctx := context.Background()
	pool := startPostgres(t, ctx)

	repo := NewRepository(pool)

	event := domain.SensorEvent{
		ID:         uuid.NewString(),
		SensorID:   "proximidad_01",
		DistanceCM: 23.75,
		ReceivedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.SaveSensorEvent(ctx, event))

	var stored float64
	require.NoError(t, pool.QueryRow(ctx, `SELECT distance_cm FROM sensor_events WHERE event_id = $1`, event.ID).Scan(&stored))
	require.InDelta(t, 23.75, stored, 1e-9)

	var outboxCount int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM outbox WHERE event_type = 'sensor_event.received'`).Scan(&outboxCount))
	require.Equal(t, 1, outboxCount)
}

func startPostgres(t *testing.T, ctx context.Context) *pgxpool.Pool {
	t.Helper()

	pg, err := postgrescontainer.RunContainer(ctx,
		postgrescontainer.WithDatabase("telemetry"),
		postgrescontainer.WithUsername("wearable"),
		postgrescontainer.WithPassword("wearable"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, waitForDatabase(ctx, connStr))
	runMigrations(t, ctx, connStr)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })
	return pool
}

func runMigrations(t *testing.T, ctx context.Context, connStr string) {
	t.Helper()

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	defer pool.Close()

	path := resolvePath(t, "../../../db/migrations/0001_init.up.sql")
	contents, readErr := os.ReadFile(path)
	require.NoError(t, readErr)

	_, execErr := pool.Exec(ctx, string(contents))
	require.NoError(t, execErr)
}

func resolvePath(t *testing.T, rel string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), rel)
}

func waitForDatabase(ctx context.Context, connStr string) error {
	deadline := time.Now().Add(30 * time.Second)
	for {
		pool, err := pgxpool.New(ctx, connStr)
		if err == nil {
			err = pool.Ping(ctx)
			pool.Close()
			if err == nil {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return err
		}
		time.Sleep(time.Second)
	}
}
