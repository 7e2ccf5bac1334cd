// Package postgres provides pgx-backed persistence for readings, sensor
// events, and their outbox rows.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/wearable/internal/domain"
	"example.com/wearable/internal/events"
	"example.com/wearable/internal/observability"
)

// Repository stores telemetry in Postgres. Writes record an outbox event in
// the same transaction so the dispatcher can publish them later.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Ping verifies the store is reachable. Startup aborts when this fails.
func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// SaveReading persists the reading and its reading.recorded outbox event in
// one transaction.
func (r *Repository) SaveReading(ctx context.Context, reading domain.Reading) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	const insertReading = `INSERT INTO readings (reading_id, heart_rate, steps, oxygen_saturation, body_temperature, device_type, firmware_version, sensor_status, recorded_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`

	_, err = tx.Exec(ctx, insertReading,
		reading.ID,
		reading.HeartRate,
		reading.Steps,
		reading.OxygenSaturation,
		reading.BodyTemperature,
		domain.DeviceType,
		domain.FirmwareVersion,
		domain.SensorStatus,
		reading.Timestamp,
	)
	if err != nil {
		return err
	}

	err = insertOutbox(ctx, tx, "reading.recorded", events.ReadingsTopic, reading.ID, events.ReadingRecorded{
		ReadingID:        reading.ID,
		HeartRate:        reading.HeartRate,
		Steps:            reading.Steps,
		OxygenSaturation: reading.OxygenSaturation,
		BodyTemperature:  reading.BodyTemperature,
		DeviceType:       domain.DeviceType,
		RecordedAt:       reading.Timestamp,
	})
	if err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return err
	}
	observability.RecordReadingPersisted(reading.Timestamp)
	return nil
}

// SaveSensorEvent persists a pushed proximity event and its outbox row.
func (r *Repository) SaveSensorEvent(ctx context.Context, event domain.SensorEvent) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	const insertEvent = `INSERT INTO sensor_events (event_id, sensor_id, distance_cm, received_at)
        VALUES ($1,$2,$3,$4)`

	_, err = tx.Exec(ctx, insertEvent, event.ID, event.SensorID, event.DistanceCM, event.ReceivedAt)
	if err != nil {
		return err
	}

	err = insertOutbox(ctx, tx, "sensor_event.received", events.SensorEventsTopic, event.SensorID, events.SensorEventReceived{
		EventID:    event.ID,
		SensorID:   event.SensorID,
		DistanceCM: event.DistanceCM,
		ReceivedAt: event.ReceivedAt,
	})
	if err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return err
	}
	observability.RecordSensorEventPersisted(event.ReceivedAt)
	return nil
}

func insertOutbox(ctx context.Context, tx pgx.Tx, eventType, topic, partitionKey string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", eventType, err)
	}

	const stmt = `INSERT INTO outbox (event_type, topic, partition_key, payload)
        VALUES ($1,$2,$3,$4)`

	_, err = tx.Exec(ctx, stmt, eventType, topic, partitionKey, body)
	return err
}

// Latest returns the most recent reading, or (nil, nil) when the table is
// empty.
func (r *Repository) Latest(ctx context.Context) (*domain.Reading, error) {
	const query = `SELECT reading_id, heart_rate, steps, oxygen_saturation, body_temperature, recorded_at
        FROM readings ORDER BY recorded_at DESC, reading_id DESC LIMIT 1`

	row := r.pool.QueryRow(ctx, query)
	var reading domain.Reading
	if err := row.Scan(&reading.ID, &reading.HeartRate, &reading.Steps, &reading.OxygenSaturation, &reading.BodyTemperature, &reading.Timestamp); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &reading, nil
}

// History returns up to limit readings, newest first.
func (r *Repository) History(ctx context.Context, limit int) ([]domain.Reading, error) {
	const query = `SELECT reading_id, heart_rate, steps, oxygen_saturation, body_temperature, recorded_at
        FROM readings ORDER BY recorded_at DESC, reading_id DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]domain.Reading, 0, limit)
	for rows.Next() {
		var reading domain.Reading
		if err := rows.Scan(&reading.ID, &reading.HeartRate, &reading.Steps, &reading.OxygenSaturation, &reading.BodyTemperature, &reading.Timestamp); err != nil {
			return nil, err
		}
		results = append(results, reading)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
