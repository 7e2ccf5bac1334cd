package consumer

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ArchiveHandler writes consumed telemetry events into Postgres for auditing
// and offline analysis.
type ArchiveHandler struct {
	pool *pgxpool.Pool
}

// NewArchiveHandler constructs a handler backed by the provided pool.
func NewArchiveHandler(pool *pgxpool.Pool) *ArchiveHandler {
	return &ArchiveHandler{pool: pool}
}

// Handle stores the event payload in the telemetry_event_log table.
func (h *ArchiveHandler) Handle(ctx context.Context, msg Message) error {
	conn, err := h.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx,
		`INSERT INTO telemetry_event_log (event_type, partition_key, topic, partition, record_offset, payload, received_at)
         VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		msg.EventType,
		msg.PartitionKey,
		msg.Topic,
		msg.Partition,
		msg.Offset,
		msg.Payload,
		msg.Timestamp,
	)
	return err
}
