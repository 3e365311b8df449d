// Package storage provides the durable cache for update records. The
// pipeline writes every delivered record through it and reads the full
// history back when a branch fails.
package storage

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/shopspring/decimal"

	"stockpulse/feed/internal/update"
)

// UpdateStore is the persistence gateway contract consumed by the pipeline.
// Implementations must be safe for concurrent use: inserts from the live
// flow and reads from the recovery path overlap without external locking.
type UpdateStore interface {
	// Insert durably stores the record and returns a copy with its
	// assigned identity. The given record is never mutated.
	Insert(ctx context.Context, rec update.Record) (update.Record, error)

	// QueryAll returns every stored record ordered by timestamp descending.
	QueryAll(ctx context.Context) ([]update.Record, error)

	// Close releases the underlying connection.
	Close() error
}

// clickhouseStore implements UpdateStore on the native ClickHouse driver.
type clickhouseStore struct {
	conn   driver.Conn
	nextID atomic.Int64
}

// NewClickHouseStore opens a ClickHouse-backed store. It verifies
// connectivity with a ping and seeds the identity counter from the highest
// stored id, so identities stay unique across restarts.
func NewClickHouseStore(dsn string) (UpdateStore, error) {
	opts, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, err
	}

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.Ping(ctx); err != nil {
		return nil, err
	}

	s := &clickhouseStore{conn: conn}
	if err := s.seedNextID(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	return s, nil
}

func (s *clickhouseStore) seedNextID(ctx context.Context) error {
	var maxID int64
	row := s.conn.QueryRow(ctx, `SELECT max(id) FROM stock_update`)
	if err := row.Scan(&maxID); err != nil {
		return err
	}
	s.nextID.Store(maxID)
	return nil
}

// Insert stores one record with the next identity and returns the stored
// copy. The write is bounded by a short timeout so a slow store cannot
// stall the caller indefinitely.
func (s *clickhouseStore) Insert(ctx context.Context, rec update.Record) (update.Record, error) {
	stored := rec.WithID(s.nextID.Add(1))

	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	price, _ := stored.Price.Float64()
	err := s.conn.Exec(writeCtx, `
		INSERT INTO stock_update (id, symbol, price, mention_text, event_time, inserted_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, stored.ID, stored.Symbol, price, stored.MentionText, stored.Timestamp, time.Now())
	if err != nil {
		return update.Record{}, err
	}

	return stored, nil
}

// QueryAll reads the full history, newest event first.
func (s *clickhouseStore) QueryAll(ctx context.Context) ([]update.Record, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT id, symbol, price, mention_text, event_time
		FROM stock_update
		ORDER BY event_time DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []update.Record
	for rows.Next() {
		var (
			id          int64
			symbol      string
			price       float64
			mentionText string
			eventTime   time.Time
		)
		if err := rows.Scan(&id, &symbol, &price, &mentionText, &eventTime); err != nil {
			return nil, err
		}

		records = append(records, update.Record{
			ID:          id,
			Symbol:      symbol,
			Price:       decimal.NewFromFloat(price),
			Timestamp:   eventTime,
			MentionText: mentionText,
		})
	}

	return records, rows.Err()
}

// Close closes the ClickHouse connection.
func (s *clickhouseStore) Close() error {
	return s.conn.Close()
}
