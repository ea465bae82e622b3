package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/emotube/backend/internal/db"
	"github.com/emotube/backend/internal/models"
	"github.com/emotube/backend/internal/reports"
)

// PostgresReportRepository persists report cache entries in PostgreSQL.
type PostgresReportRepository struct {
	pool db.Pool
}

// NewPostgresReportRepository constructs a report repository backed by PostgreSQL.
func NewPostgresReportRepository(pool db.Pool) *PostgresReportRepository {
	return &PostgresReportRepository{pool: pool}
}

// Get loads the cache entry for videoID.
func (r *PostgresReportRepository) Get(ctx context.Context, videoID string) (models.CacheEntry, bool, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.CacheEntry{}, false, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT video_id, video, report, last_computed
        FROM video_reports
        WHERE video_id = $1
    `, videoID)

	var (
		entry      models.CacheEntry
		videoJSON  []byte
		reportJSON []byte
	)
	if err := row.Scan(&entry.VideoID, &videoJSON, &reportJSON, &entry.LastComputed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.CacheEntry{}, false, nil
		}
		return models.CacheEntry{}, false, fmt.Errorf("select video report: %w", err)
	}

	if err := json.Unmarshal(videoJSON, &entry.Video); err != nil {
		return models.CacheEntry{}, false, fmt.Errorf("decode video snapshot: %w", err)
	}
	if err := json.Unmarshal(reportJSON, &entry.Report); err != nil {
		return models.CacheEntry{}, false, fmt.Errorf("decode report snapshot: %w", err)
	}
	entry.LastComputed = entry.LastComputed.UTC()

	return entry, true, nil
}

// Put replaces the cache entry for entry.VideoID in a single statement.
func (r *PostgresReportRepository) Put(ctx context.Context, entry models.CacheEntry) error {
	videoJSON, err := json.Marshal(entry.Video)
	if err != nil {
		return fmt.Errorf("encode video snapshot: %w", err)
	}
	reportJSON, err := json.Marshal(entry.Report)
	if err != nil {
		return fmt.Errorf("encode report snapshot: %w", err)
	}

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	for attempt := 1; ; attempt++ {
		_, err = conn.Exec(ctx, `
            INSERT INTO video_reports (video_id, video, report, last_computed)
            VALUES ($1, $2, $3, $4)
            ON CONFLICT (video_id)
            DO UPDATE SET video = EXCLUDED.video, report = EXCLUDED.report, last_computed = EXCLUDED.last_computed
        `, entry.VideoID, videoJSON, reportJSON, entry.LastComputed.UTC())
		if err == nil {
			return nil
		}
		if attempt >= maxWriteAttempts || !isSerializationFailure(err) {
			return fmt.Errorf("upsert video report: %w", err)
		}
	}
}

const maxWriteAttempts = 3

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "40001"
}

var _ reports.Store = (*PostgresReportRepository)(nil)
