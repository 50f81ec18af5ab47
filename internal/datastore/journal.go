package datastore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aleister1102/outboundwatch/internal/models"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

const journalTimeLayout = time.RFC3339Nano

// Cycle statuses stored in cycle_history.
const (
	CycleStatusStarted   = "STARTED"
	CycleStatusCompleted = "COMPLETED"
	CycleStatusCancelled = "CANCELLED"
)

// Journal persists monitoring cycles and handled notifications in SQLite.
// It is an audit trail only; nothing is read back to drive alerting.
type Journal struct {
	db     *sql.DB
	logger zerolog.Logger
}

// CycleEntry represents a record in the cycle_history table.
type CycleEntry struct {
	ID        int64
	CycleID   string
	StartedAt time.Time
	EndedAt   sql.NullString
	Status    string
	Processes int
	Alerts    int
}

// NewJournal opens (creating if needed) the journal database at path.
func NewJournal(path string, logger zerolog.Logger) (*Journal, error) {
	moduleLogger := logger.With().Str("component", "Journal").Logger()
	moduleLogger.Info().Str("db_path", path).Msg("Initializing journal database connection")

	dbDir := filepath.Dir(path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		moduleLogger.Error().Err(err).Str("directory", dbDir).Msg("Failed to create journal directory")
		return nil, fmt.Errorf("failed to create journal directory %s: %w", dbDir, err)
	}

	dbInstance, err := sql.Open("sqlite", path)
	if err != nil {
		moduleLogger.Error().Err(err).Str("db_path", path).Msg("Failed to open journal database")
		return nil, fmt.Errorf("sql.Open failed for %s: %w", path, err)
	}
	// writers come from the cycle loop and the notifier concurrently
	dbInstance.SetMaxOpenConns(1)

	j := &Journal{
		db:     dbInstance,
		logger: moduleLogger,
	}

	if err := j.InitSchema(context.Background()); err != nil {
		j.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	moduleLogger.Info().Str("path", path).Msg("Journal initialized and schema verified")
	return j, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

// InitSchema creates the journal tables if they don't already exist.
func (j *Journal) InitSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS cycle_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		cycle_id TEXT UNIQUE NOT NULL,
		started_at TEXT NOT NULL,
		ended_at TEXT,
		status TEXT NOT NULL,
		processes INTEGER DEFAULT 0,
		alerts INTEGER DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS notification_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		dedup_key TEXT NOT NULL,
		process TEXT,
		step TEXT,
		audience TEXT,
		recipients TEXT,
		subject TEXT NOT NULL,
		severity TEXT NOT NULL,
		status TEXT NOT NULL,
		transports TEXT,
		error TEXT,
		handled_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_notification_log_dedup_key ON notification_log (dedup_key);
	`
	if _, err := j.db.ExecContext(ctx, query); err != nil {
		j.logger.Error().Err(err).Msg("Failed to initialize journal schema")
		return err
	}
	j.logger.Debug().Msg("Journal schema initialized (cycle_history, notification_log)")
	return nil
}

// RecordCycleStart inserts a STARTED row for cycleID and returns its row ID.
func (j *Journal) RecordCycleStart(ctx context.Context, cycleID string, startedAt time.Time) (int64, error) {
	query := `INSERT INTO cycle_history (cycle_id, started_at, status) VALUES (?, ?, ?)`
	result, err := j.db.ExecContext(ctx, query, cycleID, startedAt.UTC().Format(journalTimeLayout), CycleStatusStarted)
	if err != nil {
		j.logger.Error().Err(err).Str("cycle_id", cycleID).Msg("Failed to record cycle start")
		return 0, fmt.Errorf("failed to insert cycle start record: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	j.logger.Debug().Int64("db_id", id).Str("cycle_id", cycleID).Msg("Recorded cycle start")
	return id, nil
}

// RecordCycleEnd completes the row created by RecordCycleStart.
func (j *Journal) RecordCycleEnd(ctx context.Context, id int64, endedAt time.Time, processes, alerts int, status string) error {
	query := `UPDATE cycle_history SET ended_at = ?, status = ?, processes = ?, alerts = ? WHERE id = ?`
	_, err := j.db.ExecContext(ctx, query, endedAt.UTC().Format(journalTimeLayout), status, processes, alerts, id)
	if err != nil {
		j.logger.Error().Err(err).Int64("db_id", id).Msg("Failed to record cycle end")
		return fmt.Errorf("failed to update cycle %d: %w", id, err)
	}
	return nil
}

// RecordDelivery appends one handled notification to notification_log.
func (j *Journal) RecordDelivery(ctx context.Context, rec models.DeliveryRecord) error {
	query := `INSERT INTO notification_log
		(dedup_key, process, step, audience, recipients, subject, severity, status, transports, error, handled_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := j.db.ExecContext(ctx, query,
		rec.DedupKey,
		rec.Process,
		rec.Step,
		string(rec.Audience),
		strings.Join(rec.Recipients, ";"),
		rec.Subject,
		rec.Severity.String(),
		string(rec.Status),
		strings.Join(rec.Transports, ","),
		sql.NullString{String: rec.Error, Valid: rec.Error != ""},
		rec.HandledAt.UTC().Format(journalTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification record %s: %w", rec.DedupKey, err)
	}
	return nil
}

// DeliveriesForKey returns the statuses recorded for dedupKey, oldest first.
func (j *Journal) DeliveriesForKey(ctx context.Context, dedupKey string) ([]models.DeliveryStatus, error) {
	rows, err := j.db.QueryContext(ctx, `SELECT status FROM notification_log WHERE dedup_key = ? ORDER BY id`, dedupKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query notification log: %w", err)
	}
	defer rows.Close()

	var statuses []models.DeliveryStatus
	for rows.Next() {
		var status string
		if err := rows.Scan(&status); err != nil {
			return nil, err
		}
		statuses = append(statuses, models.DeliveryStatus(status))
	}
	return statuses, rows.Err()
}

// LastCycle returns the most recently started cycle, or sql.ErrNoRows.
func (j *Journal) LastCycle(ctx context.Context) (*CycleEntry, error) {
	query := `SELECT id, cycle_id, started_at, ended_at, status, processes, alerts FROM cycle_history ORDER BY id DESC LIMIT 1`
	var entry CycleEntry
	var startedAt string
	err := j.db.QueryRowContext(ctx, query).Scan(&entry.ID, &entry.CycleID, &startedAt, &entry.EndedAt, &entry.Status, &entry.Processes, &entry.Alerts)
	if err != nil {
		return nil, err
	}
	if entry.StartedAt, err = time.Parse(journalTimeLayout, startedAt); err != nil {
		return nil, fmt.Errorf("invalid started_at %q: %w", startedAt, err)
	}
	return &entry, nil
}
