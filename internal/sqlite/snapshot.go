package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/project"
	"github.com/Lilw3n/multisite-platform-sub002/internal/repository"
)

// DefaultSnapshotKey is the row the project collection is stored under.
const DefaultSnapshotKey = "multisite.projects"

// SnapshotRepository implements project.Repository on top of the snapshots table
type SnapshotRepository struct {
	db  *DB
	key string
	now func() time.Time
}

// NewSnapshotRepository creates a SnapshotRepository writing under key
func NewSnapshotRepository(db *DB, key string) *SnapshotRepository {
	if key == "" {
		key = DefaultSnapshotKey
	}
	return &SnapshotRepository{db: db, key: key, now: time.Now}
}

// Load reads the stored collection. Rows written as a bare project array
// load with no root order.
func (r *SnapshotRepository) Load(ctx context.Context) (project.Snapshot, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM snapshots WHERE key = ?`, r.key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return project.Snapshot{}, repository.ErrNotFound
	}
	if err != nil {
		return project.Snapshot{}, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snap project.Snapshot
	raw := bytes.TrimSpace([]byte(data))
	if bytes.HasPrefix(raw, []byte("[")) {
		err = json.Unmarshal(raw, &snap.Projects)
	} else {
		err = json.Unmarshal(raw, &snap)
	}
	if err != nil {
		return project.Snapshot{}, fmt.Errorf("%w: failed to decode snapshot %s: %w", repository.ErrInvalidInput, r.key, err)
	}
	return snap, nil
}

// Save replaces the stored collection
func (r *SnapshotRepository) Save(ctx context.Context, snap project.Snapshot) error {
	if snap.Projects == nil {
		snap.Projects = []project.Project{}
	}
	if snap.Roots == nil {
		snap.Roots = []string{}
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	query := `
		INSERT INTO snapshots (key, data, revision, updated_at)
		VALUES (?, ?, 1, ?)
		ON CONFLICT(key) DO UPDATE SET
			data = excluded.data,
			revision = snapshots.revision + 1,
			updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, r.key, string(data), r.now().UTC()); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Revision returns how many times the snapshot has been written
func (r *SnapshotRepository) Revision(ctx context.Context) (int64, error) {
	var rev int64
	err := r.db.QueryRowContext(ctx, `SELECT revision FROM snapshots WHERE key = ?`, r.key).Scan(&rev)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, repository.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read snapshot revision: %w", err)
	}
	return rev, nil
}
