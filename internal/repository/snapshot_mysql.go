package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/iliyamo/tutor-marketplace/internal/model"
)

// MySQLSnapshotStore persists identity snapshots in the identity_snapshots
// table, one row per session.
type MySQLSnapshotStore struct{ DB *sql.DB }

func NewMySQLSnapshotStore(db *sql.DB) *MySQLSnapshotStore { return &MySQLSnapshotStore{DB: db} }

// EnsureSchema creates the snapshot table when it does not exist.
func (r *MySQLSnapshotStore) EnsureSchema(ctx context.Context) error {
    _, err := r.DB.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS identity_snapshots (
        session_id VARCHAR(64) NOT NULL PRIMARY KEY,
        payload    TEXT        NOT NULL,
        updated_at DATETIME    NOT NULL
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`)
    return err
}

// Save upserts the snapshot row for session.
func (r *MySQLSnapshotStore) Save(ctx context.Context, session string, u model.User) error {
    b, err := encodeSnapshot(u)
    if err != nil {
        return err
    }
    _, err = r.DB.ExecContext(ctx,
        "INSERT INTO identity_snapshots (session_id, payload, updated_at) VALUES (?,?,?) "+
            "ON DUPLICATE KEY UPDATE payload=VALUES(payload), updated_at=VALUES(updated_at)",
        session, string(b), time.Now().UTC())
    return err
}

// Load returns the saved identity or ErrSnapshotMissing.
func (r *MySQLSnapshotStore) Load(ctx context.Context, session string) (model.User, error) {
    var payload string
    err := r.DB.QueryRowContext(ctx,
        "SELECT payload FROM identity_snapshots WHERE session_id=? LIMIT 1",
        session).Scan(&payload)
    if errors.Is(err, sql.ErrNoRows) {
        return model.User{}, ErrSnapshotMissing
    }
    if err != nil {
        return model.User{}, err
    }
    return decodeSnapshot([]byte(payload))
}

// Clear deletes the row for session. Missing rows are not an error.
func (r *MySQLSnapshotStore) Clear(ctx context.Context, session string) error {
    _, err := r.DB.ExecContext(ctx, "DELETE FROM identity_snapshots WHERE session_id=?", session)
    return err
}
