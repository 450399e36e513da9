package registry

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite3 driver

	"thumbnail-normalizer/internal/logging"
	"thumbnail-normalizer/internal/metrics"
	"thumbnail-normalizer/internal/photosize"
)

// Default timeout for registry database operations.
const defaultTimeout = 5 * time.Second

// Registry stores remote file identities in SQLite. It implements
// photosize.Registrar.
type Registry struct {
	db     *sql.DB
	dbPath string
}

// RegisteredFile is a stored remote file location.
type RegisteredFile struct {
	ID            photosize.FileID   `json:"id"`
	PersistentID  string             `json:"persistentId"`
	Role          photosize.FileRole `json:"role"`
	RemoteID      int64              `json:"remoteId,omitempty"`
	AccessHash    int64              `json:"-"`
	FileReference []byte             `json:"-"`
	Endpoint      int32              `json:"endpoint,omitempty"`
	URL           string             `json:"url,omitempty"`
	OwnerChat     int64              `json:"ownerChat,omitempty"`
	Size          int32              `json:"size"`
	ExpectedSize  int32              `json:"expectedSize,omitempty"`
	SuggestedName string             `json:"suggestedName,omitempty"`
	Origin        photosize.Origin   `json:"origin"`
	HasContent    bool               `json:"hasContent"`
}

// New opens (or creates) the registry database at dbPath. The parent
// directory must already exist; use ":memory:" for an ephemeral registry.
func New(ctx context.Context, dbPath string) (*Registry, error) {
	logging.Info("Registry database path: %s", dbPath)

	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry database: %w", err)
	}

	if dbPath == ":memory:" {
		// Every pooled connection would otherwise get its own database.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(time.Hour)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close registry after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to connect to registry database: %w", err)
	}

	r := &Registry{db: db, dbPath: dbPath}
	if err := r.initialize(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close registry after initialization failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to initialize registry schema: %w", err)
	}

	logging.Info("Registry initialized at %s", dbPath)
	return r, nil
}

func (r *Registry) initialize(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS remote_files (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		persistent_id TEXT NOT NULL UNIQUE,
		role INTEGER NOT NULL,
		remote_id INTEGER NOT NULL DEFAULT 0,
		access_hash INTEGER NOT NULL DEFAULT 0,
		file_reference BLOB,
		endpoint INTEGER NOT NULL DEFAULT 0,
		url TEXT NOT NULL DEFAULT '',
		owner_chat INTEGER NOT NULL DEFAULT 0,
		owner_secret INTEGER NOT NULL DEFAULT 0,
		size INTEGER NOT NULL DEFAULT 0,
		expected_size INTEGER NOT NULL DEFAULT 0,
		suggested_name TEXT NOT NULL DEFAULT '',
		origin TEXT NOT NULL DEFAULT 'server',
		created_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now')),
		updated_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
	);

	-- One row per remote location: remote files use (remote_id, endpoint),
	-- web files use url, and the unused key fields stay at their defaults.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_remote_files_location
		ON remote_files(role, url, remote_id, endpoint);

	CREATE INDEX IF NOT EXISTS idx_remote_files_owner ON remote_files(owner_chat);

	CREATE TABLE IF NOT EXISTS file_contents (
		file_id INTEGER PRIMARY KEY REFERENCES remote_files(id) ON DELETE CASCADE,
		data BLOB NOT NULL
	);
	`

	start := time.Now()
	_, err := r.db.ExecContext(ctx, schema)
	r.observe("initialize_schema", start, err)
	return err
}

// Close closes the underlying database.
func (r *Registry) Close() error {
	return r.db.Close()
}

func (r *Registry) observe(operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.RegistryQueryTotal.WithLabelValues(operation, status).Inc()
	metrics.RegistryQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// Register assigns a handle to the remote location, reusing the existing
// handle when the same location was registered before. Registration never
// fails from the caller's perspective; a storage error is logged and
// yields the invalid handle.
func (r *Registry) Register(remote photosize.RemoteFile) photosize.FileID {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	start := time.Now()
	id, err := r.register(ctx, remote)
	r.observe("register", start, err)
	if err != nil {
		logging.Error("failed to register remote file %q: %v", remote.SuggestedName, err)
		return 0
	}
	return id
}

func (r *Registry) register(ctx context.Context, remote photosize.RemoteFile) (photosize.FileID, error) {
	var id photosize.FileID
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM remote_files WHERE role = ? AND url = ? AND remote_id = ? AND endpoint = ?`,
		int(remote.Role), remote.URL, remote.RemoteID, remote.Endpoint).Scan(&id)
	switch {
	case err == nil:
		// Same location seen again: refresh the credentials the server
		// may have rotated since the first sighting.
		_, err = r.db.ExecContext(ctx,
			`UPDATE remote_files
			 SET access_hash = ?, file_reference = ?, size = MAX(size, ?), expected_size = ?,
			     updated_at = strftime('%s', 'now')
			 WHERE id = ?`,
			remote.AccessHash, remote.FileReference, remote.Size, remote.ExpectedSize, int64(id))
		if err != nil {
			return 0, err
		}
		metrics.RegistrationsTotal.WithLabelValues("dedup").Inc()
		return id, nil

	case err != sql.ErrNoRows:
		return 0, err
	}

	ownerSecret := 0
	if remote.Owner.Secret {
		ownerSecret = 1
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO remote_files
		 (persistent_id, role, remote_id, access_hash, file_reference, endpoint, url,
		  owner_chat, owner_secret, size, expected_size, suggested_name, origin)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), int(remote.Role), remote.RemoteID, remote.AccessHash, remote.FileReference,
		remote.Endpoint, remote.URL, remote.Owner.ID, ownerSecret, remote.Size, remote.ExpectedSize,
		remote.SuggestedName, string(remote.Origin))
	if err != nil {
		return 0, err
	}
	rowID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	metrics.RegistrationsTotal.WithLabelValues("new").Inc()
	return photosize.FileID(rowID), nil
}

// SetContent stores inline bytes against an already-registered handle,
// replacing any previous content.
func (r *Registry) SetContent(id photosize.FileID, data []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	start := time.Now()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO file_contents (file_id, data) VALUES (?, ?)
		 ON CONFLICT(file_id) DO UPDATE SET data = excluded.data`,
		int64(id), data)
	r.observe("set_content", start, err)
	if err != nil {
		logging.Error("failed to store content for file %d: %v", id, err)
		return
	}
	metrics.RegistrationsTotal.WithLabelValues("content").Inc()
}

// FromPersistentID resolves a persistent ID back to its handle. The
// opaque reference may be either the generated persistent ID or, for
// web files, the registered URL itself. The stored role must match.
func (r *Registry) FromPersistentID(persistentID string, role photosize.FileRole) (photosize.FileID, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	start := time.Now()
	var id photosize.FileID
	var storedRole int
	err := r.db.QueryRowContext(ctx,
		`SELECT id, role FROM remote_files WHERE persistent_id = ? OR (url != '' AND url = ?)`,
		persistentID, persistentID).Scan(&id, &storedRole)
	r.observe("from_persistent_id", start, err)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("unknown persistent ID %q", persistentID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve persistent ID %q: %w", persistentID, err)
	}
	if photosize.FileRole(storedRole) != role {
		return 0, fmt.Errorf("persistent ID %q is a %s, not a %s",
			persistentID, photosize.FileRole(storedRole), role)
	}
	metrics.RegistrationsTotal.WithLabelValues("persistent_id").Inc()
	return id, nil
}

// File returns the stored location for a handle.
func (r *Registry) File(ctx context.Context, id photosize.FileID) (*RegisteredFile, error) {
	start := time.Now()
	var f RegisteredFile
	var role int
	var origin string
	var ownerSecret int
	var hasContent int
	err := r.db.QueryRowContext(ctx,
		`SELECT f.id, f.persistent_id, f.role, f.remote_id, f.access_hash, f.file_reference,
		        f.endpoint, f.url, f.owner_chat, f.owner_secret, f.size, f.expected_size,
		        f.suggested_name, f.origin,
		        EXISTS(SELECT 1 FROM file_contents c WHERE c.file_id = f.id)
		 FROM remote_files f WHERE f.id = ?`, int64(id)).Scan(
		&f.ID, &f.PersistentID, &role, &f.RemoteID, &f.AccessHash, &f.FileReference,
		&f.Endpoint, &f.URL, &f.OwnerChat, &ownerSecret, &f.Size, &f.ExpectedSize,
		&f.SuggestedName, &origin, &hasContent)
	r.observe("get_file", start, err)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("file %d is not registered", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load file %d: %w", id, err)
	}
	f.Role = photosize.FileRole(role)
	f.Origin = photosize.Origin(origin)
	f.HasContent = hasContent != 0
	return &f, nil
}

// Content returns the inline bytes stored against a handle, or an error
// when none were stored.
func (r *Registry) Content(ctx context.Context, id photosize.FileID) ([]byte, error) {
	start := time.Now()
	var data []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM file_contents WHERE file_id = ?`, int64(id)).Scan(&data)
	r.observe("get_content", start, err)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("file %d has no stored content", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load content for file %d: %w", id, err)
	}
	return data, nil
}

// Count returns the number of registered files and refreshes the
// registry size gauge.
func (r *Registry) Count(ctx context.Context) (int, error) {
	start := time.Now()
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM remote_files`).Scan(&n)
	r.observe("count", start, err)
	if err != nil {
		return 0, fmt.Errorf("failed to count registered files: %w", err)
	}
	metrics.RegistryFilesTotal.Set(float64(n))
	return n, nil
}
