package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/coursemanager/internal/client/models"
	"github.com/dmitrijs2005/coursemanager/internal/common"
	"github.com/dmitrijs2005/coursemanager/internal/cryptox"
	"github.com/dmitrijs2005/coursemanager/internal/filex"
	"github.com/dmitrijs2005/coursemanager/internal/logging"
)

var (
	ErrNothingToExport = errors.New("no data to export")
	ErrInvalidBackup   = errors.New("invalid backup file")
)

// Snapshot is the content of a backup file.
type Snapshot struct {
	Users   []models.StoredUser `json:"users"`
	Courses []models.Course     `json:"global_courses"`
}

// Source is read by the exporter.
type Source interface {
	Users(ctx context.Context) ([]models.StoredUser, error)
	Courses(ctx context.Context) ([]models.Course, error)
}

// Sink is written by the importer.
type Sink interface {
	ReplaceAll(ctx context.Context, users []models.StoredUser, courses []models.Course) error
}

// Flusher drains pending background writes.
type Flusher interface {
	Flush(ctx context.Context)
}

// Reloader refreshes in-memory state from the store.
type Reloader func(ctx context.Context) error

type Exporter struct {
	source  Source
	flusher Flusher
	logger  logging.Logger
}

func NewExporter(source Source, flusher Flusher, logger logging.Logger) *Exporter {
	return &Exporter{source: source, flusher: flusher, logger: logger}
}

// Snapshot reads the persisted collections after pending writes have landed.
func (e *Exporter) Snapshot(ctx context.Context) (*Snapshot, error) {
	if e.flusher != nil {
		e.flusher.Flush(ctx)
	}

	users, err := e.source.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}
	courses, err := e.source.Courses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read courses: %w", err)
	}
	if len(users) == 0 && len(courses) == 0 {
		return nil, ErrNothingToExport
	}

	if users == nil {
		users = []models.StoredUser{}
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return &Snapshot{Users: users, Courses: courses}, nil
}

// Export writes the backup as indented JSON to w.
func (e *Exporter) Export(ctx context.Context, w io.Writer) error {
	data, err := e.marshal(ctx)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ExportFile writes the backup to path, or to the default backup file name
// when path is empty, and returns the path written.
func (e *Exporter) ExportFile(ctx context.Context, path string) (string, error) {
	if path == "" {
		path = common.DefaultBackupFileName
	}

	data, err := e.marshal(ctx)
	if err != nil {
		return "", err
	}
	if err := filex.WriteFileAtomic(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	e.logger.Info(ctx, "backup exported", "path", path)
	return path, nil
}

func (e *Exporter) marshal(ctx context.Context) ([]byte, error) {
	snap, err := e.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	return append(data, '\n'), nil
}

type Importer struct {
	sink      Sink
	flusher   Flusher
	reloaders []Reloader
	logger    logging.Logger
}

func NewImporter(sink Sink, flusher Flusher, logger logging.Logger, reloaders ...Reloader) *Importer {
	return &Importer{sink: sink, flusher: flusher, reloaders: reloaders, logger: logger}
}

// Parse decodes a backup. Both top-level keys must be present and hold
// arrays.
func (i *Importer) Parse(r io.Reader) (*Snapshot, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBackup, err)
	}

	for _, key := range []string{"users", "global_courses"} {
		v, ok := raw[key]
		if !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrInvalidBackup, key)
		}
		if v = bytes.TrimSpace(v); len(v) == 0 || v[0] != '[' {
			return nil, fmt.Errorf("%w: %q is not an array", ErrInvalidBackup, key)
		}
	}

	var snap Snapshot
	if err := json.Unmarshal(raw["users"], &snap.Users); err != nil {
		return nil, fmt.Errorf("%w: users: %w", ErrInvalidBackup, err)
	}
	if err := json.Unmarshal(raw["global_courses"], &snap.Courses); err != nil {
		return nil, fmt.Errorf("%w: global_courses: %w", ErrInvalidBackup, err)
	}
	return &snap, nil
}

// Apply replaces both collections with snap and reloads the state managers.
// Plaintext passwords are hashed before they are stored. A record without a
// password is kept as is and no password matches it. A malformed hash
// rejects the whole backup before anything is written.
func (i *Importer) Apply(ctx context.Context, snap *Snapshot) error {
	users := make([]models.StoredUser, len(snap.Users))
	hashed := 0
	for n, u := range snap.Users {
		switch {
		case u.Password == "", cryptox.IsPasswordHash(u.Password):
		case cryptox.HasHashPrefix(u.Password):
			return fmt.Errorf("%w: user %q has a malformed password hash", ErrInvalidBackup, u.Email)
		default:
			u.Password = cryptox.HashPassword([]byte(u.Password))
			hashed++
		}
		users[n] = u
	}

	// queued saves would otherwise overwrite the restored data
	if i.flusher != nil {
		i.flusher.Flush(ctx)
	}

	if err := i.sink.ReplaceAll(ctx, users, snap.Courses); err != nil {
		return fmt.Errorf("failed to restore backup: %w", err)
	}

	for _, reload := range i.reloaders {
		if err := reload(ctx); err != nil {
			return fmt.Errorf("failed to reload state: %w", err)
		}
	}

	i.logger.Info(ctx, "backup imported",
		"users", len(users), "courses", len(snap.Courses), "rehashed", hashed)
	return nil
}

// ImportFile parses the backup at path and applies it.
func (i *Importer) ImportFile(ctx context.Context, path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open backup: %w", err)
	}
	defer f.Close()

	snap, err := i.Parse(f)
	if err != nil {
		return nil, err
	}
	if err := i.Apply(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}
