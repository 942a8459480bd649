package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/tribe-engine/pkg/state"
	"github.com/jwebster45206/tribe-engine/pkg/storage"
	"gopkg.in/yaml.v3"
)

const saveFileVersion = 1

// FileStorage writes each save to <dir>/<uuid>.yaml so saves can be read and
// edited by hand.
type FileStorage struct {
	dir    string
	logger *slog.Logger
}

var (
	_ storage.Storage = (*FileStorage)(nil)
	_ storage.Lister  = (*FileStorage)(nil)
)

// saveFile is the on-disk document. Session holds the same fields as the
// JSON payload so both encodings decode through state.Decode.
type saveFile struct {
	Version int            `yaml:"version"`
	SavedAt time.Time      `yaml:"saved_at"`
	Player  string         `yaml:"player"`
	Day     int            `yaml:"day"`
	Session map[string]any `yaml:"session"`
}

// NewFileStorage uses dir, creating it if needed.
func NewFileStorage(dir string, logger *slog.Logger) (*FileStorage, error) {
	if dir == "" {
		dir = "./saves"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create save directory: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStorage{dir: dir, logger: logger}, nil
}

func (f *FileStorage) path(id uuid.UUID) string {
	return filepath.Join(f.dir, id.String()+".yaml")
}

func (f *FileStorage) Ping(ctx context.Context) error {
	info, err := os.Stat(f.dir)
	if err != nil {
		return fmt.Errorf("save directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("save path %s is not a directory", f.dir)
	}
	return nil
}

func (f *FileStorage) Close() error {
	return nil
}

func (f *FileStorage) Save(ctx context.Context, s *state.Session) (uuid.UUID, error) {
	if s == nil {
		return uuid.Nil, storage.Wrap("save", uuid.Nil, errors.New("session cannot be nil"))
	}
	id := storage.Handle(s)
	data, err := state.Encode(s)
	if err != nil {
		return uuid.Nil, storage.Wrap("save", id, err)
	}
	var fields map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return uuid.Nil, storage.Wrap("save", id, err)
	}
	info := storage.Info(s, time.Now().UTC())
	out, err := yaml.Marshal(saveFile{
		Version: saveFileVersion,
		SavedAt: info.SavedAt,
		Player:  info.Player,
		Day:     info.Day,
		Session: exactNumbers(fields).(map[string]any),
	})
	if err != nil {
		return uuid.Nil, storage.Wrap("save", id, err)
	}

	// Write then rename so a crash never leaves a half-written save.
	tmp := f.path(id) + ".tmp"
	if err := os.WriteFile(tmp, out, 0o644); err != nil {
		return uuid.Nil, storage.Wrap("save", id, err)
	}
	if err := os.Rename(tmp, f.path(id)); err != nil {
		f.logger.Error("Failed to save session", "session_id", id, "error", err)
		return uuid.Nil, storage.Wrap("save", id, err)
	}
	return id, nil
}

// exactNumbers turns json.Number leaves into int64 where they fit so YAML
// writes them as plain integers without a float64 detour.
func exactNumbers(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = exactNumbers(e)
		}
	case []any:
		for i, e := range t {
			t[i] = exactNumbers(e)
		}
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
	}
	return v
}

func (f *FileStorage) read(id uuid.UUID) (*saveFile, error) {
	data, err := os.ReadFile(f.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var sf saveFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("%w: %v", state.ErrInvalidPayload, err)
	}
	return &sf, nil
}

func (f *FileStorage) Load(ctx context.Context, handle uuid.UUID) (*state.Session, error) {
	sf, err := f.read(handle)
	if err != nil {
		return nil, storage.Wrap("load", handle, err)
	}
	if sf.Session == nil {
		return nil, storage.Wrap("load", handle, fmt.Errorf("%w: no session", state.ErrInvalidPayload))
	}
	data, err := json.Marshal(sf.Session)
	if err != nil {
		return nil, storage.Wrap("load", handle, fmt.Errorf("%w: %v", state.ErrInvalidPayload, err))
	}
	s, err := state.Decode(data)
	if err != nil {
		return nil, storage.Wrap("load", handle, err)
	}
	return s, nil
}

func (f *FileStorage) Delete(ctx context.Context, handle uuid.UUID) error {
	err := os.Remove(f.path(handle))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return storage.Wrap("delete", handle, err)
	}
	return nil
}

// List reads the header of every save in the directory, most recent first.
// Unreadable files are skipped.
func (f *FileStorage) List(ctx context.Context) ([]storage.SaveInfo, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, storage.Wrap("list", uuid.Nil, err)
	}
	var out []storage.SaveInfo
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".yaml" {
			continue
		}
		id, err := uuid.Parse(strings.TrimSuffix(name, ".yaml"))
		if err != nil {
			continue
		}
		sf, err := f.read(id)
		if err != nil {
			f.logger.Warn("Skipping unreadable save", "file", name, "error", err)
			continue
		}
		out = append(out, storage.SaveInfo{Handle: id, Player: sf.Player, Day: sf.Day, SavedAt: sf.SavedAt})
	}
	slices.SortFunc(out, func(a, b storage.SaveInfo) int {
		return b.SavedAt.Compare(a.SavedAt)
	})
	return out, nil
}
