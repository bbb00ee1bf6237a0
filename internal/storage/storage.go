// Package storage persists request artifacts (ID card scans, personal
// photos, rendered certificates) on the local filesystem. Artifacts are
// written once and read back only by the staff dashboard; there is no
// mutation or deletion path.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"wathiq/pkg/platform/sentinel"
)

// Kind names one artifact directory under the store root.
type Kind string

const (
	KindIDCard      Kind = "id_cards"
	KindPhoto       Kind = "photos"
	KindCertificate Kind = "certificates"
)

// kinds is the closed set of directories the store manages.
var kinds = []Kind{KindIDCard, KindPhoto, KindCertificate}

func (k Kind) valid() bool {
	switch k {
	case KindIDCard, KindPhoto, KindCertificate:
		return true
	}
	return false
}

// Artifact describes one stored file.
type Artifact struct {
	Kind    Kind      `json:"kind"`
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// unsafeChars matches everything outside the Latin, digit and Arabic-letter
// ranges; those characters become underscores in stored file names.
var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9ا-ي]`)

// SafeName sanitizes a claimant-supplied name for use in a file name.
func SafeName(name string) string {
	safe := unsafeChars.ReplaceAllString(name, "_")
	safe = strings.Trim(safe, "_")
	if safe == "" {
		safe = "artifact"
	}
	return safe
}

// FileStore is the filesystem-backed artifact store.
type FileStore struct {
	root   string
	logger *slog.Logger
}

// FileStoreOption configures optional FileStore collaborators.
type FileStoreOption func(*FileStore)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) FileStoreOption {
	return func(s *FileStore) {
		if logger != nil {
			s.logger = logger.With(slog.String("component", "artifact_store"))
		}
	}
}

// NewFileStore creates the kind directories under root.
func NewFileStore(root string, opts ...FileStoreOption) (*FileStore, error) {
	s := &FileStore{root: root, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	for _, k := range kinds {
		if err := os.MkdirAll(filepath.Join(root, string(k)), 0o755); err != nil {
			return nil, fmt.Errorf("create artifact dir %s: %w", k, err)
		}
	}
	return s, nil
}

// Save writes data under kind as "<safe base>_<uuid><ext>" and returns the
// stored artifact. The uuid suffix keeps repeat requests from the same
// claimant from overwriting each other.
func (s *FileStore) Save(ctx context.Context, kind Kind, base, ext string, data []byte) (Artifact, error) {
	if !kind.valid() {
		return Artifact{}, fmt.Errorf("unknown artifact kind %q", kind)
	}
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	name := SafeName(base) + "_" + uuid.NewString() + ext
	path := filepath.Join(s.root, string(kind), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Artifact{}, fmt.Errorf("write artifact: %w", err)
	}

	s.logger.DebugContext(ctx, "artifact stored",
		slog.String("kind", string(kind)),
		slog.String("name", name),
		slog.Int("bytes", len(data)))

	return Artifact{Kind: kind, Name: name, Size: int64(len(data)), ModTime: time.Now().UTC()}, nil
}

// List returns kind's artifacts, newest first.
func (s *FileStore) List(ctx context.Context, kind Kind) ([]Artifact, error) {
	if !kind.valid() {
		return nil, fmt.Errorf("unknown artifact kind %q", kind)
	}

	entries, err := os.ReadDir(filepath.Join(s.root, string(kind)))
	if err != nil {
		return nil, fmt.Errorf("read artifact dir %s: %w", kind, err)
	}

	artifacts := make([]Artifact, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		artifacts = append(artifacts, Artifact{
			Kind:    kind,
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime().UTC(),
		})
	}
	sort.Slice(artifacts, func(i, j int) bool { return artifacts[i].ModTime.After(artifacts[j].ModTime) })
	return artifacts, nil
}

// Open returns a reader over one stored artifact. The name is reduced to
// its base form first so a crafted name cannot escape the kind directory.
func (s *FileStore) Open(ctx context.Context, kind Kind, name string) (io.ReadCloser, error) {
	if !kind.valid() {
		return nil, fmt.Errorf("unknown artifact kind %q", kind)
	}
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) {
		return nil, sentinel.ErrNotFound
	}

	f, err := os.Open(filepath.Join(s.root, string(kind), name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	return f, nil
}
