package schema

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Source identifies where a session document originated so loaders can operate
// on files, fs.FS entries, or in-memory payloads without leaking
// implementation details.
type Source interface {
	Kind() SourceKind
	Location() string
	Read(ctx context.Context) ([]byte, error)
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile  SourceKind = "file"
	SourceKindFS    SourceKind = "fs"
	SourceKindBytes SourceKind = "bytes"
)

// fileSource identifies on-disk session documents.
type fileSource struct {
	path string
}

func (s fileSource) Kind() SourceKind {
	return SourceKindFile
}

func (s fileSource) Location() string {
	return s.path
}

func (s fileSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", s.path, err)
	}
	return data, nil
}

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

// fsSource references a path within an fs.FS.
type fsSource struct {
	fsys fs.FS
	name string
}

func (s fsSource) Kind() SourceKind {
	return SourceKindFS
}

func (s fsSource) Location() string {
	return s.name
}

func (s fsSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(s.fsys, s.name)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", s.name, err)
	}
	return data, nil
}

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(fsys fs.FS, name string) Source {
	return fsSource{fsys: fsys, name: name}
}

// bytesSource wraps an in-memory document, typically fixtures or stdin.
type bytesSource struct {
	label string
	raw   []byte
}

func (s bytesSource) Kind() SourceKind {
	return SourceKindBytes
}

func (s bytesSource) Location() string {
	return s.label
}

func (s bytesSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]byte(nil), s.raw...), nil
}

// SourceFromBytes returns a Source over an in-memory payload. The label is
// used in error messages and format detection (extension sniffing).
func SourceFromBytes(label string, raw []byte) Source {
	return bytesSource{label: label, raw: append([]byte(nil), raw...)}
}
