// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

const (
	bundlePrefix      = "bundle_v"
	bundleSuffix      = ".gob.gz"
	assignmentsPrefix = "assignments_v"
	assignmentsSuffix = ".json"
	tempSuffix        = ".tmp"
)

// storedFile is the on-disk format for bundle files.
type storedFile struct {
	Metadata       BundleMetadata
	CompressedData []byte
}

// Store manages versioned bundles in a directory.
type Store struct {
	baseDir string
	mu      sync.RWMutex

	// versions holds every complete bundle version found on disk.
	versions map[int]struct{}
	latest   int
}

// NewStore creates a store at baseDir, creating the directory if needed.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o750); err != nil { //nolint:gosec // 0750 is acceptable for artifact storage
		return nil, fmt.Errorf("create artifact directory: %w", err)
	}

	s := &Store{baseDir: baseDir}
	if err := s.Refresh(); err != nil {
		return nil, fmt.Errorf("scan existing bundles: %w", err)
	}
	return s, nil
}

// Dir returns the artifact directory.
func (s *Store) Dir() string {
	return s.baseDir
}

// Refresh rescans the directory for bundles written by other processes.
func (s *Store) Refresh() error {
	versions, err := s.scanVersions()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.versions = make(map[int]struct{}, len(versions))
	s.latest = 0
	for _, v := range versions {
		s.versions[v] = struct{}{}
		if v > s.latest {
			s.latest = v
		}
	}
	return nil
}

// scanVersions lists bundle versions on disk in descending order.
func (s *Store) scanVersions() ([]int, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, err
	}

	var versions []int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if v, ok := ParseBundleFilename(entry.Name()); ok {
			versions = append(versions, v)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(versions)))
	return versions, nil
}

// ParseBundleFilename extracts the version from a name like "bundle_v3.gob.gz".
// Temporary and assignments files are rejected.
func ParseBundleFilename(name string) (int, bool) {
	if !strings.HasPrefix(name, bundlePrefix) || !strings.HasSuffix(name, bundleSuffix) {
		return 0, false
	}
	versionStr := strings.TrimSuffix(strings.TrimPrefix(name, bundlePrefix), bundleSuffix)
	version, err := strconv.Atoi(versionStr)
	if err != nil || version < 1 {
		return 0, false
	}
	return version, true
}

// LatestVersion returns the newest complete version.
func (s *Store) LatestVersion() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.latest > 0
}

// NextVersion returns the version a new training run should write.
func (s *Store) NextVersion() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest + 1
}

// Save validates and writes bundle and assignments as version meta.Version.
// The assignments file is written before the bundle file.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func (s *Store) Save(ctx context.Context, bundle *Bundle, assignments []Assignment, meta BundleMetadata) (*BundleMetadata, error) {
	if meta.Version < 1 {
		return nil, fmt.Errorf("%w: version must be positive, got %d", ErrInvalidBundle, meta.Version)
	}
	if err := bundle.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Serialize bundle
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(bundle); err != nil {
		return nil, fmt.Errorf("encode bundle: %w", err)
	}
	rawData := buf.Bytes()

	hash := sha256.Sum256(rawData)
	meta.Checksum = hex.EncodeToString(hash[:])

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(rawData); err != nil {
		return nil, fmt.Errorf("compress bundle: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return nil, fmt.Errorf("finalize compression: %w", err)
	}

	meta.SizeBytes = int64(compressed.Len())
	meta.SavedAt = time.Now()
	meta.Clusters = bundle.Model.K()
	meta.Width = bundle.Width()
	meta.ServicesCount = len(bundle.Vocabulary.Services)
	meta.GoalsCount = len(bundle.Vocabulary.Goals)
	meta.LanguagesCount = len(bundle.Vocabulary.Languages)
	if meta.ProfileCount == 0 {
		meta.ProfileCount = len(assignments)
	}

	assignData, err := json.Marshal(assignments)
	if err != nil {
		return nil, fmt.Errorf("encode assignments: %w", err)
	}
	if err := writeFileAtomic(s.assignmentsPath(meta.Version), func(w io.Writer) error {
		_, werr := w.Write(assignData)
		return werr
	}); err != nil {
		return nil, fmt.Errorf("write assignments: %w", err)
	}

	sf := storedFile{
		Metadata:       meta,
		CompressedData: compressed.Bytes(),
	}
	if err := writeFileAtomic(s.bundlePath(meta.Version), func(w io.Writer) error {
		return gob.NewEncoder(w).Encode(sf)
	}); err != nil {
		return nil, fmt.Errorf("write bundle: %w", err)
	}

	if s.versions == nil {
		s.versions = make(map[int]struct{})
	}
	s.versions[meta.Version] = struct{}{}
	if meta.Version > s.latest {
		s.latest = meta.Version
	}

	return &meta, nil
}

// writeFileAtomic writes to a temporary sibling, syncs it and renames it into place.
func writeFileAtomic(path string, write func(io.Writer) error) error {
	tmp := path + tempSuffix
	f, err := os.Create(tmp) //nolint:gosec // path is constructed from the store directory and a version number
	if err != nil {
		return err
	}

	if err := write(f); err != nil {
		_ = f.Close()      //nolint:errcheck // write error takes precedence
		_ = os.Remove(tmp) //nolint:errcheck // best-effort cleanup
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()      //nolint:errcheck // sync error takes precedence
		_ = os.Remove(tmp) //nolint:errcheck // best-effort cleanup
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp) //nolint:errcheck // best-effort cleanup
		return err
	}
	return os.Rename(tmp, path)
}

// Load reads and validates a bundle. Version 0 loads the latest version.
func (s *Store) Load(ctx context.Context, version int) (*Bundle, *BundleMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if version == 0 {
		if s.latest == 0 {
			return nil, nil, ErrNoBundle
		}
		version = s.latest
	}

	sf, err := readStoredFile(s.bundlePath(version))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: version %d", ErrNoBundle, version)
		}
		return nil, nil, err
	}

	gzr, err := gzip.NewReader(bytes.NewReader(sf.CompressedData))
	if err != nil {
		return nil, nil, fmt.Errorf("decompress bundle: %w", err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // error on gzip close after read is not actionable

	rawData, err := io.ReadAll(gzr)
	if err != nil {
		return nil, nil, fmt.Errorf("read decompressed data: %w", err)
	}

	hash := sha256.Sum256(rawData)
	checksum := hex.EncodeToString(hash[:])
	if checksum != sf.Metadata.Checksum {
		return nil, nil, fmt.Errorf("checksum mismatch: expected %s, got %s", sf.Metadata.Checksum, checksum)
	}

	var bundle Bundle
	if err := gob.NewDecoder(bytes.NewReader(rawData)).Decode(&bundle); err != nil {
		return nil, nil, fmt.Errorf("decode bundle: %w", err)
	}
	if err := bundle.Validate(); err != nil {
		return nil, nil, fmt.Errorf("bundle v%d: %w", version, err)
	}

	return &bundle, &sf.Metadata, nil
}

func readStoredFile(path string) (*storedFile, error) {
	f, err := os.Open(path) //nolint:gosec // path is constructed from the store directory and a version number
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // error on close after read is not actionable

	var sf storedFile
	if err := gob.NewDecoder(f).Decode(&sf); err != nil {
		return nil, fmt.Errorf("read bundle file: %w", err)
	}
	return &sf, nil
}

// LoadAssignments reads the id -> cluster table of a version.
// A missing file yields ErrAssignmentsNotFound.
func (s *Store) LoadAssignments(ctx context.Context, version int) ([]Assignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.assignmentsPath(version))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: version %d", ErrAssignmentsNotFound, version)
		}
		return nil, fmt.Errorf("read assignments: %w", err)
	}

	var assignments []Assignment
	if err := json.Unmarshal(data, &assignments); err != nil {
		return nil, fmt.Errorf("decode assignments: %w", err)
	}
	return assignments, nil
}

// List returns metadata for all stored versions, newest first.
func (s *Store) List(ctx context.Context) ([]BundleMetadata, error) {
	s.mu.RLock()
	versions := make([]int, 0, len(s.versions))
	for v := range s.versions {
		versions = append(versions, v)
	}
	s.mu.RUnlock()

	sort.Sort(sort.Reverse(sort.IntSlice(versions)))

	list := make([]BundleMetadata, 0, len(versions))
	for _, v := range versions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sf, err := readStoredFile(s.bundlePath(v))
		if err != nil {
			continue
		}
		list = append(list, sf.Metadata)
	}
	return list, nil
}

// Delete removes a version's bundle and assignments files.
func (s *Store) Delete(ctx context.Context, version int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteLocked(version)
}

func (s *Store) deleteLocked(version int) error {
	if err := os.Remove(s.bundlePath(version)); err != nil {
		return fmt.Errorf("delete bundle: %w", err)
	}
	if err := os.Remove(s.assignmentsPath(version)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete assignments: %w", err)
	}

	delete(s.versions, version)
	if s.latest == version {
		s.latest = 0
		for v := range s.versions {
			if v > s.latest {
				s.latest = v
			}
		}
	}
	return nil
}

// Prune removes old versions, keeping only the newest keepVersions.
func (s *Store) Prune(ctx context.Context, keepVersions int) (int, error) {
	if keepVersions < 1 {
		keepVersions = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	versions, err := s.scanVersions()
	if err != nil {
		return 0, fmt.Errorf("read directory: %w", err)
	}

	removed := 0
	for i := keepVersions; i < len(versions); i++ {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if err := s.deleteLocked(versions[i]); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func (s *Store) bundlePath(version int) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("%s%d%s", bundlePrefix, version, bundleSuffix))
}

func (s *Store) assignmentsPath(version int) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("%s%d%s", assignmentsPrefix, version, assignmentsSuffix))
}

// Register gob types for serialization.
//
//nolint:gochecknoinits // gob.Register must be called in init for type registration
func init() {
	gob.Register(Bundle{})
	gob.Register(BundleMetadata{})
	gob.Register(storedFile{})
}
