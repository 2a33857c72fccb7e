package snapshots

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	domaingames "github.com/preston-bernstein/f2p-catalog-service/internal/domain/games"
)

// ErrNoSnapshot is returned when no catalog snapshot exists on disk.
var ErrNoSnapshot = errors.New("no catalog snapshot")

// Store defines how snapshots are loaded.
type Store interface {
	LoadCatalog(date string) (domaingames.CatalogSnapshot, error)
	LoadLatest() (domaingames.CatalogSnapshot, error)
}

// FSStore loads snapshots from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed snapshot store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadCatalog reads the snapshot for the given date (YYYY-MM-DD).
// Files are expected at {basePath}/catalog/{date}.json.
func (s *FSStore) LoadCatalog(date string) (domaingames.CatalogSnapshot, error) {
	if s == nil {
		return domaingames.CatalogSnapshot{}, errors.New("snapshot store not configured")
	}
	if date == "" {
		return domaingames.CatalogSnapshot{}, errors.New("snapshot date required")
	}
	var payload domaingames.CatalogSnapshot
	if err := s.decodeFile(CatalogSnapshotPath(s.basePath, date), &payload); err != nil {
		return domaingames.CatalogSnapshot{}, err
	}
	if payload.Date == "" {
		payload.Date = date
	}
	return payload, nil
}

// LoadLatest reads the newest snapshot on disk.
func (s *FSStore) LoadLatest() (domaingames.CatalogSnapshot, error) {
	if s == nil {
		return domaingames.CatalogSnapshot{}, errors.New("snapshot store not configured")
	}
	dates, err := s.Dates()
	if err != nil {
		return domaingames.CatalogSnapshot{}, err
	}
	if len(dates) == 0 {
		return domaingames.CatalogSnapshot{}, ErrNoSnapshot
	}
	return s.LoadCatalog(dates[len(dates)-1])
}

// Dates lists the snapshot dates on disk, oldest first.
func (s *FSStore) Dates() ([]string, error) {
	return listDates(s.basePath)
}

// LoadFile reads a catalog snapshot from an arbitrary path. A bare JSON list
// of games is accepted as well.
func LoadFile(path string) (domaingames.CatalogSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domaingames.CatalogSnapshot{}, err
	}
	var list []domaingames.Game
	if err := json.Unmarshal(data, &list); err == nil {
		return domaingames.CatalogSnapshot{Games: list}, nil
	}
	var snap domaingames.CatalogSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return domaingames.CatalogSnapshot{}, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return snap, nil
}

func (s *FSStore) decodeFile(path string, payload any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(payload)
}
