package starred

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"stationd/internal/catalog"
	"stationd/internal/models"
	"stationd/internal/providers"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
)

const reconcileBatch = 100

var ErrInvalidStation = errors.New("station has no identifier")

type StoreInterface interface {
	Load(ctx context.Context) error
	Refresh(ctx context.Context) error
	Contains(uuid string) bool
	Get(uuid string) (*models.Station, bool)
	Add(station *models.Station) error
	Remove(station *models.Station) error
	SetStarred(station *models.Station, starred bool) (bool, error)
	Toggle(station *models.Station) (bool, error)
	List() []*models.Station
	Len() int
	Searches() []string
	AddSearch(text string) error
	RemoveSearch(text string) error
	Serialize() ([]byte, error)
	ExportPlaylist() string
	Persist() error
}

// Store is the local set of starred stations and saved searches. Every entry
// is starred; every mutation rewrites the whole document.
type Store struct {
	mu       sync.RWMutex
	stations map[string]*models.Station
	order    []string
	searches []string
	loaded   bool
	writeMu  sync.Mutex

	files   *FileManager
	catalog catalog.ClientInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewStore(files *FileManager, catalog catalog.ClientInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) StoreInterface {
	return &Store{
		stations: make(map[string]*models.Station),
		files:    files,
		catalog:  catalog,
		logger:   logger,
		metrics:  metrics,
	}
}

// Load reads the document once. Legacy bare-array files are backed up and
// rewritten in the current schema; cached stations are then reconciled
// against the catalog.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.loaded {
		s.mu.Unlock()
		return nil
	}
	s.loaded = true
	s.mu.Unlock()

	if err := s.files.Ensure(); err != nil {
		s.logger.Errorf(providers.TypeStore, "Starred file unavailable: %s", err)
		return err
	}
	data, err := s.files.Read()
	if err != nil {
		s.logger.Errorf(providers.TypeStore, "Read starred file: %s", err)
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		s.logger.Infof(providers.TypeStore, "Starred file %s is empty", s.files.Path())
		return nil
	}

	doc, legacy, err := models.ParseStarredDocument(data)
	if err != nil {
		s.logger.Errorf(providers.TypeStore, "Starred file %s is unreadable: %s", s.files.Path(), err)
		if target, berr := s.files.Backup(data, ".corrupt"); berr == nil {
			s.logger.Warnf(providers.TypeStore, "Unreadable starred file saved to %s", target)
		}
		return err
	}
	if legacy {
		s.logger.Warnf(providers.TypeStore, "Legacy starred file found, migrating to schema %s", models.SchemaVersion)
		if target, berr := s.files.Backup(data, ".v1"); berr != nil {
			s.logger.Errorf(providers.TypeStore, "Backup of legacy starred file failed: %s", berr)
		} else {
			s.logger.Infof(providers.TypeStore, "Legacy starred file saved to %s", target)
		}
	}

	s.mu.Lock()
	for _, st := range doc.Stations {
		if _, ok := s.stations[st.UUID]; ok {
			continue
		}
		st.Starred = true
		s.stations[st.UUID] = st
		s.order = append(s.order, st.UUID)
	}
	for _, q := range doc.Searches {
		if q = strings.TrimSpace(q); q != "" && !slices.Contains(s.searches, q) {
			s.searches = append(s.searches, q)
		}
	}
	count := len(s.stations)
	s.mu.Unlock()

	s.logger.Infof(providers.TypeStore, "Loaded %d starred stations and %d saved searches", count, len(doc.Searches))
	s.metrics.SetStarredTotal(count)

	changed := s.reconcile(ctx)
	if legacy || changed {
		return s.Persist()
	}
	return nil
}

// Refresh re-runs catalog reconciliation and persists when anything changed.
func (s *Store) Refresh(ctx context.Context) error {
	if s.reconcile(ctx) {
		return s.Persist()
	}
	return nil
}

// reconcile replaces cached stations whose change UUID differs from the
// catalog's. Lookup failures keep the cached copy.
func (s *Store) reconcile(ctx context.Context) bool {
	s.mu.RLock()
	ids := append([]string(nil), s.order...)
	s.mu.RUnlock()

	changed := false
	for start := 0; start < len(ids); start += reconcileBatch {
		chunk := ids[start:min(start+reconcileBatch, len(ids))]
		fresh, err := s.catalog.ByUUID(ctx, strings.Join(chunk, ","))
		if err != nil {
			s.logger.Warnf(providers.TypeStore, "Could not refresh %d starred stations, keeping cached copies: %s", len(chunk), err)
			continue
		}

		s.mu.Lock()
		for _, f := range fresh {
			cached, ok := s.stations[f.UUID]
			if !ok || cached.ChangeUUID == f.ChangeUUID {
				continue
			}
			s.logger.Infof(providers.TypeStore, "Station %q (%s) changed upstream, replacing cached copy", f.Name, f.UUID)
			replacement := f.Clone()
			replacement.Starred = true
			s.stations[f.UUID] = replacement
			changed = true
		}
		s.mu.Unlock()
	}
	return changed
}

func (s *Store) Contains(uuid string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.stations[uuid]
	return ok
}

func (s *Store) Get(uuid string) (*models.Station, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.stations[uuid]
	if !ok {
		return nil, false
	}
	return st.Clone(), true
}

// Add stars station. Adding a known identifier replaces nothing and keeps the set size.
func (s *Store) Add(station *models.Station) error {
	if station == nil || station.UUID == "" {
		return ErrInvalidStation
	}
	station.Starred = true

	s.mu.Lock()
	if _, ok := s.stations[station.UUID]; !ok {
		s.stations[station.UUID] = station.Clone()
		s.order = append(s.order, station.UUID)
	}
	count := len(s.stations)
	s.mu.Unlock()

	s.metrics.SetStarredTotal(count)
	return s.Persist()
}

func (s *Store) Remove(station *models.Station) error {
	if station == nil || station.UUID == "" {
		return ErrInvalidStation
	}
	station.Starred = false

	s.mu.Lock()
	if _, ok := s.stations[station.UUID]; ok {
		delete(s.stations, station.UUID)
		s.order = slices.DeleteFunc(s.order, func(id string) bool { return id == station.UUID })
	}
	count := len(s.stations)
	s.mu.Unlock()

	s.metrics.SetStarredTotal(count)
	return s.Persist()
}

// SetStarred returns the resulting starred state even when persisting fails.
func (s *Store) SetStarred(station *models.Station, starred bool) (bool, error) {
	var err error
	if starred {
		err = s.Add(station)
	} else {
		err = s.Remove(station)
	}
	if errors.Is(err, ErrInvalidStation) {
		return false, err
	}
	return starred, err
}

func (s *Store) Toggle(station *models.Station) (bool, error) {
	if station == nil {
		return false, ErrInvalidStation
	}
	return s.SetStarred(station, !s.Contains(station.UUID))
}

func (s *Store) List() []*models.Station {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Station, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.stations[id].Clone())
	}
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.stations)
}

func (s *Store) Searches() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]string, 0, len(s.searches)), s.searches...)
}

func (s *Store) AddSearch(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("empty search")
	}
	s.mu.Lock()
	if !slices.Contains(s.searches, text) {
		s.searches = append(s.searches, text)
	}
	s.mu.Unlock()
	return s.Persist()
}

func (s *Store) RemoveSearch(text string) error {
	text = strings.TrimSpace(text)
	s.mu.Lock()
	s.searches = slices.DeleteFunc(s.searches, func(q string) bool { return q == text })
	s.mu.Unlock()
	return s.Persist()
}

func (s *Store) Serialize() ([]byte, error) {
	doc := models.NewStarredDocument(s.List(), s.Searches())
	return json.MarshalIndent(doc, "", "  ")
}

func (s *Store) ExportPlaylist() string {
	return RenderPlaylist(s.List())
}

func (s *Store) Persist() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	data, err := s.Serialize()
	if err != nil {
		s.logger.Errorf(providers.TypeStore, "Serialize starred stations: %s", err)
		return err
	}
	if err := s.files.Write(data); err != nil {
		s.logger.Errorf(providers.TypeStore, "Write starred file %s: %s", s.files.Path(), err)
		return err
	}
	s.logger.Debugf(providers.TypeStore, "Persisted starred file %s", s.files.Path())
	return nil
}
