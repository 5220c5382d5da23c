package snapshot

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/iudanet/tourplan/internal/models"
)

// Fetched результат загрузки всех типов записей с сервера.
// Тип, которого нет в Records, считается отсутствующим.
type Fetched struct {
	Records      map[models.Kind][]models.Entity
	Failed       map[models.Kind]error
	BaseLocation *models.Location
	DrivingTimes *models.DrivingTimeMatrix
}

// Option configures a Store.
type Option func(*Store)

// WithRequiredKinds makes LoadSnapshot fail when one of the kinds could not be fetched.
func WithRequiredKinds(kinds ...models.Kind) Option {
	return func(s *Store) {
		s.required = append(s.required, kinds...)
	}
}

// Store владеет парой снимков original/working.
// original меняется только через LoadSnapshot и Rebase*, working
// редактируется снаружи между циклами синхронизации.
type Store struct {
	mu       sync.Mutex
	original *Snapshot
	working  *Snapshot
	required []models.Kind
	logger   *slog.Logger
}

// NewStore creates an empty store. Working and Original return nil until the first LoadSnapshot.
func NewStore(logger *slog.Logger, opts ...Option) *Store {
	s := &Store{logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadSnapshot replaces working (and, on first load, original) with deep copies of the fetched data.
func (s *Store) LoadSnapshot(fetched *Fetched) error {
	snap := New()
	if fetched.BaseLocation != nil {
		snap.BaseLocation = fetched.BaseLocation.Clone()
	}
	snap.DrivingTimes = fetched.DrivingTimes.Clone()

	loaded := 0
	for _, kind := range models.AllKinds {
		records, ok := fetched.Records[kind]
		if !ok || fetched.Failed[kind] != nil {
			snap.MarkAbsent(kind)
			s.logger.Warn("Entity kind is absent from snapshot", "kind", kind, "error", fetched.Failed[kind])
			continue
		}
		for _, r := range records {
			if err := snap.Put(r.CloneEntity()); err != nil {
				return fmt.Errorf("failed to load %s: %w", kind, err)
			}
		}
		loaded++
	}

	if loaded == 0 {
		return ErrNothingFetched
	}
	for _, kind := range s.required {
		if snap.Absent(kind) {
			return fmt.Errorf("%w: %s", ErrMissingKind, kind)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.working = snap
	if s.original == nil {
		s.original = snap.Clone()
	}
	return nil
}

// Rebase делает working новой базой: original становится его глубокой копией.
func (s *Store) Rebase() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.working == nil {
		return ErrNotLoaded
	}
	s.original = s.working.Clone()
	return nil
}

// RebaseCommitted applies to original only the operations the remote store acknowledged.
// Records that failed to commit stay different from working and show up in the next diff.
func (s *Store) RebaseCommitted(journal *Journal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.working == nil || s.original == nil {
		return ErrNotLoaded
	}

	next := s.original.Clone()
	for _, op := range journal.Ops() {
		switch op.Type {
		case OpCreate, OpUpdate:
			record, ok := s.working.Entity(op.Kind, op.ID)
			if !ok {
				continue
			}
			if err := next.Put(record.CloneEntity()); err != nil {
				return fmt.Errorf("failed to rebase %s %d: %w", op.Kind, op.ID, err)
			}
		case OpDestroy:
			next.CascadeDelete(op.Kind, op.ID)
		}
	}
	next.BaseLocation = nil
	if s.working.BaseLocation != nil {
		next.BaseLocation = s.working.BaseLocation.Clone()
	}
	next.DrivingTimes = s.working.DrivingTimes.Clone()

	s.original = next
	return nil
}

// Working returns the live working snapshot for the editing layer.
// It must not be mutated while an upload is in flight.
func (s *Store) Working() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.working
}

// Original returns a copy of the baseline snapshot.
func (s *Store) Original() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.original == nil {
		return nil
	}
	return s.original.Clone()
}

// ReconcileID rewrites a temporary id in working under the store lock.
func (s *Store) ReconcileID(kind models.Kind, oldID, newID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.working == nil {
		return 0, ErrNotLoaded
	}
	return s.working.ReconcileID(kind, oldID, newID)
}

// CascadeDelete mirrors a remote destroy in working under the store lock.
func (s *Store) CascadeDelete(kind models.Kind, id int64) ([]models.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.working == nil {
		return nil, ErrNotLoaded
	}
	return s.working.CascadeDelete(kind, id), nil
}

// Snapshots returns original and working for diffing. Original is not copied,
// callers must treat both as read-only.
func (s *Store) Snapshots() (original, working *Snapshot, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.working == nil || s.original == nil {
		return nil, nil, ErrNotLoaded
	}
	return s.original, s.working, nil
}
