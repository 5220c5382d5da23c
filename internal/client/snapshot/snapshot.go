package snapshot

import (
	"fmt"
	"slices"

	"github.com/iudanet/tourplan/internal/models"
)

// Snapshot полная копия всех коллекций плана на один момент времени.
type Snapshot struct {
	Workers              *Collection[*models.Worker]
	WorkerAvailabilities *Collection[*models.WorkerAvailability]
	Clients              *Collection[*models.Client]
	ClientAvailabilities *Collection[*models.ClientAvailability]
	Locations            *Collection[*models.Location]
	Tours                *Collection[*models.Tour]
	TourElements         *Collection[*models.TourElement]

	// BaseLocation и DrivingTimes загружаются вместе с записями, но не выгружаются
	BaseLocation *models.Location
	DrivingTimes *models.DrivingTimeMatrix

	absent map[models.Kind]bool
}

// New creates an empty snapshot.
func New() *Snapshot {
	return &Snapshot{
		Workers:              NewCollection[*models.Worker](),
		WorkerAvailabilities: NewCollection[*models.WorkerAvailability](),
		Clients:              NewCollection[*models.Client](),
		ClientAvailabilities: NewCollection[*models.ClientAvailability](),
		Locations:            NewCollection[*models.Location](),
		Tours:                NewCollection[*models.Tour](),
		TourElements:         NewCollection[*models.TourElement](),
		absent:               make(map[models.Kind]bool),
	}
}

func (s *Snapshot) set(kind models.Kind) entitySet {
	switch kind {
	case models.KindWorker:
		return s.Workers
	case models.KindWorkerAvailability:
		return s.WorkerAvailabilities
	case models.KindClient:
		return s.Clients
	case models.KindClientAvailability:
		return s.ClientAvailabilities
	case models.KindLocation:
		return s.Locations
	case models.KindTour:
		return s.Tours
	case models.KindTourElement:
		return s.TourElements
	}
	panic(fmt.Sprintf("snapshot: unknown entity kind %d", int(kind)))
}

// Entities returns the records of a kind in insertion order.
func (s *Snapshot) Entities(kind models.Kind) []models.Entity {
	return s.set(kind).entities()
}

// Entity returns a single record.
func (s *Snapshot) Entity(kind models.Kind, id int64) (models.Entity, bool) {
	return s.set(kind).entity(id)
}

// IDs returns the ids of a kind in insertion order.
func (s *Snapshot) IDs(kind models.Kind) []int64 {
	return s.set(kind).ids()
}

// Len returns the number of records of a kind.
func (s *Snapshot) Len(kind models.Kind) int {
	return s.set(kind).size()
}

// Put stores a record in the collection of its kind.
func (s *Snapshot) Put(e models.Entity) error {
	return s.set(e.Kind()).putEntity(e)
}

// Delete removes a record and reports whether it existed.
func (s *Snapshot) Delete(kind models.Kind, id int64) bool {
	return s.set(kind).remove(id)
}

// Absent reports whether the kind failed to load.
func (s *Snapshot) Absent(kind models.Kind) bool {
	return s.absent[kind]
}

// AbsentKinds returns the kinds that failed to load, in models.AllKinds order.
func (s *Snapshot) AbsentKinds() []models.Kind {
	var kinds []models.Kind
	for _, k := range models.AllKinds {
		if s.absent[k] {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// MarkAbsent records that the kind could not be loaded.
func (s *Snapshot) MarkAbsent(kind models.Kind) {
	s.absent[kind] = true
}

// Clone returns a structurally independent copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	cp := &Snapshot{
		Workers:              s.Workers.Clone(),
		WorkerAvailabilities: s.WorkerAvailabilities.Clone(),
		Clients:              s.Clients.Clone(),
		ClientAvailabilities: s.ClientAvailabilities.Clone(),
		Locations:            s.Locations.Clone(),
		Tours:                s.Tours.Clone(),
		TourElements:         s.TourElements.Clone(),
		DrivingTimes:         s.DrivingTimes.Clone(),
		absent:               make(map[models.Kind]bool, len(s.absent)),
	}
	if s.BaseLocation != nil {
		cp.BaseLocation = s.BaseLocation.Clone()
	}
	for k, v := range s.absent {
		cp.absent[k] = v
	}
	return cp
}

// TempID returns a client side id for a new record of the kind.
// Temporary ids are negative so they never collide with ids assigned by the remote store.
func (s *Snapshot) TempID(kind models.Kind) int64 {
	lowest := int64(0)
	for _, id := range s.IDs(kind) {
		lowest = min(lowest, id)
	}
	return lowest - 1
}

// ReconcileID заменяет временный id записи на id, присвоенный сервером:
// запись перекладывается под новый ключ, а все ссылки на старый id
// в зависимых коллекциях переписываются по таблице models.Relations.
// Возвращает количество переписанных ссылок.
func (s *Snapshot) ReconcileID(kind models.Kind, oldID, newID int64) (int, error) {
	if oldID == newID {
		return 0, nil
	}
	set := s.set(kind)
	if _, ok := set.entity(oldID); ok && !set.rekey(oldID, newID) {
		return 0, fmt.Errorf("cannot reconcile %s %d: id %d is already taken", kind, oldID, newID)
	}

	rewritten := 0
	for _, rel := range models.Relations(kind) {
		for _, child := range s.set(rel.Child).entities() {
			if rel.Rewrite(child, oldID, newID) {
				rewritten++
			}
		}
	}
	return rewritten, nil
}

// CascadeDelete removes the record and every dependent that the remote store
// deletes together with it. Returns the removed dependents.
func (s *Snapshot) CascadeDelete(kind models.Kind, id int64) []models.Entity {
	s.set(kind).remove(id)

	var removed []models.Entity
	for _, rel := range models.Relations(kind) {
		if !rel.Cascade {
			continue
		}
		children := s.set(rel.Child)
		for _, child := range children.entities() {
			if rel.References(child, id) {
				children.remove(child.GetID())
				removed = append(removed, child)
			}
		}
	}
	return removed
}

// Verify проверяет инварианты связей между турами и их элементами.
// Нарушения только сообщаются, исправлять их должен слой редактирования.
func (s *Snapshot) Verify() []error {
	var violations []error

	owned := make(map[int64][]int64)
	for _, el := range s.TourElements.All() {
		if !s.Tours.Has(el.TourID) {
			violations = append(violations, fmt.Errorf("tourelement %d references unknown tour %d", el.ID, el.TourID))
		} else {
			owned[el.TourID] = append(owned[el.TourID], el.ID)
		}
		switch {
		case el.Type == models.TourElementVisit && el.ClientID == nil:
			violations = append(violations, fmt.Errorf("tourelement %d is a visit without client", el.ID))
		case el.Type != models.TourElementVisit && el.ClientID != nil:
			violations = append(violations, fmt.Errorf("tourelement %d of type %s carries client %d", el.ID, el.Type, *el.ClientID))
		}
	}

	for _, tour := range s.Tours.All() {
		listed := slices.Clone(tour.ElementIDs)
		actual := owned[tour.ID]
		slices.Sort(listed)
		slices.Sort(actual)
		if !slices.Equal(listed, actual) {
			violations = append(violations, fmt.Errorf("tour %d lists elements %v but owns %v", tour.ID, listed, actual))
		}
	}
	return violations
}
