package snapshot

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/tourplan/internal/models"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func at(hour int) time.Time {
	return time.Date(2024, 12, 6, hour, 0, 0, 0, time.UTC)
}

// testSnapshot один тур с визитом и поездкой, два сотрудника, клиент с окном.
func testSnapshot() *Snapshot {
	s := New()
	s.Workers.Put(&models.Worker{ID: 7, Name: "Anna"})
	s.Workers.Put(&models.Worker{ID: 8, Name: "Ben"})
	s.WorkerAvailabilities.Put(&models.WorkerAvailability{ID: 1, WorkerID: 7, Start: at(8), End: at(16)})
	s.WorkerAvailabilities.Put(&models.WorkerAvailability{ID: 2, WorkerID: 8, Start: at(8).AddDate(0, 0, 1), End: at(16).AddDate(0, 0, 1)})
	s.Locations.Put(&models.Location{ID: 3, Name: "Hauptstraße 1", Latitude: 52.52, Longitude: 13.4})
	s.Clients.Put(&models.Client{ID: 5, Name: "Müller", VisitLocationID: 3})
	s.Clients.Put(&models.Client{ID: 6, Name: "Schmidt", VisitLocationID: 3})
	s.ClientAvailabilities.Put(&models.ClientAvailability{ID: 4, ClientID: 5, Start: at(9), End: at(12)})
	s.Tours.Put(&models.Tour{ID: 1, Date: "2024-12-06", Name: "Morning", WorkerIDs: []int64{7}, ElementIDs: []int64{11, 12}})
	s.TourElements.Put(&models.TourElement{ID: 11, TourID: 1, Type: models.TourElementDrive, Start: at(9), End: at(9).Add(25 * time.Minute)})
	s.TourElements.Put(&models.TourElement{ID: 12, TourID: 1, Type: models.TourElementVisit, ClientID: models.ClientRef(5), Start: at(10), End: at(11)})
	return s
}

func fetchedFrom(s *Snapshot) *Fetched {
	f := &Fetched{Records: make(map[models.Kind][]models.Entity), Failed: make(map[models.Kind]error)}
	for _, kind := range models.AllKinds {
		f.Records[kind] = s.Entities(kind)
	}
	return f
}

func TestCollection_OrderAndRekey(t *testing.T) {
	c := NewCollection(
		&models.Worker{ID: 3, Name: "c"},
		&models.Worker{ID: 1, Name: "a"},
		&models.Worker{ID: -1, Name: "new"},
	)
	assert.Equal(t, []int64{3, 1, -1}, c.IDs())

	c.Put(&models.Worker{ID: 1, Name: "a2"})
	assert.Equal(t, []int64{3, 1, -1}, c.IDs())

	require.True(t, c.Rekey(-1, 42))
	assert.Equal(t, []int64{3, 1, 42}, c.IDs())
	w, ok := c.Get(42)
	require.True(t, ok)
	assert.Equal(t, int64(42), w.ID)

	assert.False(t, c.Rekey(3, 1), "target id is taken")
	assert.False(t, c.Rekey(99, 100), "unknown id")

	assert.True(t, c.Delete(1))
	assert.False(t, c.Delete(1))
	assert.Equal(t, []int64{3, 42}, c.IDs())
	assert.Equal(t, 2, c.Len())
}

func TestSnapshot_CloneIsIndependent(t *testing.T) {
	s := testSnapshot()
	s.BaseLocation = &models.Location{ID: 3, Name: "Base"}
	s.DrivingTimes = &models.DrivingTimeMatrix{LocationsCSV: "3", Matrix: [][]float64{{0}}}
	s.MarkAbsent(models.KindLocation)

	cp := s.Clone()

	tour, _ := cp.Tours.Get(1)
	tour.ElementIDs[0] = 99
	tour.WorkerIDs = append(tour.WorkerIDs, 8)
	el, _ := cp.TourElements.Get(12)
	*el.ClientID = 6
	cp.Workers.Delete(7)
	cp.BaseLocation.Name = "Moved"
	cp.DrivingTimes.Matrix[0][0] = 1

	orig, _ := s.Tours.Get(1)
	assert.Equal(t, []int64{11, 12}, orig.ElementIDs)
	assert.Equal(t, []int64{7}, orig.WorkerIDs)
	origEl, _ := s.TourElements.Get(12)
	assert.Equal(t, int64(5), *origEl.ClientID)
	assert.True(t, s.Workers.Has(7))
	assert.Equal(t, "Base", s.BaseLocation.Name)
	assert.Equal(t, float64(0), s.DrivingTimes.Matrix[0][0])
	assert.True(t, cp.Absent(models.KindLocation))
}

func TestSnapshot_ReconcileID(t *testing.T) {
	s := testSnapshot()
	s.Tours.Put(&models.Tour{ID: -1, Date: "2024-12-07"})
	require.NoError(t, s.AddTourElement(&models.TourElement{ID: -1, TourID: -1, Type: models.TourElementBreak, Start: at(12), End: at(13)}))
	require.NoError(t, s.AddTourElement(&models.TourElement{ID: -2, TourID: -1, Type: models.TourElementDrive, Start: at(13), End: at(14)}))

	n, err := s.ReconcileID(models.KindTour, -1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.False(t, s.Tours.Has(-1))
	for _, el := range s.ElementsOfTour(2) {
		assert.Equal(t, int64(2), el.TourID)
	}

	n, err = s.ReconcileID(models.KindTourElement, -1, 13)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	tour, _ := s.Tours.Get(2)
	assert.Equal(t, []int64{13, -2}, tour.ElementIDs)

	_, err = s.ReconcileID(models.KindWorker, 7, 8)
	assert.Error(t, err)

	assert.Empty(t, s.Verify())
}

func TestSnapshot_CascadeDelete(t *testing.T) {
	s := testSnapshot()

	removed := s.CascadeDelete(models.KindTour, 1)
	assert.Len(t, removed, 2)
	assert.Zero(t, s.TourElements.Len())
	assert.False(t, s.Tours.Has(1))

	removed = s.CascadeDelete(models.KindClient, 5)
	require.Len(t, removed, 1)
	assert.Equal(t, models.KindClientAvailability, removed[0].Kind())

	// Location не имеет каскадных зависимостей
	assert.Empty(t, s.CascadeDelete(models.KindLocation, 3))
	assert.False(t, s.Locations.Has(3))
	assert.Equal(t, []int64{6}, s.Clients.IDs())
}

func TestSnapshot_Verify(t *testing.T) {
	s := testSnapshot()
	assert.Empty(t, s.Verify())

	s.TourElements.Put(&models.TourElement{ID: 13, TourID: 9, Type: models.TourElementBreak})
	s.TourElements.Put(&models.TourElement{ID: 14, TourID: 1, Type: models.TourElementDrive, ClientID: models.ClientRef(5)})
	el, _ := s.TourElements.Get(12)
	el.ClientID = nil

	violations := s.Verify()
	// 13: неизвестный тур; 14: поездка с клиентом; 12: визит без клиента; тур 1: список elements
	assert.Len(t, violations, 4)
}

func TestSnapshot_Helpers(t *testing.T) {
	s := testSnapshot()

	assert.Equal(t, 1, s.CountVisits())
	assert.Equal(t, 25*time.Minute, s.TotalDriveTime())
	assert.Equal(t, []string{"2024-12-06", "2024-12-07"}, s.Days())

	byDay := s.ToursByDay()
	assert.Len(t, byDay["2024-12-06"], 1)
	assert.Contains(t, byDay, "2024-12-07")
	assert.Empty(t, byDay["2024-12-07"])

	unassigned := s.UnassignedClients()
	require.Len(t, unassigned, 1)
	assert.Equal(t, int64(6), unassigned[0].ID)

	tour, _ := s.Tours.Get(1)
	workers := s.WorkersOfTour(tour)
	require.Len(t, workers, 1)
	assert.Equal(t, "Anna", workers[0].Name)

	av, ok := s.WorkerAvailabilityOnDay(8, "2024-12-07")
	require.True(t, ok)
	assert.Equal(t, int64(2), av.ID)
	_, ok = s.WorkerAvailabilityOnDay(8, "2024-12-06")
	assert.False(t, ok)

	assert.Equal(t, int64(-1), s.TempID(models.KindTourElement))
	s.TourElements.Put(&models.TourElement{ID: -4, TourID: 1})
	assert.Equal(t, int64(-5), s.TempID(models.KindTourElement))

	popped, ok := s.PopTourElement(1, 11)
	require.True(t, ok)
	assert.Equal(t, int64(11), popped.ID)
	assert.Equal(t, []int64{12}, tour.ElementIDs)
	_, ok = s.PopTourElement(1, 11)
	assert.False(t, ok)

	assert.Error(t, s.AddTourElement(&models.TourElement{ID: -9, TourID: 77}))

	assert.Equal(t, 1, s.RemoveWorkerFromTours(7))
	assert.Empty(t, tour.WorkerIDs)
}

func TestStore_LoadSnapshot(t *testing.T) {
	t.Run("first load sets original and working", func(t *testing.T) {
		store := NewStore(setupTestLogger())
		assert.Nil(t, store.Working())
		assert.Nil(t, store.Original())

		fetched := fetchedFrom(testSnapshot())
		require.NoError(t, store.LoadSnapshot(fetched))

		// загруженные данные не разделяют записи с Fetched
		fetched.Records[models.KindWorker][0].(*models.Worker).Name = "Mutated"
		w, _ := store.Working().Workers.Get(7)
		assert.Equal(t, "Anna", w.Name)

		store.Working().Workers.Delete(8)
		assert.True(t, store.Original().Workers.Has(8))
	})

	t.Run("reload keeps original", func(t *testing.T) {
		store := NewStore(setupTestLogger())
		require.NoError(t, store.LoadSnapshot(fetchedFrom(testSnapshot())))

		next := testSnapshot()
		next.Workers.Delete(8)
		require.NoError(t, store.LoadSnapshot(fetchedFrom(next)))

		assert.False(t, store.Working().Workers.Has(8))
		assert.True(t, store.Original().Workers.Has(8))
	})

	t.Run("failed kinds are absent", func(t *testing.T) {
		fetched := fetchedFrom(testSnapshot())
		delete(fetched.Records, models.KindTourElement)
		fetched.Failed[models.KindLocation] = assert.AnError

		store := NewStore(setupTestLogger())
		require.NoError(t, store.LoadSnapshot(fetched))
		assert.Equal(t, []models.Kind{models.KindLocation, models.KindTourElement}, store.Working().AbsentKinds())
		assert.Zero(t, store.Working().Locations.Len())
	})

	t.Run("required kind missing", func(t *testing.T) {
		fetched := fetchedFrom(testSnapshot())
		delete(fetched.Records, models.KindTour)

		store := NewStore(setupTestLogger(), WithRequiredKinds(models.KindTour))
		err := store.LoadSnapshot(fetched)
		assert.ErrorIs(t, err, ErrMissingKind)
		assert.Nil(t, store.Working())
	})

	t.Run("nothing fetched", func(t *testing.T) {
		store := NewStore(setupTestLogger())
		err := store.LoadSnapshot(&Fetched{})
		assert.ErrorIs(t, err, ErrNothingFetched)
	})
}

func TestStore_Rebase(t *testing.T) {
	store := NewStore(setupTestLogger())
	assert.ErrorIs(t, store.Rebase(), ErrNotLoaded)
	assert.ErrorIs(t, store.RebaseCommitted(&Journal{}), ErrNotLoaded)

	require.NoError(t, store.LoadSnapshot(fetchedFrom(testSnapshot())))
	working := store.Working()
	working.Workers.Put(&models.Worker{ID: 9, Name: "Carl"})
	require.NoError(t, store.Rebase())

	// дальнейшие правки working не видны в original
	w, _ := working.Workers.Get(9)
	w.Name = "Changed"
	orig, ok := store.Original().Workers.Get(9)
	require.True(t, ok)
	assert.Equal(t, "Carl", orig.Name)
}

func TestStore_RebaseCommitted(t *testing.T) {
	store := NewStore(setupTestLogger())
	require.NoError(t, store.LoadSnapshot(fetchedFrom(testSnapshot())))

	working := store.Working()
	// подтверждено: создание 100 (бывший -1), изменение 8, удаление тура 1
	working.Workers.Put(&models.Worker{ID: -1, Name: "New"})
	working.Workers.Put(&models.Worker{ID: -2, Name: ""})
	_, err := store.ReconcileID(models.KindWorker, -1, 100)
	require.NoError(t, err)
	w8, _ := working.Workers.Get(8)
	w8.Name = "Benjamin"
	w7, _ := working.Workers.Get(7)
	w7.Name = "Rejected rename"
	working.Tours.Delete(1)
	_, err = store.CascadeDelete(models.KindTour, 1)
	require.NoError(t, err)

	journal := &Journal{}
	journal.Record(Op{Kind: models.KindWorker, Type: OpCreate, ID: 100, OldID: -1})
	journal.Record(Op{Kind: models.KindWorker, Type: OpUpdate, ID: 8})
	journal.Record(Op{Kind: models.KindTour, Type: OpDestroy, ID: 1})
	require.NoError(t, store.RebaseCommitted(journal))

	original := store.Original()
	assert.True(t, original.Workers.Has(100))
	assert.False(t, original.Workers.Has(-2))
	o8, _ := original.Workers.Get(8)
	assert.Equal(t, "Benjamin", o8.Name)
	o7, _ := original.Workers.Get(7)
	assert.Equal(t, "Anna", o7.Name)
	assert.False(t, original.Tours.Has(1))
	assert.Zero(t, original.TourElements.Len())
}

func TestJournal(t *testing.T) {
	j := &Journal{}
	j.Record(Op{Kind: models.KindTour, Type: OpCreate, ID: 1, OldID: -1})
	ops := j.Ops()
	ops[0].ID = 99

	assert.Equal(t, int64(1), j.Ops()[0].ID)
	assert.Equal(t, 1, j.Len())
	assert.Equal(t, "create", OpCreate.String())
	assert.Equal(t, "destroy", OpDestroy.String())
}
