package changeset

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/iudanet/tourplan/internal/client/snapshot"
	"github.com/iudanet/tourplan/internal/models"
)

var start = time.Date(2024, 12, 6, 9, 0, 0, 0, time.UTC)

func baseSnapshot() *snapshot.Snapshot {
	s := snapshot.New()
	s.Workers.Put(&models.Worker{ID: 1, Name: "Anna"})
	s.Workers.Put(&models.Worker{ID: 2, Name: "Ben"})
	s.Clients.Put(&models.Client{ID: 5, Name: "Müller", VisitLocationID: 3})
	s.Locations.Put(&models.Location{ID: 3, Name: "Depot", Latitude: 52.5, Longitude: 13.4})
	s.Tours.Put(&models.Tour{ID: 1, Date: "2024-12-06", WorkerIDs: []int64{1}, ElementIDs: []int64{11}})
	s.TourElements.Put(&models.TourElement{ID: 11, TourID: 1, Type: models.TourElementVisit, ClientID: models.ClientRef(5), Start: start, End: start.Add(time.Hour)})
	s.ClientAvailabilities.Put(&models.ClientAvailability{ID: 4, ClientID: 5, Start: start, End: start.Add(3 * time.Hour)})
	return s
}

func TestCompute_Idempotent(t *testing.T) {
	s := baseSnapshot()

	assert.True(t, Compute(s, s).Empty())
	assert.True(t, Compute(s, s.Clone()).Empty())
	assert.Empty(t, Compute(s, s).Summary())
	assert.Equal(t, "no changes", Compute(s, s).String())
}

func TestCompute_Classification(t *testing.T) {
	original := baseSnapshot()
	working := original.Clone()

	working.Workers.Put(&models.Worker{ID: -1, Name: "Carl"})
	working.Workers.Delete(2)
	w1, _ := working.Workers.Get(1)
	w1.Name = "Anna Maria"

	// сдвиг меньше секунды - не изменение
	el, _ := working.TourElements.Get(11)
	el.Start = el.Start.Add(400 * time.Millisecond)

	tour, _ := working.Tours.Get(1)
	tour.WorkerIDs = append(tour.WorkerIDs, 2)

	cs := Compute(original, working)

	require.Len(t, cs.Workers.Added, 1)
	assert.Equal(t, int64(-1), cs.Workers.Added[0].ID)
	require.Len(t, cs.Workers.Changed, 1)
	assert.Equal(t, "Anna Maria", cs.Workers.Changed[0].Name)
	require.Len(t, cs.Workers.Removed, 1)
	assert.Equal(t, "Ben", cs.Workers.Removed[0].Name)

	assert.Equal(t, 1, cs.Tours.Len())
	assert.Zero(t, cs.TourElements.Len())
	assert.Zero(t, cs.ClientAvailabilities.Len())

	assert.Equal(t, []KindSummary{
		{Kind: models.KindWorker, Added: 1, Changed: 1, Removed: 1},
		{Kind: models.KindTour, Changed: 1},
	}, cs.Summary())
	assert.Equal(t, "worker +1 ~1 -1, tour +0 ~1 -0", cs.String())
	assert.False(t, cs.Empty())

	// Added и Changed указывают на записи working
	assert.Same(t, w1, cs.Workers.Changed[0])
}

func TestCompute_OrderFollowsWorking(t *testing.T) {
	original := snapshot.New()
	working := snapshot.New()
	for _, id := range []int64{-3, -1, -2} {
		working.Locations.Put(&models.Location{ID: id, Name: fmt.Sprint(id)})
	}

	ids := func(records []*models.Location) []int64 {
		var result []int64
		for _, r := range records {
			result = append(result, r.ID)
		}
		return result
	}
	assert.Equal(t, []int64{-3, -1, -2}, ids(Compute(original, working).Locations.Added))
}

// Каждый id попадает ровно в одну группу: added, changed, removed или ни в одну.
func TestCompute_ExactlyOnce(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for round := 0; round < 50; round++ {
		original := snapshot.New()
		working := snapshot.New()
		for id := int64(1); id <= 30; id++ {
			w := &models.WorkerAvailability{ID: id, WorkerID: id % 4, Start: start, End: start.Add(time.Hour)}
			switch rng.Intn(4) {
			case 0: // только в original
				original.WorkerAvailabilities.Put(w)
			case 1: // только в working
				working.WorkerAvailabilities.Put(w)
			case 2: // одинаковые
				original.WorkerAvailabilities.Put(w)
				working.WorkerAvailabilities.Put(w.Clone())
			case 3: // различаются
				original.WorkerAvailabilities.Put(w)
				changed := w.Clone()
				changed.End = changed.End.Add(time.Duration(rng.Intn(3)+2) * time.Second)
				working.WorkerAvailabilities.Put(changed)
			}
		}

		cs := Compute(original, working)
		seen := make(map[int64]int)
		for _, group := range [][]*models.WorkerAvailability{
			cs.WorkerAvailabilities.Added,
			cs.WorkerAvailabilities.Changed,
			cs.WorkerAvailabilities.Removed,
		} {
			for _, r := range group {
				seen[r.ID]++
			}
		}

		for id := int64(1); id <= 30; id++ {
			_, inOriginal := original.WorkerAvailabilities.Get(id)
			_, inWorking := working.WorkerAvailabilities.Get(id)
			o, _ := original.WorkerAvailabilities.Get(id)
			w, _ := working.WorkerAvailabilities.Get(id)

			switch {
			case inOriginal && inWorking && models.Equal(o, w):
				assert.Zero(t, seen[id], "unchanged id %d must not appear", id)
			default:
				assert.Equal(t, 1, seen[id], "id %d", id)
			}
		}
	}
}

func TestForKind(t *testing.T) {
	original := baseSnapshot()
	working := original.Clone()
	working.TourElements.Delete(11)
	working.ClientAvailabilities.Put(&models.ClientAvailability{ID: -1, ClientID: 5, Start: start, End: start.Add(time.Hour)})

	cs := Compute(original, working)
	for _, kind := range models.AllKinds {
		kc := cs.ForKind(kind)
		assert.Equal(t, kind, kc.Kind)
		switch kind {
		case models.KindTourElement:
			require.Len(t, kc.Removed, 1)
			assert.Equal(t, int64(11), kc.Removed[0].GetID())
		case models.KindClientAvailability:
			require.Len(t, kc.Added, 1)
			assert.Equal(t, models.KindClientAvailability, kc.Added[0].Kind())
		default:
			assert.Zero(t, kc.Len())
		}
	}
}

func TestSummary_YAML(t *testing.T) {
	original := baseSnapshot()
	working := original.Clone()
	working.Workers.Delete(1)

	out, err := yaml.Marshal(Compute(original, working).Summary())
	require.NoError(t, err)
	assert.Contains(t, string(out), "kind: worker")
	assert.Contains(t, string(out), "removed: 1")
}
