package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iudanet/tourplan/internal/models"
	"github.com/iudanet/tourplan/internal/server/storage"
)

// scanner is satisfied by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

// queryer is satisfied by *sql.DB and *sql.Tx
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// reference ссылка записи на родителя, проверяется перед записью
type reference struct {
	field string
	table string
	id    int64
}

// table описывает, как тип записи хранится в своей таблице.
// Связи тура (workers, elements) хранятся отдельно.
type table struct {
	values  func(models.Entity) []any
	scan    func(scanner) (models.Entity, error)
	refs    func(models.Entity) []reference
	name    string
	columns []string
}

var tables = map[models.Kind]table{
	models.KindWorker: {
		name:    "workers",
		columns: []string{"name"},
		values: func(e models.Entity) []any {
			w := e.(*models.Worker)
			return []any{w.Name}
		},
		scan: func(sc scanner) (models.Entity, error) {
			w := &models.Worker{}
			if err := sc.Scan(&w.ID, &w.Name); err != nil {
				return nil, err
			}
			return w, nil
		},
	},
	models.KindWorkerAvailability: {
		name:    "worker_availabilities",
		columns: []string{"worker_id", "start_at", "end_at"},
		values: func(e models.Entity) []any {
			a := e.(*models.WorkerAvailability)
			return []any{a.WorkerID, a.Start.UTC(), a.End.UTC()}
		},
		scan: func(sc scanner) (models.Entity, error) {
			a := &models.WorkerAvailability{}
			if err := sc.Scan(&a.ID, &a.WorkerID, &a.Start, &a.End); err != nil {
				return nil, err
			}
			a.Start, a.End = a.Start.UTC(), a.End.UTC()
			return a, nil
		},
		refs: func(e models.Entity) []reference {
			return []reference{{field: "worker", table: "workers", id: e.(*models.WorkerAvailability).WorkerID}}
		},
	},
	models.KindClient: {
		name:    "clients",
		columns: []string{"name", "visit_location_id"},
		values: func(e models.Entity) []any {
			c := e.(*models.Client)
			return []any{c.Name, c.VisitLocationID}
		},
		scan: func(sc scanner) (models.Entity, error) {
			c := &models.Client{}
			if err := sc.Scan(&c.ID, &c.Name, &c.VisitLocationID); err != nil {
				return nil, err
			}
			return c, nil
		},
		refs: func(e models.Entity) []reference {
			return []reference{{field: "visit_location", table: "locations", id: e.(*models.Client).VisitLocationID}}
		},
	},
	models.KindClientAvailability: {
		name:    "client_availabilities",
		columns: []string{"client_id", "start_at", "end_at"},
		values: func(e models.Entity) []any {
			a := e.(*models.ClientAvailability)
			return []any{a.ClientID, a.Start.UTC(), a.End.UTC()}
		},
		scan: func(sc scanner) (models.Entity, error) {
			a := &models.ClientAvailability{}
			if err := sc.Scan(&a.ID, &a.ClientID, &a.Start, &a.End); err != nil {
				return nil, err
			}
			a.Start, a.End = a.Start.UTC(), a.End.UTC()
			return a, nil
		},
		refs: func(e models.Entity) []reference {
			return []reference{{field: "client", table: "clients", id: e.(*models.ClientAvailability).ClientID}}
		},
	},
	models.KindLocation: {
		name:    "locations",
		columns: []string{"name", "latitude", "longitude"},
		values: func(e models.Entity) []any {
			l := e.(*models.Location)
			return []any{l.Name, l.Latitude, l.Longitude}
		},
		scan: func(sc scanner) (models.Entity, error) {
			l := &models.Location{}
			if err := sc.Scan(&l.ID, &l.Name, &l.Latitude, &l.Longitude); err != nil {
				return nil, err
			}
			return l, nil
		},
	},
	models.KindTour: {
		name:    "tours",
		columns: []string{"name", "date"},
		values: func(e models.Entity) []any {
			t := e.(*models.Tour)
			return []any{t.Name, t.Date}
		},
		scan: func(sc scanner) (models.Entity, error) {
			t := &models.Tour{WorkerIDs: []int64{}, ElementIDs: []int64{}}
			if err := sc.Scan(&t.ID, &t.Name, &t.Date); err != nil {
				return nil, err
			}
			return t, nil
		},
		refs: func(e models.Entity) []reference {
			t := e.(*models.Tour)
			refs := make([]reference, 0, len(t.WorkerIDs))
			for _, id := range t.WorkerIDs {
				refs = append(refs, reference{field: "workers", table: "workers", id: id})
			}
			return refs
		},
	},
	models.KindTourElement: {
		name:    "tour_elements",
		columns: []string{"tour_id", "type", "client_id", "start_at", "end_at"},
		values: func(e models.Entity) []any {
			el := e.(*models.TourElement)
			return []any{el.TourID, string(el.Type), el.ClientID, el.Start.UTC(), el.End.UTC()}
		},
		scan: func(sc scanner) (models.Entity, error) {
			el := &models.TourElement{}
			var elType string
			var client sql.NullInt64
			if err := sc.Scan(&el.ID, &el.TourID, &elType, &client, &el.Start, &el.End); err != nil {
				return nil, err
			}
			el.Type = models.TourElementType(elType)
			if client.Valid {
				el.ClientID = models.ClientRef(client.Int64)
			}
			el.Start, el.End = el.Start.UTC(), el.End.UTC()
			return el, nil
		},
		refs: func(e models.Entity) []reference {
			el := e.(*models.TourElement)
			refs := []reference{{field: "tour", table: "tours", id: el.TourID}}
			if el.ClientID != nil {
				refs = append(refs, reference{field: "client", table: "clients", id: *el.ClientID})
			}
			return refs
		},
	},
}

func tableOf(kind models.Kind) (table, error) {
	t, ok := tables[kind]
	if !ok {
		return table{}, fmt.Errorf("unknown entity kind %d", int(kind))
	}
	return t, nil
}

func (t table) selectQuery() string {
	return "SELECT id, " + strings.Join(t.columns, ", ") + " FROM " + t.name
}

// List returns all records of the kind ordered by id
func (s *Storage) List(ctx context.Context, kind models.Kind) ([]models.Entity, error) {
	t, err := tableOf(kind)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, t.selectQuery()+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", kind, err)
	}
	// rows закрываются до загрузки связей тура: соединение с базой одно
	records, err := scanAll(rows, t)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", kind, err)
	}

	if kind == models.KindTour {
		if err := loadTourLinks(ctx, s.db, records, 0); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func scanAll(rows *sql.Rows, t table) ([]models.Entity, error) {
	defer func() {
		_ = rows.Close()
	}()

	records := []models.Entity{}
	for rows.Next() {
		e, err := t.scan(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, e)
	}
	return records, rows.Err()
}

// Get returns ErrNotFound if the record doesn't exist
func (s *Storage) Get(ctx context.Context, kind models.Kind, id int64) (models.Entity, error) {
	return get(ctx, s.db, kind, id)
}

func get(ctx context.Context, q queryer, kind models.Kind, id int64) (models.Entity, error) {
	t, err := tableOf(kind)
	if err != nil {
		return nil, err
	}

	e, err := t.scan(q.QueryRowContext(ctx, t.selectQuery()+" WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s %d: %w", kind, id, err)
	}

	if kind == models.KindTour {
		if err := loadTourLinks(ctx, q, []models.Entity{e}, id); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// loadTourLinks заполняет WorkerIDs и производный ElementIDs.
// tourID == 0 загружает связи всех туров.
func loadTourLinks(ctx context.Context, q queryer, records []models.Entity, tourID int64) error {
	tours := make(map[int64]*models.Tour, len(records))
	for _, e := range records {
		tours[e.GetID()] = e.(*models.Tour)
	}

	filter, args := "", []any{}
	if tourID != 0 {
		filter, args = " WHERE tour_id = ?", []any{tourID}
	}

	links := []struct {
		add   func(t *models.Tour, id int64)
		query string
	}{
		{
			query: "SELECT tour_id, worker_id FROM tour_workers" + filter + " ORDER BY tour_id, position",
			add:   func(t *models.Tour, id int64) { t.WorkerIDs = append(t.WorkerIDs, id) },
		},
		{
			query: "SELECT tour_id, id FROM tour_elements" + filter + " ORDER BY tour_id, start_at, id",
			add:   func(t *models.Tour, id int64) { t.ElementIDs = append(t.ElementIDs, id) },
		},
	}

	for _, link := range links {
		rows, err := q.QueryContext(ctx, link.query, args...)
		if err != nil {
			return fmt.Errorf("failed to query tour links: %w", err)
		}
		for rows.Next() {
			var owner, id int64
			if err := rows.Scan(&owner, &id); err != nil {
				_ = rows.Close()
				return fmt.Errorf("failed to scan tour link: %w", err)
			}
			if t, ok := tours[owner]; ok {
				link.add(t, id)
			}
		}
		err = rows.Err()
		_ = rows.Close()
		if err != nil {
			return fmt.Errorf("failed to read tour links: %w", err)
		}
	}
	return nil
}

// Create assigns a new id and returns the stored record
func (s *Storage) Create(ctx context.Context, e models.Entity) (models.Entity, error) {
	t, err := tableOf(e.Kind())
	if err != nil {
		return nil, err
	}

	var created models.Entity
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		if err := checkRefs(ctx, tx, t, e); err != nil {
			return err
		}

		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(t.columns)), ", ")
		query := "INSERT INTO " + t.name + " (" + strings.Join(t.columns, ", ") + ") VALUES (" + placeholders + ")"
		result, err := tx.ExecContext(ctx, query, t.values(e)...)
		if err != nil {
			return fmt.Errorf("failed to insert %s: %w", e.Kind(), err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get inserted id: %w", err)
		}

		if tour, ok := e.(*models.Tour); ok {
			if err := writeTourWorkers(ctx, tx, id, tour.WorkerIDs); err != nil {
				return err
			}
		}

		created, err = get(ctx, tx, e.Kind(), id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Record created", "kind", e.Kind(), "id", created.GetID())
	return created, nil
}

// Update replaces the stored record with the id of e
func (s *Storage) Update(ctx context.Context, e models.Entity) (models.Entity, error) {
	t, err := tableOf(e.Kind())
	if err != nil {
		return nil, err
	}

	var updated models.Entity
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		if err := checkExists(ctx, tx, t, e.GetID()); err != nil {
			return err
		}
		if err := checkRefs(ctx, tx, t, e); err != nil {
			return err
		}

		sets := make([]string, len(t.columns))
		for i, col := range t.columns {
			sets[i] = col + " = ?"
		}
		query := "UPDATE " + t.name + " SET " + strings.Join(sets, ", ") + " WHERE id = ?"
		if _, err := tx.ExecContext(ctx, query, append(t.values(e), e.GetID())...); err != nil {
			return fmt.Errorf("failed to update %s %d: %w", e.Kind(), e.GetID(), err)
		}

		if tour, ok := e.(*models.Tour); ok {
			if _, err := tx.ExecContext(ctx, "DELETE FROM tour_workers WHERE tour_id = ?", tour.ID); err != nil {
				return fmt.Errorf("failed to reset tour workers: %w", err)
			}
			if err := writeTourWorkers(ctx, tx, tour.ID, tour.WorkerIDs); err != nil {
				return err
			}
		}

		updated, err = get(ctx, tx, e.Kind(), e.GetID())
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the record; availabilities, tour elements and tour links cascade
func (s *Storage) Delete(ctx context.Context, kind models.Kind, id int64) error {
	t, err := tableOf(kind)
	if err != nil {
		return err
	}

	err = s.inTx(ctx, func(tx *sql.Tx) error {
		if err := checkExists(ctx, tx, t, id); err != nil {
			return err
		}
		if err := checkRestrict(ctx, tx, kind, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+t.name+" WHERE id = ?", id); err != nil {
			if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
				return &storage.ConstraintError{Err: storage.ErrConstraint, Message: fmt.Sprintf("%s %d is still referenced", kind, id)}
			}
			return fmt.Errorf("failed to delete %s %d: %w", kind, id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Debug("Record deleted", "kind", kind, "id", id)
	return nil
}

// Locations returns the locations with the given ids, unknown ids are skipped
func (s *Storage) Locations(ctx context.Context, ids []int64) ([]*models.Location, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	t := tables[models.KindLocation]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")

	rows, err := s.db.QueryContext(ctx, t.selectQuery()+" WHERE id IN ("+placeholders+") ORDER BY id", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	records, err := scanAll(rows, t)
	if err != nil {
		return nil, fmt.Errorf("failed to scan locations: %w", err)
	}

	locations := make([]*models.Location, len(records))
	for i, e := range records {
		locations[i] = e.(*models.Location)
	}
	return locations, nil
}

func checkExists(ctx context.Context, q queryer, t table, id int64) error {
	var exists bool
	if err := q.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM "+t.name+" WHERE id = ?)", id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check %s: %w", t.name, err)
	}
	if !exists {
		return storage.ErrNotFound
	}
	return nil
}

// checkRefs проверяет, что родители записи существуют
func checkRefs(ctx context.Context, q queryer, t table, e models.Entity) error {
	if t.refs == nil {
		return nil
	}
	for _, ref := range t.refs(e) {
		err := checkExists(ctx, q, tables[kindOfTable(ref.table)], ref.id)
		if errors.Is(err, storage.ErrNotFound) {
			return &storage.ConstraintError{
				Err:     storage.ErrInvalidReference,
				Field:   ref.field,
				Message: fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", ref.id),
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func kindOfTable(name string) models.Kind {
	for kind, t := range tables {
		if t.name == name {
			return kind
		}
	}
	return 0
}

// checkRestrict запрещает удаление локаций клиентов и посещаемых клиентов
func checkRestrict(ctx context.Context, q queryer, kind models.Kind, id int64) error {
	var query, what string
	switch kind {
	case models.KindLocation:
		query, what = "SELECT COUNT(*) FROM clients WHERE visit_location_id = ?", "client(s) visited at"
	case models.KindClient:
		query, what = "SELECT COUNT(*) FROM tour_elements WHERE client_id = ?", "tour element(s) visiting"
	default:
		return nil
	}

	var n int
	if err := q.QueryRowContext(ctx, query, id).Scan(&n); err != nil {
		return fmt.Errorf("failed to check references of %s %d: %w", kind, id, err)
	}
	if n > 0 {
		return &storage.ConstraintError{
			Err:     storage.ErrConstraint,
			Message: fmt.Sprintf("cannot delete %s %d: %d %s it", kind, id, n, what),
		}
	}
	return nil
}

// writeTourWorkers сохраняет порядок сотрудников тура, повторы пропускаются
func writeTourWorkers(ctx context.Context, tx *sql.Tx, tourID int64, workerIDs []int64) error {
	seen := make(map[int64]bool, len(workerIDs))
	for pos, workerID := range workerIDs {
		if seen[workerID] {
			continue
		}
		seen[workerID] = true
		_, err := tx.ExecContext(ctx,
			"INSERT INTO tour_workers (tour_id, worker_id, position) VALUES (?, ?, ?)",
			tourID, workerID, pos,
		)
		if err != nil {
			return fmt.Errorf("failed to link worker %d to tour %d: %w", workerID, tourID, err)
		}
	}
	return nil
}

func (s *Storage) inTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
