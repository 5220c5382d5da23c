package storage

import (
	"context"

	"github.com/iudanet/tourplan/internal/models"
)

// RecordStorage хранит записи плана всех семи типов.
//
// Удаление родителя каскадно удаляет его доступности и элементы тура.
// Локацию, на которую ссылается клиент, и клиента, которого посещает элемент,
// удалить нельзя: возвращается ConstraintError с ErrConstraint.
type RecordStorage interface {
	// List returns all records of the kind ordered by id
	List(ctx context.Context, kind models.Kind) ([]models.Entity, error)

	// Get returns ErrNotFound if the record doesn't exist
	Get(ctx context.Context, kind models.Kind, id int64) (models.Entity, error)

	// Create assigns a new id; the id of e is ignored.
	// Returns ConstraintError with ErrInvalidReference for unknown parents.
	Create(ctx context.Context, e models.Entity) (models.Entity, error)

	// Update replaces the stored record with the id of e.
	// Tour.ElementIDs is derived from tour elements and never written.
	Update(ctx context.Context, e models.Entity) (models.Entity, error)

	// Delete removes the record and the records cascading from it
	Delete(ctx context.Context, kind models.Kind, id int64) error

	// Locations returns the locations with the given ids, unknown ids are skipped
	Locations(ctx context.Context, ids []int64) ([]*models.Location, error)
}
