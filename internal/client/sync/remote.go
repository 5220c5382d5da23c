package sync

import (
	"context"

	"github.com/iudanet/tourplan/internal/models"
)

//go:generate moq -out remote_mock.go . RemoteStore

// RemoteStore удаленное хранилище записей с CRUD операциями по каждому типу.
// Реализуется api.Client.
type RemoteStore interface {
	// List returns every record of the kind
	List(ctx context.Context, kind models.Kind) ([]models.Entity, error)

	// Create stores a new record and returns it with the id assigned by the store
	Create(ctx context.Context, e models.Entity) (models.Entity, error)

	// Update stores a changed record
	Update(ctx context.Context, e models.Entity) (models.Entity, error)

	// Destroy deletes a record; the store deletes its dependents itself
	Destroy(ctx context.Context, kind models.Kind, id int64) error

	// BaseLocation returns the location tours start from
	BaseLocation(ctx context.Context) (*models.Location, error)

	// DrivingTimeMatrix returns driving times between the given locations
	DrivingTimeMatrix(ctx context.Context, locationIDs []int64) (*models.DrivingTimeMatrix, error)
}
