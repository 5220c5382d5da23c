package snapshot

import (
	"fmt"
	"slices"

	"github.com/iudanet/tourplan/internal/models"
)

// Collection хранит записи одного типа по id.
// Порядок обхода совпадает с порядком вставки: он определяет порядок
// запросов при выгрузке, но не влияет на результат сравнения.
type Collection[T models.Entity] struct {
	items map[int64]T
	order []int64
}

// NewCollection creates a collection holding the given records in order.
func NewCollection[T models.Entity](records ...T) *Collection[T] {
	c := &Collection[T]{items: make(map[int64]T, len(records))}
	for _, r := range records {
		c.Put(r)
	}
	return c
}

// Get returns the record with the given id.
func (c *Collection[T]) Get(id int64) (T, bool) {
	r, ok := c.items[id]
	return r, ok
}

// Has reports whether a record with the id exists.
func (c *Collection[T]) Has(id int64) bool {
	_, ok := c.items[id]
	return ok
}

// Put stores the record under its id. Replacing an existing record keeps its position.
func (c *Collection[T]) Put(r T) {
	id := r.GetID()
	if _, ok := c.items[id]; !ok {
		c.order = append(c.order, id)
	}
	c.items[id] = r
}

// Delete removes the record and reports whether it existed.
func (c *Collection[T]) Delete(id int64) bool {
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	c.order = slices.DeleteFunc(c.order, func(v int64) bool { return v == id })
	return true
}

// Rekey moves the record stored under oldID to newID, sets its id field
// and keeps its position. Returns false if oldID is unknown or newID is taken.
func (c *Collection[T]) Rekey(oldID, newID int64) bool {
	r, ok := c.items[oldID]
	if !ok {
		return false
	}
	if oldID == newID {
		return true
	}
	if _, taken := c.items[newID]; taken {
		return false
	}
	r.SetID(newID)
	delete(c.items, oldID)
	c.items[newID] = r
	c.order[slices.Index(c.order, oldID)] = newID
	return true
}

// Len returns the number of records.
func (c *Collection[T]) Len() int {
	return len(c.order)
}

// IDs returns ids in insertion order.
func (c *Collection[T]) IDs() []int64 {
	return slices.Clone(c.order)
}

// All returns records in insertion order. The records are live, not copies.
func (c *Collection[T]) All() []T {
	result := make([]T, 0, len(c.order))
	for _, id := range c.order {
		result = append(result, c.items[id])
	}
	return result
}

// Filter returns the records matching the predicate, in insertion order.
func (c *Collection[T]) Filter(match func(T) bool) []T {
	var result []T
	for _, id := range c.order {
		if r := c.items[id]; match(r) {
			result = append(result, r)
		}
	}
	return result
}

// Clone returns a deep copy: every record is cloned, nothing is shared.
func (c *Collection[T]) Clone() *Collection[T] {
	cp := &Collection[T]{
		items: make(map[int64]T, len(c.items)),
		order: slices.Clone(c.order),
	}
	for id, r := range c.items {
		cp.items[id] = r.CloneEntity().(T)
	}
	return cp
}

// entitySet - нетипизированный вид коллекции для обхода по models.Kind
type entitySet interface {
	entity(id int64) (models.Entity, bool)
	putEntity(e models.Entity) error
	remove(id int64) bool
	rekey(oldID, newID int64) bool
	entities() []models.Entity
	ids() []int64
	size() int
}

func (c *Collection[T]) entity(id int64) (models.Entity, bool) {
	r, ok := c.items[id]
	if !ok {
		return nil, false
	}
	return r, true
}

func (c *Collection[T]) putEntity(e models.Entity) error {
	r, ok := e.(T)
	if !ok {
		return fmt.Errorf("%w: got %s", ErrKindMismatch, e.Kind())
	}
	c.Put(r)
	return nil
}

func (c *Collection[T]) remove(id int64) bool { return c.Delete(id) }

func (c *Collection[T]) rekey(oldID, newID int64) bool { return c.Rekey(oldID, newID) }

func (c *Collection[T]) entities() []models.Entity {
	result := make([]models.Entity, 0, len(c.order))
	for _, id := range c.order {
		result = append(result, c.items[id])
	}
	return result
}

func (c *Collection[T]) ids() []int64 { return c.IDs() }

func (c *Collection[T]) size() int { return c.Len() }
