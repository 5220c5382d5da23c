package snapshot

import (
	"sync"

	"github.com/iudanet/tourplan/internal/models"
)

// OpType тип операции, подтвержденной удаленным хранилищем
type OpType int

const (
	OpCreate OpType = iota
	OpUpdate
	OpDestroy
)

func (t OpType) String() string {
	switch t {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDestroy:
		return "destroy"
	}
	return "unknown"
}

// Op одна подтвержденная операция.
// Для create ID - это id, присвоенный сервером, OldID - временный id.
type Op struct {
	Kind  models.Kind
	Type  OpType
	ID    int64
	OldID int64
}

// Journal collects acknowledged operations of one upload.
// Safe for concurrent use by the kinds of a stage.
type Journal struct {
	mu  sync.Mutex
	ops []Op
}

// Record appends an operation.
func (j *Journal) Record(op Op) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.ops = append(j.ops, op)
}

// Ops returns a copy of the recorded operations in record order.
func (j *Journal) Ops() []Op {
	j.mu.Lock()
	defer j.mu.Unlock()
	result := make([]Op, len(j.ops))
	copy(result, j.ops)
	return result
}

// Len returns the number of recorded operations.
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.ops)
}
