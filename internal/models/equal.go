package models

import (
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// TimestampTolerance bounds the difference at which two time values are
// still considered equal when comparing records: the difference must be
// strictly below it. It absorbs the jitter that a serialization round-trip
// through the remote store introduces. The same tolerance is applied to
// every time-valued field.
var TimestampTolerance = 1000 * time.Millisecond

// Equal сравнивает две записи поле за полем:
// время с допуском TimestampTolerance, списки поэлементно (nil == пустой список),
// остальные поля по значению.
func Equal(a, b Entity) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	return cmp.Equal(a, b,
		cmp.Comparer(timeWithinTolerance),
		cmpopts.EquateEmpty(),
	)
}

// cmpopts.EquateApproxTime считает равными и значения ровно на границе допуска
func timeWithinTolerance(x, y time.Time) bool {
	d := x.Sub(y)
	if d < 0 {
		d = -d
	}
	return d < TimestampTolerance
}
