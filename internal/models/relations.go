package models

import "slices"

// Relation описывает ссылку записей типа Child на записи типа Parent.
// Reconciliation переписывает такие ссылки после того, как сервер присвоил
// родителю новый id; Cascade означает, что сервер удаляет детей вместе с родителем.
type Relation struct {
	refs    func(child Entity) []int64
	rewrite func(child Entity, oldID, newID int64) bool
	Field   string
	Parent  Kind
	Child   Kind
	Cascade bool
}

// References reports whether child points at the parent with the given id.
func (r Relation) References(child Entity, parentID int64) bool {
	if child.Kind() != r.Child {
		return false
	}
	return slices.Contains(r.refs(child), parentID)
}

// ParentIDs returns every parent id the child references through this relation.
func (r Relation) ParentIDs(child Entity) []int64 {
	if child.Kind() != r.Child {
		return nil
	}
	return r.refs(child)
}

// Rewrite replaces references to oldID with newID and reports whether anything changed.
func (r Relation) Rewrite(child Entity, oldID, newID int64) bool {
	if child.Kind() != r.Child {
		return false
	}
	return r.rewrite(child, oldID, newID)
}

var relations = []Relation{
	{
		Parent:  KindTour,
		Child:   KindTourElement,
		Field:   "tour",
		Cascade: true,
		refs:    func(e Entity) []int64 { return []int64{e.(*TourElement).TourID} },
		rewrite: func(e Entity, oldID, newID int64) bool {
			te := e.(*TourElement)
			if te.TourID != oldID {
				return false
			}
			te.TourID = newID
			return true
		},
	},
	{
		Parent:  KindClient,
		Child:   KindClientAvailability,
		Field:   "client",
		Cascade: true,
		refs:    func(e Entity) []int64 { return []int64{e.(*ClientAvailability).ClientID} },
		rewrite: func(e Entity, oldID, newID int64) bool {
			ca := e.(*ClientAvailability)
			if ca.ClientID != oldID {
				return false
			}
			ca.ClientID = newID
			return true
		},
	},
	{
		Parent:  KindWorker,
		Child:   KindWorkerAvailability,
		Field:   "worker",
		Cascade: true,
		refs:    func(e Entity) []int64 { return []int64{e.(*WorkerAvailability).WorkerID} },
		rewrite: func(e Entity, oldID, newID int64) bool {
			wa := e.(*WorkerAvailability)
			if wa.WorkerID != oldID {
				return false
			}
			wa.WorkerID = newID
			return true
		},
	},
	{
		// Визиты ссылаются на клиента; сервер не удаляет их каскадом.
		Parent: KindClient,
		Child:  KindTourElement,
		Field:  "client",
		refs: func(e Entity) []int64 {
			if id := e.(*TourElement).ClientID; id != nil {
				return []int64{*id}
			}
			return nil
		},
		rewrite: func(e Entity, oldID, newID int64) bool {
			te := e.(*TourElement)
			if te.ClientID == nil || *te.ClientID != oldID {
				return false
			}
			te.ClientID = ClientRef(newID)
			return true
		},
	},
	{
		// Обратная сторона связи Tour <-> TourElement: после создания элемента
		// в списке elements тура должен оказаться серверный id.
		Parent: KindTourElement,
		Child:  KindTour,
		Field:  "elements",
		refs:   func(e Entity) []int64 { return e.(*Tour).ElementIDs },
		rewrite: func(e Entity, oldID, newID int64) bool {
			return replaceID(e.(*Tour).ElementIDs, oldID, newID)
		},
	},
}

// Relations returns the relations in which kind is the referenced (parent) side.
func Relations(parent Kind) []Relation {
	var result []Relation
	for _, r := range relations {
		if r.Parent == parent {
			result = append(result, r)
		}
	}
	return result
}

// RelationsTo returns the relations in which kind holds the reference.
func RelationsTo(child Kind) []Relation {
	var result []Relation
	for _, r := range relations {
		if r.Child == child {
			result = append(result, r)
		}
	}
	return result
}

func replaceID(ids []int64, oldID, newID int64) bool {
	changed := false
	for i, id := range ids {
		if id == oldID {
			ids[i] = newID
			changed = true
		}
	}
	return changed
}
