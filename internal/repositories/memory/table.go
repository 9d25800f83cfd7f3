package memory

import (
	"github.com/SAP-F-2025/scms/internal/models"
	"github.com/SAP-F-2025/scms/internal/repositories"
)

// table is one collection: records by normalized id plus insertion order.
// Callers hold the store lock.
type table[T any] struct {
	rows  map[models.ID]T
	order []models.ID
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[models.ID]T)}
}

func (t *table[T]) get(id models.ID) (T, bool) {
	row, ok := t.rows[models.NormalizeID(id)]
	return row, ok
}

// nextID returns a fresh id that no row uses
func (t *table[T]) nextID() models.ID {
	for {
		id := models.NewID()
		if _, taken := t.rows[id]; !taken {
			return id
		}
	}
}

func (t *table[T]) insert(id models.ID, row T) error {
	id = models.NormalizeID(id)
	if _, taken := t.rows[id]; taken {
		return repositories.ErrConflict
	}
	t.rows[id] = row
	t.order = append(t.order, id)
	return nil
}

func (t *table[T]) replace(id models.ID, row T) error {
	id = models.NormalizeID(id)
	if _, ok := t.rows[id]; !ok {
		return repositories.ErrNotFound
	}
	t.rows[id] = row
	return nil
}

func (t *table[T]) remove(id models.ID) error {
	id = models.NormalizeID(id)
	if _, ok := t.rows[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(t.rows, id)
	for i, existing := range t.order {
		if existing == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

// all returns the rows in insertion order
func (t *table[T]) all() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out
}
