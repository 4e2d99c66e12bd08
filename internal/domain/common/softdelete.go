package common

import "time"

// Item is implemented by every child collection item. Items are value types,
// so mutation returns a modified copy.
type Item[T any] interface {
	ItemID() string
	WithID(id string) T
	DeletedTime() *time.Time
	WithDeletedAt(at *time.Time) T
}

// IsDeleted reports whether the item carries a soft-delete marker
func IsDeleted[T Item[T]](item T) bool {
	return item.DeletedTime() != nil
}

// EnsureIDs returns a copy of items where every empty id is replaced by newID().
func EnsureIDs[T Item[T]](items []T, newID func() string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item.ItemID() == "" {
			item = item.WithID(newID())
		}
		out = append(out, item)
	}
	return out
}

// FindIndex returns the position of the item with the given id, or -1.
func FindIndex[T Item[T]](items []T, id string) int {
	for i, item := range items {
		if item.ItemID() == id {
			return i
		}
	}
	return -1
}

// Upsert replaces the item sharing the same id or appends it. The input slice
// is not modified.
func Upsert[T Item[T]](items []T, item T) []T {
	out := make([]T, len(items), len(items)+1)
	copy(out, items)
	if i := FindIndex(out, item.ItemID()); i >= 0 {
		out[i] = item
		return out
	}
	return append(out, item)
}

// SoftDelete stamps deletedAt on the matching item. ok is false when the id is absent.
func SoftDelete[T Item[T]](items []T, id string, at time.Time) (out []T, ok bool) {
	stamp := at
	return setDeletedAt(items, id, &stamp)
}

// Restore clears deletedAt on the matching item.
func Restore[T Item[T]](items []T, id string) (out []T, ok bool) {
	return setDeletedAt(items, id, nil)
}

// Purge drops the matching item from the collection.
func Purge[T Item[T]](items []T, id string) (out []T, ok bool) {
	out = make([]T, 0, len(items))
	for _, item := range items {
		if item.ItemID() == id {
			ok = true
			continue
		}
		out = append(out, item)
	}
	return out, ok
}

// Active returns the items without a deletedAt marker, in order.
func Active[T Item[T]](items []T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item.DeletedTime() == nil {
			out = append(out, item)
		}
	}
	return out
}

// Deleted returns the items in the recycle bin, in order.
func Deleted[T Item[T]](items []T) []T {
	out := make([]T, 0)
	for _, item := range items {
		if item.DeletedTime() != nil {
			out = append(out, item)
		}
	}
	return out
}

func setDeletedAt[T Item[T]](items []T, id string, at *time.Time) ([]T, bool) {
	out := make([]T, len(items))
	copy(out, items)
	i := FindIndex(out, id)
	if i < 0 {
		return out, false
	}
	out[i] = out[i].WithDeletedAt(at)
	return out, true
}
