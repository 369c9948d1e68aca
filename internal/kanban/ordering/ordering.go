// Package ordering computes dense positions for siblings (cards in a column,
// columns in a board). It never touches storage: callers load the sibling set,
// ask for placements, then apply and persist them.
package ordering

import (
	"cmp"
	"slices"

	"taskdeck/internal/kanban/domain"
)

// Positioned is anything ranked among its siblings.
type Positioned interface {
	GetID() string
	GetPosition() int
}

// Placement is the position an item must hold after the operation.
type Placement[T Positioned] struct {
	Item     T
	Position int
}

// Changed reports whether applying the placement alters the item.
func (p Placement[T]) Changed() bool {
	return p.Item.GetPosition() != p.Position
}

// Sorted returns a copy of items by ascending position. Equal positions keep their
// input order.
func Sorted[T Positioned](items []T) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		return cmp.Compare(a.GetPosition(), b.GetPosition())
	})
	return out
}

// NextPosition is the append slot: 0 when empty, otherwise max+1.
func NextPosition[T Positioned](siblings []T) int {
	if len(siblings) == 0 {
		return 0
	}
	highest := siblings[0].GetPosition()
	for _, s := range siblings[1:] {
		highest = max(highest, s.GetPosition())
	}
	return highest + 1
}

// Renumber assigns 0..n-1 in the given order.
func Renumber[T Positioned](ordered []T) []Placement[T] {
	placements := make([]Placement[T], len(ordered))
	for i, item := range ordered {
		placements[i] = Placement[T]{Item: item, Position: i}
	}
	return placements
}

// Move removes item from siblings (if present), inserts it at index among the
// remaining siblings in position order, and renumbers the whole set. index must lie
// in [0, len(remaining)].
func Move[T Positioned](siblings []T, item T, index int) ([]Placement[T], error) {
	rest := Without(Sorted(siblings), item.GetID())
	if index < 0 || index > len(rest) {
		return nil, domain.NewValidationError("target position %d is out of range [0, %d]", index, len(rest))
	}

	ordered := make([]T, 0, len(rest)+1)
	ordered = append(ordered, rest[:index]...)
	ordered = append(ordered, item)
	ordered = append(ordered, rest[index:]...)
	return Renumber(ordered), nil
}

// Compact renumbers siblings in position order after removing the item with
// removedID. An empty removedID compacts the whole set.
func Compact[T Positioned](siblings []T, removedID string) []Placement[T] {
	return Renumber(Without(Sorted(siblings), removedID))
}

// PlanReorder validates a full ordering request against the current sibling set and
// returns the siblings in the requested order.
func PlanReorder[T Positioned](current []T, requestedIDs []string, kind string) ([]T, error) {
	byID := make(map[string]T, len(current))
	for _, item := range current {
		byID[item.GetID()] = item
	}

	ordered := make([]T, 0, len(requestedIDs))
	seen := make(map[string]struct{}, len(requestedIDs))
	for _, id := range requestedIDs {
		item, ok := byID[id]
		if !ok {
			return nil, domain.NewNotFoundError("%s with ID %s not found in this board", kind, id)
		}
		if _, dup := seen[id]; dup {
			return nil, domain.NewValidationError("%s with ID %s appears more than once", kind, id)
		}
		seen[id] = struct{}{}
		ordered = append(ordered, item)
	}

	if len(ordered) != len(current) {
		return nil, domain.NewValidationError("reorder request must include all %ss (%d given, %d expected)", kind, len(ordered), len(current))
	}
	return ordered, nil
}

// ParkingFloor is the lowest position among siblings, or 0 when none is negative.
// A reorder interrupted after its first commit leaves negative positions behind.
func ParkingFloor[T Positioned](siblings []T) int {
	floor := 0
	for _, s := range siblings {
		floor = min(floor, s.GetPosition())
	}
	return floor
}

// TransientPosition is the phase-one slot for index: strictly below floor (and
// below 0), unique per index.
func TransientPosition(floor, index int) int {
	return min(floor, 0) - (index + 1)
}

// Without drops the item with id, keeping order.
func Without[T Positioned](items []T, id string) []T {
	if id == "" {
		return slices.Clone(items)
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item.GetID() != id {
			out = append(out, item)
		}
	}
	return out
}
