package services

import (
	"errors"
	"sort"

	"fulfillment/internal/core/domain/model/staging"
)

// ErrNoFreeSlots is returned when no eligible free shelf slot exists in
// the candidate set. Callers surface this to staff as a capacity failure;
// it is never retried automatically.
var ErrNoFreeSlots = errors.New("no free shelf slots")

// SlotPicker selects which free shelf slot a package should be staged
// into. The selection heuristic is deliberately pluggable: warehouses tune
// it to their floor layout, and tests pin a deterministic ordering.
//
// Pick receives every slot of the target logistic center, occupied ones
// included, so heuristics can weigh zone load. It returns free slots in
// preference order; the caller attempts an atomic claim on each in turn,
// because another staging operation may win any individual slot first.
type SlotPicker interface {
	Pick(slots []*staging.ShelfSlot) ([]*staging.ShelfSlot, error)
}

// LeastLoadedZonePicker is the default slot selection heuristic: free
// slots are preferred in the zone with the fewest occupied slots, ties
// broken by zone name, then by slot code within a zone.
//
// Key properties:
//   - Spreads packages evenly across zones
//   - Fully deterministic for a given occupancy snapshot
//   - Returns every free slot, ordered, so claim races can fall through
//     to the next candidate instead of failing outright
type LeastLoadedZonePicker struct{}

// NewLeastLoadedZonePicker creates a new LeastLoadedZonePicker instance.
func NewLeastLoadedZonePicker() LeastLoadedZonePicker {
	return LeastLoadedZonePicker{}
}

// Pick orders the free slots of the candidate set by the least-loaded-zone
// heuristic. Returns ErrNoFreeSlots if every slot is occupied.
func (p LeastLoadedZonePicker) Pick(slots []*staging.ShelfSlot) ([]*staging.ShelfSlot, error) {
	occupiedByZone := make(map[string]int)
	free := make([]*staging.ShelfSlot, 0, len(slots))

	for _, slot := range slots {
		if err := slot.Validate(); err != nil {
			return nil, err
		}

		if slot.IsFree() {
			free = append(free, slot)
		} else {
			occupiedByZone[slot.Zone()]++
		}
	}

	if len(free) == 0 {
		return nil, ErrNoFreeSlots
	}

	sort.SliceStable(free, func(i, j int) bool {
		zi, zj := free[i].Zone(), free[j].Zone()
		if zi != zj {
			li, lj := occupiedByZone[zi], occupiedByZone[zj]
			if li != lj {
				return li < lj
			}
			return zi < zj
		}
		return free[i].Code() < free[j].Code()
	})

	return free, nil
}
