package model

import (
	"fmt"
	"time"
)

// SlotStatus is the occupancy state of a parking slot. RESERVED and
// MAINTENANCE are modeled for future policies; the check-in/check-out
// protocol only ever moves slots between FREE and OCCUPIED.
type SlotStatus string

const (
	SlotFree        SlotStatus = "FREE"
	SlotOccupied    SlotStatus = "OCCUPIED"
	SlotReserved    SlotStatus = "RESERVED"
	SlotMaintenance SlotStatus = "MAINTENANCE"
)

// Available reports whether a vehicle may be placed on a slot in this
// state.
func (s SlotStatus) Available() bool { return s == SlotFree }

// Slot is one fixed parking position. The whole grid is built once at
// startup; slots are never added or removed at runtime.
//
// Fields:
//  Floor        – floor number, 1-based.
//  Sector       – sector letter within the floor ('A'...).
//  Number       – position within the sector, 1-based.
//  AllowedClass – vehicle class this slot is designated for. The first-fit
//                 allocator does not consult it; it is carried for the
//                 facility map and future placement policies.
//  Status       – occupancy state.
//  Vehicle      – vehicle currently on the slot, nil when not occupied.
//  OccupiedAt   – when the current occupancy began, nil when free.
type Slot struct {
	Floor        int
	Sector       rune
	Number       int
	AllowedClass VehicleClass
	Status       SlotStatus
	Vehicle      *Vehicle
	OccupiedAt   *time.Time
}

// Label renders the slot position as "2-B-07" for display and logs.
func (s *Slot) Label() string {
	return fmt.Sprintf("%d-%c-%02d", s.Floor, s.Sector, s.Number)
}

// Occupy marks the slot occupied by v starting at the given time.
func (s *Slot) Occupy(v *Vehicle, at time.Time) {
	s.Status = SlotOccupied
	s.Vehicle = v
	s.OccupiedAt = &at
}

// Release frees the slot, clearing the occupant and occupation time.
func (s *Slot) Release() {
	s.Status = SlotFree
	s.Vehicle = nil
	s.OccupiedAt = nil
}
