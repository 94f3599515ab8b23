package model

import "time"

// TicketStatus is the lifecycle state of a stay ticket. The transition is
// one-way: ACTIVE tickets become FINALIZED at check-out and never go back.
type TicketStatus string

const (
	TicketActive    TicketStatus = "ACTIVE"
	TicketFinalized TicketStatus = "FINALIZED"
)

// Ticket records one vehicle's continuous occupancy of one slot, from
// check-in until check-out. Codes are issued by the engine's monotone
// counter and are unique across the life of the facility.
//
// Fields:
//  Code     – unique ticket code, "T-" plus a zero-padded sequence number.
//  Vehicle  – the parked vehicle.
//  Slot     – the slot the vehicle occupies (points into the live grid).
//  CheckIn  – when the stay began.
//  CheckOut – when the stay ended; nil while the ticket is active.
//  Amount   – billed amount, computed at check-out, zero before that.
//  Paid     – whether the amount has been collected.
//  Status   – ACTIVE or FINALIZED.
type Ticket struct {
	Code     string
	Vehicle  *Vehicle
	Slot     *Slot
	CheckIn  time.Time
	CheckOut *time.Time
	Amount   float64
	Paid     bool
	Status   TicketStatus
}

// TicketRecord is the flattened wire form of a ticket as it is persisted:
// the vehicle collapses to its plate and the slot to its coordinates. The
// engine resolves records back against its indexes and grid on load.
type TicketRecord struct {
	Code     string
	Plate    string
	Floor    int
	Sector   rune
	Number   int
	CheckIn  time.Time
	CheckOut *time.Time
	Amount   float64
	Paid     bool
	Status   TicketStatus
}

// Record flattens the ticket for persistence.
func (t *Ticket) Record() TicketRecord {
	return TicketRecord{
		Code:     t.Code,
		Plate:    t.Vehicle.Plate,
		Floor:    t.Slot.Floor,
		Sector:   t.Slot.Sector,
		Number:   t.Slot.Number,
		CheckIn:  t.CheckIn,
		CheckOut: t.CheckOut,
		Amount:   t.Amount,
		Paid:     t.Paid,
		Status:   t.Status,
	}
}
