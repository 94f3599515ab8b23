package engine

import (
	"fmt"
	"log"

	"github.com/ObedVictorJesusVelardeOchoa/plazaplus-estacionamiento-inteligente/internal/collection"
	"github.com/ObedVictorJesusVelardeOchoa/plazaplus-estacionamiento-inteligente/internal/model"
)

// CheckInStatus distinguishes the three outcomes of a check-in attempt.
type CheckInStatus string

const (
	// CheckInIssued means a slot was assigned and a ticket created.
	CheckInIssued CheckInStatus = "ISSUED"
	// CheckInAlreadyInside means the vehicle already has an active stay;
	// nothing changed.
	CheckInAlreadyInside CheckInStatus = "ALREADY_INSIDE"
	// CheckInQueued means no slot was free; the request joined the waiting
	// queue.
	CheckInQueued CheckInStatus = "QUEUED"
)

// CheckInResult is the tagged outcome of CheckIn. Ticket is set only when
// Status is CheckInIssued; QueuePosition only when CheckInQueued.
type CheckInResult struct {
	Status        CheckInStatus
	Ticket        *model.Ticket
	QueuePosition int
}

// CheckIn runs the arrival protocol for a plate. Unknown vehicles and
// owners are provisioned on the fly: that is deliberate business behavior,
// and it skips the owner-must-exist rule that explicit registration
// enforces. A vehicle that is already inside is rejected without touching
// any state; when the grid is full the demand is queued instead.
func (e *Engine) CheckIn(plate string, class model.VehicleClass, ownerID string) CheckInResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	plate = model.NormalizePlate(plate)

	vehicle, ok := e.lookupVehicle(plate)
	if !ok {
		vehicle = model.NewVehicle(plate, class, ownerID, "", "", "")
		e.vehicles.Insert(vehicle)
	}

	owner, ok := e.lookupClient(ownerID)
	if !ok {
		owner = model.NewClient(ownerID, "Walk-in", "Client", "", model.CategoryRegular)
		e.clients.Insert(owner)
	}
	owner.AddPlate(plate)
	// Provisioned records persist regardless of the outcome below: the
	// in-memory indexes already hold them, and the files must agree even
	// when the request ends up rejected or queued.
	e.persistVehicle(vehicle)
	e.persistClient(owner)

	if e.findActiveTicket(plate) != nil {
		return CheckInResult{Status: CheckInAlreadyInside}
	}

	slot := e.firstFreeSlot()
	if slot == nil {
		e.waiting.Enqueue(model.WaitingRequest{
			Plate:       plate,
			Class:       class,
			RequestedAt: e.now(),
		})
		return CheckInResult{Status: CheckInQueued, QueuePosition: e.waiting.Len()}
	}

	now := e.now()
	slot.Occupy(vehicle, now)
	ticket := &model.Ticket{
		Code:    e.issueCode(),
		Vehicle: vehicle,
		Slot:    slot,
		CheckIn: now,
		Status:  model.TicketActive,
	}
	e.tickets.Append(ticket)
	e.history.Push(ticket)

	e.persistTicket(ticket)

	return CheckInResult{Status: CheckInIssued, Ticket: ticket}
}

// CheckOut finalizes the active stay of a plate: stamps the exit time,
// prices the stay, frees the slot and persists the updated ticket. When a
// request is waiting for a slot, the head of the queue is consumed and
// logged; the freed slot is NOT assigned to it automatically, the next
// arrival claims it through a normal check-in.
func (e *Engine) CheckOut(plate string) (*model.Ticket, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ticket := e.findActiveTicket(model.NormalizePlate(plate))
	if ticket == nil {
		return nil, ErrNoActiveStay
	}

	now := e.now()
	ticket.CheckOut = &now
	ticket.Amount = e.price(ticket)
	ticket.Status = model.TicketFinalized
	e.persistTicket(ticket)

	ticket.Slot.Release()

	if !e.waiting.IsEmpty() {
		next, _ := e.waiting.Dequeue()
		log.Printf("slot %s freed; next waiting vehicle: %s (queued %s)",
			ticket.Slot.Label(), next.Plate, next.RequestedAt.Format("15:04:05"))
	}

	return ticket, nil
}

// RecordPayment marks the ticket with the given code as paid. The history
// stack is searched by draining it into a temporary stack and restoring it
// afterwards, so its externally observable order is unchanged whether or
// not the code is found. Paying an already paid ticket is a harmless
// repeat.
func (e *Engine) RecordPayment(code string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	temp := collection.NewStack[*model.Ticket]()
	found := false
	for !e.history.IsEmpty() {
		t, _ := e.history.Pop()
		if t.Code == code {
			t.Paid = true
			found = true
			e.persistTicket(t)
		}
		temp.Push(t)
	}
	for !temp.IsEmpty() {
		t, _ := temp.Pop()
		e.history.Push(t)
	}
	return found
}

// findActiveTicket scans the ticket sequence for an active stay of the
// plate. Callers hold the engine lock.
func (e *Engine) findActiveTicket(plate string) *model.Ticket {
	for _, t := range e.tickets.ToSlice() {
		if t.Status == model.TicketActive && t.Vehicle.Plate == plate {
			return t
		}
	}
	return nil
}

// firstFreeSlot returns the first free slot in grid order (first fit). The
// slot's designated vehicle class is not consulted.
func (e *Engine) firstFreeSlot() *model.Slot {
	for _, s := range e.slots.ToSlice() {
		if s.Status.Available() {
			return s
		}
	}
	return nil
}

// issueCode hands out the next ticket code.
func (e *Engine) issueCode() string {
	code := fmt.Sprintf("T-%04d", e.nextTicket)
	e.nextTicket++
	return code
}
