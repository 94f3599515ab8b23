// Package engine implements the allocation core of the parking facility:
// the client and vehicle indexes, the slot grid, the active-stay sequence,
// the waiting queue and the ticket history, together with the check-in,
// check-out, pricing and payment protocols that tie them together.
package engine

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ObedVictorJesusVelardeOchoa/plazaplus-estacionamiento-inteligente/internal/collection"
	"github.com/ObedVictorJesusVelardeOchoa/plazaplus-estacionamiento-inteligente/internal/model"
)

// ErrNoActiveStay is returned by CheckOut when no active ticket exists for
// the plate.
var ErrNoActiveStay = errors.New("no active stay for plate")

// ClientStore is the persistence collaborator for clients.
type ClientStore interface {
	LoadAll() ([]*model.Client, error)
	Save(*model.Client) error
}

// VehicleStore is the persistence collaborator for vehicles.
type VehicleStore interface {
	LoadAll() ([]*model.Vehicle, error)
	Save(*model.Vehicle) error
}

// TicketStore is the persistence collaborator for stay tickets. It works on
// flattened records; the engine resolves them against its own indexes.
type TicketStore interface {
	LoadAll() ([]model.TicketRecord, error)
	Save(model.TicketRecord) error
}

// Config describes a facility. Zero grid dimensions fall back to the
// standard three floors of six sectors with ten slots each. Clock exists so
// tests can control stay durations; nil means time.Now.
type Config struct {
	Floors          int
	SectorsPerFloor int
	SlotsPerSector  int

	Clients  ClientStore
	Vehicles VehicleStore
	Tickets  TicketStore

	Clock func() time.Time
}

// Engine owns all in-memory state of the facility. Every method takes the
// single mutex, so each operation appears atomic to other callers; no
// operation is designed to interleave partially.
type Engine struct {
	mu sync.Mutex

	clients  *collection.Tree[*model.Client]
	vehicles *collection.Tree[*model.Vehicle]
	slots    *collection.List[*model.Slot]
	tickets  *collection.List[*model.Ticket]
	history  *collection.Stack[*model.Ticket]
	waiting  *collection.Queue[model.WaitingRequest]

	nextTicket int

	clientStore  ClientStore
	vehicleStore VehicleStore
	ticketStore  TicketStore

	now func() time.Time
}

// firstTicketNumber seeds the code counter of a facility with no persisted
// tickets.
const firstTicketNumber = 1000

// New builds the slot grid, rebuilds the in-memory structures from the
// stores and seeds the ticket counter from the highest persisted code.
func New(cfg Config) (*Engine, error) {
	if cfg.Clients == nil || cfg.Vehicles == nil || cfg.Tickets == nil {
		return nil, errors.New("engine: all three stores are required")
	}
	if cfg.Floors <= 0 {
		cfg.Floors = 3
	}
	if cfg.SectorsPerFloor <= 0 {
		cfg.SectorsPerFloor = 6
	}
	if cfg.SlotsPerSector <= 0 {
		cfg.SlotsPerSector = 10
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	e := &Engine{
		clients: collection.NewTree[*model.Client](func(a, b *model.Client) int {
			return strings.Compare(a.ID, b.ID)
		}),
		vehicles: collection.NewTree[*model.Vehicle](func(a, b *model.Vehicle) int {
			return strings.Compare(a.Plate, b.Plate)
		}),
		slots:        collection.NewList[*model.Slot](),
		tickets:      collection.NewList[*model.Ticket](),
		history:      collection.NewStack[*model.Ticket](),
		waiting:      collection.NewQueue[model.WaitingRequest](),
		nextTicket:   firstTicketNumber,
		clientStore:  cfg.Clients,
		vehicleStore: cfg.Vehicles,
		ticketStore:  cfg.Tickets,
		now:          cfg.Clock,
	}

	e.buildGrid(cfg.Floors, cfg.SectorsPerFloor, cfg.SlotsPerSector)
	if err := e.load(); err != nil {
		return nil, err
	}
	return e, nil
}

// buildGrid creates every slot of the facility in grid order: floor by
// floor, sector by sector, slot by slot. All slots start free.
func (e *Engine) buildGrid(floors, sectors, perSector int) {
	for floor := 1; floor <= floors; floor++ {
		for s := 0; s < sectors; s++ {
			for number := 1; number <= perSector; number++ {
				e.slots.Append(&model.Slot{
					Floor:  floor,
					Sector: rune('A' + s),
					Number: number,
					Status: model.SlotFree,
				})
			}
		}
	}
}

// load rebuilds indexes and stay state from the persisted records.
func (e *Engine) load() error {
	clients, err := e.clientStore.LoadAll()
	if err != nil {
		return err
	}
	for _, c := range clients {
		e.clients.Insert(c)
	}

	vehicles, err := e.vehicleStore.LoadAll()
	if err != nil {
		return err
	}
	for _, v := range vehicles {
		e.vehicles.Insert(v)
	}

	records, err := e.ticketStore.LoadAll()
	if err != nil {
		return err
	}
	for _, rec := range records {
		t, ok := e.resolveRecord(rec)
		if !ok {
			continue
		}
		e.tickets.Append(t)
		e.history.Push(t)
		if t.Status == model.TicketActive {
			t.Slot.Occupy(t.Vehicle, t.CheckIn)
		}
	}

	e.seedCounter(records)
	return nil
}

// resolveRecord turns a flattened record back into a live ticket, pointing
// at the indexed vehicle and the grid slot at the recorded coordinates.
func (e *Engine) resolveRecord(rec model.TicketRecord) (*model.Ticket, bool) {
	vehicle, ok := e.lookupVehicle(rec.Plate)
	if !ok {
		log.Printf("ticket %s references unknown vehicle %s; dropping", rec.Code, rec.Plate)
		return nil, false
	}
	slot := e.slotAt(rec.Floor, rec.Sector, rec.Number)
	if slot == nil {
		log.Printf("ticket %s references slot %d-%c-%d outside the grid; dropping",
			rec.Code, rec.Floor, rec.Sector, rec.Number)
		return nil, false
	}
	return &model.Ticket{
		Code:     rec.Code,
		Vehicle:  vehicle,
		Slot:     slot,
		CheckIn:  rec.CheckIn,
		CheckOut: rec.CheckOut,
		Amount:   rec.Amount,
		Paid:     rec.Paid,
		Status:   rec.Status,
	}, true
}

// seedCounter scans the persisted codes for the highest sequence number so
// newly issued codes keep increasing across restarts.
func (e *Engine) seedCounter(records []model.TicketRecord) {
	for _, rec := range records {
		num, ok := strings.CutPrefix(rec.Code, "T-")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(num)
		if err != nil {
			continue
		}
		if n >= e.nextTicket {
			e.nextTicket = n + 1
		}
	}
}

// slotAt returns the grid slot with the given coordinates, or nil.
func (e *Engine) slotAt(floor int, sector rune, number int) *model.Slot {
	for _, s := range e.slots.ToSlice() {
		if s.Floor == floor && s.Sector == sector && s.Number == number {
			return s
		}
	}
	return nil
}

// ---- registration and lookup ----

// RegisterClient adds a client to the index and persists it. It returns
// false when the client is invalid or its id is already registered.
func (e *Engine) RegisterClient(c *model.Client) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if c == nil || strings.TrimSpace(c.ID) == "" {
		return false
	}
	if !e.clients.Insert(c) {
		return false
	}
	e.persistClient(c)
	return true
}

// RegisterVehicle adds a vehicle to the index, links the plate to its
// owner and persists both. It returns false when the plate is already
// registered or the owner id is unknown: an explicitly registered vehicle
// must belong to a known client.
func (e *Engine) RegisterVehicle(v *model.Vehicle) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if v == nil || strings.TrimSpace(v.Plate) == "" {
		return false
	}
	v.Plate = model.NormalizePlate(v.Plate)
	if _, ok := e.lookupVehicle(v.Plate); ok {
		return false
	}
	owner, ok := e.lookupClient(v.OwnerID)
	if !ok {
		return false
	}
	e.vehicles.Insert(v)
	owner.AddPlate(v.Plate)
	e.persistVehicle(v)
	e.persistClient(owner)
	return true
}

// LookupClient finds a client by document id.
func (e *Engine) LookupClient(id string) (*model.Client, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lookupClient(id)
}

// LookupVehicle finds a vehicle by plate.
func (e *Engine) LookupVehicle(plate string) (*model.Vehicle, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lookupVehicle(model.NormalizePlate(plate))
}

func (e *Engine) lookupClient(id string) (*model.Client, bool) {
	return e.clients.Get(&model.Client{ID: strings.TrimSpace(id)})
}

func (e *Engine) lookupVehicle(plate string) (*model.Vehicle, bool) {
	return e.vehicles.Get(&model.Vehicle{Plate: plate})
}

// ---- queries ----

// Clients returns every registered client in id order.
func (e *Engine) Clients() []*model.Client {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clients.InOrder().ToSlice()
}

// Vehicles returns every registered vehicle in plate order.
func (e *Engine) Vehicles() []*model.Vehicle {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.vehicles.InOrder().ToSlice()
}

// VehiclesByOwner returns the vehicles whose owner id matches.
func (e *Engine) VehiclesByOwner(ownerID string) []*model.Vehicle {
	e.mu.Lock()
	defer e.mu.Unlock()
	ownerID = strings.TrimSpace(ownerID)
	var out []*model.Vehicle
	for _, v := range e.vehicles.InOrder().ToSlice() {
		if v.OwnerID == ownerID {
			out = append(out, v)
		}
	}
	return out
}

// Slots returns the slot grid in grid order.
func (e *Engine) Slots() []*model.Slot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.slots.ToSlice()
}

// Tickets returns every ticket, active and finalized, in issuance order.
func (e *Engine) Tickets() []*model.Ticket {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tickets.ToSlice()
}

// ActiveTickets returns the tickets of the vehicles currently parked.
func (e *Engine) ActiveTickets() []*model.Ticket {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []*model.Ticket
	for _, t := range e.tickets.ToSlice() {
		if t.Status == model.TicketActive {
			out = append(out, t)
		}
	}
	return out
}

// History returns the ticket history, most recent first. The stack is
// drained and rebuilt, leaving its observable order untouched.
func (e *Engine) History() []*model.Ticket {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := e.history.Drain().ToSlice()
	for i := len(out) - 1; i >= 0; i-- {
		e.history.Push(out[i])
	}
	return out
}

// WaitingRequests returns a snapshot of the waiting queue, front first.
func (e *Engine) WaitingRequests() []model.WaitingRequest {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.waiting.ToSlice()
}

// Stats summarizes the facility state.
type Stats struct {
	Clients  int
	Vehicles int
	Parked   int
	Waiting  int
	Tickets  int
}

// Statistics counts clients, vehicles, parked vehicles, waiting requests
// and processed tickets. Read-only; no side effects.
func (e *Engine) Statistics() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	parked := 0
	for _, t := range e.tickets.ToSlice() {
		if t.Status == model.TicketActive {
			parked++
		}
	}
	return Stats{
		Clients:  e.clients.Len(),
		Vehicles: e.vehicles.Len(),
		Parked:   parked,
		Waiting:  e.waiting.Len(),
		Tickets:  e.history.Len(),
	}
}

// ---- persistence side effects ----
//
// Store failures never roll back the in-memory mutation; they are logged
// and the records catch up on the next save of the same key.

func (e *Engine) persistClient(c *model.Client) {
	if err := e.clientStore.Save(c); err != nil {
		log.Printf("persist client %s: %v", c.ID, err)
	}
}

func (e *Engine) persistVehicle(v *model.Vehicle) {
	if err := e.vehicleStore.Save(v); err != nil {
		log.Printf("persist vehicle %s: %v", v.Plate, err)
	}
}

func (e *Engine) persistTicket(t *model.Ticket) {
	if err := e.ticketStore.Save(t.Record()); err != nil {
		log.Printf("persist ticket %s: %v", t.Code, err)
	}
}
