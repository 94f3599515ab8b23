package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/ObedVictorJesusVelardeOchoa/plazaplus-estacionamiento-inteligente/internal/model"
	"github.com/ObedVictorJesusVelardeOchoa/plazaplus-estacionamiento-inteligente/internal/store"
)

// testClock is a controllable clock so stay durations are deterministic.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// newTestEngine builds an engine over file stores in a temp directory.
func newTestEngine(t *testing.T, floors, sectors, perSector int, clock *testClock) *Engine {
	t.Helper()
	return newTestEngineAt(t, t.TempDir(), floors, sectors, perSector, clock)
}

func newTestEngineAt(t *testing.T, dir string, floors, sectors, perSector int, clock *testClock) *Engine {
	t.Helper()
	clients, err := store.NewClientStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	vehicles, err := store.NewVehicleStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	tickets, err := store.NewTicketStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	cfg := Config{
		Floors:          floors,
		SectorsPerFloor: sectors,
		SlotsPerSector:  perSector,
		Clients:         clients,
		Vehicles:        vehicles,
		Tickets:         tickets,
	}
	if clock != nil {
		cfg.Clock = clock.Now
	}
	e, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

// occupiedCount counts slots in the occupied state.
func occupiedCount(e *Engine) int {
	n := 0
	for _, s := range e.Slots() {
		if s.Status == model.SlotOccupied {
			n++
		}
	}
	return n
}

func TestRegisterClientRejectsDuplicateID(t *testing.T) {
	e := newTestEngine(t, 1, 1, 2, nil)
	c := model.NewClient("12345678", "Maria", "Lopez", "maria@example.com", model.CategoryRegular)
	if !e.RegisterClient(c) {
		t.Fatal("first registration should succeed")
	}
	dup := model.NewClient("12345678", "Other", "Person", "", model.CategoryFrequent)
	if e.RegisterClient(dup) {
		t.Fatal("duplicate id should be rejected")
	}
	if got := e.Statistics().Clients; got != 1 {
		t.Fatalf("clients = %d, want 1", got)
	}
}

func TestRegisterVehicleRequiresKnownOwner(t *testing.T) {
	e := newTestEngine(t, 1, 1, 2, nil)
	v := model.NewVehicle("ABC-1234", model.ClassCar, "99999999", "Toyota", "Yaris", "red")
	if e.RegisterVehicle(v) {
		t.Fatal("registration with unknown owner should fail")
	}
	if got := e.Statistics().Vehicles; got != 0 {
		t.Fatalf("vehicles = %d, want 0", got)
	}

	e.RegisterClient(model.NewClient("99999999", "Juan", "Diaz", "", model.CategoryRegular))
	if !e.RegisterVehicle(v) {
		t.Fatal("registration should succeed once the owner exists")
	}
	owner, _ := e.LookupClient("99999999")
	if !owner.OwnsPlate("ABC-1234") {
		t.Fatal("plate should be linked to the owner")
	}
}

func TestRegisterVehicleRejectsDuplicatePlate(t *testing.T) {
	e := newTestEngine(t, 1, 1, 2, nil)
	e.RegisterClient(model.NewClient("11111111", "Ana", "Luz", "", model.CategoryRegular))
	if !e.RegisterVehicle(model.NewVehicle("abc-1234", model.ClassCar, "11111111", "", "", "")) {
		t.Fatal("first registration should succeed")
	}
	// plates are case-insensitive
	if e.RegisterVehicle(model.NewVehicle("ABC-1234", model.ClassSUV, "11111111", "", "", "")) {
		t.Fatal("duplicate plate should be rejected")
	}
}

func TestCheckInFillsGridThenQueues(t *testing.T) {
	e := newTestEngine(t, 1, 1, 1, nil)

	res := e.CheckIn("ABC-1234", model.ClassCar, "12345678")
	if res.Status != CheckInIssued {
		t.Fatalf("status = %s, want %s", res.Status, CheckInIssued)
	}
	if res.Ticket == nil || res.Ticket.Code == "" {
		t.Fatal("issued check-in must carry a ticket")
	}
	if occupiedCount(e) != 1 {
		t.Fatalf("occupied slots = %d, want 1", occupiedCount(e))
	}

	res2 := e.CheckIn("XYZ-0001", model.ClassMotorcycle, "87654321")
	if res2.Status != CheckInQueued {
		t.Fatalf("status = %s, want %s", res2.Status, CheckInQueued)
	}
	if res2.QueuePosition != 1 {
		t.Fatalf("queue position = %d, want 1", res2.QueuePosition)
	}
	if got := e.Statistics().Waiting; got != 1 {
		t.Fatalf("waiting = %d, want 1", got)
	}
	waiting := e.WaitingRequests()
	if len(waiting) != 1 || waiting[0].Plate != "XYZ-0001" {
		t.Fatalf("waiting queue = %+v", waiting)
	}
}

func TestCheckInRejectsVehicleAlreadyInside(t *testing.T) {
	e := newTestEngine(t, 1, 1, 5, nil)
	if res := e.CheckIn("ABC-1234", model.ClassCar, "12345678"); res.Status != CheckInIssued {
		t.Fatalf("first check-in: %s", res.Status)
	}
	res := e.CheckIn("abc-1234", model.ClassCar, "12345678")
	if res.Status != CheckInAlreadyInside {
		t.Fatalf("status = %s, want %s", res.Status, CheckInAlreadyInside)
	}
	if occupiedCount(e) != 1 {
		t.Fatalf("occupied slots = %d, want 1", occupiedCount(e))
	}
	if got := e.Statistics().Waiting; got != 0 {
		t.Fatalf("rejection must not enqueue, waiting = %d", got)
	}
}

func TestCheckInAutoProvisionsVehicleAndClient(t *testing.T) {
	e := newTestEngine(t, 1, 1, 5, nil)
	res := e.CheckIn("NEW-0001", model.ClassMinivan, "55555555")
	if res.Status != CheckInIssued {
		t.Fatalf("status = %s", res.Status)
	}
	v, ok := e.LookupVehicle("NEW-0001")
	if !ok {
		t.Fatal("vehicle should have been provisioned")
	}
	if v.Class != model.ClassMinivan || v.OwnerID != "55555555" {
		t.Fatalf("provisioned vehicle = %+v", v)
	}
	c, ok := e.LookupClient("55555555")
	if !ok {
		t.Fatal("client should have been provisioned")
	}
	if c.Category != model.CategoryRegular {
		t.Fatalf("provisioned client category = %s, want REGULAR", c.Category)
	}
	if !c.OwnsPlate("NEW-0001") {
		t.Fatal("plate should be linked to the provisioned client")
	}
}

func TestOccupiedSlotsMatchActiveTickets(t *testing.T) {
	e := newTestEngine(t, 1, 2, 3, nil)
	check := func(step string) {
		if occupiedCount(e) != len(e.ActiveTickets()) {
			t.Fatalf("%s: occupied=%d active=%d", step, occupiedCount(e), len(e.ActiveTickets()))
		}
	}
	check("empty")
	e.CheckIn("AAA-0001", model.ClassCar, "10000001")
	e.CheckIn("AAA-0002", model.ClassSUV, "10000002")
	e.CheckIn("AAA-0003", model.ClassBicycle, "10000003")
	check("after three check-ins")
	if _, err := e.CheckOut("AAA-0002"); err != nil {
		t.Fatal(err)
	}
	check("after one check-out")
	e.CheckIn("AAA-0004", model.ClassMotorcycle, "10000004")
	check("after refill")
}

func TestCheckOutUnknownPlate(t *testing.T) {
	e := newTestEngine(t, 1, 1, 2, nil)
	if _, err := e.CheckOut("GHO-0000"); !errors.Is(err, ErrNoActiveStay) {
		t.Fatalf("err = %v, want ErrNoActiveStay", err)
	}
}

func TestCheckOutPricesSubscriberBicycle(t *testing.T) {
	clock := &testClock{now: time.Date(2025, 3, 10, 8, 0, 0, 0, time.Local)}
	e := newTestEngine(t, 1, 1, 3, clock)

	owner := model.NewClient("44444444", "Rosa", "Quispe", "", model.CategorySubscriber)
	e.RegisterClient(owner)
	e.RegisterVehicle(model.NewVehicle("XYZ-0001", model.ClassBicycle, "44444444", "", "", ""))

	if res := e.CheckIn("XYZ-0001", model.ClassBicycle, "44444444"); res.Status != CheckInIssued {
		t.Fatalf("check-in: %s", res.Status)
	}
	clock.Advance(90 * time.Minute)

	ticket, err := e.CheckOut("XYZ-0001")
	if err != nil {
		t.Fatal(err)
	}
	// 90 min -> 2 billed hours, rate 1.0, subscriber discount 0.8
	if ticket.Amount != 1.60 {
		t.Fatalf("amount = %.2f, want 1.60", ticket.Amount)
	}
	if ticket.Status != model.TicketFinalized {
		t.Fatalf("status = %s, want FINALIZED", ticket.Status)
	}
	if ticket.CheckOut == nil {
		t.Fatal("check-out time should be stamped")
	}
	if ticket.Slot.Status != model.SlotFree {
		t.Fatal("slot should be free after check-out")
	}
}

func TestPricingTable(t *testing.T) {
	cases := []struct {
		name     string
		class    model.VehicleClass
		category model.ClientCategory
		stay     time.Duration
		want     float64
	}{
		{"minimum one hour", model.ClassCar, model.CategoryRegular, 10 * time.Minute, 3.50},
		{"partial hour rounds up", model.ClassCar, model.CategoryRegular, 61 * time.Minute, 7.00},
		{"exact hours", model.ClassSUV, model.CategoryRegular, 2 * time.Hour, 8.00},
		{"frequent discount", model.ClassMinivan, model.CategoryFrequent, 1 * time.Hour, 4.05},
		{"subscriber discount", model.ClassMotorcycle, model.CategorySubscriber, 3 * time.Hour, 4.80},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clock := &testClock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)}
			e := newTestEngine(t, 1, 1, 1, clock)
			e.RegisterClient(model.NewClient("20000001", "Test", "Owner", "", tc.category))
			e.RegisterVehicle(model.NewVehicle("PRC-0001", tc.class, "20000001", "", "", ""))
			if res := e.CheckIn("PRC-0001", tc.class, "20000001"); res.Status != CheckInIssued {
				t.Fatalf("check-in: %s", res.Status)
			}
			clock.Advance(tc.stay)
			ticket, err := e.CheckOut("PRC-0001")
			if err != nil {
				t.Fatal(err)
			}
			if ticket.Amount != tc.want {
				t.Fatalf("amount = %.2f, want %.2f", ticket.Amount, tc.want)
			}
		})
	}
}

func TestCheckOutConsumesWaitingHeadWithoutAllocating(t *testing.T) {
	e := newTestEngine(t, 1, 1, 1, nil)
	e.CheckIn("ABC-1234", model.ClassCar, "12345678")
	if res := e.CheckIn("XYZ-0001", model.ClassCar, "87654321"); res.Status != CheckInQueued {
		t.Fatalf("second check-in: %s", res.Status)
	}
	if _, err := e.CheckOut("ABC-1234"); err != nil {
		t.Fatal(err)
	}
	// The head request is dequeued and logged, but the freed slot is not
	// assigned to it; the waiting vehicle re-enters through a new check-in.
	if got := e.Statistics().Waiting; got != 0 {
		t.Fatalf("waiting = %d, want 0", got)
	}
	if occupiedCount(e) != 0 {
		t.Fatal("freed slot must stay free until a new check-in claims it")
	}
	if e.findActiveTicket("XYZ-0001") != nil {
		t.Fatal("no stay should have been opened for the queued vehicle")
	}
}

func TestRecordPaymentIsIdempotentAndPreservesHistory(t *testing.T) {
	e := newTestEngine(t, 1, 1, 5, nil)
	e.CheckIn("AAA-0001", model.ClassCar, "10000001")
	e.CheckIn("AAA-0002", model.ClassCar, "10000002")
	e.CheckIn("AAA-0003", model.ClassCar, "10000003")

	before := e.History()
	code := before[1].Code // the middle ticket

	if !e.RecordPayment(code) {
		t.Fatal("payment of an existing code should succeed")
	}
	if !e.RecordPayment(code) {
		t.Fatal("repeated payment should still report the match")
	}
	if e.RecordPayment("T-9999") {
		t.Fatal("payment of an unknown code should fail")
	}

	after := e.History()
	if len(after) != len(before) {
		t.Fatalf("history length changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i].Code != after[i].Code {
			t.Fatalf("history order changed at %d: %s -> %s", i, before[i].Code, after[i].Code)
		}
	}
	if !after[1].Paid {
		t.Fatal("ticket should be marked paid")
	}
	if after[0].Paid || after[2].Paid {
		t.Fatal("other tickets must stay unpaid")
	}
}

func TestTicketCodesAreSequential(t *testing.T) {
	e := newTestEngine(t, 1, 1, 3, nil)
	r1 := e.CheckIn("AAA-0001", model.ClassCar, "10000001")
	r2 := e.CheckIn("AAA-0002", model.ClassCar, "10000002")
	if r1.Ticket.Code != "T-1000" || r2.Ticket.Code != "T-1001" {
		t.Fatalf("codes = %s, %s; want T-1000, T-1001", r1.Ticket.Code, r2.Ticket.Code)
	}
}

func TestRestartRebuildsStateFromStores(t *testing.T) {
	dir := t.TempDir()
	clock := &testClock{now: time.Date(2025, 3, 10, 8, 30, 0, 0, time.Local)}

	e1 := newTestEngineAt(t, dir, 2, 2, 2, clock)
	e1.RegisterClient(model.NewClient("30303030", "Elena", "Ramos", "elena@example.com", model.CategoryFrequent))
	e1.RegisterVehicle(model.NewVehicle("RST-0001", model.ClassCar, "30303030", "Kia", "Rio", "blue"))
	res := e1.CheckIn("RST-0001", model.ClassCar, "30303030")
	if res.Status != CheckInIssued {
		t.Fatalf("check-in: %s", res.Status)
	}

	// a second engine over the same directory sees the same world
	e2 := newTestEngineAt(t, dir, 2, 2, 2, clock)
	v, ok := e2.LookupVehicle("RST-0001")
	if !ok || v.Brand != "Kia" {
		t.Fatalf("vehicle not rebuilt: %+v", v)
	}
	c, ok := e2.LookupClient("30303030")
	if !ok || c.Category != model.CategoryFrequent {
		t.Fatalf("client not rebuilt: %+v", c)
	}
	if occupiedCount(e2) != 1 {
		t.Fatalf("occupied = %d, want 1 after rebuild", occupiedCount(e2))
	}
	if len(e2.ActiveTickets()) != 1 {
		t.Fatal("active ticket not rebuilt")
	}

	// counter continues past the persisted code
	next := e2.CheckIn("RST-0002", model.ClassCar, "30303031")
	if next.Ticket.Code != "T-1001" {
		t.Fatalf("code after restart = %s, want T-1001", next.Ticket.Code)
	}

	// and the rebuilt stay can be closed normally
	clock.Advance(30 * time.Minute)
	ticket, err := e2.CheckOut("RST-0001")
	if err != nil {
		t.Fatal(err)
	}
	// 30 min -> 1 hour minimum, car 3.5, frequent 0.9
	if ticket.Amount != 3.15 {
		t.Fatalf("amount = %.2f, want 3.15", ticket.Amount)
	}
}
