package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ObedVictorJesusVelardeOchoa/plazaplus-estacionamiento-inteligente/internal/model"
)

func TestTicketStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := NewTicketStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	checkIn := time.Date(2025, 3, 10, 8, 0, 0, 0, time.Local)
	active := model.TicketRecord{
		Code:    "T-1000",
		Plate:   "ABC-1234",
		Floor:   2,
		Sector:  'B',
		Number:  7,
		CheckIn: checkIn,
		Status:  model.TicketActive,
	}
	if err := s.Save(active); err != nil {
		t.Fatal(err)
	}

	got, ok, err := s.FindByCode("T-1000")
	if err != nil || !ok {
		t.Fatalf("FindByCode: ok=%v err=%v", ok, err)
	}
	if got.Plate != "ABC-1234" || got.Floor != 2 || got.Sector != 'B' || got.Number != 7 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.CheckOut != nil {
		t.Fatal("active ticket must load with no check-out time")
	}
	if !got.CheckIn.Equal(checkIn) {
		t.Fatalf("check-in = %v, want %v", got.CheckIn, checkIn)
	}

	// an active record stores the literal "null" in the check-out field
	raw, err := os.ReadFile(filepath.Join(dir, "tickets.txt"))
	if err != nil {
		t.Fatal(err)
	}
	want := "T-1000|ABC-1234|2|B|7|2025-03-10T08:00:00|null|0.00|false|ACTIVE\n"
	if string(raw) != want {
		t.Fatalf("file content:\n%q\nwant:\n%q", raw, want)
	}

	// finalizing the stay overwrites the record in place
	checkOut := checkIn.Add(90 * time.Minute)
	final := active
	final.CheckOut = &checkOut
	final.Amount = 1.6
	final.Paid = true
	final.Status = model.TicketFinalized
	if err := s.Save(final); err != nil {
		t.Fatal(err)
	}
	records, err := s.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1 after overwrite", len(records))
	}
	got = records[0]
	if got.CheckOut == nil || !got.CheckOut.Equal(checkOut) {
		t.Fatalf("check-out = %v, want %v", got.CheckOut, checkOut)
	}
	if got.Amount != 1.6 || !got.Paid || got.Status != model.TicketFinalized {
		t.Fatalf("finalized record mismatch: %+v", got)
	}
}

func TestTicketStoreSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	content := "T-1000|ABC-1234|1|A|1|2025-03-10T08:00:00|null|0.00|false|ACTIVE\n" +
		"garbage line\n" +
		"T-1001|XYZ-0001|1|A|2|not-a-time|null|0.00|false|ACTIVE\n" +
		"T-1002|DEF-5678|1|A|3|2025-03-10T09:00:00|2025-03-10T10:30:00|7.00|true|FINALIZED\n"
	if err := os.WriteFile(filepath.Join(dir, "tickets.txt"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := NewTicketStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	records, err := s.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2 valid ones", len(records))
	}
	if records[0].Code != "T-1000" || records[1].Code != "T-1002" {
		t.Fatalf("unexpected survivors: %s, %s", records[0].Code, records[1].Code)
	}
}

func TestTimestampsReloadOnTheLocalClock(t *testing.T) {
	dir := t.TempDir()

	// Records carry no zone marker, so a reload must interpret them in
	// local time. Reading them back as UTC would shift every instant by
	// the zone offset and inflate the billed duration of reloaded stays.
	checkIn := time.Date(2025, 3, 10, 8, 0, 0, 0, time.Local)

	tickets, err := NewTicketStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := tickets.Save(model.TicketRecord{
		Code: "T-1000", Plate: "ABC-1234", Floor: 1, Sector: 'A', Number: 1,
		CheckIn: checkIn, Status: model.TicketActive,
	}); err != nil {
		t.Fatal(err)
	}
	got, ok, err := tickets.FindByCode("T-1000")
	if err != nil || !ok {
		t.Fatalf("FindByCode: ok=%v err=%v", ok, err)
	}
	_, wantOffset := checkIn.Zone()
	_, gotOffset := got.CheckIn.Zone()
	if gotOffset != wantOffset {
		t.Fatalf("check-in zone offset = %d, want local offset %d", gotOffset, wantOffset)
	}
	if !got.CheckIn.Equal(checkIn) {
		t.Fatalf("check-in = %v, want the same instant as %v", got.CheckIn, checkIn)
	}

	vehicles, err := NewVehicleStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	v := model.NewVehicle("ABC-1234", model.ClassCar, "12345678", "", "", "")
	v.RegisteredAt = checkIn
	if err := vehicles.Save(v); err != nil {
		t.Fatal(err)
	}
	loaded, ok, err := vehicles.FindByPlate("ABC-1234")
	if err != nil || !ok {
		t.Fatalf("FindByPlate: ok=%v err=%v", ok, err)
	}
	if !loaded.RegisteredAt.Equal(checkIn) {
		t.Fatalf("registered-at = %v, want the same instant as %v", loaded.RegisteredAt, checkIn)
	}
}

func TestClientStoreRoundTripWithPlates(t *testing.T) {
	dir := t.TempDir()
	s, err := NewClientStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	c := model.NewClient("12345678", "Maria Jose", "Lopez Vega", "maria@example.com", model.CategorySubscriber)
	c.Phone = "999-111-222"
	c.Address = "Av. Central 123"
	c.Gender = "F"
	c.AddPlate("ABC-1234")
	c.AddPlate("XYZ-0001")
	if err := s.Save(c); err != nil {
		t.Fatal(err)
	}

	got, ok, err := s.FindByID("12345678")
	if err != nil || !ok {
		t.Fatalf("FindByID: ok=%v err=%v", ok, err)
	}
	if got.FullName() != "Maria Jose Lopez Vega" {
		t.Fatalf("name = %q", got.FullName())
	}
	if got.Category != model.CategorySubscriber {
		t.Fatalf("category = %s", got.Category)
	}
	if !got.OwnsPlate("ABC-1234") || !got.OwnsPlate("XYZ-0001") {
		t.Fatal("plates lost in round trip")
	}
	if got.Plates.Len() != 2 {
		t.Fatalf("plates = %d, want 2", got.Plates.Len())
	}
}

func TestVehicleStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := NewVehicleStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	v := model.NewVehicle("abc-1234", model.ClassSUV, "12345678", "Honda", "CR-V", "gray")
	if err := s.Save(v); err != nil {
		t.Fatal(err)
	}

	got, ok, err := s.FindByPlate("ABC-1234")
	if err != nil || !ok {
		t.Fatalf("FindByPlate: ok=%v err=%v", ok, err)
	}
	if got.Plate != "ABC-1234" {
		t.Fatalf("plate = %q, want normalized ABC-1234", got.Plate)
	}
	if got.Class != model.ClassSUV || got.OwnerID != "12345678" || got.Brand != "Honda" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestUserStoreConcurrentSaves(t *testing.T) {
	s, err := NewUserStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	// Saves rewrite the whole file on upsert; without serialization,
	// concurrent writers drop each other's records.
	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u := &model.User{
				Username:     fmt.Sprintf("user%02d", i),
				PasswordHash: "hash",
				Role:         model.RoleOperator,
			}
			if err := s.Save(u); err != nil {
				t.Errorf("save %s: %v", u.Username, err)
			}
		}(i)
	}
	wg.Wait()

	users, err := s.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != writers {
		t.Fatalf("users = %d, want %d", len(users), writers)
	}
}

func TestUserStoreUpsert(t *testing.T) {
	dir := t.TempDir()
	s, err := NewUserStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Save(&model.User{Username: "admin", PasswordHash: "hash-one", Role: model.RoleAdmin}); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(&model.User{Username: "booth", PasswordHash: "hash-two", Role: model.RoleOperator}); err != nil {
		t.Fatal(err)
	}
	// re-saving a username replaces its record instead of appending
	if err := s.Save(&model.User{Username: "admin", PasswordHash: "hash-three", Role: model.RoleAdmin}); err != nil {
		t.Fatal(err)
	}

	users, err := s.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 2 {
		t.Fatalf("users = %d, want 2", len(users))
	}
	got, ok, err := s.FindByUsername("admin")
	if err != nil || !ok {
		t.Fatalf("FindByUsername: ok=%v err=%v", ok, err)
	}
	if got.PasswordHash != "hash-three" {
		t.Fatalf("hash = %q, want the overwritten value", got.PasswordHash)
	}
	if !got.IsAdmin() {
		t.Fatal("role lost in round trip")
	}
}
