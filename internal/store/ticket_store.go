package store

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/ObedVictorJesusVelardeOchoa/plazaplus-estacionamiento-inteligente/internal/model"
)

// TicketStore persists stay tickets in tickets.txt.
// Record: code|plate|floor|sector|number|checkIn|checkOut|amount|paid|state
// checkOut is the literal "null" while the stay is still active; the amount
// always prints with two decimals.
type TicketStore struct {
	file *lineFile
}

// NewTicketStore opens (or prepares) the ticket record file under dir.
func NewTicketStore(dir string) (*TicketStore, error) {
	f, err := newLineFile(dir, "tickets.txt")
	if err != nil {
		return nil, err
	}
	return &TicketStore{file: f}, nil
}

// LoadAll parses every stored ticket record, skipping malformed ones with a
// logged warning.
func (s *TicketStore) LoadAll() ([]model.TicketRecord, error) {
	lines, err := s.file.readLines()
	if err != nil {
		return nil, err
	}
	var records []model.TicketRecord
	for _, line := range lines {
		rec, err := parseTicketRecord(line)
		if err != nil {
			log.Printf("tickets.txt: skipping record: %v", err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// FindByCode returns the stored record with the given ticket code, or
// false.
func (s *TicketStore) FindByCode(code string) (model.TicketRecord, bool, error) {
	line, ok, err := s.file.findLine(code + "|")
	if err != nil || !ok {
		return model.TicketRecord{}, false, err
	}
	rec, err := parseTicketRecord(line)
	if err != nil {
		log.Printf("tickets.txt: skipping record: %v", err)
		return model.TicketRecord{}, false, nil
	}
	return rec, true, nil
}

// Save inserts the record or overwrites the existing one in place.
func (s *TicketStore) Save(rec model.TicketRecord) error {
	return s.file.upsertLine(rec.Code, formatTicketRecord(rec))
}

func formatTicketRecord(rec model.TicketRecord) string {
	checkOut := nullField
	if rec.CheckOut != nil {
		checkOut = rec.CheckOut.Format(timeLayout)
	}
	return fmt.Sprintf("%s|%s|%d|%c|%d|%s|%s|%.2f|%t|%s",
		rec.Code, rec.Plate, rec.Floor, rec.Sector, rec.Number,
		rec.CheckIn.Format(timeLayout), checkOut, rec.Amount, rec.Paid, rec.Status)
}

func parseTicketRecord(line string) (model.TicketRecord, error) {
	fields := strings.Split(line, "|")
	if len(fields) < 10 {
		return model.TicketRecord{}, fmt.Errorf("ticket record has %d fields, want 10", len(fields))
	}
	floor, err := strconv.Atoi(fields[2])
	if err != nil {
		return model.TicketRecord{}, fmt.Errorf("bad floor %q: %w", fields[2], err)
	}
	if fields[3] == "" {
		return model.TicketRecord{}, fmt.Errorf("empty sector")
	}
	sector := rune(fields[3][0])
	number, err := strconv.Atoi(fields[4])
	if err != nil {
		return model.TicketRecord{}, fmt.Errorf("bad slot number %q: %w", fields[4], err)
	}
	checkIn, err := time.ParseInLocation(timeLayout, fields[5], time.Local)
	if err != nil {
		return model.TicketRecord{}, fmt.Errorf("bad check-in time %q: %w", fields[5], err)
	}
	var checkOut *time.Time
	if fields[6] != nullField {
		t, err := time.ParseInLocation(timeLayout, fields[6], time.Local)
		if err != nil {
			return model.TicketRecord{}, fmt.Errorf("bad check-out time %q: %w", fields[6], err)
		}
		checkOut = &t
	}
	amount, err := strconv.ParseFloat(fields[7], 64)
	if err != nil {
		return model.TicketRecord{}, fmt.Errorf("bad amount %q: %w", fields[7], err)
	}
	paid, err := strconv.ParseBool(fields[8])
	if err != nil {
		return model.TicketRecord{}, fmt.Errorf("bad paid flag %q: %w", fields[8], err)
	}
	status := model.TicketStatus(strings.ToUpper(fields[9]))
	if status != model.TicketActive && status != model.TicketFinalized {
		return model.TicketRecord{}, fmt.Errorf("unknown ticket state %q", fields[9])
	}
	return model.TicketRecord{
		Code:     fields[0],
		Plate:    model.NormalizePlate(fields[1]),
		Floor:    floor,
		Sector:   sector,
		Number:   number,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Amount:   amount,
		Paid:     paid,
		Status:   status,
	}, nil
}
