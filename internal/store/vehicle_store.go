package store

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ObedVictorJesusVelardeOchoa/plazaplus-estacionamiento-inteligente/internal/model"
)

// VehicleStore persists vehicles in vehicles.txt.
// Record: plate|class|ownerId|brand|model|color|registrationTimestamp
type VehicleStore struct {
	file *lineFile
}

// NewVehicleStore opens (or prepares) the vehicle record file under dir.
func NewVehicleStore(dir string) (*VehicleStore, error) {
	f, err := newLineFile(dir, "vehicles.txt")
	if err != nil {
		return nil, err
	}
	return &VehicleStore{file: f}, nil
}

// LoadAll parses every stored vehicle, skipping malformed records with a
// logged warning.
func (s *VehicleStore) LoadAll() ([]*model.Vehicle, error) {
	lines, err := s.file.readLines()
	if err != nil {
		return nil, err
	}
	var vehicles []*model.Vehicle
	for _, line := range lines {
		v, err := parseVehicle(line)
		if err != nil {
			log.Printf("vehicles.txt: skipping record: %v", err)
			continue
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, nil
}

// FindByPlate returns the stored vehicle with the given plate, or false.
func (s *VehicleStore) FindByPlate(plate string) (*model.Vehicle, bool, error) {
	line, ok, err := s.file.findLine(model.NormalizePlate(plate) + "|")
	if err != nil || !ok {
		return nil, false, err
	}
	v, err := parseVehicle(line)
	if err != nil {
		log.Printf("vehicles.txt: skipping record: %v", err)
		return nil, false, nil
	}
	return v, true, nil
}

// Save inserts the vehicle or overwrites its existing record in place.
func (s *VehicleStore) Save(v *model.Vehicle) error {
	return s.file.upsertLine(v.Plate, formatVehicle(v))
}

func formatVehicle(v *model.Vehicle) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s",
		v.Plate, v.Class, v.OwnerID, v.Brand, v.Model, v.Color,
		v.RegisteredAt.Format(timeLayout))
}

func parseVehicle(line string) (*model.Vehicle, error) {
	fields := strings.Split(line, "|")
	if len(fields) < 7 {
		return nil, fmt.Errorf("vehicle record has %d fields, want 7", len(fields))
	}
	class, ok := model.ParseVehicleClass(fields[1])
	if !ok {
		return nil, fmt.Errorf("unknown vehicle class %q", fields[1])
	}
	registeredAt, err := time.ParseInLocation(timeLayout, fields[6], time.Local)
	if err != nil {
		return nil, fmt.Errorf("bad registration timestamp %q: %w", fields[6], err)
	}
	v := model.NewVehicle(fields[0], class, fields[2], fields[3], fields[4], fields[5])
	v.RegisteredAt = registeredAt
	return v, nil
}
