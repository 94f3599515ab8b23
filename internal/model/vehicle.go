package model

import (
	"strings"
	"time"
)

// VehicleClass enumerates the kinds of vehicles the facility admits. Each
// class carries a short code used by input forms and a rate factor kept for
// compatibility with the registration records; note that billing does NOT
// use the factor; the engine prices stays from its own hourly table.
type VehicleClass string

const (
	ClassBicycle    VehicleClass = "BICYCLE"
	ClassMotorcycle VehicleClass = "MOTORCYCLE"
	ClassCar        VehicleClass = "CAR"
	ClassSUV        VehicleClass = "SUV"
	ClassMinivan    VehicleClass = "MINIVAN"
)

// VehicleClasses lists every admitted class in display order.
var VehicleClasses = []VehicleClass{
	ClassBicycle, ClassMotorcycle, ClassCar, ClassSUV, ClassMinivan,
}

// ParseVehicleClass resolves a class from its name or short code,
// case-insensitively. It returns false for anything unknown.
func ParseVehicleClass(s string) (VehicleClass, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BICYCLE", "BIC", "BIKE":
		return ClassBicycle, true
	case "MOTORCYCLE", "MOT", "MOTO":
		return ClassMotorcycle, true
	case "CAR", "AUT", "AUTO":
		return ClassCar, true
	case "SUV":
		return ClassSUV, true
	case "MINIVAN", "MIN":
		return ClassMinivan, true
	}
	return "", false
}

// Code returns the three-letter form used in registration forms.
func (c VehicleClass) Code() string {
	switch c {
	case ClassBicycle:
		return "BIC"
	case ClassMotorcycle:
		return "MOT"
	case ClassCar:
		return "AUT"
	case ClassSUV:
		return "SUV"
	case ClassMinivan:
		return "MIN"
	}
	return ""
}

// RateFactor returns the per-class factor attached to the class definition.
// Kept from the registration data model; billing ignores it.
func (c VehicleClass) RateFactor() float64 {
	switch c {
	case ClassBicycle:
		return 1.0
	case ClassMotorcycle:
		return 1.5
	case ClassCar:
		return 2.0
	case ClassSUV:
		return 2.5
	case ClassMinivan:
		return 3.0
	}
	return 2.0
}

// Vehicle is a registered (or auto-provisioned) vehicle. The plate is the
// identity; OwnerID is a weak reference into the client index.
//
// Fields:
//  Plate        – unique license plate, stored upper-case.
//  Class        – vehicle class, drives the hourly rate at check-out.
//  OwnerID      – document id of the owning client.
//  Brand        – manufacturer, free text (may be empty for walk-ins).
//  Model        – model name, free text.
//  Color        – color, free text.
//  RegisteredAt – when the vehicle entered the registry.
//  Active       – soft-delete flag; vehicles are never physically removed.
type Vehicle struct {
	Plate        string
	Class        VehicleClass
	OwnerID      string
	Brand        string
	Model        string
	Color        string
	RegisteredAt time.Time
	Active       bool
}

// NewVehicle builds an active vehicle registered now. The plate is
// normalized to upper-case.
func NewVehicle(plate string, class VehicleClass, ownerID, brand, model, color string) *Vehicle {
	return &Vehicle{
		Plate:        NormalizePlate(plate),
		Class:        class,
		OwnerID:      strings.TrimSpace(ownerID),
		Brand:        brand,
		Model:        model,
		Color:        color,
		RegisteredAt: time.Now(),
		Active:       true,
	}
}

// NormalizePlate upper-cases and trims a plate so lookups are
// case-insensitive.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}
