package engine

import (
	"math"

	"github.com/ObedVictorJesusVelardeOchoa/plazaplus-estacionamiento-inteligente/internal/model"
)

// Hourly base rates per vehicle class. This table is the authoritative
// price source; the rate factor carried on the class definition is a
// registration-data leftover and is intentionally not consulted here.
const (
	rateBicycle    = 1.0
	rateMotorcycle = 2.0
	rateCar        = 3.5
	rateSUV        = 4.0
	rateMinivan    = 4.5
)

func hourlyRate(class model.VehicleClass) float64 {
	switch class {
	case model.ClassBicycle:
		return rateBicycle
	case model.ClassMotorcycle:
		return rateMotorcycle
	case model.ClassCar:
		return rateCar
	case model.ClassSUV:
		return rateSUV
	case model.ClassMinivan:
		return rateMinivan
	}
	return rateCar
}

// price computes the amount owed for a finalized stay: whole hours rounded
// up with a one-hour minimum, times the class rate, times the discount of
// the owner's category as it stands at check-out. The result is rounded to
// two decimals. Callers hold the engine lock.
func (e *Engine) price(t *model.Ticket) float64 {
	minutes := t.CheckOut.Sub(t.CheckIn).Minutes()
	hours := math.Ceil(minutes / 60)
	if hours < 1 {
		hours = 1
	}

	rate := hourlyRate(t.Vehicle.Class)

	discount := 1.0
	if owner, ok := e.lookupClient(t.Vehicle.OwnerID); ok {
		discount = owner.Category.Discount()
	}

	return math.Round(hours*rate*discount*100) / 100
}
