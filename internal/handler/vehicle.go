package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ObedVictorJesusVelardeOchoa/plazaplus-estacionamiento-inteligente/internal/engine"
	"github.com/ObedVictorJesusVelardeOchoa/plazaplus-estacionamiento-inteligente/internal/model"
)

// VehicleHandler exposes the vehicle registry.
type VehicleHandler struct {
	Engine *engine.Engine
}

func NewVehicleHandler(e *engine.Engine) *VehicleHandler {
	return &VehicleHandler{Engine: e}
}

type createVehicleReq struct {
	Plate   string `json:"plate"`
	Class   string `json:"class"`
	OwnerID string `json:"owner_id"`
	Brand   string `json:"brand"`
	Model   string `json:"model"`
	Color   string `json:"color"`
}

type vehiclePart struct {
	Plate   string `json:"plate"`
	Class   string `json:"class"`
	OwnerID string `json:"owner_id"`
	Brand   string `json:"brand,omitempty"`
	Model   string `json:"model,omitempty"`
	Color   string `json:"color,omitempty"`
}

func toVehiclePart(v *model.Vehicle) vehiclePart {
	return vehiclePart{
		Plate:   v.Plate,
		Class:   string(v.Class),
		OwnerID: v.OwnerID,
		Brand:   v.Brand,
		Model:   v.Model,
		Color:   v.Color,
	}
}

// Create registers a vehicle. The owner must already exist; a duplicate
// plate or an unknown owner is a conflict.
func (h *VehicleHandler) Create(c echo.Context) error {
	var req createVehicleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Plate) == "" || strings.TrimSpace(req.OwnerID) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "plate and owner_id required"})
	}
	class, ok := model.ParseVehicleClass(req.Class)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown vehicle class"})
	}

	vehicle := model.NewVehicle(req.Plate, class, req.OwnerID, req.Brand, req.Model, req.Color)
	if !h.Engine.RegisterVehicle(vehicle) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "plate already registered or owner unknown"})
	}
	return c.JSON(http.StatusCreated, toVehiclePart(vehicle))
}

// List returns every vehicle in plate order.
func (h *VehicleHandler) List(c echo.Context) error {
	vehicles := h.Engine.Vehicles()
	out := make([]vehiclePart, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, toVehiclePart(v))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one vehicle by plate.
func (h *VehicleHandler) Get(c echo.Context) error {
	vehicle, ok := h.Engine.LookupVehicle(c.Param("plate"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "vehicle not found"})
	}
	return c.JSON(http.StatusOK, toVehiclePart(vehicle))
}
