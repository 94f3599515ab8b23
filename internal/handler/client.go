package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ObedVictorJesusVelardeOchoa/plazaplus-estacionamiento-inteligente/internal/engine"
	"github.com/ObedVictorJesusVelardeOchoa/plazaplus-estacionamiento-inteligente/internal/model"
)

// ClientHandler exposes the client registry.
type ClientHandler struct {
	Engine *engine.Engine
}

func NewClientHandler(e *engine.Engine) *ClientHandler {
	return &ClientHandler{Engine: e}
}

type createClientReq struct {
	ID         string `json:"id"`
	FirstNames string `json:"first_names"`
	LastNames  string `json:"last_names"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Gender     string `json:"gender"`
	Category   string `json:"category"` // SUBSCRIBER | FREQUENT | REGULAR
}

type clientPart struct {
	ID         string   `json:"id"`
	FirstNames string   `json:"first_names"`
	LastNames  string   `json:"last_names"`
	Email      string   `json:"email,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Address    string   `json:"address,omitempty"`
	Gender     string   `json:"gender,omitempty"`
	Category   string   `json:"category"`
	Plates     []string `json:"plates"`
}

func toClientPart(c *model.Client) clientPart {
	return clientPart{
		ID:         c.ID,
		FirstNames: c.FirstNames,
		LastNames:  c.LastNames,
		Email:      c.Email,
		Phone:      c.Phone,
		Address:    c.Address,
		Gender:     c.Gender,
		Category:   string(c.Category),
		Plates:     c.Plates.Values(),
	}
}

// Create registers a client. A duplicate document id is a conflict.
func (h *ClientHandler) Create(c echo.Context) error {
	var req createClientReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.ID = strings.TrimSpace(req.ID)
	if req.ID == "" || strings.TrimSpace(req.FirstNames) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id and first_names required"})
	}
	category, ok := model.ParseClientCategory(req.Category)
	if !ok {
		category = model.CategoryRegular
	}

	client := model.NewClient(req.ID, req.FirstNames, req.LastNames, req.Email, category)
	client.Phone = req.Phone
	client.Address = req.Address
	client.Gender = req.Gender

	if !h.Engine.RegisterClient(client) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "client id already registered"})
	}
	return c.JSON(http.StatusCreated, toClientPart(client))
}

// List returns every client in document-id order.
func (h *ClientHandler) List(c echo.Context) error {
	clients := h.Engine.Clients()
	out := make([]clientPart, 0, len(clients))
	for _, cl := range clients {
		out = append(out, toClientPart(cl))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one client by document id.
func (h *ClientHandler) Get(c echo.Context) error {
	client, ok := h.Engine.LookupClient(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
	}
	return c.JSON(http.StatusOK, toClientPart(client))
}

// Vehicles returns the vehicles registered to one client.
func (h *ClientHandler) Vehicles(c echo.Context) error {
	if _, ok := h.Engine.LookupClient(c.Param("id")); !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
	}
	vehicles := h.Engine.VehiclesByOwner(c.Param("id"))
	out := make([]vehiclePart, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, toVehiclePart(v))
	}
	return c.JSON(http.StatusOK, out)
}
