package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ObedVictorJesusVelardeOchoa/plazaplus-estacionamiento-inteligente/internal/engine"
	"github.com/ObedVictorJesusVelardeOchoa/plazaplus-estacionamiento-inteligente/internal/model"
	"github.com/ObedVictorJesusVelardeOchoa/plazaplus-estacionamiento-inteligente/internal/queue"
	queue_publisher "github.com/ObedVictorJesusVelardeOchoa/plazaplus-estacionamiento-inteligente/internal/service"
)

// StayHandler exposes the operational endpoints: check-in, check-out,
// payment, and the facility views.
type StayHandler struct {
	Engine *engine.Engine
}

func NewStayHandler(e *engine.Engine) *StayHandler {
	return &StayHandler{Engine: e}
}

type checkInReq struct {
	Plate   string `json:"plate"`
	Class   string `json:"class"`
	OwnerID string `json:"owner_id"`
}

type checkOutReq struct {
	Plate string `json:"plate"`
}

type payReq struct {
	TicketCode string `json:"ticket_code"`
}

type ticketPart struct {
	Code     string  `json:"code"`
	Plate    string  `json:"plate"`
	Slot     string  `json:"slot"`
	CheckIn  string  `json:"check_in"`
	CheckOut string  `json:"check_out,omitempty"`
	Amount   float64 `json:"amount"`
	Paid     bool    `json:"paid"`
	Status   string  `json:"status"`
}

type slotPart struct {
	Label  string `json:"label"`
	Floor  int    `json:"floor"`
	Sector string `json:"sector"`
	Number int    `json:"number"`
	Status string `json:"status"`
	Plate  string `json:"plate,omitempty"`
}

type waitingPart struct {
	Plate       string `json:"plate"`
	Class       string `json:"class"`
	RequestedAt string `json:"requested_at"`
}

const timeLayout = "2006-01-02T15:04:05"

func toTicketPart(t *model.Ticket) ticketPart {
	p := ticketPart{
		Code:    t.Code,
		Plate:   t.Vehicle.Plate,
		Slot:    t.Slot.Label(),
		CheckIn: t.CheckIn.Format(timeLayout),
		Amount:  t.Amount,
		Paid:    t.Paid,
		Status:  string(t.Status),
	}
	if t.CheckOut != nil {
		p.CheckOut = t.CheckOut.Format(timeLayout)
	}
	return p
}

// CheckIn runs the arrival protocol. An issued ticket is 201; a vehicle
// already inside is 409; a full facility queues the request and answers
// 202 with the queue position.
func (h *StayHandler) CheckIn(c echo.Context) error {
	var req checkInReq
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

	res := h.Engine.CheckIn(req.Plate, class, req.OwnerID)
	switch res.Status {
	case engine.CheckInAlreadyInside:
		return c.JSON(http.StatusConflict, echo.Map{"error": "vehicle already inside"})
	case engine.CheckInQueued:
		return c.JSON(http.StatusAccepted, echo.Map{
			"status":         string(res.Status),
			"queue_position": res.QueuePosition,
		})
	}

	t := res.Ticket
	go func() {
		_ = queue_publisher.PublishStayOpened(context.Background(), queue.StayOpenedEvent{
			TicketCode: t.Code,
			Plate:      t.Vehicle.Plate,
			Class:      string(t.Vehicle.Class),
			Slot:       t.Slot.Label(),
			OwnerID:    t.Vehicle.OwnerID,
			CheckInAt:  t.CheckIn.Format(timeLayout),
		})
	}()

	return c.JSON(http.StatusCreated, echo.Map{
		"status": string(res.Status),
		"ticket": toTicketPart(t),
	})
}

// CheckOut finalizes a stay and returns the priced ticket.
func (h *StayHandler) CheckOut(c echo.Context) error {
	var req checkOutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Plate) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "plate required"})
	}

	t, err := h.Engine.CheckOut(req.Plate)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no active stay for plate"})
	}

	go func() {
		ev := queue.StayClosedEvent{
			TicketCode: t.Code,
			Plate:      t.Vehicle.Plate,
			Slot:       t.Slot.Label(),
			Amount:     t.Amount,
		}
		if t.CheckOut != nil {
			ev.CheckOutAt = t.CheckOut.Format(timeLayout)
		}
		_ = queue_publisher.PublishStayClosed(context.Background(), ev)
	}()

	return c.JSON(http.StatusOK, toTicketPart(t))
}

// Pay marks a ticket as paid by code. Repeating a payment is harmless.
func (h *StayHandler) Pay(c echo.Context) error {
	var req payReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.TicketCode) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ticket_code required"})
	}
	if !h.Engine.RecordPayment(req.TicketCode) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ticket_code": req.TicketCode, "paid": true})
}

// Slots returns the whole grid in grid order.
func (h *StayHandler) Slots(c echo.Context) error {
	slots := h.Engine.Slots()
	out := make([]slotPart, 0, len(slots))
	for _, s := range slots {
		p := slotPart{
			Label:  s.Label(),
			Floor:  s.Floor,
			Sector: string(s.Sector),
			Number: s.Number,
			Status: string(s.Status),
		}
		if s.Vehicle != nil {
			p.Plate = s.Vehicle.Plate
		}
		out = append(out, p)
	}
	return c.JSON(http.StatusOK, out)
}

// Active returns the tickets of the vehicles currently parked.
func (h *StayHandler) Active(c echo.Context) error {
	return c.JSON(http.StatusOK, toTicketParts(h.Engine.ActiveTickets()))
}

// History returns every processed ticket, most recent first.
func (h *StayHandler) History(c echo.Context) error {
	return c.JSON(http.StatusOK, toTicketParts(h.Engine.History()))
}

// Waiting returns the waiting queue, front first.
func (h *StayHandler) Waiting(c echo.Context) error {
	reqs := h.Engine.WaitingRequests()
	out := make([]waitingPart, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, waitingPart{
			Plate:       r.Plate,
			Class:       string(r.Class),
			RequestedAt: r.RequestedAt.Format(timeLayout),
		})
	}
	return c.JSON(http.StatusOK, out)
}

// Stats summarizes the facility.
func (h *StayHandler) Stats(c echo.Context) error {
	s := h.Engine.Statistics()
	return c.JSON(http.StatusOK, echo.Map{
		"clients":  s.Clients,
		"vehicles": s.Vehicles,
		"parked":   s.Parked,
		"waiting":  s.Waiting,
		"tickets":  s.Tickets,
	})
}

func toTicketParts(tickets []*model.Ticket) []ticketPart {
	out := make([]ticketPart, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, toTicketPart(t))
	}
	return out
}
