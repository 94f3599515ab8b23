// Package queue defines the message payloads exchanged over the broker and
// the background consumer that turns them into an audit log.
package queue

// StayOpenedEvent is published when a check-in issues a ticket. It carries
// enough for downstream consumers to log or notify without reading the
// record files.
type StayOpenedEvent struct {
	TicketCode string `json:"ticket_code"`
	Plate      string `json:"plate"`
	Class      string `json:"class"`
	Slot       string `json:"slot"`
	OwnerID    string `json:"owner_id"`
	CheckInAt  string `json:"check_in_at"`
}

// StayClosedEvent is published when a check-out finalizes a stay.
type StayClosedEvent struct {
	TicketCode string  `json:"ticket_code"`
	Plate      string  `json:"plate"`
	Slot       string  `json:"slot"`
	Amount     float64 `json:"amount"`
	CheckOutAt string  `json:"check_out_at"`
}
