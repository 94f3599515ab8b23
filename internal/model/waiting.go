package model

import "time"

// WaitingRequest is a queued demand for a slot, created when check-in finds
// the grid full. Requests have no identity of their own; their position in
// the FIFO queue is what matters.
//
// Fields:
//  Plate       – plate of the vehicle waiting for a slot.
//  Class       – its vehicle class.
//  RequestedAt – when the request entered the queue.
type WaitingRequest struct {
	Plate       string
	Class       VehicleClass
	RequestedAt time.Time
}
