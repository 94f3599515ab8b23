package model

import (
	"strings"
	"time"

	"github.com/ObedVictorJesusVelardeOchoa/plazaplus-estacionamiento-inteligente/internal/collection"
)

// ClientCategory classifies a client for billing purposes. The category
// picks the discount applied when a stay is priced at check-out.
type ClientCategory string

const (
	CategorySubscriber ClientCategory = "SUBSCRIBER"
	CategoryFrequent   ClientCategory = "FREQUENT"
	CategoryRegular    ClientCategory = "REGULAR"
)

// ParseClientCategory resolves a category name case-insensitively and
// returns false for anything unknown.
func ParseClientCategory(s string) (ClientCategory, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SUBSCRIBER":
		return CategorySubscriber, true
	case "FREQUENT":
		return CategoryFrequent, true
	case "REGULAR":
		return CategoryRegular, true
	}
	return "", false
}

// Discount returns the multiplier applied to the hourly rate for this
// category: 20% off for subscribers, 10% for frequent clients, full price
// otherwise.
func (c ClientCategory) Discount() float64 {
	switch c {
	case CategorySubscriber:
		return 0.8
	case CategoryFrequent:
		return 0.9
	}
	return 1.0
}

// Client is a person who parks vehicles at the facility. Clients are keyed
// by their document id and are deactivated rather than deleted.
//
// Fields:
//  ID           – unique document id (external identity).
//  FirstNames   – given names.
//  LastNames    – family names.
//  Email        – contact email.
//  Phone        – contact phone.
//  Address      – postal address.
//  Gender       – free-form gender field carried from the registration form.
//  Category     – billing category (subscriber/frequent/regular).
//  RegisteredAt – registration date.
//  Active       – soft-delete flag.
//  Plates       – set of plates of the vehicles this client owns.
type Client struct {
	ID           string
	FirstNames   string
	LastNames    string
	Email        string
	Phone        string
	Address      string
	Gender       string
	Category     ClientCategory
	RegisteredAt time.Time
	Active       bool
	Plates       *collection.Set[string]
}

// NewClient builds an active client registered now with an empty plate set.
func NewClient(id, firstNames, lastNames, email string, category ClientCategory) *Client {
	return &Client{
		ID:           strings.TrimSpace(id),
		FirstNames:   firstNames,
		LastNames:    lastNames,
		Email:        email,
		Category:     category,
		RegisteredAt: time.Now(),
		Active:       true,
		Plates:       collection.NewSet[string](),
	}
}

// FullName joins the name fields for display.
func (c *Client) FullName() string {
	return strings.TrimSpace(c.FirstNames + " " + c.LastNames)
}

// OwnsPlate reports whether the given plate belongs to this client.
func (c *Client) OwnsPlate(plate string) bool {
	return c.Plates.Contains(NormalizePlate(plate))
}

// AddPlate links a plate to this client; duplicates are ignored.
func (c *Client) AddPlate(plate string) {
	c.Plates.Add(NormalizePlate(plate))
}
