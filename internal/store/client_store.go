package store

import (
	"fmt"
	"log"
	"strings"

	"github.com/ObedVictorJesusVelardeOchoa/plazaplus-estacionamiento-inteligente/internal/model"
)

// ClientStore persists clients in clients.txt.
// Record: id|firstNames|lastNames|email|phone|address|gender|category|plate1,plate2,...
type ClientStore struct {
	file *lineFile
}

// NewClientStore opens (or prepares) the client record file under dir.
func NewClientStore(dir string) (*ClientStore, error) {
	f, err := newLineFile(dir, "clients.txt")
	if err != nil {
		return nil, err
	}
	return &ClientStore{file: f}, nil
}

// LoadAll parses every stored client. Malformed records are skipped with a
// logged warning.
func (s *ClientStore) LoadAll() ([]*model.Client, error) {
	lines, err := s.file.readLines()
	if err != nil {
		return nil, err
	}
	var clients []*model.Client
	for _, line := range lines {
		c, err := parseClient(line)
		if err != nil {
			log.Printf("clients.txt: skipping record: %v", err)
			continue
		}
		clients = append(clients, c)
	}
	return clients, nil
}

// FindByID returns the stored client with the given id, or false.
func (s *ClientStore) FindByID(id string) (*model.Client, bool, error) {
	line, ok, err := s.file.findLine(id + "|")
	if err != nil || !ok {
		return nil, false, err
	}
	c, err := parseClient(line)
	if err != nil {
		log.Printf("clients.txt: skipping record: %v", err)
		return nil, false, nil
	}
	return c, true, nil
}

// Save inserts the client or overwrites its existing record in place.
func (s *ClientStore) Save(c *model.Client) error {
	return s.file.upsertLine(c.ID, formatClient(c))
}

func formatClient(c *model.Client) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s|%s|%s",
		c.ID, c.FirstNames, c.LastNames, c.Email, c.Phone, c.Address,
		c.Gender, c.Category, strings.Join(c.Plates.Values(), ","))
}

func parseClient(line string) (*model.Client, error) {
	fields := strings.Split(line, "|")
	if len(fields) < 8 {
		return nil, fmt.Errorf("client record has %d fields, want at least 8", len(fields))
	}
	category, ok := model.ParseClientCategory(fields[7])
	if !ok {
		return nil, fmt.Errorf("unknown client category %q", fields[7])
	}
	c := model.NewClient(fields[0], fields[1], fields[2], fields[3], category)
	c.Phone = fields[4]
	c.Address = fields[5]
	c.Gender = fields[6]
	if len(fields) > 8 && fields[8] != "" {
		for _, plate := range strings.Split(fields[8], ",") {
			if strings.TrimSpace(plate) != "" {
				c.AddPlate(plate)
			}
		}
	}
	return c, nil
}
