package store

import (
	"fmt"
	"log"
	"strings"

	"github.com/ObedVictorJesusVelardeOchoa/plazaplus-estacionamiento-inteligente/internal/model"
)

// UserStore persists API credentials in users.txt.
// Record: username|password|role, where the password field holds a bcrypt
// hash.
type UserStore struct {
	file *lineFile
}

// NewUserStore opens (or prepares) the credential file under dir.
func NewUserStore(dir string) (*UserStore, error) {
	f, err := newLineFile(dir, "users.txt")
	if err != nil {
		return nil, err
	}
	return &UserStore{file: f}, nil
}

// LoadAll parses every credential record.
func (s *UserStore) LoadAll() ([]*model.User, error) {
	lines, err := s.file.readLines()
	if err != nil {
		return nil, err
	}
	var users []*model.User
	for _, line := range lines {
		u, err := parseUser(line)
		if err != nil {
			log.Printf("users.txt: skipping record: %v", err)
			continue
		}
		users = append(users, u)
	}
	return users, nil
}

// FindByUsername returns the credential record for the given username, or
// false.
func (s *UserStore) FindByUsername(username string) (*model.User, bool, error) {
	line, ok, err := s.file.findLine(strings.TrimSpace(username) + "|")
	if err != nil || !ok {
		return nil, false, err
	}
	u, err := parseUser(line)
	if err != nil {
		log.Printf("users.txt: skipping record: %v", err)
		return nil, false, nil
	}
	return u, true, nil
}

// Save inserts the user or overwrites its existing record in place.
func (s *UserStore) Save(u *model.User) error {
	return s.file.upsertLine(u.Username, fmt.Sprintf("%s|%s|%s", u.Username, u.PasswordHash, u.Role))
}

func parseUser(line string) (*model.User, error) {
	fields := strings.Split(line, "|")
	if len(fields) < 3 {
		return nil, fmt.Errorf("user record has %d fields, want 3", len(fields))
	}
	return &model.User{Username: fields[0], PasswordHash: fields[1], Role: fields[2]}, nil
}
