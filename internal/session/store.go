// Package session keeps the signed-in user across requests. A Store writes
// to a prioritized list of backends and heals higher-priority backends when
// a read is answered by a lower one.
package session

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/employee-board/internal"
	"github.com/frahmantamala/employee-board/internal/core/user"
)

// ErrNoEntry is returned by Backend.Read when nothing is stored.
var ErrNoEntry = errors.New("session: no entry")

// Backend is one storage mechanism for the serialized user.
type Backend interface {
	Name() string
	Read(r *http.Request) ([]byte, error)
	Write(w http.ResponseWriter, r *http.Request, payload []byte) error
	Clear(w http.ResponseWriter, r *http.Request) error
}

type Store struct {
	backends []Backend
	logger   *slog.Logger
}

// NewStore orders backends by priority, highest first.
func NewStore(logger *slog.Logger, backends ...Backend) *Store {
	return &Store{backends: backends, logger: logger}
}

// Save writes u to every backend. Failures are logged, never returned.
func (s *Store) Save(w http.ResponseWriter, r *http.Request, u *user.User) {
	if !u.Valid() {
		s.logger.Warn("refusing to save incomplete session user")
		return
	}
	payload, err := json.Marshal(u)
	if err != nil {
		s.logger.Error("failed to encode session user", "error", err)
		return
	}

	written := 0
	for _, b := range s.backends {
		if err := b.Write(w, r, payload); err != nil {
			s.logger.Warn("session backend write failed", "backend", b.Name(), "error", err)
			continue
		}
		written++
	}
	if written == 0 {
		s.logger.Error("session not persisted",
			"employee_id", u.EmployeeID,
			"error", internal.ErrStorageUnavailable)
	}
}

// Get returns the stored user or nil. The first backend holding an entry
// wins; backends ahead of it are rewritten with that entry.
func (s *Store) Get(w http.ResponseWriter, r *http.Request) *user.User {
	for i, b := range s.backends {
		payload, err := b.Read(r)
		if err != nil {
			if !errors.Is(err, ErrNoEntry) {
				s.logger.Debug("session backend read failed", "backend", b.Name(), "error", err)
			}
			continue
		}

		var u user.User
		if err := json.Unmarshal(payload, &u); err != nil || !u.Valid() {
			s.logger.Warn("discarding undecodable session entry", "backend", b.Name())
			return nil
		}

		for _, higher := range s.backends[:i] {
			if err := higher.Write(w, r, payload); err != nil {
				s.logger.Warn("session heal failed", "backend", higher.Name(), "error", err)
			}
		}
		return &u
	}
	return nil
}

// Remove clears every backend. Safe to call when nothing is stored.
func (s *Store) Remove(w http.ResponseWriter, r *http.Request) {
	for _, b := range s.backends {
		if err := b.Clear(w, r); err != nil {
			s.logger.Warn("session backend clear failed", "backend", b.Name(), "error", err)
		}
	}
}
