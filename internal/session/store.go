package session

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"casino-webapp-backend/internal/models"
)

// Record is the session as seen by readers: the opaque credential issued
// by the auth service plus the profile it belongs to. A record with a
// credential but no user is a transient state treated as unauthenticated
// by the admission guards.
type Record struct {
	Credential string
	User       *models.UserProfile
}

// Event is published to subscribers whenever the stored profile changes
// through Update.
type Event struct {
	User models.UserProfile
}

// Store owns the process-wide session record. All writes funnel through
// it: login, logout, the session initializer, and profile updates. Reads
// never fail; corrupt stored data degrades to "no session".
type Store struct {
	mu      sync.Mutex
	backend Backend
	ctx     context.Context

	subMu   sync.Mutex
	subs    map[int]chan Event
	nextSub int
}

func NewStore(backend Backend) *Store {
	return &Store{
		backend: backend,
		ctx:     context.Background(),
		subs:    make(map[int]chan Event),
	}
}

// Write persists the credential, profile, and the derived admin-tier
// projection together. The projection is recomputed from the role on
// every write so it can never drift from the profile.
func (s *Store) Write(credential string, user *models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(credential, user)
}

func (s *Store) writeLocked(credential string, user *models.UserProfile) error {
	userJSON := ""
	adminTier := "false"

	if user != nil {
		data, err := json.Marshal(user)
		if err != nil {
			return err
		}
		userJSON = string(data)
		if user.Role.AdminTier() {
			adminTier = "true"
		}
	}

	return s.backend.Write(s.ctx, credential, userJSON, adminTier)
}

// Clear wipes the session. It never fails: an unreachable backend is
// logged and ignored, and reads simply keep reporting unauthenticated.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Clear(s.ctx); err != nil {
		log.Printf("session: clear failed, continuing: %v", err)
	}
}

// Read returns the current record. Storage errors and unparseable
// profile data are logged and reported as an absent session or absent
// user, never as an error.
func (s *Store) Read() Record {
	credential, userJSON, _, err := s.backend.Read(s.ctx)
	if err != nil {
		log.Printf("session: read failed, treating as unauthenticated: %v", err)
		return Record{}
	}

	rec := Record{Credential: credential}
	if userJSON == "" {
		return rec
	}

	var user models.UserProfile
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		log.Printf("session: stored profile unparseable, treating as no user: %v", err)
		return rec
	}

	rec.User = &user
	return rec
}

// Update merges the patch into the latest stored profile and re-persists
// it, then notifies subscribers. Merging happens under the store lock so
// concurrent callers in the same process cannot lose each other's
// fields. Without an existing session this is a no-op.
func (s *Store) Update(patch models.ProfilePatch) error {
	s.mu.Lock()

	rec := s.Read()
	if rec.Credential == "" || rec.User == nil {
		s.mu.Unlock()
		return nil
	}

	updated := patch.Apply(*rec.User)
	if err := s.writeLocked(rec.Credential, &updated); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.notify(Event{User: updated})
	return nil
}

// Subscribe registers a change listener and returns its event channel
// with a cancel function. Events are delivered best-effort: a subscriber
// that is not draining its channel misses events rather than blocking a
// writer.
func (s *Store) Subscribe() (<-chan Event, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++

	ch := make(chan Event, 8)
	s.subs[id] = ch

	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}

	return ch, cancel
}

func (s *Store) notify(ev Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
