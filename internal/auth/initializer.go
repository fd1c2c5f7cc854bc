package auth

import (
	"context"
	"log"
	"sync"

	"casino-webapp-backend/internal/session"
)

// Restorer is the slice of the auth service the initializer needs.
type Restorer interface {
	RestoreSession(ctx context.Context, refreshCredential string) (*SessionPayload, error)
}

// Initializer hydrates the session store from the long-lived refresh
// credential once per process. It is purely additive: success upgrades
// an empty-looking session, and any failure leaves existing state
// untouched. Admission guards racing ahead of it simply see an
// unauthenticated session and redirect with the destination preserved.
type Initializer struct {
	store   *session.Store
	client  Restorer
	refresh string
	once    sync.Once
}

func NewInitializer(store *session.Store, client Restorer, refreshCredential string) *Initializer {
	return &Initializer{
		store:   store,
		client:  client,
		refresh: refreshCredential,
	}
}

// Run performs the restore exactly once. It never returns an error and
// never clears an already-populated store.
func (i *Initializer) Run(ctx context.Context) {
	i.once.Do(func() {
		i.restore(ctx)
	})
}

func (i *Initializer) restore(ctx context.Context) {
	if i.refresh == "" {
		return
	}

	payload, err := i.client.RestoreSession(ctx, i.refresh)
	if err != nil {
		log.Printf("session restore skipped: %v", err)
		return
	}
	if payload.User == nil || !payload.User.Role.Valid() {
		log.Printf("session restore skipped: incomplete payload")
		return
	}

	if err := i.store.Write(payload.Credential, payload.User); err != nil {
		log.Printf("session restore write failed: %v", err)
	}
}

var _ Restorer = (*Client)(nil)
