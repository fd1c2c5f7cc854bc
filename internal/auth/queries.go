package auth

import (
	"casino-webapp-backend/internal/models"
	"casino-webapp-backend/internal/session"
)

// Route targets shared by the admission guards and the login flow.
const (
	PathLogin      = "/auth/login"
	PathPlayerHome = "/dashboard"
	PathAdminHome  = "/admin/overview"
)

// Queries is the read side of the session store. Every role or
// authentication check in the gateway goes through these helpers; no
// call site re-implements role-set membership.
type Queries struct {
	store *session.Store
}

func NewQueries(store *session.Store) *Queries {
	return &Queries{store: store}
}

// Snapshot returns the current session record as one consistent read.
func (q *Queries) Snapshot() session.Record {
	return q.store.Read()
}

// IsAuthenticated is true iff a non-empty credential is stored.
func (q *Queries) IsAuthenticated() bool {
	return q.store.Read().Credential != ""
}

func (q *Queries) CurrentUser() *models.UserProfile {
	return q.store.Read().User
}

// IsAdminTier recomputes admin membership from the stored role. The
// persisted projection is never consulted when the profile is present.
func (q *Queries) IsAdminTier() bool {
	user := q.CurrentUser()
	if user == nil {
		return false
	}
	return user.Role.AdminTier()
}

func (q *Queries) HasRole(role models.Role) bool {
	user := q.CurrentUser()
	if user == nil {
		return false
	}
	return user.Role == role
}

func (q *Queries) HasAnyRole(roles ...models.Role) bool {
	user := q.CurrentUser()
	if user == nil {
		return false
	}
	for _, role := range roles {
		if user.Role == role {
			return true
		}
	}
	return false
}

// LandingPathFor maps a role to its post-login destination. Total:
// unknown roles land on the player dashboard.
func LandingPathFor(role models.Role) string {
	if role.AdminTier() {
		return PathAdminHome
	}
	return PathPlayerHome
}
