package models

// Role is the closed set of account roles issued by the auth service.
type Role string

const (
	RolePlayer     Role = "player"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
	RoleOperator   Role = "operator"
)

func (r Role) Valid() bool {
	switch r {
	case RolePlayer, RoleAdmin, RoleSuperAdmin, RoleOperator:
		return true
	default:
		return false
	}
}

// AdminTier reports whether the role grants elevated route access.
// Admin-tier membership is always derived from the role itself; the
// persisted projection in the session store is only a cached hint.
func (r Role) AdminTier() bool {
	switch r {
	case RoleAdmin, RoleSuperAdmin, RoleOperator:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

type UserProfile struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     Role   `json:"role"`

	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`

	Locale    string `json:"locale"`
	AvatarURL string `json:"avatar_url,omitempty"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// ProfilePatch carries a partial profile update. Nil fields are left
// untouched when the patch is applied.
type ProfilePatch struct {
	Username  *string  `json:"username,omitempty"`
	Balance   *float64 `json:"balance,omitempty"`
	Currency  *string  `json:"currency,omitempty"`
	Locale    *string  `json:"locale,omitempty"`
	AvatarURL *string  `json:"avatar_url,omitempty"`
}

func (p ProfilePatch) Empty() bool {
	return p.Username == nil && p.Balance == nil && p.Currency == nil &&
		p.Locale == nil && p.AvatarURL == nil
}

// Apply merges the patch into a copy of the profile and returns it.
func (p ProfilePatch) Apply(u UserProfile) UserProfile {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Balance != nil {
		u.Balance = *p.Balance
	}
	if p.Currency != nil {
		u.Currency = *p.Currency
	}
	if p.Locale != nil {
		u.Locale = *p.Locale
	}
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
	return u
}
