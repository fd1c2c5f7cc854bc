package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"casino-webapp-backend/internal/auth"
	"casino-webapp-backend/internal/models"
	"casino-webapp-backend/internal/session"
)

// State is the admission state machine. Checking is the initial state;
// Authorized and Redirecting are terminal for a navigation. Protected
// handlers run only after Authorized is reached, so no protected content
// is produced ahead of a redirect.
type State int

const (
	Checking State = iota
	Authorized
	Redirecting
)

// LauncherQueryFlag requests a chrome-free full-bleed rendering mode.
// It never affects authorization.
const LauncherQueryFlag = "launcher"

// EmbeddedGamePrefix marks routes that render inside a game iframe and
// therefore never show the navbar.
const EmbeddedGamePrefix = "/games/embed/"

// CtxChromeSuppressed is set on admitted requests so handlers know
// whether to include page chrome in their payloads.
const CtxChromeSuppressed = "chrome_suppressed"

// GuardConfig narrows a guard beyond "any authenticated user". At most
// one of RequiredRole and AllowedRoles is normally set.
type GuardConfig struct {
	RequiredRole models.Role
	AllowedRoles []models.Role
	HideNav      bool
}

// Decision is the outcome of admitting one navigation.
type Decision struct {
	State          State
	Location       string
	SuppressChrome bool
}

// Admit runs the general admission policy against a session record for
// the given target (path plus query). It is pure: all I/O stays with
// the caller.
func Admit(rec session.Record, cfg GuardConfig, target string) Decision {
	if rec.Credential == "" {
		return redirectToLogin(target)
	}
	// Credential without a profile is a transient inconsistency; send
	// the user through login rather than guessing a role.
	if rec.User == nil {
		return redirectToLogin(target)
	}

	if cfg.RequiredRole != "" && rec.User.Role != cfg.RequiredRole {
		return Decision{State: Redirecting, Location: auth.LandingPathFor(rec.User.Role)}
	}
	if len(cfg.AllowedRoles) > 0 && !roleAllowed(rec.User.Role, cfg.AllowedRoles) {
		return Decision{State: Redirecting, Location: auth.LandingPathFor(rec.User.Role)}
	}

	return Decision{
		State:          Authorized,
		SuppressChrome: cfg.HideNav || chromeSuppressedByTarget(target),
	}
}

// AdmitAdmin is the binary admin-tier policy: login for the
// unauthenticated, player dashboard for everyone below admin tier.
func AdmitAdmin(rec session.Record, target string) Decision {
	if rec.Credential == "" || rec.User == nil {
		return redirectToLogin(target)
	}
	if !rec.User.Role.AdminTier() {
		return Decision{State: Redirecting, Location: auth.PathPlayerHome}
	}
	return Decision{State: Authorized, SuppressChrome: chromeSuppressedByTarget(target)}
}

// Guard gates a route group on the general admission policy.
func Guard(q *auth.Queries, cfg GuardConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := Admit(q.Snapshot(), cfg, c.Request.URL.RequestURI())
		apply(c, decision)
	}
}

// AdminGuard gates a route group on admin-tier membership.
func AdminGuard(q *auth.Queries) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := AdmitAdmin(q.Snapshot(), c.Request.URL.RequestURI())
		apply(c, decision)
	}
}

func apply(c *gin.Context, decision Decision) {
	if decision.State != Authorized {
		c.Redirect(http.StatusFound, decision.Location)
		c.Abort()
		return
	}

	c.Set(CtxChromeSuppressed, decision.SuppressChrome)
	c.Request = c.Request.WithContext(auth.WithAdmitted(c.Request.Context()))
	c.Next()
}

func redirectToLogin(target string) Decision {
	query := url.Values{"next": {target}}
	return Decision{
		State:    Redirecting,
		Location: auth.PathLogin + "?" + query.Encode(),
	}
}

func roleAllowed(role models.Role, allowed []models.Role) bool {
	for _, candidate := range allowed {
		if role == candidate {
			return true
		}
	}
	return false
}

func chromeSuppressedByTarget(target string) bool {
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	if strings.HasPrefix(u.Path, EmbeddedGamePrefix) {
		return true
	}
	return u.Query().Get(LauncherQueryFlag) == "1"
}
