package session

import "time"

const (
	// Key patterns take the store namespace as their first argument so
	// several gateway instances can share one Redis without colliding.
	KeyCredential = "%s:session:credential"
	KeyUser       = "%s:session:user"
	KeyAdminTier  = "%s:session:admin_tier"

	// A session outlives any single page visit but not the long-lived
	// refresh credential held by the auth service.
	TTLSession = 24 * time.Hour
)
