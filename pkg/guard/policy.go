package guard

import "github.com/dmitrymomot/portalguard/pkg/route"

// Destination describes one end of a navigation.
type Destination struct {
	Path string
	Meta route.Meta
	// Requested is the path asked for when route-level redirects led to Path.
	Requested string
}

// Policy holds the two entry points the guard redirects to.
type Policy struct {
	// LoginPath is the guest entry point.
	LoginPath string `env:"LOGIN_PATH" envDefault:"/login"`
	// HomePath is the authenticated entry point.
	HomePath string `env:"HOME_PATH" envDefault:"/dashboard"`
}

// DefaultPolicy redirects guests to /login and signed-in users to /dashboard.
func DefaultPolicy() Policy {
	return Policy{LoginPath: "/login", HomePath: "/dashboard"}
}

// Decide maps a destination and session state onto an outcome. It has no
// side effects; clearing an invalid slot is the caller's job.
func (p Policy) Decide(dest Destination, state SessionState) Outcome {
	switch {
	case state == SessionInvalid:
		return RedirectTo(p.LoginPath, ReasonInvalidSession)
	case dest.Meta.RequiresAuth && state != SessionValid:
		return p.redirect(dest, p.LoginPath, ReasonAuthRequired)
	case dest.Meta.RequiresGuest && state == SessionValid:
		return p.redirect(dest, p.HomePath, ReasonGuestOnly)
	default:
		return Allowed()
	}
}

// redirect blocks instead of sending a client to the page it was refused,
// either as resolved or as requested.
func (p Policy) redirect(dest Destination, to string, reason Reason) Outcome {
	if to == dest.Path || (dest.Requested != "" && to == dest.Requested) {
		return Blocked(ReasonSelfRedirect)
	}
	return RedirectTo(to, reason)
}
