package guard

// Action is what the router must do with a navigation.
type Action uint8

const (
	Allow Action = iota
	Redirect
	Block
)

func (a Action) String() string {
	switch a {
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	case Block:
		return "block"
	default:
		return "unknown"
	}
}

// Reason explains a redirect or block.
type Reason string

const (
	ReasonNone           Reason = ""
	ReasonInvalidSession Reason = "invalid_session"
	ReasonAuthRequired   Reason = "auth_required"
	ReasonGuestOnly      Reason = "guest_only"
	// ReasonSelfRedirect marks a redirect that would point at its own destination.
	ReasonSelfRedirect Reason = "self_redirect"
)

// Outcome is the single result of a guard run.
// Location is set only for Redirect.
type Outcome struct {
	Action   Action
	Location string
	Reason   Reason
}

func Allowed() Outcome { return Outcome{Action: Allow} }

func RedirectTo(path string, reason Reason) Outcome {
	return Outcome{Action: Redirect, Location: path, Reason: reason}
}

func Blocked(reason Reason) Outcome { return Outcome{Action: Block, Reason: reason} }

// String renders "allow", "block" or "redirect:<path>".
func (o Outcome) String() string {
	if o.Action == Redirect {
		return "redirect:" + o.Location
	}
	return o.Action.String()
}
