// Package cookie wraps net/http cookies with shared defaults and optional
// HMAC-SHA256 signing.
//
// The Manager is created with zero or more secrets. Plain cookies (Set, Get,
// Delete) always work; signed cookies (SetSigned, GetSigned) need at least one
// secret of 32 characters or more. The first secret signs, all of them verify,
// so secrets can be rotated by prepending a new one.
//
// # Usage
//
//	man, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	_ = man.SetSigned(w, "cid", clientID)
//	id, err := man.GetSigned(r, "cid")
//
// # Configuration
//
// Config is loaded from the environment through pkg/config, then turned into
// a Manager with NewFromConfig. Only non-zero fields are applied.
//
// # Error Handling
//
// ErrCookieNotFound, ErrInvalidSignature and ErrInvalidFormat are sentinel
// values usable with errors.Is.
package cookie
