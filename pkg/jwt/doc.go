// Package jwt decodes JSON Web Tokens held by the client and mints
// development tokens.
//
// Decode is the token decoding collaborator of the navigation guard. It reads
// the registered claims from the payload segment only, ignoring header and
// signature: the token issuer is an external backend, and the guard only needs
// the expiration time to decide whether a stored session is still usable. Any
// structural problem (no payload segment, bad base64, a payload that is not a
// JSON object, a non-numeric exp) is
// reported as ErrMalformedToken so callers can treat it uniformly.
//
// Issuer signs HS256 tokens. It backs the development login endpoint and the
// `portal token` command; it is not meant to replace the real auth backend.
//
// # Usage
//
//	claims, err := jwt.Decode(raw)
//	if err != nil {
//	    // treat as an invalid session
//	}
//	if claims.Expired(time.Now()) {
//	    // expired session
//	}
//
//	iss, _ := jwt.NewIssuer([]byte("dev-secret"), jwt.WithTTL(time.Hour))
//	token, _ := iss.Issue("user-42")
//
// Context helpers (SetToken, SetClaims, GetToken, GetClaims) attach the raw
// token and its claims to a request context once the guard has allowed a
// navigation.
package jwt
