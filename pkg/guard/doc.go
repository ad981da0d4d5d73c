// Package guard decides whether a navigation may proceed based on the session
// token in a client's token slot.
//
// The decision is split in two. Policy.Decide is a pure function from a
// destination's access tags and a SessionState to an Outcome:
//
//  1. an invalid session redirects to the login path;
//  2. a requiresAuth destination without a valid session redirects to login;
//  3. a requiresGuest destination with a valid session redirects home;
//  4. anything else is allowed.
//
// A redirect that would land on the destination itself becomes Block.
//
// Guard.Check wraps the policy with the side effects: it reads the slot,
// classifies the token with Evaluate (empty, valid, or expired/undecodable),
// removes invalid tokens and notifies observers.
//
//	g := guard.New(guard.DefaultPolicy(), jwt.Decode,
//	    guard.WithLogger(log),
//	    guard.WithObserver(metrics),
//	)
//	r.Use(g.Middleware(table, storeFor))
//
// Token signatures are never verified; the guard only inspects exp.
package guard
