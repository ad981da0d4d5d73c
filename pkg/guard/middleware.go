package guard

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/portalguard/pkg/jwt"
	"github.com/dmitrymomot/portalguard/pkg/logger"
	"github.com/dmitrymomot/portalguard/pkg/route"
	"github.com/dmitrymomot/portalguard/pkg/tokenstore"
)

// StoreFunc returns the token slot for the client behind r.
type StoreFunc func(w http.ResponseWriter, r *http.Request) tokenstore.Store

// Middleware runs the guard before every request reaches next.
//
// The request path is resolved through table. Route-level redirects are
// followed before the guard runs, so it sees the final destination. Outcomes
// map onto HTTP as follows:
//
//   - Redirect: 302 to the outcome location.
//   - Block: 403.
//   - Allow after a route-level redirect: 302 to the resolved path.
//   - Allow: next is called with the route.Match and, for a valid session,
//     the token claims in the request context.
//
// Paths matched by no route answer 404.
func (g *Guard) Middleware(table *route.Table, store StoreFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			m, err := table.Resolve(r.URL.Path)
			switch {
			case errors.Is(err, route.ErrNotFound):
				http.NotFound(w, r)
				return
			case err != nil:
				g.log.ErrorContext(ctx, "route resolution failed",
					logger.Path(r.URL.Path),
					logger.Error(err),
				)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			to := Destination{Path: m.Path, Meta: m.Entry.Meta, Requested: m.RedirectedFrom}
			out, claims := g.check(ctx, store(w, r), to, g.origin(table, r))

			switch out.Action {
			case Redirect:
				g.redirect(w, r, out.Location)
				return
			case Block:
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}

			if m.Redirected() {
				g.redirect(w, r, m.Path)
				return
			}

			ctx = route.WithMatch(ctx, m)
			if claims != nil {
				ctx = jwt.SetClaims(ctx, *claims)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RedirectFunc sends the client to location.
type RedirectFunc func(w http.ResponseWriter, r *http.Request, location string)

func statusRedirect(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusFound)
}

// origin derives the previous location from a same-host Referer.
func (g *Guard) origin(table *route.Table, r *http.Request) Destination {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != r.Host) {
		return Destination{}
	}
	if m, err := table.Resolve(ref.Path); err == nil {
		return Destination{Path: m.Path, Meta: m.Entry.Meta}
	}
	return Destination{Path: ref.Path}
}
