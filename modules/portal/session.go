package portal

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/portalguard/handler"
	"github.com/dmitrymomot/portalguard/pkg/cookie"
	"github.com/dmitrymomot/portalguard/pkg/guard"
	"github.com/dmitrymomot/portalguard/pkg/logger"
	"github.com/dmitrymomot/portalguard/pkg/tokenstore"
)

// ClientIDCookie names the cookie that scopes server-side slots per client.
const ClientIDCookie = "cid"

// clientIDMaxAge keeps the client id for a year.
const clientIDMaxAge = 365 * 24 * 60 * 60

// slot returns the token slot of the client behind r.
func (p *Portal) slot(w http.ResponseWriter, r *http.Request) tokenstore.Store {
	if p.slots == nil {
		return tokenstore.NewCookieStore(p.cookies, w, r,
			tokenstore.WithSignedCookies(p.cookies.CanSign()),
			tokenstore.WithCookieMaxAge(p.cfg.SlotTTL),
		)
	}
	return tokenstore.Scoped(p.slots, p.clientID(w, r))
}

// clientID reads the client id cookie, issuing a new one when it is missing
// or does not hold a uuid.
func (p *Portal) clientID(w http.ResponseWriter, r *http.Request) string {
	var (
		id  string
		err error
	)
	if p.cookies.CanSign() {
		id, err = p.cookies.GetSigned(r, ClientIDCookie)
	} else {
		id, err = p.cookies.Get(r, ClientIDCookie)
	}
	if err == nil {
		if _, perr := uuid.Parse(id); perr == nil {
			return id
		}
	}

	id = uuid.NewString()
	if p.cookies.CanSign() {
		if err := p.cookies.SetSigned(w, ClientIDCookie, id, cookie.WithMaxAge(clientIDMaxAge)); err != nil {
			p.log.ErrorContext(r.Context(), "failed to set client id cookie", logger.Error(err))
		}
	} else {
		p.cookies.Set(w, ClientIDCookie, id, cookie.WithMaxAge(clientIDMaxAge))
	}
	p.log.DebugContext(r.Context(), "issued client id", logger.ClientID(id))
	return id
}

type sessionRequest struct {
	Token string `form:"token" json:"token"`
}

// createSession stores a token handed over by the external login flow.
// Tokens that are already unusable are not stored.
func (p *Portal) createSession(ctx handler.Context, req sessionRequest) handler.Response {
	token := strings.TrimSpace(req.Token)
	if token == "" {
		return handler.Error(handler.ErrBadRequest)
	}

	state, err := guard.Evaluate(token, nil, p.now())
	if state != guard.SessionValid {
		p.log.InfoContext(ctx, "rejected session token", logger.Error(err))
		return handler.Redirect(p.cfg.LoginPath)
	}

	r, w := ctx.Request(), ctx.ResponseWriter()
	if err := p.slot(w, r).Set(ctx, p.guard.TokenKey(), token); err != nil {
		p.log.ErrorContext(ctx, "failed to store session token", logger.Error(err))
		return handler.Error(handler.ErrServiceUnavailable)
	}
	return handler.Redirect(p.cfg.HomePath)
}

func (p *Portal) logout(ctx handler.Context, _ struct{}) handler.Response {
	r, w := ctx.Request(), ctx.ResponseWriter()
	if err := p.slot(w, r).Remove(ctx, p.guard.TokenKey()); err != nil {
		p.log.WarnContext(ctx, "failed to clear token slot", logger.Error(err))
	}
	return handler.Redirect(p.cfg.LoginPath)
}

type devSessionRequest struct {
	Subject string `form:"subject" json:"subject"`
}

// devSession mints a token for any subject. Only mounted with DEV_SIGNING_KEY.
func (p *Portal) devSession(ctx handler.Context, req devSessionRequest) handler.Response {
	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		return handler.Error(handler.ErrBadRequest)
	}

	token, err := p.issuer.Issue(subject)
	if err != nil {
		return handler.Error(err)
	}

	r, w := ctx.Request(), ctx.ResponseWriter()
	if err := p.slot(w, r).Set(ctx, p.guard.TokenKey(), token); err != nil {
		p.log.ErrorContext(ctx, "failed to store session token", logger.Error(err))
		return handler.Error(handler.ErrServiceUnavailable)
	}
	p.log.InfoContext(ctx, "development session created", logger.Subject(subject), slog.String("env", p.env.String()))
	return handler.Redirect(p.cfg.HomePath)
}
