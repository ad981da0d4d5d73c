package portal

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/portalguard/handler"
	"github.com/dmitrymomot/portalguard/pkg/clientip"
	"github.com/dmitrymomot/portalguard/pkg/cookie"
	"github.com/dmitrymomot/portalguard/pkg/environment"
	"github.com/dmitrymomot/portalguard/pkg/guard"
	"github.com/dmitrymomot/portalguard/pkg/httpserver"
	"github.com/dmitrymomot/portalguard/pkg/jwt"
	"github.com/dmitrymomot/portalguard/pkg/logger"
	"github.com/dmitrymomot/portalguard/pkg/metrics"
	"github.com/dmitrymomot/portalguard/pkg/ratelimiter"
	redisx "github.com/dmitrymomot/portalguard/pkg/redis"
	"github.com/dmitrymomot/portalguard/pkg/requestid"
	"github.com/dmitrymomot/portalguard/pkg/route"
	"github.com/dmitrymomot/portalguard/pkg/tokenstore"
	"github.com/dmitrymomot/portalguard/pkg/view"
)

// Portal wires the route table, the navigation guard and the token slot into
// an HTTP handler.
type Portal struct {
	cfg     Config
	env     environment.Environment
	log     *slog.Logger
	now     func() time.Time
	table   *route.Table
	guard   *guard.Guard
	views   *view.Registry
	cookies *cookie.Manager
	metrics *metrics.Metrics
	redis   redis.UniversalClient
	issuer  *jwt.Issuer
	limiter *ratelimiter.Bucket

	// slots is the shared server-side store; nil when the slot lives in cookies.
	slots tokenstore.Store
}

type Option func(*Portal)

func WithLogger(l *slog.Logger) Option {
	return func(p *Portal) {
		if l != nil {
			p.log = l
		}
	}
}

func WithEnvironment(env environment.Environment) Option {
	return func(p *Portal) { p.env = env }
}

// WithMetrics records guard decisions and HTTP requests and serves /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Portal) { p.metrics = m }
}

// WithRedis provides the client for the redis token store and the /readyz check.
func WithRedis(client redis.UniversalClient) Option {
	return func(p *Portal) { p.redis = client }
}

// WithSessionLimiter throttles the session endpoints per client IP.
func WithSessionLimiter(b *ratelimiter.Bucket) Option {
	return func(p *Portal) { p.limiter = b }
}

// WithCookieManager replaces the unsigned default cookie manager.
func WithCookieManager(m *cookie.Manager) Option {
	return func(p *Portal) {
		if m != nil {
			p.cookies = m
		}
	}
}

// WithViews replaces view.Default().
func WithViews(r *view.Registry) Option {
	return func(p *Portal) {
		if r != nil {
			p.views = r
		}
	}
}

// WithClock replaces time.Now for the guard and the development issuer.
func WithClock(now func() time.Time) Option {
	return func(p *Portal) {
		if now != nil {
			p.now = now
		}
	}
}

// New builds a Portal from cfg. The route table comes from cfg.RoutesFile
// when set, otherwise from route.Default.
func New(cfg Config, opts ...Option) (*Portal, error) {
	p := &Portal{
		cfg:   cfg,
		env:   environment.Development,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:   time.Now,
		views: view.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.cookies == nil {
		m, err := cookie.New(nil)
		if err != nil {
			return nil, err
		}
		p.cookies = m
	}

	routes := route.Default(cfg.LoginPath, cfg.HomePath)
	if cfg.RoutesFile != "" {
		var err error
		if routes, err = route.LoadFile(cfg.RoutesFile); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadRoutes, err)
		}
	}
	table, err := route.New(routes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadRoutes, err)
	}
	p.table = table

	switch cfg.TokenStore {
	case StoreCookie, "":
	case StoreMemory:
		p.slots = tokenstore.NewMemoryStore(
			tokenstore.WithMemoryTTL(cfg.SlotTTL),
			tokenstore.WithMemoryClock(p.now),
		)
		if cfg.SlotTTL <= 0 {
			p.log.Warn("memory token store without SLOT_TTL keeps slots until logout")
		}
	case StoreRedis:
		if p.redis == nil {
			return nil, ErrRedisRequired
		}
		p.slots = tokenstore.NewRedisStore(p.redis,
			tokenstore.WithPrefix(cfg.RedisKeyPrefix),
			tokenstore.WithTTL(cfg.SlotTTL),
		)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTokenStore, cfg.TokenStore)
	}

	if p.slots != nil && !p.cookies.CanSign() {
		p.log.Warn("client id cookie is unsigned, set COOKIE_SECRETS",
			slog.String("token_store", cfg.TokenStore),
		)
	}

	if cfg.DevSigningKey != "" {
		if p.env.IsProduction() {
			p.log.Warn("development sign-in is enabled in production")
		}
		p.issuer, err = jwt.NewIssuer([]byte(cfg.DevSigningKey),
			jwt.WithIssuerName("portal-dev"),
			jwt.WithTTL(cfg.DevTokenTTL),
			jwt.WithNow(p.now),
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDevIssuer, err)
		}
	}

	guardOpts := []guard.Option{
		guard.WithTokenKey(cfg.TokenKey),
		guard.WithClock(p.now),
		guard.WithLogger(p.log),
		guard.WithRedirect(p.redirect),
	}
	if p.metrics != nil {
		guardOpts = append(guardOpts, guard.WithObserver(p.metrics))
	}
	p.guard = guard.New(guard.Policy{LoginPath: cfg.LoginPath, HomePath: cfg.HomePath}, jwt.Decode, guardOpts...)

	return p, nil
}

func (p *Portal) Table() *route.Table { return p.table }
func (p *Portal) Guard() *guard.Guard { return p.guard }

// Handler returns the router: operational endpoints, session endpoints and
// one guarded GET route per table entry. Paths chi cannot place still reach
// the guard through the not-found handler, so the table has the last word.
func (p *Portal) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer,
		requestid.Middleware,
		clientip.Middleware,
		environment.Middleware(p.env),
	)
	if p.metrics != nil {
		r.Use(p.metrics.Middleware)
	}
	r.Use(middleware.GetHead)

	if p.metrics != nil {
		r.Method(http.MethodGet, "/metrics", p.metrics.Handler())
	}

	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(p.log, p.readiness()))

	wrapOpts := []handler.WrapOption{handler.WithLogger(p.log)}
	r.Group(func(r chi.Router) {
		if p.limiter != nil {
			r.Use(ratelimiter.Middleware(p.limiter, ratelimiter.ByIP, p.log))
		}
		r.Post("/session", handler.Wrap(p.createSession, wrapOpts...))
		if p.issuer != nil {
			r.Post("/session/dev", handler.Wrap(p.devSession, wrapOpts...))
		}
	})
	r.Post("/logout", handler.Wrap(p.logout, wrapOpts...))

	page := p.guard.Middleware(p.table, p.slot)(handler.Wrap(p.page, wrapOpts...))
	r.Group(func(r chi.Router) {
		seen := make(map[string]struct{})
		for _, e := range p.table.Entries() {
			pattern := chiPattern(e.FullPath)
			if _, ok := seen[pattern]; ok {
				continue
			}
			seen[pattern] = struct{}{}
			r.Method(http.MethodGet, pattern, page)
		}
	})
	r.NotFound(page.ServeHTTP)

	return r
}

func (p *Portal) readiness() map[string]httpserver.CheckFunc {
	checks := make(map[string]httpserver.CheckFunc)
	if p.redis != nil {
		checks["redis"] = redisx.Healthcheck(p.redis)
	}
	return checks
}

// chiPattern converts ":name" segments to chi's "{name}".
func chiPattern(fullPath string) string {
	parts := strings.Split(fullPath, "/")
	for i, s := range parts {
		if strings.HasPrefix(s, ":") && len(s) > 1 {
			parts[i] = "{" + s[1:] + "}"
		}
	}
	return strings.Join(parts, "/")
}

func (p *Portal) page(ctx handler.Context, _ struct{}) handler.Response {
	m, ok := route.MatchFromContext(ctx)
	if !ok {
		return handler.Error(handler.ErrNotFound)
	}

	d := view.Data{
		Title:     pageTitle(m.Entry),
		Path:      m.Path,
		Params:    m.Params,
		LoginPath: p.cfg.LoginPath,
		HomePath:  p.cfg.HomePath,
		DevLogin:  p.issuer != nil,
	}
	if claims, ok := jwt.GetClaims(ctx); ok {
		d.Subject = claims.Subject
	}

	return handler.Templ(p.views.Compose(m.Entry.Layouts, m.Entry.View, d))
}

// redirect answers guard redirects, as an SSE redirect event for Datastar requests.
func (p *Portal) redirect(w http.ResponseWriter, r *http.Request, location string) {
	if err := handler.RedirectWithCode(location, http.StatusFound).Render(w, r); err != nil {
		p.log.WarnContext(r.Context(), "redirect failed", logger.Path(location), logger.Error(err))
	}
}

func pageTitle(e route.Entry) string {
	if e.Name != "" {
		return e.Name
	}
	return e.View
}
