// Package portal assembles the navigation guard into an HTTP application.
//
// Every route of the table is mounted as a GET route on a chi router behind
// the guard middleware, so a page renders only when the guard allows it.
// The token slot lives in a cookie by default; with TOKEN_STORE=memory or
// TOKEN_STORE=redis it lives on the server, scoped per client by a uuid held
// in the "cid" cookie.
//
// Session endpoints stand in for the external login flow:
//
//	POST /session      token=<jwt>     store the token, 303 to HOME_PATH
//	POST /logout                       clear the slot, 303 to LOGIN_PATH
//	POST /session/dev  subject=<name>  mint and store a token (DEV_SIGNING_KEY only)
//
// Operational endpoints are /healthz, /readyz and, with WithMetrics, /metrics.
//
//	cfg := portal.DefaultConfig()
//	p, err := portal.New(cfg, portal.WithLogger(log), portal.WithMetrics(metrics.New()))
//	if err != nil {
//		return err
//	}
//	return httpserver.New(httpCfg).Run(ctx, p.Handler())
package portal
