// Package environment names the deployment environment (development, staging,
// production) and carries it through context.Context and request handlers.
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	r.Use(environment.Middleware(env))
//
// LoggerExtractor turns the context value into an "env" log attribute.
package environment
