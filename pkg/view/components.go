package view

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/portalguard/pkg/route"
)

func esc(s string) string { return templ.EscapeString(s) }

// children renders the nested component of a layout, if any. The nested
// component must not see itself as its own children.
func children(ctx context.Context, w io.Writer) error {
	return templ.GetChildren(ctx).Render(templ.ClearChildren(ctx), w)
}

// Document is the outer HTML page.
func Document(title string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if title == "" {
			title = "Portal"
		}
		if _, err := fmt.Fprintf(w, `<!doctype html><html lang="es"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s</title></head><body>`, esc(title)); err != nil {
			return err
		}
		if err := children(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

// Placeholder renders a view that has no registered component.
func Placeholder(name string, d Data) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<section data-view="%s"><h1>%s</h1><p>%s</p>`, esc(name), esc(name), esc(d.Path)); err != nil {
			return err
		}
		if err := children(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</section>`)
		return err
	})
}

func AuthLayout(Data) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<main class="auth">`); err != nil {
			return err
		}
		if err := children(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main>`)
		return err
	})
}

func Login(d Data) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Iniciar sesión</h1>`+
			`<form method="post" action="/session">`+
			`<label for="token">Token</label><textarea id="token" name="token" required></textarea>`+
			`<button type="submit">Entrar</button></form>`); err != nil {
			return err
		}
		if d.DevLogin {
			if _, err := io.WriteString(w, `<form method="post" action="/session/dev" data-dev-login>`+
				`<label for="subject">Usuario</label><input id="subject" name="subject" required>`+
				`<button type="submit">Entrar (desarrollo)</button></form>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `<a href="/register">Crear cuenta</a>`)
		return err
	})
}

func Register(Data) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<h1>Registro</h1><p>El registro se realiza con su administrador.</p><a href="/login">Volver</a>`)
		return err
	})
}

func DashboardLayout(d Data) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		home := d.HomePath
		if home == "" {
			home = "/dashboard"
		}
		if _, err := fmt.Fprintf(w, `<nav><a href="%s">Inicio</a>`+
			`<a href="/dashboard/solicitud/nueva">Nueva solicitud</a>`+
			`<a href="/dashboard/solicitud/registros">Registros</a>`+
			`<a href="/dashboard/resultados">Resultados</a>`+
			`<span class="user">%s</span>`+
			`<form method="post" action="/logout"><button type="submit">Salir</button></form></nav>`+
			`<section id="content">`, esc(home), esc(d.Subject)); err != nil {
			return err
		}
		if err := children(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</section>`)
		return err
	})
}

func heading(title string) Factory {
	return func(Data) templ.Component {
		return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
			_, err := fmt.Fprintf(w, `<h1>%s</h1>`, esc(title))
			return err
		})
	}
}

// Default registers the views of the default route table.
func Default() *Registry {
	r := NewRegistry()
	r.Register(route.ViewAuthLayout, AuthLayout)
	r.Register(route.ViewLogin, Login)
	r.Register(route.ViewRegister, Register)
	r.Register(route.ViewDashboardLayout, DashboardLayout)
	r.Register(route.ViewDashboardHome, heading("Panel"))
	r.Register(route.ViewSolicitudNueva, heading("Nueva solicitud"))
	r.Register(route.ViewSolicitudRegistros, heading("Registros de solicitudes"))
	r.Register(route.ViewResultados, heading("Resultados"))
	return r
}
