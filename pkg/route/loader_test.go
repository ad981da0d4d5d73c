package route_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portalguard/pkg/route"
)

const evaluacionTree = `
routes:
  - path: /
    redirect: /login
  - path: /
    view: auth
    meta:
      requiresGuest: true
    children:
      - path: login
        name: login
        view: login
      - path: register
        name: register
        view: register
  - path: /evaluacion
    name: evaluacion
    view: evaluacion
    meta:
      requiresAuth: true
  - path: "*"
    redirect: /login
`

func TestParse(t *testing.T) {
	t.Parallel()

	routes, err := route.Parse([]byte(evaluacionTree))
	require.NoError(t, err)
	require.Len(t, routes, 4)

	table, err := route.New(routes)
	require.NoError(t, err)

	m, err := table.Resolve("/evaluacion")
	require.NoError(t, err)
	assert.Equal(t, "evaluacion", m.Entry.View)
	assert.True(t, m.Entry.Meta.RequiresAuth)
	assert.False(t, m.Entry.Meta.RequiresGuest)

	m, err = table.Resolve("/register")
	require.NoError(t, err)
	assert.True(t, m.Entry.Meta.RequiresGuest)
}

func TestParseBareList(t *testing.T) {
	t.Parallel()

	routes, err := route.Parse([]byte(`
- path: /reports
  view: dashboard-layout
  meta: {requiresAuth: true}
  children:
    - path: ":id"
      name: report
      view: report
- path: "*"
  redirect: /login
`))
	require.NoError(t, err)
	require.Len(t, routes, 2)

	m, err := route.MustNew(routes).Resolve("/reports/7")
	require.NoError(t, err)
	assert.Equal(t, "report", m.Entry.View)
	assert.Equal(t, map[string]string{"id": "7"}, m.Params)
	assert.True(t, m.Entry.Meta.RequiresAuth)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	_, err := route.Parse([]byte("routes: [this is: not valid"))
	assert.ErrorIs(t, err, route.ErrParseRoutes)

	_, err = route.Parse([]byte("routes: []"))
	assert.ErrorIs(t, err, route.ErrParseRoutes)

	_, err = route.Parse([]byte("[]"))
	assert.ErrorIs(t, err, route.ErrParseRoutes)

	_, err = route.Parse(nil)
	assert.ErrorIs(t, err, route.ErrParseRoutes)

	_, err = route.Parse([]byte("- just a string"))
	assert.ErrorIs(t, err, route.ErrParseRoutes)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "routes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(evaluacionTree), 0o600))

	routes, err := route.LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, routes, 4)

	_, err = route.LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, route.ErrParseRoutes)
}
