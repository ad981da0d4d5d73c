package route

// View names used by the default table.
const (
	ViewAuthLayout         = "auth"
	ViewLogin              = "login"
	ViewRegister           = "register"
	ViewDashboardLayout    = "dashboard-layout"
	ViewDashboardHome      = "dashboard-home"
	ViewSolicitudNueva     = "solicitud-nueva"
	ViewSolicitudRegistros = "solicitud-registros"
	ViewResultados         = "resultados"
)

// legacyHomeAlias is the old authenticated entry point kept as a redirect.
const legacyHomeAlias = "/evaluacion"

// Default returns the stock route tree: a guest area with login and register,
// an authenticated dashboard with nested pages, a root redirect to loginPath
// and a catch-all redirect to loginPath.
//
// homePath is the authenticated entry point that the legacy /evaluacion alias
// points to. When no route of the tree serves homePath, an authenticated
// single-page area is mounted there; for homePath "/evaluacion" that page
// replaces the alias.
func Default(loginPath, homePath string) []Route {
	dashboard := Route{
		Path: "/dashboard",
		View: ViewDashboardLayout,
		Meta: Meta{RequiresAuth: true},
		Children: []Route{
			{Path: "", Name: "dashboard-home", View: ViewDashboardHome},
			{Path: "solicitud/nueva", Name: "solicitud-nueva", View: ViewSolicitudNueva},
			{Path: "solicitud/registros", Name: "solicitud-registros", View: ViewSolicitudRegistros},
			{Path: "resultados", Name: "resultados", View: ViewResultados},
		},
	}
	guest := Route{
		Path: "/",
		View: ViewAuthLayout,
		Meta: Meta{RequiresGuest: true},
		Children: []Route{
			{Path: "login", Name: "login", View: ViewLogin},
			{Path: "register", Name: "register", View: ViewRegister},
		},
	}
	routes := []Route{{Path: "/", Redirect: loginPath}, guest, dashboard}

	home := normalize(homePath)
	if !serves(home, guest, dashboard) {
		routes = append(routes, Route{
			Path:     home,
			View:     ViewDashboardLayout,
			Meta:     Meta{RequiresAuth: true},
			Children: []Route{{Path: "", Name: "home", View: ViewDashboardHome}},
		})
	}
	if home != legacyHomeAlias {
		routes = append(routes, Route{Path: legacyHomeAlias, Redirect: homePath})
	}

	return append(routes, Route{Path: "*", Name: "not-found", Redirect: loginPath})
}

// serves reports whether p is the full path of a view record in areas.
func serves(p string, areas ...Route) bool {
	for _, a := range areas {
		base := normalize(a.Path)
		for _, c := range a.Children {
			if c.View != "" && join(base, c.Path) == p {
				return true
			}
		}
	}
	return false
}
