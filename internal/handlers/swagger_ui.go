package handlers

import (
	"html/template"
	"net/http"

	"weather-dashboard/internal/presentation"
)

const (
	openAPIPath      = "/api/docs/openapi.json"
	swaggerUIVersion = "5.17.14"
)

type docsPage struct {
	Title     string
	SpecURL   string
	AssetBase string
	Theme     presentation.Theme
	NextTheme presentation.Theme
}

var docsTemplate = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html lang="en" data-theme="{{.Theme}}">
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <link rel="stylesheet" href="{{.AssetBase}}/swagger-ui.css">
    <style>
        body { margin: 0; }
        .dashboard-bar { display: flex; justify-content: space-between; align-items: center; padding: 12px 24px; font-family: sans-serif; background: #4a90d9; color: #fff; }
        .dashboard-bar a { color: #fff; }
        html[data-theme="dark"] body { background: #1e1e2e; }
        html[data-theme="dark"] .swagger-ui { filter: invert(88%) hue-rotate(180deg); }
        html[data-theme="dark"] .dashboard-bar { background: #2d3b55; }
    </style>
</head>
<body>
    <div class="dashboard-bar">
        <strong>🌤️ {{.Title}}</strong>
        <a href="?theme={{.NextTheme}}">Switch to {{.NextTheme}} theme</a>
    </div>
    <div id="swagger-ui"></div>
    <script src="{{.AssetBase}}/swagger-ui-bundle.js"></script>
    <script>
        window.onload = function() {
            window.ui = SwaggerUIBundle({
                url: "{{.SpecURL}}",
                dom_id: "#swagger-ui",
                deepLinking: true,
                defaultModelsExpandDepth: 0,
                tryItOutEnabled: true,
                presets: [SwaggerUIBundle.presets.apis],
                layout: "BaseLayout"
            });
        };
    </script>
</body>
</html>`))

// SwaggerUI serves the interactive API documentation, honouring the dashboard theme parameter
func SwaggerUI(w http.ResponseWriter, r *http.Request) {
	theme := presentation.ParseTheme(r.URL.Query().Get("theme"))

	page := docsPage{
		Title:     "Weather Dashboard API",
		SpecURL:   openAPIPath,
		AssetBase: "https://unpkg.com/swagger-ui-dist@" + swaggerUIVersion,
		Theme:     theme,
		NextTheme: theme.Toggle(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	docsTemplate.Execute(w, page)
}
