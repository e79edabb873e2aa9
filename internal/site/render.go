package site

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/matsen/scholarsite/internal/theme"
)

// compiledTemplate is parsed at init time to fail fast on template errors.
var compiledTemplate *template.Template

func init() {
	compiledTemplate = template.Must(template.New("page").Parse(pageTemplate))
}

// Page holds everything the page template needs.
type Page struct {
	SiteTitle   string
	Heading     string
	ContainerID string
	Cards       []Card
	Theme       theme.Theme
	ShowAllLink bool // link from the highlights view to the full list
}

// HomePage describes the highlights view for the given records.
func HomePage(siteTitle string, cards []Card, t theme.Theme) Page {
	return Page{
		SiteTitle:   siteTitle,
		Heading:     "Selected Publications",
		ContainerID: "selected-publications",
		Cards:       cards,
		Theme:       t,
		ShowAllLink: true,
	}
}

// PublicationsPage describes the full listing for the given records.
func PublicationsPage(siteTitle string, cards []Card, t theme.Theme) Page {
	return Page{
		SiteTitle:   siteTitle,
		Heading:     "Publications",
		ContainerID: "publications",
		Cards:       cards,
		Theme:       t,
	}
}

// templateData is the binding passed to the page template.
type templateData struct {
	Page
	RootClass string
	IconClass string
	Script    template.JS
}

// Render generates the HTML document for a page.
func Render(p Page) (string, error) {
	if p.SiteTitle == "" {
		return "", fmt.Errorf("page requires a site title")
	}

	data := templateData{
		Page:      p,
		RootClass: p.Theme.Class(),
		IconClass: p.Theme.IconClass(),
		Script:    template.JS(siteJS),
	}

	var buf bytes.Buffer
	if err := compiledTemplate.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en"{{if .RootClass}} class="{{.RootClass}}"{{end}}>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.SiteTitle}}</title>
  <style>
    :root {
      --bg: #15181d;
      --fg: #e6e8eb;
      --muted: #9aa3ad;
      --card-bg: #1d2127;
      --accent: #4a90d9;
      --badge-bg: #2a3040;
    }
    html.light {
      --bg: #f7f8fa;
      --fg: #22262b;
      --muted: #5c6670;
      --card-bg: #ffffff;
      --accent: #205493;
      --badge-bg: #e4e9f0;
    }
    * { box-sizing: border-box; }
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      background: var(--bg);
      color: var(--fg);
    }
    header {
      display: flex;
      justify-content: space-between;
      align-items: center;
      max-width: 760px;
      margin: 0 auto;
      padding: 24px 16px;
    }
    header h1 { font-size: 20px; margin: 0; }
    #theme-toggle {
      background: none;
      border: 1px solid var(--muted);
      border-radius: 4px;
      color: var(--fg);
      cursor: pointer;
      padding: 4px 10px;
    }
    #theme-icon.icon-sun::before { content: "\2600"; }
    #theme-icon.icon-moon::before { content: "\263D"; }
    main { max-width: 760px; margin: 0 auto; padding: 0 16px 48px; }
    .pub-card {
      background: var(--card-bg);
      border-radius: 6px;
      padding: 14px 16px;
      margin: 12px 0;
      box-shadow: 0 1px 3px rgba(0,0,0,0.15);
    }
    .pub-header { display: flex; justify-content: space-between; gap: 12px; }
    .pub-title { font-size: 15px; font-weight: 600; margin: 0; }
    .pub-badge {
      background: var(--badge-bg);
      border-radius: 3px;
      color: var(--muted);
      font-size: 11px;
      padding: 2px 8px;
      white-space: nowrap;
      align-self: flex-start;
    }
    .pub-meta { color: var(--muted); font-size: 13px; margin: 6px 0; }
    .pub-actions a, .abs-toggle {
      background: none;
      border: 1px solid var(--accent);
      border-radius: 3px;
      color: var(--accent);
      cursor: pointer;
      font-size: 11px;
      margin-right: 8px;
      padding: 2px 8px;
      text-decoration: none;
    }
    .pub-abstract {
      color: var(--muted);
      font-size: 13px;
      margin-top: 10px;
    }
    .pub-abstract.hidden { display: none; }
    .all-link { color: var(--accent); font-size: 14px; }
  </style>
</head>
<body>
  <header>
    <h1>{{.SiteTitle}}</h1>
    <button id="theme-toggle" type="button" aria-label="Toggle theme"><span id="theme-icon" class="{{.IconClass}}"></span></button>
  </header>
  <main>
    <h2>{{.Heading}}</h2>
    <div id="{{.ContainerID}}">
{{- range .Cards}}
      <div class="pub-card">
        <div class="pub-header">
          <h3 class="pub-title">{{.Title}}</h3>
          {{- if .Journal}}
          <span class="pub-badge">{{.Journal}}</span>
          {{- end}}
        </div>
        <div class="pub-meta">{{.Meta}}</div>
        <div class="pub-actions">
          <button class="abs-toggle" type="button">ABS</button>
          {{- if .URL}}
          <a href="{{.URL}}" target="_blank" rel="noopener">HTML</a>
          {{- end}}
        </div>
        <div class="pub-abstract hidden">{{.Abstract}}</div>
      </div>
{{- end}}
    </div>
    {{- if .ShowAllLink}}
    <p><a class="all-link" href="publications.html">All publications &rarr;</a></p>
    {{- end}}
  </main>
  <script>{{.Script}}</script>
</body>
</html>
`

// siteJS is the client enhancement script embedded in every page: the theme
// toggle persists the preference under the "theme" key, and each card's ABS
// control flips its abstract block independently.
const siteJS = `(function() {
  if (localStorage.getItem('theme') === 'light') {
    document.documentElement.classList.add('light');
  }

  var toggle = document.getElementById('theme-toggle');

  function updateIcon() {
    var icon = document.getElementById('theme-icon');
    if (!icon) return;
    var light = document.documentElement.classList.contains('light');
    icon.classList.toggle('icon-moon', light);
    icon.classList.toggle('icon-sun', !light);
  }

  if (toggle) {
    toggle.addEventListener('click', function() {
      var light = document.documentElement.classList.toggle('light');
      localStorage.setItem('theme', light ? 'light' : 'dark');
      updateIcon();
    });
  }
  updateIcon();

  document.addEventListener('click', function(ev) {
    if (!ev.target.classList || !ev.target.classList.contains('abs-toggle')) return;
    var card = ev.target.closest('.pub-card');
    if (!card) return;
    var abs = card.querySelector('.pub-abstract');
    if (abs) abs.classList.toggle('hidden');
  });
})();`
