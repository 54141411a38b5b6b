package demoserver

import "html/template"

// PageDefinition is one fixture page.
type PageDefinition struct {
	Path        string
	Description string

	// Selectors lists CSS selectors the page is guaranteed to match.
	Selectors []string

	tmpl *template.Template
}

type pageData struct {
	DeferredMillis int64
}

// GetAllPages returns all fixture page definitions.
func GetAllPages() []PageDefinition {
	return []PageDefinition{
		{
			Path:        "/",
			Description: "Landing page with a hero header and three cards",
			Selectors:   []string{"#hero", ".card", "footer"},
			tmpl:        template.Must(template.New("home").Parse(homeHTML)),
		},
		{
			Path:        "/tall",
			Description: "Page taller than the viewport, for full-page captures",
			Selectors:   []string{"#top", "#bottom"},
			tmpl:        template.Must(template.New("tall").Parse(tallHTML)),
		},
		{
			Path:        "/deferred",
			Description: "Element injected by script after a delay, for the settle wait",
			Selectors:   []string{"#placeholder"},
			tmpl:        template.Must(template.New("deferred").Parse(deferredHTML)),
		},
		{
			Path:        "/slow-asset",
			Description: "Page referencing a slow image, for the network-idle wait",
			Selectors:   []string{"#slow"},
			tmpl:        template.Must(template.New("slow").Parse(slowAssetHTML)),
		},
	}
}

func (p PageDefinition) data(cfg Config) pageData {
	return pageData{DeferredMillis: cfg.DeferredDelay.Milliseconds()}
}

const homeHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Fixture - Home</title>
    <style>
        body { margin: 0; font-family: sans-serif; }
        #hero { background: #1d4ed8; color: #fff; padding: 48px; }
        .cards { display: flex; gap: 16px; padding: 24px; }
        .card { width: 200px; height: 120px; border: 1px solid #ccc; padding: 12px; }
        footer { padding: 24px; color: #666; }
    </style>
</head>
<body>
    <header id="hero"><h1>Fixture site</h1></header>
    <section class="cards">
        <div class="card" id="card-1">First</div>
        <div class="card" id="card-2">Second</div>
        <div class="card" id="card-3">Third</div>
    </section>
    <footer>fixture footer</footer>
</body>
</html>`

const tallHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Fixture - Tall</title>
    <style>
        body { margin: 0; }
        #top { height: 200px; background: #16a34a; }
        #filler { height: 2600px; background: linear-gradient(#fff, #000); }
        #bottom { height: 200px; background: #dc2626; }
    </style>
</head>
<body>
    <div id="top"></div>
    <div id="filler"></div>
    <div id="bottom"></div>
</body>
</html>`

const deferredHTML = `<!DOCTYPE html>
<html>
<head><title>Fixture - Deferred</title></head>
<body>
    <div id="placeholder">loading</div>
    <script>
        setTimeout(function () {
            var el = document.createElement("div");
            el.id = "late";
            el.textContent = "rendered late";
            document.body.appendChild(el);
        }, {{.DeferredMillis}});
    </script>
</body>
</html>`

const slowAssetHTML = `<!DOCTYPE html>
<html>
<head><title>Fixture - Slow asset</title></head>
<body>
    <p>The image below is served with a delay.</p>
    <img id="slow" src="/assets/slow.png" width="64" height="64" alt="slow">
</body>
</html>`
