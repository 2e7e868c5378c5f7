package serve

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/marcus/splitview/internal/config"
	"github.com/marcus/splitview/pkg/splitpane"
)

// pageTemplate is the demo page. The split-pane markup is rendered
// server-side by the component; the inline script is the browser drag
// bridge: it tracks pointer movement on the divider and reports the first
// pane's new pixel size, then listens for refresh events so concurrent
// viewers stay in sync.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>splitview: {{.ID}}</title>
<style>
  html, body { height: 100%; margin: 0; font-family: sans-serif; }
  .splitpane { height: 100vh; }
  .splitpane-pane { overflow: auto; padding: 1rem; box-sizing: border-box; }
  .splitpane-divider { background: #ccc; flex: 0 0 5px; }
  .splitpane-divider-vertical { cursor: col-resize; }
  .splitpane-divider-horizontal { cursor: row-resize; }
</style>
</head>
<body>
{{.Markup}}
<script>
(function () {
  var layout = {{.ID}};
  var vertical = {{.Vertical}};
  var divider = document.querySelector(".splitpane-divider");
  var first = document.querySelector(".splitpane-first");
  var dragging = false;

  divider.addEventListener("pointerdown", function (e) {
    dragging = true;
    divider.setPointerCapture(e.pointerId);
  });
  divider.addEventListener("pointermove", function (e) {
    if (!dragging) return;
    var rect = first.getBoundingClientRect();
    var px = vertical ? Math.round(e.clientX - rect.left) : Math.round(e.clientY - rect.top);
    if (px < 0) px = 0;
    if (vertical) { first.style.width = px + "px"; } else { first.style.height = px + "px"; }
    first.dataset.pixels = px;
  });
  divider.addEventListener("pointerup", function (e) {
    if (!dragging) return;
    dragging = false;
    divider.releasePointerCapture(e.pointerId);
    var px = parseInt(first.dataset.pixels || "0", 10);
    fetch("/v1/layouts/" + encodeURIComponent(layout) + "/resize", {
      method: "POST",
      headers: { "Content-Type": "application/json" },
      body: JSON.stringify({ pane: "first", pixels: px })
    });
  });

  var source = new EventSource("/v1/events");
  source.addEventListener("refresh", function () {
    if (!dragging) location.reload();
  });
})();
</script>
</body>
</html>
`))

// pageData feeds pageTemplate.
type pageData struct {
	ID       string
	Vertical bool
	Markup   template.HTML
}

// handlePage renders the demo page for a layout. GET / uses the configured
// default layout, falling back to the id "default".
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		id, _ = config.GetDefaultLayout(s.baseDir)
	}
	if id == "" {
		id = "default"
	}

	l, err := s.store.GetLayout(id)
	if err != nil {
		WriteError(w, ErrNotFound, err.Error(), http.StatusNotFound)
		return
	}

	orientation, _ := splitpane.ParseOrientation(l.Orientation)
	sp, err := splitpane.New(splitpane.Config{
		ID:                l.ID,
		Orientation:       orientation,
		FirstPaneSize:     l.FirstSize,
		FirstPaneMinSize:  l.FirstMinSize,
		SecondPaneSize:    l.SecondSize,
		SecondPaneMinSize: l.SecondMinSize,
	})
	if err != nil {
		WriteError(w, ErrInternal, err.Error(), http.StatusInternalServerError)
		return
	}

	markup := sp.Render(
		"<h2>First pane</h2><p>Drag the divider to resize.</p>",
		"<h2>Second pane</h2><p>This pane flexes to fill the remaining space.</p>",
	)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = pageTemplate.Execute(w, pageData{
		ID:       l.ID,
		Vertical: orientation == splitpane.Vertical,
		Markup:   template.HTML(markup),
	})
	if err != nil {
		slog.Error("render demo page", "err", err)
	}
}
