package view

import (
	"fmt"
	"html/template"
	"io"

	"github.com/sensordonut/sensordonut/internal/card"
	"github.com/sensordonut/sensordonut/internal/render"
)

// PageData is what the card page template renders.
type PageData struct {
	render.Model

	// LiveURL, when set, is the WebSocket path the page subscribes to.
	LiveURL string

	// Revision is the card revision the page was rendered at. The page
	// reloads only when a pushed message carries a different one.
	Revision uint64
}

var pageTmpl = template.Must(template.New("card").Funcs(template.FuncMap{
	"ring":      func(d *render.Descriptor) template.HTML { return template.HTML(DonutSVG(d)) },
	"blockText": blockText,
	"hasLabel":  hasLabel,
	"position":  func(p card.Position) string { return string(p) },
}).Parse(pageTemplate))

// HTML writes the card as a static HTML page.
func HTML(w io.Writer, m render.Model) error {
	return LiveHTML(w, m, "", 0)
}

// LiveHTML writes the card page and, when wsURL is not empty, a script that
// listens to the hub at wsURL and reloads the page once a push reports a
// revision other than revision.
func LiveHTML(w io.Writer, m render.Model, wsURL string, revision uint64) error {
	if err := pageTmpl.Execute(w, PageData{Model: m, LiveURL: wsURL, Revision: revision}); err != nil {
		return fmt.Errorf("view: render html: %w", err)
	}
	return nil
}

func blockText(d *render.Descriptor, kind render.BlockKind) string {
	if kind == render.BlockValue {
		return d.ValueText
	}
	return d.Name
}

func hasLabel(blocks []render.BlockKind) bool {
	for _, b := range blocks {
		if b == render.BlockLabel {
			return true
		}
	}
	return false
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{if .Title}}{{.Title}}{{else}}Sensor Donut Card{{end}}</title>
<style>
  body {
    margin: 0;
    background: #1c1c1c;
    font-family: Roboto, "Noto Sans", sans-serif;
  }

  .card {
    padding: 16px;
  }

  .donuts-container {
    display: grid;
    gap: var(--donut-gap, 16px);
    grid-template-columns: repeat(var(--columns, 1), 1fr);
  }

  .donut-item {
    position: relative;
    display: grid;
    grid-template-areas: ". above ." "left ring right" ". below .";
    grid-template-columns: 1fr auto 1fr;
    align-items: center;
    justify-items: center;
    text-align: center;
  }

  .donut-container {
    grid-area: ring;
    position: relative;
    display: inline-block;
  }

  .donut-center {
    position: absolute;
    top: 50%;
    left: 50%;
    transform: translate(-50%, -50%);
    display: flex;
    flex-direction: column;
    align-items: center;
    justify-content: center;
    font-size: 14px;
    font-weight: 500;
    color: var(--primary-text-color, #ccc);
  }

  .donut-value {
    font-size: 16px;
    font-weight: 600;
    line-height: 1;
  }

  .donut-name {
    font-size: 12px;
    margin-top: 4px;
    opacity: 0.8;
  }

  .donut-label {
    font-size: 14px;
    font-weight: 500;
    color: var(--primary-text-color, #ccc);
    display: flex;
    align-items: center;
    justify-content: center;
  }

  .donut-label--above { grid-area: above; margin-bottom: 8px; }
  .donut-label--below { grid-area: below; margin-top: 8px; }
  .donut-label--left { grid-area: left; justify-self: end; margin-right: 8px; }
  .donut-label--right { grid-area: right; justify-self: start; margin-left: 8px; }
  .donut-label--absolute { position: absolute; margin: 0; }

  .icon {
    margin-right: 6px;
  }

  h1 {
    font-size: 18px;
    margin: 0 0 16px;
    text-align: center;
    color: var(--primary-text-color, #ccc);
  }

  .error {
    display: block;
    color: var(--error-color, #ff5252);
    font-size: 14px;
    padding: 8px;
    text-align: center;
  }
</style>
</head>
<body>
<div class="card">
  {{- if .Title}}
  <h1>{{.Title}}</h1>
  {{- end}}
  <div class="donuts-container" style="--columns: {{.Columns}}; --donut-gap: {{.Gap}}px;">
  {{- range .Items}}
    {{- if .Placeholder}}
    <div class="donut-item error">{{.Placeholder.Message}}</div>
    {{- else}}{{with $d := .Donut}}
    <div class="donut-item" data-entity="{{$d.Entity}}">
      <div class="donut-container">
        {{ring $d}}
        {{- with $d.Layout.Inside}}
        <div class="donut-center">
          {{- range .}}
          <div class="{{if eq . "value"}}donut-value{{else}}donut-name{{end}}">{{blockText $d .}}</div>
          {{- end}}
        </div>
        {{- end}}
      </div>
      {{- range $d.Layout.Outside}}
      <div class="donut-label donut-label--{{position .Position}}{{if .Offset.Absolute}} donut-label--absolute{{end}}"
        {{- if .Offset.Absolute}} style="left: {{.Offset.Left}}; top: {{.Offset.Top}};"{{end}}>
        {{- if and $d.Icon (hasLabel .Blocks)}}
        <span class="icon" data-icon="{{$d.Icon}}"></span>
        {{- end}}
        <div>
          {{- range .Blocks}}
          <div class="{{if eq . "value"}}donut-value{{else}}donut-name{{end}}">{{blockText $d .}}</div>
          {{- end}}
        </div>
      </div>
      {{- end}}
    </div>
    {{- end}}{{end}}
  {{- end}}
  </div>
</div>
{{- if .LiveURL}}
<script>
  (function () {
    var url = (location.protocol === "https:" ? "wss://" : "ws://") + location.host + {{.LiveURL}};
    var rev = {{.Revision}};
    var ws = new WebSocket(url);
    ws.onmessage = function (ev) {
      var msg = JSON.parse(ev.data);
      if (msg.revision !== rev) { location.reload(); }
    };
  })();
</script>
{{- end}}
</body>
</html>
`
