package view

import (
	"html/template"
	"io"
)

type pageData struct {
	Elements []pageElement
	Buttons  []pageButton
	Alerts   []string
}

type pageElement struct {
	Id   ElementId
	Text string
}

type pageButton struct {
	Id       ButtonId
	Disabled bool
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Simple Dapp</title>
<style>
  body { font-family: sans-serif; margin: 2em; }
  span { white-space: pre-wrap; font-family: monospace; }
  button { margin: 0.2em; }
</style>
</head>
<body>
<h1>Simple Dapp</h1>
<div>
{{- range .Buttons }}
  <button id="{{ .Id }}" data-button="{{ .Id }}"{{ if .Disabled }} disabled{{ end }}>{{ .Id }}</button>
{{- end }}
</div>
{{- range .Elements }}
<p>{{ .Id }}: <span id="{{ .Id }}">{{ .Text }}</span></p>
{{- end }}
<script>
async function render(view) {
  for (const [id, text] of Object.entries(view.elements)) {
    const el = document.getElementById(id);
    if (el) el.textContent = text;
  }
  for (const btn of document.querySelectorAll("button[data-button]")) {
    btn.disabled = view.disabledButtons.includes(btn.dataset.button);
  }
  for (const a of view.alerts) alert(a);
}
for (const btn of document.querySelectorAll("button[data-button]")) {
  btn.addEventListener("click", async () => {
    const res = await fetch("/buttons/" + btn.dataset.button, { method: "POST" });
    if (res.ok) render(await res.json());
  });
}
setInterval(async () => {
  const res = await fetch("/view");
  if (res.ok) render(await res.json());
}, 2000);
{{- range .Alerts }}
alert({{ . }});
{{- end }}
</script>
</body>
</html>
`))

func renderPage(w io.Writer, s *Snapshot) error {
	disabled := make(map[ButtonId]bool, len(s.DisabledButtons))
	for _, id := range s.DisabledButtons {
		disabled[id] = true
	}

	data := pageData{Alerts: s.Alerts}
	for _, id := range Elements {
		data.Elements = append(data.Elements, pageElement{Id: id, Text: s.Elements[id]})
	}
	for _, id := range Buttons {
		data.Buttons = append(data.Buttons, pageButton{Id: id, Disabled: disabled[id]})
	}
	return pageTemplate.Execute(w, data)
}
