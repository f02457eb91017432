package web

import "html/template"

var pages = template.Must(template.New("layout").Parse(`{{define "layout"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Theme.Title}}</title>
<style>
body { background: {{.Theme.Background}}; color: {{.Theme.Foreground}}; font-family: sans-serif; margin: 0; }
main { max-width: 760px; margin: 0 auto; padding: 2rem; }
aside { position: fixed; left: 0; top: 0; width: 220px; height: 100%; padding: 2rem 1rem; background: {{.Theme.Panel}}; }
.with-sidebar main { margin-left: 260px; }
h1, h2, a { color: {{.Theme.Accent}}; }
.panel { background: {{.Theme.Panel}}; padding: 1rem; border-radius: 6px; white-space: pre-wrap; }
.keyword { display: inline-block; margin: 0 .4rem .4rem 0; padding: .2rem .6rem; border: 1px solid {{.Theme.Accent}}; border-radius: 12px; }
.error { color: #c0392b; }
</style>
</head>
<body{{if .Theme.Sidebar}} class="with-sidebar"{{end}}>
{{if .Theme.Sidebar}}<aside><h2>How it works</h2><ul>{{range .Theme.Sidebar}}<li>{{.}}</li>{{end}}</ul></aside>{{end}}
<main>
<h1>{{.Theme.Title}}</h1>
{{template "content" .}}
<hr>
<p>Theme: {{range $i, $n := .Themes}}{{if $i}} · {{end}}<a href="?theme={{$n}}">{{$n}}</a>{{end}}</p>
</main>
</body>
</html>{{end}}`))

var indexPage = template.Must(template.Must(pages.Clone()).Parse(`{{define "content"}}
{{with .Theme.Tagline}}<p>{{.}}</p>{{end}}
{{with .Error}}<p class="error">{{.}}</p>{{end}}
<form method="post" action="/digests?theme={{.Theme.Name}}" enctype="multipart/form-data">
<input type="file" name="file" accept="application/pdf,.pdf" required>
<button type="submit">Summarize</button>
</form>
{{if .Recent}}<h2>Recent</h2><ul>{{range .Recent}}<li><a href="/digests/{{.ID}}?theme={{$.Theme.Name}}">{{.Filename}}</a></li>{{end}}</ul>{{else}}<p>Upload a PDF to begin.</p>{{end}}
{{end}}`))

var digestPage = template.Must(template.Must(pages.Clone()).Parse(`{{define "content"}}
{{with .Digest}}
<h2>Extracted text</h2>
<div class="panel">{{.Preview}}</div>
<h2>Summary</h2>
<div class="panel">{{.Summary}}</div>
<h2>Keywords</h2>
{{if .Keywords}}<p>{{range .Keywords}}<span class="keyword">{{.}}</span>{{end}}</p>
<h2>Word cloud</h2>
<img src="/digests/{{.ID}}/cloud.png" alt="word cloud" width="100%">
{{else}}<p>No keywords found.</p>{{end}}
<h2>Download summary</h2>
<p><a href="/digests/{{.ID}}/summary.txt">Download as .txt</a> · <a href="/digests/{{.ID}}/summary.pdf">Download as .pdf</a></p>
{{end}}
<p><a href="/?theme={{.Theme.Name}}">Summarize another PDF</a></p>
{{end}}`))
