package routes

import "html/template"

type notice struct {
	Kind string // "success", "error" or "info"
	Text string
}

type pageData struct {
	Email     string
	Interests []string
	Selected  map[string]bool
	Notices   []notice
	LastRun   string
	Schedule  string
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Social Media Agent</title>
<style>
body { font-family: sans-serif; max-width: 720px; margin: 2em auto; }
.success { color: #1a7f37; } .error { color: #cf222e; } .info { color: #0969da; }
select { width: 100%; min-height: 14em; }
pre { background: #f6f8fa; padding: 1em; overflow-x: auto; }
</style>
</head>
<body>
<h1>Social Media Agent</h1>
<p>Automatically generate and email daily social media plans.</p>
{{range .Notices}}<p class="{{.Kind}}">{{.Text}}</p>
{{end}}
<form method="post">
<label>Email to send daily content:<br><input type="email" name="email" value="{{.Email}}" size="40"></label>
<p><label>Select content interests:<br>
<select name="interests" multiple>
{{range .Interests}}<option value="{{.}}"{{if index $.Selected .}} selected{{end}}>{{.}}</option>
{{end}}</select></label></p>
<button type="submit" formaction="/save">Save &amp; Schedule Daily Emails</button>
<button type="submit" formaction="/run">Run Now (Send Content Immediately)</button>
</form>
{{if .Schedule}}<p class="info">{{.Schedule}}</p>{{end}}
{{if .LastRun}}<h2>Last Run Log</h2>
<pre>{{.LastRun}}</pre>{{end}}
</body>
</html>
`))
