// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchreport

import (
	"fmt"
	"io"

	"github.com/benjag22/algorithm-analysis-homework2/benchseries"
	"github.com/benjag22/algorithm-analysis-homework2/benchunit"
	"github.com/google/safehtml/template"
)

var htmlTemplate = template.Must(template.New("summary").Funcs(template.FuncMap{
	"r2": func(p *float64) string {
		if p == nil {
			return "-"
		}
		return fmt.Sprintf("%.4f", *p)
	},
	"time": benchunit.Nanoseconds.Format,
	"mem":  formatMem,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
{{define "fits"}}
<table class="fits">
<tr><th>algorithm<th>series<th>n<th>model<th>equation<th>R²<th>time at max n<th>memory at max n
{{- range .}}
<tr><td>{{.Algorithm}}<td>{{.Label}}{{if .Averaged}} ({{.Members}} runs){{end}}<td>{{.NMin}}..{{.NMax}}<td>{{.Model}}<td>{{.Equation}}<td>{{r2 .RSquared}}<td>{{time .TimeAtMax}}<td>{{mem .MemAtMax}}
{{- end}}
</table>
{{end}}
<h2>Group averages</h2>
{{template "fits" .Summary.Averages}}
<h2>Series</h2>
{{template "fits" .Summary.Series}}
{{- with .Summary.Skipped}}
<h2>Skipped</h2>
<ul>
{{- range .}}
<li>{{.Label}}: {{.Error}}
{{- end}}
</ul>
{{- end}}
</body>
</html>
`))

// HTML writes an HTML page summarizing r to w.
func HTML(w io.Writer, title string, r *benchseries.Result) error {
	return htmlTemplate.Execute(w, struct {
		Title   string
		Summary *Summary
	}{title, NewSummary(r)})
}
