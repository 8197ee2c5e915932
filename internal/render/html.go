package render

import (
	"html"
	"html/template"
	"io"
	"path/filepath"
	"strings"

	"github.com/nicolagi/iddiff/internal/align"
	"github.com/nicolagi/iddiff/internal/blank"
)

var pageTemplate = template.Must(template.New("page").Parse(`
<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <title>{{.Title}}</title>
    <style>
      body {font-family: monospace}
      table {
        border-spacing: 0;
      }
      td {
        padding: 0;
        white-space: pre;
        vertical-align: top;
        font-size: 0.86em;
      }
      th {
        padding: 0;
        text-align: center;
      }
      .left { background-color: #EEE; }
      .right { background-color: #FFF; }
      .lblock { background-color: #BFB; }
      .rblock { background-color: #FF8; }
      .delete { background-color: #ACF; }
      .insert { background-color: #8FF; }
      .change { background-color: gray; }
      .header { background-color: orange; }
      .w-delete {
        color: #F00;
        text-decoration: line-through;
      }
      .w-insert {
        color: #008000;
        font-weight: bold;
      }
    </style>
  </head>
  <body>{{.Body}}</body>
</html>
`))

var tableTemplate = template.Must(template.New("table").Parse(`
    <table>
      <tbody>
        <tr>
          <td>&nbsp;</td>
          <th class="header" scope="col">{{.Name1}}</th>
          <td>&nbsp;</td>
          <th class="header" scope="col">{{.Name2}}</th>
        </tr>
{{- range .Rows}}
{{- if .Skip}}
      <tr>
        <td>&nbsp;</td>
        <td class="left">&nbsp;</td>
        <td>&nbsp;</td>
        <td class="right">&nbsp;</td>
      </tr>
      <tr id="context-{{.Gap}}">
        <td></td>
        <th class="change" scope="col">
          <a href="#context-{{.Gap}}">
           <small>Skipping</small>
          </a>
        </th>
        <td></td>
        <th class="change" scope="col">
          <a href="#context-{{.Gap}}">
           <small>Skipping</small>
          </a>
        </th>
      </tr>
{{- else if .Changed}}
      <tr>
        <td>&nbsp;</td>
        <td class="lblock">{{.Left}}</td>
        <td>&nbsp;</td>
        <td class="rblock">{{.Right}}</td>
      </tr>
{{- else}}
      <tr>
        <td>&nbsp;</td>
        <td class="left">{{.Left}}</td>
        <td>&nbsp;</td>
        <td class="right">{{.Right}}</td>
      </tr>
{{- end}}
{{- end}}
      </tbody>
    </table>`))

type tableRow struct {
	Skip    bool
	Changed bool
	Gap     int
	Left    template.HTML
	Right   template.HTML
}

// Title returns the page title for a diff of the two named files.
func Title(name1, name2 string) string {
	return "Diff: " + filepath.Base(name1) + " - " + filepath.Base(name2)
}

// Page wraps an HTML fragment, as written by Table or HWDiff, into a page.
func Page(w io.Writer, title string, body string) error {
	return pageTemplate.Execute(w, struct {
		Title string
		Body  template.HTML
	}{
		Title: title,
		Body:  template.HTML(body),
	})
}

// Table writes a side-by-side table of the rows. The header holds the base
// names of the two files. Tabs are written as they are.
func Table(w io.Writer, name1, name2 string, rows []align.Row) error {
	view := struct {
		Name1 string
		Name2 string
		Rows  []tableRow
	}{
		Name1: filepath.Base(name1),
		Name2: filepath.Base(name2),
	}
	for _, row := range rows {
		switch row.Kind {
		case align.ContextGap:
			view.Rows = append(view.Rows, tableRow{Skip: true, Gap: row.Gap})
		case align.Changed:
			view.Rows = append(view.Rows, tableRow{
				Changed: true,
				Left:    markup(row.Left, "delete"),
				Right:   markup(row.Right, "insert"),
			})
		default:
			view.Rows = append(view.Rows, tableRow{
				Left:  template.HTML(html.EscapeString(trimEOL(row.Left.Text))),
				Right: template.HTML(html.EscapeString(trimEOL(row.Right.Text))),
			})
		}
	}
	return tableTemplate.Execute(w, view)
}

// markup escapes the line and wraps its spans in span elements of the given
// class. Blank lines come out empty.
func markup(line *align.Line, class string) template.HTML {
	if line == nil {
		return ""
	}
	text := trimEOL(line.Text)
	if blank.IsBlank(text) {
		return ""
	}
	var b strings.Builder
	last := 0
	for _, s := range line.Spans {
		b.WriteString(html.EscapeString(text[last:s.Start]))
		b.WriteString(`<span class="` + class + `">`)
		b.WriteString(html.EscapeString(text[s.Start:s.End]))
		b.WriteString(`</span>`)
		last = s.End
	}
	b.WriteString(html.EscapeString(text[last:]))
	return template.HTML(b.String())
}
