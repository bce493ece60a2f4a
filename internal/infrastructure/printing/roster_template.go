package printing

import (
	"bytes"
	"html/template"
	"time"
)

// RosterRow is one applicant line of a venue roster.
type RosterRow struct {
	Number   int
	FullName string
	Identity string
	Celular  string
	Cargo    string
	Choice   string
	Status   string
}

// RosterData is the input of the venue roster template.
type RosterData struct {
	VenueName   string
	VenueCode   string
	Municipio   string
	Direccion   string
	GeneratedAt time.Time
	Rows        []RosterRow
}

var rosterTemplate = template.Must(template.New("roster").Funcs(template.FuncMap{
	"datetime": func(t time.Time) string { return t.Format("02/01/2006 15:04") },
}).Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="UTF-8">
<title>Nómina {{.VenueCode}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; font-size: 9pt; color: #1A1A1A; }
h1 { font-size: 13pt; color: #474747; margin: 0 0 4pt 0; }
.meta { color: #2C3E50; margin-bottom: 10pt; }
table { width: 100%; border-collapse: collapse; }
th { background: #474747; color: #FFFFFF; text-align: left; padding: 4pt; }
td { border-bottom: 0.5pt solid #95A5A6; padding: 3pt 4pt; }
tr:nth-child(even) td { background: #FCFCFC; }
.empty { text-align: center; color: #828282; padding: 12pt; }
</style>
</head>
<body>
<h1>NÓMINA DE POSTULANTES: {{.VenueName}}</h1>
<div class="meta">Código {{.VenueCode}}{{with .Municipio}} · {{.}}{{end}}{{with .Direccion}} · {{.}}{{end}}<br>
Generado el {{datetime .GeneratedAt}} · {{len .Rows}} postulante(s)</div>
<table>
<thead><tr><th>#</th><th>Nombre completo</th><th>C.I.</th><th>Celular</th><th>Cargo</th><th>Opción</th><th>Estado</th></tr></thead>
<tbody>
{{range .Rows}}<tr><td>{{.Number}}</td><td>{{.FullName}}</td><td>{{.Identity}}</td><td>{{.Celular}}</td><td>{{.Cargo}}</td><td>{{.Choice}}</td><td>{{.Status}}</td></tr>
{{else}}<tr><td class="empty" colspan="7">Sin postulantes para este recinto</td></tr>
{{end}}</tbody>
</table>
</body>
</html>
`))

// rosterFooter is the Chrome footer template with page numbers.
const rosterFooter = `<div style="font-size:7pt;width:100%;text-align:center;color:#828282;">` +
	`SERECI La Paz · página <span class="pageNumber"></span> de <span class="totalPages"></span></div>`

// RenderRosterHTML executes the roster template.
func RenderRosterHTML(data RosterData) (string, error) {
	var buf bytes.Buffer
	if err := rosterTemplate.Execute(&buf, data); err != nil {
		return "", NewRenderError(ErrCodeInvalidHTML, "executing roster template", err)
	}
	return buf.String(), nil
}

// RosterFooterHTML returns the footer template for roster PDFs.
func RosterFooterHTML() string {
	return rosterFooter
}
