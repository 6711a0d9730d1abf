package reports

import (
	"html/template"
	"io"
	"time"
)

type PrintDocument struct {
	Studio   string
	Title    string
	Label    string
	Currency string
	Sections []EmployeeSummary
	Printed  time.Time
}

// NewPrintDocument keeps only employees that have transactions in the report.
func NewPrintDocument(studio, currency string, report Report, printed time.Time) PrintDocument {
	doc := PrintDocument{
		Studio:   studio,
		Title:    ReportTitle(Month, studio),
		Label:    RangeLabel(Month, report.Range),
		Currency: currency,
		Printed:  printed,
	}
	for _, s := range report.Employees {
		if len(s.Transactions) == 0 {
			continue
		}
		txs := append(s.Transactions[:0:0], s.Transactions...)
		SortByDate(txs)
		s.Transactions = txs
		doc.Sections = append(doc.Sections, s)
	}
	return doc
}

var printTemplate = template.Must(template.New("print").Funcs(template.FuncMap{
	"money":   Money,
	"percent": Percent,
	"stamp":   func(t time.Time) string { return t.Format("02/01/2006 15:04") },
	"method": func(m string) string {
		if m == "" {
			return "-"
		}
		return m
	},
}).Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>{{.Title}} - {{.Label}}</title>
<style>
body { font-family: sans-serif; margin: 24px; color: #111; }
h1 { font-size: 20px; margin-bottom: 0; }
h2 { font-size: 16px; margin: 24px 0 8px; page-break-after: avoid; }
table { width: 100%; border-collapse: collapse; page-break-inside: avoid; }
th, td { border: 1px solid #ccc; padding: 4px 8px; font-size: 12px; text-align: left; }
td.num, th.num { text-align: right; }
tr.summary td { font-weight: bold; background: #f4f4f4; }
</style>
</head>
<body onload="window.print()">
<h1>{{.Title}}</h1>
<p>{{.Label}} · impreso {{stamp .Printed}}</p>
{{- $cur := .Currency}}
{{- range .Sections}}
<section class="employee">
<h2>{{.Employee.Name}}{{if .Employee.Role}} ({{.Employee.Role}}){{end}} · comisión {{percent .CommissionPercent}}</h2>
<table>
<thead><tr><th>Fecha</th><th>Servicio</th><th>Pago</th><th class="num">Precio</th></tr></thead>
<tbody>
{{- range .Transactions}}
<tr><td>{{stamp .Date}}</td><td>{{.ServiceName}}</td><td>{{method (print .PaymentMethod)}}</td><td class="num">{{money $cur .Price}}</td></tr>
{{- end}}
<tr class="summary"><td colspan="3">Total generado</td><td class="num">{{money $cur .Generated}}</td></tr>
<tr class="summary"><td colspan="3">Total a pagar</td><td class="num">{{money $cur .Payout}}</td></tr>
</tbody>
</table>
</section>
{{- else}}
<p>Sin movimientos en este mes.</p>
{{- end}}
</body>
</html>
`))

func RenderPrintable(w io.Writer, doc PrintDocument) error {
	return printTemplate.Execute(w, doc)
}
