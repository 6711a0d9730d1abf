package reports

import (
	"bytes"
	"net/url"
	"strings"
	"testing"
	"time"

	"studio-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhatsAppMessage(t *testing.T) {
	diana := employee("Diana", "40")
	txs := []models.Transaction{
		tx(diana.ID, "Cortes", 50, today),
		{EmployeeID: diana.ID, ServiceName: "Tintes (Part. YAPE)", Price: 30, Date: today, PaymentMethod: models.PaymentYape},
		{EmployeeID: diana.ID, ServiceName: "Manicure", Price: 20, Date: today},
	}
	s := Summarize(diana, txs)

	msg, err := WhatsAppMessage(MessageOptions{Title: ReportTitle(Week, "MIVIS STUDIO"), PeriodLabel: "12 - 18 oct.", Currency: "S/."}, s)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(msg, "*Reporte Semanal MIVIS STUDIO*"))
	assert.Contains(t, msg, "Hola Diana,")
	assert.Contains(t, msg, "• Cortes — S/. 50.00 (EFECTIVO)\n")
	assert.Contains(t, msg, "• Tintes (Part. YAPE) — S/. 30.00 (YAPE)\n")
	assert.Contains(t, msg, "• Manicure — S/. 20.00\n")
	assert.Contains(t, msg, "*Ventas Totales:* S/. 100.00")
	assert.Contains(t, msg, "*Comisión:* 40%")
	assert.Contains(t, msg, "*Total a Pagar:* S/. 40.00")

	// the transaction lines come before the separator, the totals after it
	sep := strings.Index(msg, "────")
	require.Positive(t, sep)
	assert.Less(t, strings.Index(msg, "• Manicure"), sep)
	assert.Greater(t, strings.Index(msg, "Total a Pagar"), sep)
}

func TestWhatsAppMessage_RejectsEmptyPeriod(t *testing.T) {
	s := Summarize(employee("Yolita", "40"), nil)
	msg, err := WhatsAppMessage(MessageOptions{Title: "Reporte"}, s)
	assert.ErrorIs(t, err, ErrNoTransactions)
	assert.Empty(t, msg)
}

func TestWhatsAppLink(t *testing.T) {
	text := "Hola Diana & co\n*Total:* S/. 40.00"

	link := WhatsAppLink(text, "51", "")
	require.True(t, strings.HasPrefix(link, "https://wa.me/?text="))
	encoded := strings.TrimPrefix(link, "https://wa.me/?text=")
	assert.NotContains(t, encoded, " ")
	assert.NotContains(t, encoded, "+")
	assert.NotContains(t, encoded, "&")
	decoded, err := url.QueryUnescape(encoded)
	require.NoError(t, err)
	assert.Equal(t, text, decoded)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, text, u.Query().Get("text"))

	assert.True(t, strings.HasPrefix(WhatsAppLink("hi", "51", "987 654-321"), "https://wa.me/51987654321?text="))
	assert.True(t, strings.HasPrefix(WhatsAppLink("hi", "51", "+34 600 111 222"), "https://wa.me/34600111222?text="))
}

func TestEncodeURIComponent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a b", "a%20b"},
		{"*Total:* (40%)!", "*Total%3A*%20(40%25)!"},
		{"it's ~fine~", "it's%20~fine~"},
		{"S/. 1+1 & ?=#", "S%2F.%201%2B1%20%26%20%3F%3D%23"},
		{"¡Hola!", "%C2%A1Hola!"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EncodeURIComponent(tt.in), tt.in)
	}
}

func TestPrintDocument(t *testing.T) {
	diana := employee("Diana", "40")
	yolita := employee("Yolita", "40")
	month := PeriodRange(Month, 0, today)
	txs := []models.Transaction{
		tx(diana.ID, "Tintes", 30, today.Add(time.Hour)),
		tx(diana.ID, "Cortes <b>", 50, today.Add(-48*time.Hour)),
	}
	report := Aggregate([]models.Employee{diana, yolita}, txs, nil, month)

	doc := NewPrintDocument("MIVIS STUDIO", "S/.", report, today)
	require.Len(t, doc.Sections, 1, "employees without transactions are omitted")
	assert.Equal(t, "Diana", doc.Sections[0].Employee.Name)

	var buf bytes.Buffer
	require.NoError(t, RenderPrintable(&buf, doc))
	html := buf.String()

	assert.Contains(t, html, "Reporte Mensual MIVIS STUDIO")
	assert.NotContains(t, html, "Yolita")
	assert.Contains(t, html, "Cortes &lt;b&gt;")
	assert.Less(t, strings.Index(html, "Cortes"), strings.Index(html, "Tintes"), "sorted ascending by date")
	assert.Contains(t, html, "16/10/2026 15:00")
	assert.Contains(t, html, "Total generado</td><td class=\"num\">S/. 80.00")
	assert.Contains(t, html, "Total a pagar</td><td class=\"num\">S/. 32.00")
}

func TestFormatsReportSameTotals(t *testing.T) {
	diana := employee("Diana", "37.5")
	var txs []models.Transaction
	for i, p := range []float64{19.9, 35.15, 0.1, 0.2, 120, 44.44} {
		txs = append(txs, tx(diana.ID, "S", p, today.Add(time.Duration(i)*time.Minute)))
	}
	report := Aggregate([]models.Employee{diana}, txs, nil, PeriodRange(Month, 0, today))
	summary := report.Employees[0]

	msg, err := WhatsAppMessage(MessageOptions{Title: "R", Currency: "S/."}, summary)
	require.NoError(t, err)

	doc := NewPrintDocument("MIVIS STUDIO", "S/.", report, today)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, summary.Generated, doc.Sections[0].Generated)
	assert.Equal(t, summary.Payout, doc.Sections[0].Payout)

	var buf bytes.Buffer
	require.NoError(t, RenderPrintable(&buf, doc))

	generated := Money("S/.", summary.Generated)
	payout := Money("S/.", summary.Payout)
	assert.Contains(t, msg, "*Ventas Totales:* "+generated)
	assert.Contains(t, msg, "*Total a Pagar:* "+payout)
	assert.Contains(t, buf.String(), "Total generado</td><td class=\"num\">"+generated)
	assert.Contains(t, buf.String(), "Total a pagar</td><td class=\"num\">"+payout)
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "S/. 0.30", Money("S/.", 0.1+0.2))
	assert.Equal(t, "10.00", Money("", 10))
	assert.Equal(t, 0.05, Round2(100-99.95))
	assert.Equal(t, "12.5%", Percent(12.5))
}

func TestBookingConfirmation(t *testing.T) {
	b := models.Booking{
		ClientName: "Ana",
		Service:    "Cortes",
		Date:       time.Date(2026, 10, 19, 15, 30, 0, 0, time.UTC),
	}
	msg := BookingConfirmation("MIVIS STUDIO", b, "Diana")
	assert.Contains(t, msg, "Hola Ana, tu cita en *MIVIS STUDIO* está confirmada")
	assert.Contains(t, msg, "📅 lunes, 19 de octubre a las 15:30")
	assert.Contains(t, msg, "💇 Cortes con Diana")

	assert.Contains(t, BookingConfirmation("MIVIS STUDIO", b, ""), "💇 Cortes\n")
}
