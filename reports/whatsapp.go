package reports

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var ErrNoTransactions = errors.New("no transactions in the selected period")

const whatsAppBase = "https://wa.me/"

type MessageOptions struct {
	Title       string // e.g. "Reporte Semanal MIVIS STUDIO"
	PeriodLabel string
	Currency    string
}

func ReportTitle(unit Unit, studio string) string {
	var title string
	switch unit {
	case Day:
		title = "Reporte Diario"
	case Month:
		title = "Reporte Mensual"
	default:
		title = "Reporte Semanal"
	}
	if studio == "" {
		return title
	}
	return title + " " + studio
}

// WhatsAppMessage renders an employee's period summary as a WhatsApp text
// block. It refuses to render an empty period.
func WhatsAppMessage(opts MessageOptions, s EmployeeSummary) (string, error) {
	if len(s.Transactions) == 0 {
		return "", ErrNoTransactions
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*%s* 💄\n\n", opts.Title)
	fmt.Fprintf(&b, "Hola %s,\n", s.Employee.Name)
	if opts.PeriodLabel != "" {
		fmt.Fprintf(&b, "Resumen: %s\n", opts.PeriodLabel)
	}
	b.WriteString("\n")
	for _, t := range s.Transactions {
		fmt.Fprintf(&b, "• %s — %s", t.ServiceName, Money(opts.Currency, t.Price))
		if t.PaymentMethod != "" {
			fmt.Fprintf(&b, " (%s)", t.PaymentMethod)
		}
		b.WriteString("\n")
	}
	b.WriteString("────────────\n")
	fmt.Fprintf(&b, "✅ *Servicios:* %d\n", len(s.Transactions))
	fmt.Fprintf(&b, "💰 *Ventas Totales:* %s\n", Money(opts.Currency, s.Generated))
	fmt.Fprintf(&b, "📊 *Comisión:* %s\n\n", Percent(s.CommissionPercent))
	fmt.Fprintf(&b, "💵 *Total a Pagar:* %s\n\n", Money(opts.Currency, s.Payout))
	b.WriteString("Gracias por tu trabajo! ✨")
	return b.String(), nil
}

// uriComponentUnescapes undoes the escapes url.QueryEscape applies beyond
// what encodeURIComponent does: spaces become %20 and !'()* stay literal.
var uriComponentUnescapes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent percent-encodes text the way encodeURIComponent does,
// so links match the ones the web client builds.
func EncodeURIComponent(text string) string {
	return uriComponentUnescapes.Replace(url.QueryEscape(text))
}

// WhatsAppLink builds the deep link. With a phone the link targets that chat;
// local numbers get countryCode prepended, "+" numbers are used as given.
func WhatsAppLink(text, countryCode, phone string) string {
	target := ""
	if phone = strings.TrimSpace(phone); phone != "" {
		digits := onlyDigits(phone)
		if !strings.HasPrefix(phone, "+") {
			digits = onlyDigits(countryCode) + digits
		}
		target = digits
	}
	return whatsAppBase + target + "?text=" + EncodeURIComponent(text)
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
