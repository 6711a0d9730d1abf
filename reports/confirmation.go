package reports

import (
	"fmt"
	"strings"

	"studio-backend/models"
)

// BookingConfirmation is the text sent to a client about an appointment.
// professional may be empty when the employee was deleted.
func BookingConfirmation(studio string, b models.Booking, professional string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Hola %s, tu cita en *%s* está confirmada ✅\n\n", b.ClientName, studio)
	fmt.Fprintf(&sb, "📅 %s, %d de %s a las %s\n",
		weekdayNames[b.Date.Weekday()], b.Date.Day(), monthNames[b.Date.Month()-1], b.Date.Format("15:04"))
	if professional != "" {
		fmt.Fprintf(&sb, "💇 %s con %s\n", b.Service, professional)
	} else {
		fmt.Fprintf(&sb, "💇 %s\n", b.Service)
	}
	sb.WriteString("\n¡Te esperamos!")
	return sb.String()
}
