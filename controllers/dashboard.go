package controllers

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"studio-backend/reports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DashboardController struct {
	*Deps
}

type DashboardOverview struct {
	Team             []TeamCard            `json:"team"`
	TodayTotal       float64               `json:"todayTotal"`
	Month            reports.LedgerSummary `json:"month"`
	UpcomingBookings []UpcomingBooking     `json:"upcomingBookings"`
	RecentCharges    []RecentCharge        `json:"recentCharges"`
}

type TeamCard struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Photo      *string   `json:"photo,omitempty"`
	AvatarSeed string    `json:"avatarSeed"`
	Commission string    `json:"commission"`
	Today      float64   `json:"today"`
	Services   int       `json:"services"`
}

type UpcomingBooking struct {
	ID           uuid.UUID `json:"id"`
	ClientName   string    `json:"clientName"`
	Service      string    `json:"service"`
	Professional string    `json:"professional"`
	Date         time.Time `json:"date"`
	When         string    `json:"when"` // e.g. "Hoy 15:30", "Mañana 10:00"
}

type RecentCharge struct {
	Employee    string  `json:"employee"`
	ServiceName string  `json:"serviceName"`
	Price       float64 `json:"price"`
	Method      string  `json:"paymentMethod"`
	When        string  `json:"when"` // e.g. "Hoy", "Ayer", "hace 3 días"
}

const (
	upcomingDays  = 7
	upcomingLimit = 7
	recentLimit   = 5
)

func (dc *DashboardController) GetDashboardOverview(c *gin.Context) {
	now := dc.now()
	ledger := dc.Replica.Ledger().In(dc.location())

	today := ledger.Report(reports.PeriodRange(reports.Day, 0, now))
	month := ledger.Report(reports.PeriodRange(reports.Month, 0, now))

	overview := DashboardOverview{
		Team:             make([]TeamCard, 0, len(today.Employees)),
		TodayTotal:       today.Ledger.Income,
		Month:            month.Ledger,
		UpcomingBookings: []UpcomingBooking{},
		RecentCharges:    []RecentCharge{},
	}

	names := make(map[uuid.UUID]string, len(ledger.Employees))
	for _, s := range today.Employees {
		names[s.Employee.ID] = s.Employee.Name
		overview.Team = append(overview.Team, TeamCard{
			ID:         s.Employee.ID,
			Name:       s.Employee.Name,
			Role:       s.Employee.Role,
			Photo:      s.Employee.Photo,
			AvatarSeed: s.Employee.AvatarSeed,
			Commission: string(s.Employee.Commission),
			Today:      s.Generated,
			Services:   len(s.Transactions),
		})
	}

	// bookings are ordered soonest first
	startOfToday := reports.BeginningOfDay(now)
	horizon := startOfToday.AddDate(0, 0, upcomingDays)
	for _, b := range ledger.Bookings {
		if b.Date.Before(now) || !b.Date.Before(horizon) {
			continue
		}
		overview.UpcomingBookings = append(overview.UpcomingBookings, UpcomingBooking{
			ID:           b.ID,
			ClientName:   b.ClientName,
			Service:      b.Service,
			Professional: names[b.ProfessionalID],
			Date:         b.Date,
			When:         dayLabel(daysBetween(now, b.Date), true) + " " + b.Date.Format("15:04"),
		})
		if len(overview.UpcomingBookings) >= upcomingLimit {
			break
		}
	}

	// transactions are ordered newest first
	for _, t := range ledger.Transactions {
		if t.Date.After(now) {
			continue
		}
		overview.RecentCharges = append(overview.RecentCharges, RecentCharge{
			Employee:    names[t.EmployeeID],
			ServiceName: t.ServiceName,
			Price:       t.Price,
			Method:      string(t.PaymentMethod),
			When:        dayLabel(daysBetween(t.Date, now), false),
		})
		if len(overview.RecentCharges) >= recentLimit {
			break
		}
	}

	c.JSON(http.StatusOK, overview)
}

func daysBetween(start, end time.Time) int {
	s := reports.BeginningOfDay(start)
	e := reports.BeginningOfDay(end.In(start.Location()))
	return int(math.Round(e.Sub(s).Hours() / 24))
}

func dayLabel(days int, future bool) string {
	switch {
	case days == 0:
		return "Hoy"
	case days == 1 && future:
		return "Mañana"
	case days == 1:
		return "Ayer"
	case future:
		return fmt.Sprintf("en %d días", days)
	default:
		return fmt.Sprintf("hace %d días", days)
	}
}
