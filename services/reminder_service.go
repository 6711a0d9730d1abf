// services/reminder_service.go
package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"studio-backend/models"
	"studio-backend/reports"
	"studio-backend/store"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

const (
	KindReminder = "reminder"
	KindReport   = "report"

	StatusSent   = "sent"
	StatusFailed = "failed"
)

type ReminderService struct {
	store  *store.Store
	sender Sender
	studio string
	loc    *time.Location
	cron   *cron.Cron
}

func NewReminderService(st *store.Store, sender Sender, studio string, loc *time.Location) *ReminderService {
	if loc == nil {
		loc = time.Local
	}
	return &ReminderService{store: st, sender: sender, studio: studio, loc: loc}
}

// StartScheduler runs SendDailyReminders on the given cron schedule, in the
// studio's time zone.
func (s *ReminderService) StartScheduler(spec string) error {
	c := cron.New(cron.WithLocation(s.loc))
	_, err := c.AddFunc(spec, func() {
		if _, err := s.SendDailyReminders(context.Background(), time.Now().In(s.loc)); err != nil {
			log.Printf("[REMINDER] run failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}
	c.Start()
	s.cron = c
	log.Printf("[REMINDER] scheduler started (%s, %s)", spec, s.loc)
	return nil
}

func (s *ReminderService) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

type ReminderResult struct {
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// SendDailyReminders messages every client booked for the day after now.
// Bookings without a phone are skipped. Each attempt is logged.
func (s *ReminderService) SendDailyReminders(ctx context.Context, now time.Time) (ReminderResult, error) {
	var res ReminderResult
	log.Println("[REMINDER] starting daily reminder processing")

	bookings, err := s.store.ListBookings(ctx)
	if err != nil {
		return res, fmt.Errorf("list bookings: %w", err)
	}
	employees, err := s.store.ListEmployees(ctx)
	if err != nil {
		return res, fmt.Errorf("list employees: %w", err)
	}
	names := make(map[uuid.UUID]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.Name
	}

	tomorrow := reports.PeriodRange(reports.Day, 1, now.In(s.loc))
	for _, b := range bookings {
		if !tomorrow.Contains(b.Date) {
			continue
		}
		if b.ClientPhone == "" {
			res.Skipped++
			continue
		}

		message := reports.BookingConfirmation(s.studio, withLocation(b, s.loc), names[b.ProfessionalID])
		status, errorMsg := StatusSent, ""
		externalID, err := s.sender.Send(ctx, b.ClientPhone, message)
		if err != nil {
			log.Printf("[REMINDER] failed to send to %s: %v", b.ClientPhone, err)
			status, errorMsg = StatusFailed, err.Error()
			res.Failed++
		} else {
			res.Sent++
		}

		bookingID := b.ID
		entry := &models.MessageLog{
			BookingID:    &bookingID,
			Kind:         KindReminder,
			Channel:      s.sender.Channel(),
			Recipient:    b.ClientPhone,
			Message:      message,
			Status:       status,
			ExternalID:   externalID,
			ErrorMessage: errorMsg,
			SentAt:       now,
		}
		if err := s.store.LogMessage(ctx, entry); err != nil {
			log.Printf("[REMINDER] failed to log reminder for booking %s: %v", b.ID, err)
		}
	}

	log.Printf("[REMINDER] done: %d sent, %d failed, %d without phone", res.Sent, res.Failed, res.Skipped)
	return res, nil
}

func withLocation(b models.Booking, loc *time.Location) models.Booking {
	b.Date = b.Date.In(loc)
	return b
}
