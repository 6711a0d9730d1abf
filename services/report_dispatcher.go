package services

import (
	"context"
	"errors"
	"log"
	"time"

	"studio-backend/models"
	"studio-backend/store"
)

var ErrNoRecipient = errors.New("no report recipient configured")

// ReportDispatcher forwards rendered reports to the owner's chat.
type ReportDispatcher struct {
	store     *store.Store
	sender    Sender
	recipient string
}

func NewReportDispatcher(st *store.Store, sender Sender, recipient string) *ReportDispatcher {
	return &ReportDispatcher{store: st, sender: sender, recipient: recipient}
}

// Send delivers text to to, or to the configured recipient when to is
// empty. Telegram needs no recipient since the chat comes with the bot.
func (d *ReportDispatcher) Send(ctx context.Context, to, text string) (*models.MessageLog, error) {
	if to == "" {
		to = d.recipient
	}
	if to == "" && d.sender.Channel() == ChannelWhatsApp {
		return nil, ErrNoRecipient
	}

	entry := &models.MessageLog{
		Kind:      KindReport,
		Channel:   d.sender.Channel(),
		Recipient: to,
		Message:   text,
		Status:    StatusSent,
		SentAt:    time.Now(),
	}
	id, sendErr := d.sender.Send(ctx, to, text)
	entry.ExternalID = id
	if sendErr != nil {
		entry.Status = StatusFailed
		entry.ErrorMessage = sendErr.Error()
		log.Printf("[NOTIFY] report delivery failed: %v", sendErr)
	}
	if err := d.store.LogMessage(ctx, entry); err != nil {
		log.Printf("[NOTIFY] failed to log report delivery: %v", err)
	}
	return entry, sendErr
}
