package services

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"studio-backend/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

const (
	ChannelWhatsApp = "whatsapp"
	ChannelTelegram = "telegram"
	ChannelLog      = "log"
)

//go:generate mockgen -destination=mocks/mock_sender.go -source=sender.go Sender

// Sender delivers a text message. It returns the provider's message id.
type Sender interface {
	Channel() string
	Send(ctx context.Context, to, body string) (string, error)
}

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioSender sends WhatsApp messages through Twilio.
type TwilioSender struct {
	api         messageCreator
	from        string
	countryCode string
}

func NewTwilioSender(accountSID, authToken, whatsAppNumber, countryCode string) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSender{api: client.Api, from: whatsAppNumber, countryCode: countryCode}
}

func (s *TwilioSender) Channel() string { return ChannelWhatsApp }

func (s *TwilioSender) Send(ctx context.Context, to, body string) (string, error) {
	phone, ok := utils.NormalizePhone(to, s.countryCode)
	if !ok {
		return "", fmt.Errorf("invalid phone number %q", to)
	}
	from, ok := utils.NormalizePhone(s.from, s.countryCode)
	if !ok {
		return "", fmt.Errorf("invalid sender number %q", s.from)
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo("whatsapp:" + phone)
	params.SetFrom("whatsapp:" + from)
	params.SetBody(body)

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("twilio: %w", err)
	}
	if resp == nil || resp.Sid == nil {
		log.Printf("[NOTIFY] message sent to %s, but no SID returned", phone)
		return "", nil
	}
	return *resp.Sid, nil
}

type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramSender posts to a chat. The to argument may carry a chat id;
// otherwise the configured chat is used.
type TelegramSender struct {
	bot    botAPI
	chatID int64
}

func NewTelegramSender(token string, chatID int64) (*TelegramSender, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	log.Printf("[NOTIFY] telegram bot authorized as %s", bot.Self.UserName)
	return &TelegramSender{bot: bot, chatID: chatID}, nil
}

func (s *TelegramSender) Channel() string { return ChannelTelegram }

func (s *TelegramSender) Send(ctx context.Context, to, body string) (string, error) {
	chatID := s.chatID
	if id, err := strconv.ParseInt(to, 10, 64); err == nil && id != 0 {
		chatID = id
	}
	msg, err := s.bot.Send(tgbotapi.NewMessage(chatID, body))
	if err != nil {
		return "", fmt.Errorf("telegram: %w", err)
	}
	return strconv.Itoa(msg.MessageID), nil
}

// LogSender only writes the message to the log. It is used when no
// provider credentials are configured.
type LogSender struct{}

func (LogSender) Channel() string { return ChannelLog }

func (LogSender) Send(ctx context.Context, to, body string) (string, error) {
	log.Printf("[NOTIFY] to=%s\n%s", to, body)
	return "", nil
}
