package services

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type fakeTwilio struct {
	params *twilioApi.CreateMessageParams
	sid    *string
	err    error
}

func (f *fakeTwilio) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	return &twilioApi.ApiV2010Message{Sid: f.sid}, nil
}

func TestTwilioSender_Send(t *testing.T) {
	sid := "SM123"
	api := &fakeTwilio{sid: &sid}
	s := &TwilioSender{api: api, from: "+14155238886", countryCode: "51"}

	id, err := s.Send(context.Background(), "987 654 321", "hola")
	require.NoError(t, err)
	assert.Equal(t, "SM123", id)
	assert.Equal(t, "whatsapp:+51987654321", *api.params.To)
	assert.Equal(t, "whatsapp:+14155238886", *api.params.From)
	assert.Equal(t, "hola", *api.params.Body)
	assert.Equal(t, ChannelWhatsApp, s.Channel())
}

func TestTwilioSender_Errors(t *testing.T) {
	s := &TwilioSender{api: &fakeTwilio{err: errors.New("401")}, from: "+14155238886", countryCode: "51"}

	_, err := s.Send(context.Background(), "abc", "hola")
	assert.Error(t, err)

	_, err = s.Send(context.Background(), "+51987654321", "hola")
	assert.ErrorContains(t, err, "401")
}

type fakeBot struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	msg := c.(tgbotapi.MessageConfig)
	f.sent = append(f.sent, msg)
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func TestTelegramSender_Send(t *testing.T) {
	bot := &fakeBot{}
	s := &TelegramSender{bot: bot, chatID: -1001}

	id, err := s.Send(context.Background(), "", "reporte")
	require.NoError(t, err)
	assert.Equal(t, "1", id)

	_, err = s.Send(context.Background(), "555", "otro")
	require.NoError(t, err)

	require.Len(t, bot.sent, 2)
	assert.Equal(t, int64(-1001), bot.sent[0].ChatID)
	assert.Equal(t, "reporte", bot.sent[0].Text)
	assert.Equal(t, int64(555), bot.sent[1].ChatID)
}

func TestTelegramSender_Error(t *testing.T) {
	s := &TelegramSender{bot: &fakeBot{err: errors.New("chat not found")}, chatID: 1}
	_, err := s.Send(context.Background(), "", "x")
	assert.ErrorContains(t, err, "chat not found")
}

func TestLogSender(t *testing.T) {
	id, err := LogSender{}.Send(context.Background(), "+51987654321", "hola")
	assert.NoError(t, err)
	assert.Empty(t, id)
	assert.Equal(t, ChannelLog, LogSender{}.Channel())
}
