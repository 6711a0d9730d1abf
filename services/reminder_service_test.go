package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"studio-backend/models"
	"studio-backend/services"
	mock_services "studio-backend/services/mocks"
	"studio-backend/store"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return store.New(db)
}

var lima = time.FixedZone("PET", -5*60*60)

func TestReminderService_SendDailyReminders(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	st := setupStore(t)
	diana := models.Employee{Name: "Diana", Commission: "40"}
	require.NoError(t, st.Create(ctx, &diana))

	now := time.Date(2026, 10, 18, 9, 0, 0, 0, lima)
	tomorrow := time.Date(2026, 10, 19, 15, 30, 0, 0, lima)
	for _, b := range []models.Booking{
		{ClientName: "Ana", ClientPhone: "987654321", Service: "Cortes", ProfessionalID: diana.ID, Date: tomorrow},
		{ClientName: "Bea", ClientPhone: "912345678", Service: "Tintes", ProfessionalID: diana.ID, Date: tomorrow.Add(time.Hour)},
		{ClientName: "Sin Telefono", Service: "Manicure", ProfessionalID: diana.ID, Date: tomorrow},
		{ClientName: "Hoy", ClientPhone: "900000000", Service: "Cortes", ProfessionalID: diana.ID, Date: now.Add(time.Hour)},
		{ClientName: "Pasado", ClientPhone: "900000001", Service: "Cortes", ProfessionalID: diana.ID, Date: tomorrow.AddDate(0, 0, 1)},
	} {
		b := b
		require.NoError(t, st.Create(ctx, &b))
	}

	sender := mock_services.NewMockSender(ctrl)
	sender.EXPECT().Channel().Return(services.ChannelWhatsApp).AnyTimes()
	sender.EXPECT().Send(gomock.Any(), "987654321", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, body string) (string, error) {
			assert.True(t, strings.HasPrefix(body, "Hola Ana, tu cita en *MIVIS STUDIO*"))
			assert.Contains(t, body, "a las 15:30")
			assert.Contains(t, body, "Cortes con Diana")
			return "SM1", nil
		})
	sender.EXPECT().Send(gomock.Any(), "912345678", gomock.Any()).Return("", errors.New("undeliverable"))

	svc := services.NewReminderService(st, sender, "MIVIS STUDIO", lima)
	res, err := svc.SendDailyReminders(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, services.ReminderResult{Sent: 1, Failed: 1, Skipped: 1}, res)

	logs, err := st.ListMessageLogs(ctx, services.KindReminder)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	byRecipient := map[string]models.MessageLog{}
	for _, l := range logs {
		byRecipient[l.Recipient] = l
	}
	assert.Equal(t, services.StatusSent, byRecipient["987654321"].Status)
	assert.Equal(t, "SM1", byRecipient["987654321"].ExternalID)
	assert.Equal(t, services.StatusFailed, byRecipient["912345678"].Status)
	assert.Equal(t, "undeliverable", byRecipient["912345678"].ErrorMessage)
	assert.NotNil(t, byRecipient["912345678"].BookingID)
}

func TestReminderService_StartSchedulerRejectsBadSpec(t *testing.T) {
	svc := services.NewReminderService(setupStore(t), services.LogSender{}, "MIVIS STUDIO", lima)
	assert.Error(t, svc.StartScheduler("every day"))

	require.NoError(t, svc.StartScheduler("0 9 * * *"))
	svc.Stop()
}

func TestReportDispatcher_Send(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()
	st := setupStore(t)

	sender := mock_services.NewMockSender(ctrl)
	sender.EXPECT().Channel().Return(services.ChannelWhatsApp).AnyTimes()
	sender.EXPECT().Send(gomock.Any(), "+51999888777", "*Reporte Semanal*").Return("SM9", nil)

	d := services.NewReportDispatcher(st, sender, "+51999888777")
	entry, err := d.Send(ctx, "", "*Reporte Semanal*")
	require.NoError(t, err)
	assert.Equal(t, services.StatusSent, entry.Status)
	assert.Equal(t, "SM9", entry.ExternalID)

	logs, err := st.ListMessageLogs(ctx, services.KindReport)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestReportDispatcher_NoRecipient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sender := mock_services.NewMockSender(ctrl)
	sender.EXPECT().Channel().Return(services.ChannelWhatsApp).AnyTimes()

	d := services.NewReportDispatcher(setupStore(t), sender, "")
	_, err := d.Send(context.Background(), "", "texto")
	assert.ErrorIs(t, err, services.ErrNoRecipient)
}

func TestReportDispatcher_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sender := mock_services.NewMockSender(ctrl)
	sender.EXPECT().Channel().Return(services.ChannelTelegram).AnyTimes()
	sender.EXPECT().Send(gomock.Any(), "", "texto").Return("", errors.New("bot blocked"))

	d := services.NewReportDispatcher(setupStore(t), sender, "")
	entry, err := d.Send(context.Background(), "", "texto")
	assert.ErrorContains(t, err, "bot blocked")
	require.NotNil(t, entry)
	assert.Equal(t, services.StatusFailed, entry.Status)
}
