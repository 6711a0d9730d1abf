package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"studio-backend/models"
	"studio-backend/reports"
	"studio-backend/store"
	"studio-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingController struct {
	*Deps
}

// BookingInput mirrors the client form: date and time are separate fields
// interpreted in the studio's time zone.
type BookingInput struct {
	ClientName     string               `json:"clientName" binding:"required"`
	ClientPhone    string               `json:"clientPhone"`
	Service        string               `json:"service" binding:"required"`
	ProfessionalID uuid.UUID            `json:"professionalId" binding:"required"`
	Date           string               `json:"date" binding:"required"`
	Time           string               `json:"time" binding:"required"`
	PaymentMethod  models.PaymentMethod `json:"paymentMethod"`
}

type ConfirmationLink struct {
	Message string `json:"message"`
	Link    string `json:"link"`
}

func (bc *BookingController) GetBookings(c *gin.Context) {
	bookings, err := bc.Store.ListBookings(c.Request.Context())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// CreateBooking is used by both the public form and the admin agenda.
// Overlapping appointments are accepted.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var input BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Completa todos los campos: "+err.Error())
		return
	}
	ctx := c.Request.Context()

	when, err := time.ParseInLocation("2006-01-02 15:04", input.Date+" "+input.Time, bc.location())
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date or time, expected YYYY-MM-DD and HH:MM")
		return
	}
	phone := strings.TrimSpace(input.ClientPhone)
	if phone != "" && !utils.ValidatePhone(phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
		return
	}
	if input.PaymentMethod != "" && !input.PaymentMethod.Valid() {
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown payment method")
		return
	}
	if _, err := bc.Store.GetEmployee(ctx, input.ProfessionalID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Professional not found")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	booking := models.Booking{
		ClientName:     strings.TrimSpace(input.ClientName),
		ClientPhone:    phone,
		Service:        input.Service,
		ProfessionalID: input.ProfessionalID,
		Date:           when,
		Status:         models.BookingConfirmed,
		PaymentMethod:  input.PaymentMethod,
	}
	if err := bc.Store.Create(ctx, &booking); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create booking")
		return
	}
	c.JSON(http.StatusCreated, booking)
}

func (bc *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := parseID(c, "booking")
	if !ok || !requireConfirm(c) {
		return
	}
	if err := bc.Store.Delete(c.Request.Context(), store.Bookings, id); err != nil {
		respondStoreError(c, err, "booking")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetConfirmationLink builds the wa.me link that opens a chat with the
// client, prefilled with the appointment details.
func (bc *BookingController) GetConfirmationLink(c *gin.Context) {
	id, ok := parseID(c, "booking")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	booking, err := bc.Store.GetBooking(ctx, id)
	if err != nil {
		respondStoreError(c, err, "booking")
		return
	}
	if booking.ClientPhone == "" {
		utils.RespondWithError(c, http.StatusUnprocessableEntity, "Booking has no phone number")
		return
	}

	professional := ""
	if emp, err := bc.Store.GetEmployee(ctx, booking.ProfessionalID); err == nil {
		professional = emp.Name
	}
	booking.Date = booking.Date.In(bc.location())
	msg := reports.BookingConfirmation(bc.Studio.Name, booking, professional)
	c.JSON(http.StatusOK, ConfirmationLink{
		Message: msg,
		Link:    reports.WhatsAppLink(msg, bc.Studio.CountryCode, booking.ClientPhone),
	})
}
