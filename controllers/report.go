// controllers/report.go
package controllers

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"studio-backend/reports"
	"studio-backend/services"
	"studio-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportController handles all reporting functions. Every call recomputes
// from the replica's current ledger.
type ReportController struct {
	*Deps
}

type WhatsAppReport struct {
	EmployeeID uuid.UUID `json:"employeeId"`
	Label      string    `json:"label"`
	Message    string    `json:"message"`
	Link       string    `json:"link"`
}

type SendReportInput struct {
	To     string `json:"to"`
	Unit   string `json:"unit"`
	Offset int    `json:"offset"`
}

func (rc *ReportController) period(unitParam string, offset int) (reports.Unit, reports.Range, error) {
	unit, err := reports.ParseUnit(unitParam)
	if err != nil {
		return "", reports.Range{}, err
	}
	return unit, reports.PeriodRange(unit, offset, rc.now()), nil
}

func (rc *ReportController) report(r reports.Range) reports.Report {
	return rc.Replica.Ledger().In(rc.location()).Report(r)
}

// GetReport returns the per-employee table for a day, week or month.
func (rc *ReportController) GetReport(c *gin.Context) {
	offset, ok := offsetParam(c)
	if !ok {
		return
	}
	unit, r, err := rc.period(c.DefaultQuery("unit", string(reports.Week)), offset)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, reports.BuildTable(unit, rc.report(r)))
}

// renderWhatsApp writes the error response itself and returns ok=false on
// failure.
func (rc *ReportController) renderWhatsApp(c *gin.Context, unitParam string, offset int) (WhatsAppReport, bool) {
	id, ok := parseID(c, "employee")
	if !ok {
		return WhatsAppReport{}, false
	}
	unit, r, err := rc.period(unitParam, offset)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return WhatsAppReport{}, false
	}

	summary, found := rc.report(r).Find(id)
	if !found {
		utils.RespondWithError(c, http.StatusNotFound, "employee not found")
		return WhatsAppReport{}, false
	}
	label := reports.RangeLabel(unit, r)
	msg, err := reports.WhatsAppMessage(reports.MessageOptions{
		Title:       reports.ReportTitle(unit, rc.Studio.Name),
		PeriodLabel: label,
		Currency:    rc.Studio.Currency,
	}, summary)
	if errors.Is(err, reports.ErrNoTransactions) {
		utils.RespondWithError(c, http.StatusUnprocessableEntity, "No hay servicios registrados en este periodo")
		return WhatsAppReport{}, false
	}
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to render report")
		return WhatsAppReport{}, false
	}
	return WhatsAppReport{EmployeeID: id, Label: label, Message: msg}, true
}

// GetWhatsAppReport returns the message and a wa.me link. With ?phone= the
// link opens that chat directly.
func (rc *ReportController) GetWhatsAppReport(c *gin.Context) {
	offset, ok := offsetParam(c)
	if !ok {
		return
	}
	out, ok := rc.renderWhatsApp(c, c.DefaultQuery("unit", string(reports.Week)), offset)
	if !ok {
		return
	}
	out.Link = reports.WhatsAppLink(out.Message, rc.Studio.CountryCode, c.Query("phone"))
	c.JSON(http.StatusOK, out)
}

func (rc *ReportController) SendWhatsAppReport(c *gin.Context) {
	input := SendReportInput{Unit: string(reports.Week)}
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}
	if rc.Dispatcher == nil {
		utils.RespondWithError(c, http.StatusServiceUnavailable, "Messaging is not configured")
		return
	}
	out, ok := rc.renderWhatsApp(c, input.Unit, input.Offset)
	if !ok {
		return
	}

	entry, err := rc.Dispatcher.Send(c.Request.Context(), input.To, out.Message)
	if errors.Is(err, services.ErrNoRecipient) {
		utils.RespondWithError(c, http.StatusBadRequest, "No recipient: pass \"to\" or set REPORT_WHATSAPP_TO")
		return
	}
	if err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Failed to deliver report")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// GetPrintableReport renders the month as an HTML page that opens the print
// dialog on load.
func (rc *ReportController) GetPrintableReport(c *gin.Context) {
	offset, ok := offsetParam(c)
	if !ok {
		return
	}
	r := reports.PeriodRange(reports.Month, offset, rc.now())
	doc := reports.NewPrintDocument(rc.Studio.Name, rc.Studio.Currency, rc.report(r), rc.now())

	var buf bytes.Buffer
	if err := reports.RenderPrintable(&buf, doc); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to render report")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
