package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/mf_receipt_desk/internal/core/domain"
	portssvc "github.com/SscSPs/mf_receipt_desk/internal/core/ports/services"
	"github.com/SscSPs/mf_receipt_desk/internal/dto"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type summaryHandler struct {
	summary portssvc.CashSummarySvc
}

func newSummaryHandler(summary portssvc.CashSummarySvc) *summaryHandler {
	return &summaryHandler{summary: summary}
}

func registerSummaryRoutes(rg *gin.RouterGroup, summary portssvc.CashSummarySvc) {
	h := newSummaryHandler(summary)

	s := rg.Group("/cash-summary")
	{
		s.GET("", h.getSummary)
		s.GET("/export", h.exportSummary)
	}
}

// summaryDate defaults to today when the query has no date.
func summaryDate(c *gin.Context) (time.Time, bool) {
	var q dto.DateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return time.Time{}, false
	}
	day, err := parseQueryDate(q.Date)
	if err != nil {
		respondError(c, err, "Invalid date")
		return time.Time{}, false
	}
	if day.IsZero() {
		now := time.Now()
		day = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	return day, true
}

// getSummary godoc
// @Summary Cashier cash summary
// @Tags cash-summary
// @Produce json
// @Param date query string false "YYYY-MM-DD, defaults to today"
// @Success 200 {object} domain.CashSummary
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /cash-summary [get]
func (h *summaryHandler) getSummary(c *gin.Context) {
	day, ok := summaryDate(c)
	if !ok {
		return
	}
	summary, err := h.summary.GetSummary(c.Request.Context(), day)
	if err != nil {
		respondError(c, err, "Failed to get cash summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// exportSummary godoc
// @Summary Export the cash summary
// @Description Downloads the cash summary as an xlsx workbook.
// @Tags cash-summary
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param date query string false "YYYY-MM-DD, defaults to today"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /cash-summary/export [get]
func (h *summaryHandler) exportSummary(c *gin.Context) {
	day, ok := summaryDate(c)
	if !ok {
		return
	}
	// Buffered so a failure can still be answered as JSON.
	var buf bytes.Buffer
	if err := h.summary.ExportXLSX(c.Request.Context(), day, &buf); err != nil {
		respondError(c, err, "Failed to export cash summary")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="cash-summary-%s.xlsx"`, domain.FormatDate(day)))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
