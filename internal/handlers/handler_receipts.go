package handlers

import (
	"net/http"
	"time"

	"github.com/SscSPs/mf_receipt_desk/internal/apperrors"
	"github.com/SscSPs/mf_receipt_desk/internal/core/domain"
	portssvc "github.com/SscSPs/mf_receipt_desk/internal/core/ports/services"
	"github.com/SscSPs/mf_receipt_desk/internal/dto"
	"github.com/gin-gonic/gin"
)

type receiptHandler struct {
	history portssvc.ReceiptHistorySvc
}

func newReceiptHandler(history portssvc.ReceiptHistorySvc) *receiptHandler {
	return &receiptHandler{history: history}
}

func registerReceiptRoutes(rg *gin.RouterGroup, history portssvc.ReceiptHistorySvc) {
	h := newReceiptHandler(history)

	receipts := rg.Group("/receipts")
	{
		receipts.GET("", h.listReceipts)
		receipts.POST("/cancel", h.cancelReceipt)
	}
}

// parseQueryDate parses an optional date query value. An empty value is the zero time.
func parseQueryDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		return time.Time{}, apperrors.FieldErrors{domain.FieldDate: "Please enter the date as YYYY-MM-DD."}
	}
	return d, nil
}

// listReceipts godoc
// @Summary List receipts
// @Description Lists the receipts of a center for one day.
// @Tags receipts
// @Produce json
// @Param centerId query string true "Center ID"
// @Param date query string true "YYYY-MM-DD"
// @Success 200 {object} dto.ReceiptListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /receipts [get]
func (h *receiptHandler) listReceipts(c *gin.Context) {
	var q dto.ListReceiptsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	day, err := parseQueryDate(q.Date)
	if err != nil {
		respondError(c, err, "Failed to list receipts")
		return
	}

	records, err := h.history.ListReceipts(c.Request.Context(), q.CenterID, day)
	if err != nil {
		respondError(c, err, "Failed to list receipts")
		return
	}
	c.JSON(http.StatusOK, dto.ReceiptListResponse{CenterID: q.CenterID, Date: domain.FormatDate(day), Receipts: records})
}

// cancelReceipt godoc
// @Summary Cancel a receipt
// @Tags receipts
// @Accept json
// @Produce json
// @Param cancel body dto.CancelReceiptRequest true "Receipt and reason"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /receipts/cancel [post]
func (h *receiptHandler) cancelReceipt(c *gin.Context) {
	var req dto.CancelReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	msg, err := h.history.CancelReceipt(c.Request.Context(), portssvc.CancelReceiptRequest{
		ReceiptID: req.ReceiptID,
		Reason:    req.Reason,
	})
	if err != nil {
		respondError(c, err, "Failed to cancel receipt")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: msg})
}
