package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/mf_receipt_desk/internal/core/ports/services"
	"github.com/SscSPs/mf_receipt_desk/internal/dto"
	"github.com/SscSPs/mf_receipt_desk/internal/middleware"
	"github.com/gin-gonic/gin"
)

// deskHandler serves the selection, ledger and submission screens of a desk.
type deskHandler struct {
	desks portssvc.DeskSvcFacade
}

func newDeskHandler(desks portssvc.DeskSvcFacade) *deskHandler {
	return &deskHandler{desks: desks}
}

func registerDeskRoutes(rg *gin.RouterGroup, desks portssvc.DeskSvcFacade) {
	h := newDeskHandler(desks)

	d := rg.Group("/desks")
	{
		d.POST("", h.openDesk)
		d.GET("/:deskID", h.getDesk)
		d.DELETE("/:deskID", h.closeDesk)

		d.PUT("/:deskID/selection", h.updateSelection)
		d.POST("/:deskID/selection/submit", h.submitSelection)

		d.GET("/:deskID/ledger", h.getLedger)
		d.POST("/:deskID/ledger/refresh", h.refreshLedger)
		d.PUT("/:deskID/ledger/lines/:loanID/payment", h.setPayment)
		d.DELETE("/:deskID/ledger/lines/:loanID/payment", h.clearPayment)

		d.POST("/:deskID/submission", h.submit)
	}
}

// openDesk godoc
// @Summary Open a desk
// @Description Opens a new receipt desk for the logged-in cashier.
// @Tags desks
// @Accept json
// @Produce json
// @Param desk body dto.OpenDeskRequest false "Optional user branch override"
// @Success 201 {object} domain.DeskView
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /desks [post]
func (h *deskHandler) openDesk(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.OpenDeskRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}

	desk, err := h.desks.Open(c.Request.Context(), username, req.UserBranchID)
	if err != nil {
		respondError(c, err, "Failed to open desk")
		return
	}
	c.JSON(http.StatusCreated, desk)
}

// getDesk godoc
// @Summary Get a desk
// @Tags desks
// @Produce json
// @Param deskID path string true "Desk ID"
// @Success 200 {object} domain.DeskView
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /desks/{deskID} [get]
func (h *deskHandler) getDesk(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	desk, err := h.desks.View(c.Request.Context(), c.Param("deskID"), username)
	if err != nil {
		respondError(c, err, "Failed to get desk")
		return
	}
	c.JSON(http.StatusOK, desk)
}

// closeDesk godoc
// @Summary Close a desk
// @Description Discards the desk and any unsaved payment entries.
// @Tags desks
// @Param deskID path string true "Desk ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /desks/{deskID} [delete]
func (h *deskHandler) closeDesk(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.desks.Close(c.Request.Context(), c.Param("deskID"), username); err != nil {
		respondError(c, err, "Failed to close desk")
		return
	}
	c.Status(http.StatusNoContent)
}

// updateSelection godoc
// @Summary Update selection fields
// @Description Sets selection form fields; each edit clears that field's error.
// @Tags desks
// @Accept json
// @Produce json
// @Param deskID path string true "Desk ID"
// @Param fields body dto.UpdateSelectionRequest true "Fields to set"
// @Success 200 {object} domain.SelectionFormView
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /desks/{deskID}/selection [put]
func (h *deskHandler) updateSelection(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.UpdateSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	view, err := h.desks.UpdateSelection(c.Request.Context(), c.Param("deskID"), username, req.Fields)
	if err != nil {
		respondError(c, err, "Failed to update selection")
		return
	}
	c.JSON(http.StatusOK, view)
}

// submitSelection godoc
// @Summary Load the ledger
// @Description Validates the selection and fetches the loan lines of the chosen center and group.
// @Tags desks
// @Produce json
// @Param deskID path string true "Desk ID"
// @Success 200 {object} domain.LedgerView
// @Failure 400 {object} dto.ErrorResponse "Selection incomplete"
// @Failure 409 {object} dto.ErrorResponse "Selection already loading"
// @Failure 502 {object} dto.ErrorResponse
// @Failure 504 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /desks/{deskID}/selection/submit [post]
func (h *deskHandler) submitSelection(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	ledger, err := h.desks.SubmitSelection(c.Request.Context(), c.Param("deskID"), username)
	if err != nil {
		respondError(c, err, "Failed to load ledger")
		return
	}
	c.JSON(http.StatusOK, ledger)
}

// getLedger godoc
// @Summary Get the ledger
// @Tags desks
// @Produce json
// @Param deskID path string true "Desk ID"
// @Param search query string false "Loan number, client or group search"
// @Success 200 {object} domain.LedgerView
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /desks/{deskID}/ledger [get]
func (h *deskHandler) getLedger(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	ledger, err := h.desks.GetLedger(c.Request.Context(), c.Param("deskID"), username, c.Query("search"))
	if err != nil {
		respondError(c, err, "Failed to get ledger")
		return
	}
	c.JSON(http.StatusOK, ledger)
}

// refreshLedger godoc
// @Summary Refresh the ledger
// @Description Re-fetches the loan lines. Unsaved pay amounts are discarded.
// @Tags desks
// @Produce json
// @Param deskID path string true "Desk ID"
// @Success 200 {object} domain.LedgerView
// @Failure 409 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /desks/{deskID}/ledger/refresh [post]
func (h *deskHandler) refreshLedger(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	ledger, err := h.desks.RefreshLedger(c.Request.Context(), c.Param("deskID"), username)
	if err != nil {
		respondError(c, err, "Failed to refresh ledger")
		return
	}
	c.JSON(http.StatusOK, ledger)
}

// setPayment godoc
// @Summary Enter a pay amount
// @Tags desks
// @Accept json
// @Produce json
// @Param deskID path string true "Desk ID"
// @Param loanID path string true "Loan ID"
// @Param payment body dto.SetPaymentRequest true "Amount"
// @Success 200 {object} domain.LoanReceiptLine
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Ledger is refreshing or being saved"
// @Security BearerAuth
// @Router /desks/{deskID}/ledger/lines/{loanID}/payment [put]
func (h *deskHandler) setPayment(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.SetPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	line, err := h.desks.SetPayment(c.Request.Context(), c.Param("deskID"), username, c.Param("loanID"), string(req.Amount))
	if err != nil {
		respondError(c, err, "Failed to set payment")
		return
	}
	c.JSON(http.StatusOK, line)
}

// clearPayment godoc
// @Summary Clear a pay amount
// @Tags desks
// @Produce json
// @Param deskID path string true "Desk ID"
// @Param loanID path string true "Loan ID"
// @Success 200 {object} domain.LoanReceiptLine
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /desks/{deskID}/ledger/lines/{loanID}/payment [delete]
func (h *deskHandler) clearPayment(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	line, err := h.desks.ClearPayment(c.Request.Context(), c.Param("deskID"), username, c.Param("loanID"))
	if err != nil {
		respondError(c, err, "Failed to clear payment")
		return
	}
	c.JSON(http.StatusOK, line)
}

// submit godoc
// @Summary Submit the receipt
// @Description Reconciles the entered total against the pay amounts and generates the receipt.
// @Description A prompt that was not accepted answers 409 with the prompt; re-send with the matching accept flag.
// @Tags desks
// @Accept json
// @Produce json
// @Param deskID path string true "Desk ID"
// @Param submission body dto.SubmitReceiptRequest true "Entered total and prompt answers"
// @Success 200 {object} domain.ReceiptSubmissionResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.PromptResponse
// @Failure 502 {object} dto.ErrorResponse "Upstream error, body verbatim"
// @Failure 504 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /desks/{deskID}/submission [post]
func (h *deskHandler) submit(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.SubmitReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	deskID := c.Param("deskID")
	res, err := h.desks.Submit(c.Request.Context(), deskID, username, string(req.EnteredTotal), req.Confirmer())
	if err != nil {
		respondError(c, err, "Failed to submit receipt")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Receipt submitted",
		slog.String("desk_id", deskID), slog.String("receipt_no", res.ReceiptNo))
	c.JSON(http.StatusOK, res)
}
