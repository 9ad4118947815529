package handlers

import (
	"net/http"

	"github.com/SscSPs/mf_receipt_desk/internal/core/domain"
	portssvc "github.com/SscSPs/mf_receipt_desk/internal/core/ports/services"
	"github.com/SscSPs/mf_receipt_desk/internal/core/services"
	"github.com/SscSPs/mf_receipt_desk/internal/dto"
	"github.com/gin-gonic/gin"
)

type lookupHandler struct {
	referenceData portssvc.ReferenceDataSvc
}

func newLookupHandler(rd portssvc.ReferenceDataSvc) *lookupHandler {
	return &lookupHandler{referenceData: rd}
}

func registerLookupRoutes(rg *gin.RouterGroup, rd portssvc.ReferenceDataSvc) {
	h := newLookupHandler(rd)
	rg.GET("/lookups/:kind", h.listLookup)
}

// listLookup godoc
// @Summary List dropdown values
// @Description Fetches cashier branches, loan branches, centers (filter = branch id) or groups (filter = center id) and applies the dropdown search.
// @Tags lookups
// @Produce json
// @Param kind path string true "cashier-branch, branch, center or group"
// @Param filter query string false "Parent id for center and group"
// @Param search query string false "Case-insensitive label search"
// @Success 200 {object} dto.LookupListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /lookups/{kind} [get]
func (h *lookupHandler) listLookup(c *gin.Context) {
	kind, err := domain.ParseLookupKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	var q dto.LookupQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	items, err := h.referenceData.FetchList(c.Request.Context(), kind, q.Filter)
	if err != nil {
		respondError(c, err, "Failed to fetch list")
		return
	}
	c.JSON(http.StatusOK, dto.LookupListResponse{Kind: kind, Items: services.FilterItems(items, q.Search)})
}
