package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/accounting_backoffice/internal/core/ports/services"
	"github.com/SscSPs/accounting_backoffice/internal/dto"
	"github.com/SscSPs/accounting_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// conciliationHandler handles HTTP requests related to conciliations and their items.
type conciliationHandler struct {
	conciliationService portssvc.ConciliationSvcFacade
	reportService       portssvc.ConciliationReportSvc
}

func newConciliationHandler(cs portssvc.ConciliationSvcFacade, rs portssvc.ConciliationReportSvc) *conciliationHandler {
	return &conciliationHandler{
		conciliationService: cs,
		reportService:       rs,
	}
}

// RegisterConciliationRoutes registers routes related to conciliations.
func RegisterConciliationRoutes(rg *gin.RouterGroup, conciliationService portssvc.ConciliationSvcFacade, reportService portssvc.ConciliationReportSvc) {
	h := newConciliationHandler(conciliationService, reportService)

	conciliations := rg.Group("/conciliations")
	{
		conciliations.POST("", h.createConciliation)
		conciliations.GET("", h.listConciliations)
		conciliations.GET("/:id", h.getConciliation)
		conciliations.DELETE("/:id", h.deleteConciliation)
		conciliations.POST("/:id/cancel", h.cancelConciliation)
		conciliations.POST("/:id/auto-conciliate", h.autoConciliate)
		conciliations.POST("/:id/complete", h.completeConciliation)
		conciliations.POST("/:id/recompute", h.recomputeCounters)
		conciliations.POST("/:id/items", h.addItem)
		conciliations.GET("/:id/report", h.downloadReport)
	}

	items := rg.Group("/conciliation-items")
	{
		items.PATCH("/:id", h.updateItem)
		items.DELETE("/:id", h.removeItem)
	}
}

// createConciliation godoc
// @Summary Open a conciliation
// @Description Opens a conciliation for one bank transaction. A transaction can only be bound to one conciliation.
// @Tags conciliations
// @Accept  json
// @Produce  json
// @Param   conciliation body dto.CreateConciliationRequest true "Conciliation details"
// @Success 201 {object} dto.ConciliationResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Transaction not found"
// @Failure 409 {object} dto.ErrorResponse "Transaction already has a conciliation"
// @Failure 500 {object} dto.ErrorResponse "Failed to create conciliation"
// @Security BearerAuth
// @Router /conciliations [post]
func (h *conciliationHandler) createConciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateConciliationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateConciliation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("transaction_id", req.TransactionID))
	logger.Info("Received request to create conciliation")

	conciliation, err := h.conciliationService.CreateConciliation(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create conciliation")
		return
	}

	logger.Info("Conciliation created successfully", slog.String("conciliation_id", conciliation.ConciliationID))
	c.JSON(http.StatusCreated, dto.ToConciliationResponse(conciliation))
}

// getConciliation godoc
// @Summary Get a conciliation with its items
// @Tags conciliations
// @Produce  json
// @Param   id path string true "Conciliation ID"
// @Success 200 {object} dto.ConciliationResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Conciliation not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve conciliation"
// @Security BearerAuth
// @Router /conciliations/{id} [get]
func (h *conciliationHandler) getConciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("conciliation_id", c.Param("id")))

	conciliation, err := h.conciliationService.GetConciliationByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve conciliation")
		return
	}

	c.JSON(http.StatusOK, dto.ToConciliationResponse(conciliation))
}

// listConciliations godoc
// @Summary List conciliations
// @Tags conciliations
// @Produce  json
// @Param   companyId query string true "Company ID"
// @Param   status query string false "Filter by status"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListConciliationsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list conciliations"
// @Security BearerAuth
// @Router /conciliations [get]
func (h *conciliationHandler) listConciliations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListConciliationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListConciliations", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.conciliationService.ListConciliations(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list conciliations")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// cancelConciliation godoc
// @Summary Cancel a conciliation
// @Tags conciliations
// @Produce  json
// @Param   id path string true "Conciliation ID"
// @Success 200 {object} dto.ConciliationResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Conciliation not found"
// @Failure 409 {object} dto.ErrorResponse "Conciliation already completed or cancelled"
// @Failure 500 {object} dto.ErrorResponse "Failed to cancel conciliation"
// @Security BearerAuth
// @Router /conciliations/{id}/cancel [post]
func (h *conciliationHandler) cancelConciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("conciliation_id", c.Param("id")))
	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	conciliation, err := h.conciliationService.CancelConciliation(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to cancel conciliation")
		return
	}

	logger.Info("Conciliation cancelled")
	c.JSON(http.StatusOK, dto.ToConciliationResponse(conciliation))
}

// deleteConciliation godoc
// @Summary Delete a conciliation
// @Description Removes a conciliation that is not completed and links no paid or cancelled document.
// @Tags conciliations
// @Param   id path string true "Conciliation ID"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Conciliation not found"
// @Failure 409 {object} dto.ErrorResponse "Conciliation cannot be deleted"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete conciliation"
// @Security BearerAuth
// @Router /conciliations/{id} [delete]
func (h *conciliationHandler) deleteConciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("conciliation_id", c.Param("id")))

	if err := h.conciliationService.DeleteConciliation(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, logger, err, "Failed to delete conciliation")
		return
	}

	logger.Info("Conciliation deleted")
	c.Status(http.StatusNoContent)
}

// autoConciliate godoc
// @Summary Run automatic matching
// @Description Pairs the conciliation's transaction with open documents issued in its period. Re-running never duplicates items.
// @Tags conciliations
// @Produce  json
// @Param   id path string true "Conciliation ID"
// @Success 200 {object} dto.AutoConciliationResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Conciliation not found"
// @Failure 409 {object} dto.ErrorResponse "Conciliation already completed or cancelled"
// @Failure 500 {object} dto.ErrorResponse "Automatic conciliation failed"
// @Security BearerAuth
// @Router /conciliations/{id}/auto-conciliate [post]
func (h *conciliationHandler) autoConciliate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("conciliation_id", c.Param("id")))
	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	result, err := h.conciliationService.AutoConciliate(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Automatic conciliation failed")
		return
	}

	// Status is read back so callers see the PENDING -> IN_PROGRESS move.
	conciliation, err := h.conciliationService.GetConciliationByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Automatic conciliation failed")
		return
	}

	middleware.AddEventProperty(c, "matched", result.Matched)
	logger.Info("Automatic conciliation finished",
		slog.Int("matched", result.Matched),
		slog.Int("partial", result.PartialMatches),
		slog.Int("unmatched", result.Unmatched),
		slog.Int("already_linked", result.AlreadyLinked))
	c.JSON(http.StatusOK, dto.AutoConciliationResponse{
		ConciliationID:         conciliation.ConciliationID,
		Status:                 conciliation.Status,
		AutoConciliationResult: *result,
	})
}

// completeConciliation godoc
// @Summary Complete a conciliation
// @Description Settles the transaction and every linked document. Fails while any item is still pending.
// @Tags conciliations
// @Produce  json
// @Param   id path string true "Conciliation ID"
// @Success 200 {object} dto.ConciliationResponse
// @Failure 400 {object} dto.ErrorResponse "Pending items exist or no items linked"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Conciliation not found"
// @Failure 409 {object} dto.ErrorResponse "Conciliation closed or a document is locked"
// @Failure 500 {object} dto.ErrorResponse "Failed to complete conciliation"
// @Security BearerAuth
// @Router /conciliations/{id}/complete [post]
func (h *conciliationHandler) completeConciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("conciliation_id", c.Param("id")))
	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	conciliation, err := h.conciliationService.CompleteConciliation(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to complete conciliation")
		return
	}

	logger.Info("Conciliation completed", slog.Int("items", conciliation.TotalDocuments))
	c.JSON(http.StatusOK, dto.ToConciliationResponse(conciliation))
}

// recomputeCounters godoc
// @Summary Recompute item counters
// @Description Re-derives total, conciliated and pending counters from the stored items.
// @Tags conciliations
// @Produce  json
// @Param   id path string true "Conciliation ID"
// @Success 200 {object} domain.ItemCounters
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Conciliation not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to recompute counters"
// @Security BearerAuth
// @Router /conciliations/{id}/recompute [post]
func (h *conciliationHandler) recomputeCounters(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("conciliation_id", c.Param("id")))
	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	counters, err := h.conciliationService.RecomputeCounters(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to recompute counters")
		return
	}

	c.JSON(http.StatusOK, counters)
}

// addItem godoc
// @Summary Link a document to a conciliation
// @Tags conciliations
// @Accept  json
// @Produce  json
// @Param   id path string true "Conciliation ID"
// @Param   item body dto.AddConciliationItemRequest true "Item details"
// @Success 201 {object} dto.ConciliationItemResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or document from another company"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Conciliation or document not found"
// @Failure 409 {object} dto.ErrorResponse "Document already linked or locked"
// @Failure 500 {object} dto.ErrorResponse "Failed to add item"
// @Security BearerAuth
// @Router /conciliations/{id}/items [post]
func (h *conciliationHandler) addItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("conciliation_id", c.Param("id")))
	var req dto.AddConciliationItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	item, err := h.conciliationService.AddItem(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to add item")
		return
	}

	logger.Info("Item added", slog.String("item_id", item.ItemID), slog.String("document_id", item.DocumentID))
	c.JSON(http.StatusCreated, dto.ToConciliationItemResponse(item))
}

// updateItem godoc
// @Summary Update a conciliation item
// @Tags conciliations
// @Accept  json
// @Produce  json
// @Param   id path string true "Item ID"
// @Param   item body dto.UpdateConciliationItemRequest true "Fields to change"
// @Success 200 {object} dto.ConciliationItemResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Failure 409 {object} dto.ErrorResponse "Conciliation already completed or cancelled"
// @Failure 500 {object} dto.ErrorResponse "Failed to update item"
// @Security BearerAuth
// @Router /conciliation-items/{id} [patch]
func (h *conciliationHandler) updateItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("item_id", c.Param("id")))
	var req dto.UpdateConciliationItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	item, err := h.conciliationService.UpdateItem(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update item")
		return
	}

	c.JSON(http.StatusOK, dto.ToConciliationItemResponse(item))
}

// removeItem godoc
// @Summary Remove a conciliation item
// @Tags conciliations
// @Param   id path string true "Item ID"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Failure 409 {object} dto.ErrorResponse "Conciliation already completed or cancelled"
// @Failure 500 {object} dto.ErrorResponse "Failed to remove item"
// @Security BearerAuth
// @Router /conciliation-items/{id} [delete]
func (h *conciliationHandler) removeItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("item_id", c.Param("id")))
	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	if err := h.conciliationService.RemoveItem(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondServiceError(c, logger, err, "Failed to remove item")
		return
	}

	c.Status(http.StatusNoContent)
}

// downloadReport godoc
// @Summary Download a conciliation report
// @Description Renders the conciliation summary and its items as a PDF.
// @Tags conciliations
// @Produce  application/pdf
// @Param   id path string true "Conciliation ID"
// @Success 200 {file} file
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Conciliation not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to render report"
// @Security BearerAuth
// @Router /conciliations/{id}/report [get]
func (h *conciliationHandler) downloadReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("conciliation_id", c.Param("id")))

	var buf bytes.Buffer
	if err := h.reportService.WriteConciliationReport(c.Request.Context(), c.Param("id"), &buf); err != nil {
		respondServiceError(c, logger, err, "Failed to render report")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="conciliation-`+c.Param("id")+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
