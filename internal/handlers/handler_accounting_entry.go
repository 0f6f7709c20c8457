package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	portssvc "github.com/SscSPs/accounting_backoffice/internal/core/ports/services"
	"github.com/SscSPs/accounting_backoffice/internal/dto"
	"github.com/SscSPs/accounting_backoffice/internal/middleware"
	"github.com/SscSPs/accounting_backoffice/internal/utils/concar"
	"github.com/gin-gonic/gin"
)

// accountingEntryHandler handles accounting entries and the CONCAR export.
type accountingEntryHandler struct {
	entryService portssvc.AccountingEntrySvcFacade
}

// RegisterAccountingEntryRoutes registers routes related to accounting entries and the CONCAR export.
func RegisterAccountingEntryRoutes(rg *gin.RouterGroup, entryService portssvc.AccountingEntrySvcFacade) {
	h := &accountingEntryHandler{entryService: entryService}

	entries := rg.Group("/accounting-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("/concar-export", h.exportConcar)
		entries.GET("/:id", h.getEntry)
	}
}

// createEntry godoc
// @Summary Record an accounting entry
// @Description Records a balanced double-entry posting for a conciliation. Lines are numbered in request order.
// @Tags accounting-entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateAccountingEntryRequest true "Entry details"
// @Success 201 {object} dto.AccountingEntryResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or unbalanced entry"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Conciliation not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to create accounting entry"
// @Security BearerAuth
// @Router /accounting-entries [post]
func (h *accountingEntryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountingEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccountingEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("conciliation_id", req.ConciliationID))
	entry, err := h.entryService.CreateAccountingEntry(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create accounting entry")
		return
	}

	logger.Info("Accounting entry created", slog.String("entry_id", entry.EntryID), slog.Int("lines", len(entry.Lines)))
	c.JSON(http.StatusCreated, dto.ToAccountingEntryResponse(entry))
}

// getEntry godoc
// @Summary Get an accounting entry
// @Tags accounting-entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.AccountingEntryResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve accounting entry"
// @Security BearerAuth
// @Router /accounting-entries/{id} [get]
func (h *accountingEntryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("entry_id", c.Param("id")))

	entry, err := h.entryService.GetAccountingEntryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve accounting entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountingEntryResponse(entry))
}

// exportConcar godoc
// @Summary Export accounting entries for CONCAR
// @Description Produces one CONCAR row per accounting entry line, as JSON or as a CSV download.
// @Tags accounting-entries
// @Produce  json
// @Produce  text/csv
// @Param   companyId query string true "Company ID"
// @Param   documentType query string true "Sub-diary: 15 (receipts for fees) or 11 (invoices)"
// @Param   year query int false "Year"
// @Param   month query int false "Month (requires year)"
// @Param   startDay query int false "First day (requires month)"
// @Param   endDay query int false "Last day (requires month)"
// @Param   bankAccountIds query []string false "Bank accounts" collectionFormat(multi)
// @Param   conciliationType query string false "DOCUMENTS or DETRACTIONS"
// @Param   format query string false "json (default) or csv"
// @Success 200 {object} domain.ConcarExport
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to export accounting entries"
// @Security BearerAuth
// @Router /accounting-entries/concar-export [get]
func (h *accountingEntryHandler) exportConcar(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ConcarExportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ConcarExport", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("company_id", params.CompanyID), slog.String("sub_diario", params.DocumentType))
	export, err := h.entryService.ExportConcar(c.Request.Context(), params.ToFilter())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to export accounting entries")
		return
	}

	middleware.AddEventProperty(c, "records", export.Summary.TotalRecords)
	logger.Info("CONCAR export built", slog.Int("records", export.Summary.TotalRecords), slog.Int("entries", export.Summary.TotalEntries))

	if params.Format != "csv" {
		c.JSON(http.StatusOK, export)
		return
	}

	var buf bytes.Buffer
	if err := concar.WriteCSV(&buf, export.Data); err != nil {
		logger.Error("Failed to write CONCAR CSV", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export accounting entries"})
		return
	}
	filename := fmt.Sprintf("concar_%s_%s.csv", params.DocumentType, concarFileSuffix(export.Summary.Period))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// concarFileSuffix turns a summary period ("03/2024", "2024", "Todos") into a filename fragment.
func concarFileSuffix(period string) string {
	return strings.ReplaceAll(period, "/", "-")
}
