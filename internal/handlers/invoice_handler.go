package handler

import (
	"errors"
	"net/http"
	"strings"

	"invoice-bookkeeping-backend/internal/models"
	"invoice-bookkeeping-backend/internal/services/invoicing"
	"invoice-bookkeeping-backend/internal/services/search"
	"invoice-bookkeeping-backend/internal/services/validation"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type InvoiceHandler struct {
	service *invoicing.InvoiceService
	log     zerolog.Logger
}

func NewInvoiceHandler(s *invoicing.InvoiceService, log zerolog.Logger) *InvoiceHandler {
	return &InvoiceHandler{service: s, log: log}
}

// invoicePayload is the request body for create and update. dueDate is
// expected as a plain calendar date (YYYY-MM-DD). RFC 3339 timestamps are
// also accepted but are converted to UTC first, so the "not in the past"
// check on create compares the UTC calendar day: local midnight east of UTC
// sent with an offset lands on the previous day.
type invoicePayload struct {
	Name    string  `json:"name"`
	DueDate *string `json:"dueDate"`
	Amount  float64 `json:"amount"`
	Status  string  `json:"status"`
}

func (p invoicePayload) toForm() (models.InvoiceForm, error) {
	form := models.InvoiceForm{
		Name:   p.Name,
		Amount: p.Amount,
		Status: models.InvoiceStatus(p.Status),
	}
	if p.DueDate == nil || strings.TrimSpace(*p.DueDate) == "" {
		return form, nil
	}

	due, err := models.ParseDate(*p.DueDate)
	if err != nil {
		return form, &validation.ValidationError{Fields: map[string]string{
			"dueDate": "Due date must be an ISO-8601 date",
		}}
	}
	form.DueDate = &due
	return form, nil
}

func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	status, err := search.ParseStatus(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := h.service.List(c.Request.Context(), search.Criteria{
		Query:  c.Query("q"),
		Status: status,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("listing invoices")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":        err.Error(),
			"notification": invoicing.NotifyLoadFailed,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": len(items),
	})
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	inv, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, invoicing.ErrInvoiceNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":        err.Error(),
			"notification": invoicing.NotifyLoadFailed,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": inv})
}

func (h *InvoiceHandler) NextNumber(c *gin.Context) {
	n, err := h.service.NextNumber(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"number": n})
}

func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var payload invoicePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	form, err := payload.toForm()
	if err != nil {
		h.writeValidation(c, err)
		return
	}

	inv, err := h.service.Create(c.Request.Context(), form)
	if err != nil {
		if h.writeValidation(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":        err.Error(),
			"notification": invoicing.NotifyCreateFailed,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "invoice created",
		"invoice":      inv,
		"notification": invoicing.NotifyCreated,
	})
}

func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	var payload invoicePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	form, err := payload.toForm()
	if err != nil {
		h.writeValidation(c, err)
		return
	}

	inv, applied, err := h.service.Update(c.Request.Context(), c.Param("id"), form)
	if err != nil {
		if h.writeValidation(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":        err.Error(),
			"notification": invoicing.NotifyUpdateFailed,
		})
		return
	}
	if !applied {
		c.JSON(http.StatusOK, gin.H{"applied": false, "notification": invoicing.NotifyNothingToDo})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applied":      true,
		"invoice":      inv,
		"notification": invoicing.NotifyUpdated,
	})
}

func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	removed, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":        err.Error(),
			"notification": invoicing.NotifyDeleteFailed,
		})
		return
	}
	if !removed {
		c.JSON(http.StatusOK, gin.H{"applied": false, "notification": invoicing.NotifyNothingToDo})
		return
	}
	c.JSON(http.StatusOK, gin.H{"applied": true, "notification": invoicing.NotifyDeleted})
}

func (h *InvoiceHandler) UploadInvoices(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	defer file.Close()

	h.log.Info().Str("file", header.Filename).Int64("size", header.Size).Msg("received invoice upload")

	res, err := h.service.ImportCSV(c.Request.Context(), file)
	if errors.Is(err, invoicing.ErrBadCSV) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":        err.Error(),
			"notification": invoicing.NotifyCreateFailed,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"file":          header.Filename,
		"invoicesAdded": len(res.Added),
		"invoices":      res.Added,
		"skipped":       res.Skipped,
		"notification":  invoicing.ImportNotification(res),
	})
}

// writeValidation answers 422 when err is a validation failure and reports
// whether it did.
func (h *InvoiceHandler) writeValidation(c *gin.Context, err error) bool {
	var verr *validation.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":  "validation failed",
		"errors": verr.Fields,
	})
	return true
}
