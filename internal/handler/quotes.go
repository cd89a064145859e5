package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mirandajandir7-prog/mitaller/internal/apierror"
	"github.com/mirandajandir7-prog/mitaller/internal/dto"
	"github.com/mirandajandir7-prog/mitaller/internal/middleware"
	"github.com/mirandajandir7-prog/mitaller/internal/repository"
	"github.com/mirandajandir7-prog/mitaller/internal/service"
)

type QuotesHandler struct{ svc service.QuoteService }

func NewQuotesHandler(svc service.QuoteService) *QuotesHandler {
	return &QuotesHandler{svc: svc}
}

func (h *QuotesHandler) Create(c *gin.Context) {
	var req dto.CreateQuoteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	quote, err := h.svc.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		if repository.IsNotFound(err) {
			c.JSON(http.StatusNotFound, apierror.New("Registro no encontrado"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, quote)
}

func (h *QuotesHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar cotizaciones"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Print returns the quote print context: the quote, its resolved client and
// vehicle, and the plain-text rendering.
func (h *QuotesHandler) Print(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Print(c.Request.Context(), id)
	if err != nil {
		if repository.IsNotFound(err) {
			c.JSON(http.StatusNotFound, apierror.New("Cotizacion no encontrada"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar cotizacion"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *QuotesHandler) Duplicate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	quote, err := h.svc.Duplicate(c.Request.Context(), id, claims.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			c.JSON(http.StatusNotFound, apierror.New("Cotizacion no encontrada"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al duplicar cotizacion"))
		return
	}
	c.JSON(http.StatusCreated, quote)
}

// ConvertToJob derives a work order from the quote. Quotes carrying only
// free-text labels are rejected with 422.
func (h *QuotesHandler) ConvertToJob(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	jobID, err := h.svc.ConvertToJob(c.Request.Context(), id, claims.UserID)
	if err != nil {
		switch {
		case repository.IsNotFound(err):
			c.JSON(http.StatusNotFound, apierror.New("Cotizacion no encontrada"))
		case errors.Is(err, service.ErrMissingAssociation):
			c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		}
		return
	}
	c.JSON(http.StatusCreated, dto.ConvertQuoteResponse{QuoteID: id, JobID: jobID})
}

// PDF renders the quote to a PDF file and streams it back.
func (h *QuotesHandler) PDF(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	path, err := h.svc.PDFPath(c.Request.Context(), id)
	if err != nil {
		if repository.IsNotFound(err) {
			c.JSON(http.StatusNotFound, apierror.New("Cotizacion no encontrada"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar PDF"))
		return
	}
	c.File(path)
}

type emailQuoteRequest struct {
	To string `json:"to" validate:"omitempty,email"`
}

// Email renders the quote PDF and enqueues the send. Empty "to" falls back
// to the resolved client's address.
func (h *QuotesHandler) Email(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req emailQuoteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Email(c.Request.Context(), id, req.To); err != nil {
		if repository.IsNotFound(err) {
			c.JSON(http.StatusNotFound, apierror.New("Cotizacion no encontrada"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"queued": true})
}
