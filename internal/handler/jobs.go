package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mirandajandir7-prog/mitaller/internal/apierror"
	"github.com/mirandajandir7-prog/mitaller/internal/dto"
	"github.com/mirandajandir7-prog/mitaller/internal/infra"
	"github.com/mirandajandir7-prog/mitaller/internal/middleware"
	"github.com/mirandajandir7-prog/mitaller/internal/repository"
	"github.com/mirandajandir7-prog/mitaller/internal/service"
)

type JobsHandler struct {
	svc     service.WorkshopService
	views   service.ViewService
	pdfPath string
}

func NewJobsHandler(svc service.WorkshopService, views service.ViewService, pdfPath string) *JobsHandler {
	return &JobsHandler{svc: svc, views: views, pdfPath: pdfPath}
}

func (h *JobsHandler) Create(c *gin.Context) {
	var req dto.CreateJobRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	job, err := h.svc.CreateJob(c.Request.Context(), claims.UserID, req)
	if err != nil {
		if repository.IsNotFound(err) {
			c.JSON(http.StatusNotFound, apierror.New("Vehiculo no encontrado"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *JobsHandler) List(c *gin.Context) {
	resp, err := h.views.JobsList(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar ordenes de trabajo"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Detail returns the job joined with its vehicle, owner, notes and latest quote.
func (h *JobsHandler) Detail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.views.JobWithContext(c.Request.Context(), id)
	if err != nil {
		if repository.IsNotFound(err) {
			c.JSON(http.StatusNotFound, apierror.New("OT no encontrada"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar OT"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *JobsHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateJobRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.UpdateJob(c.Request.Context(), id, req); err != nil {
		if repository.IsNotFound(err) {
			c.JSON(http.StatusNotFound, apierror.New("OT no encontrada"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *JobsHandler) SetStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.JobStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.SetJobStatus(c.Request.Context(), id, req.Status); err != nil {
		if repository.IsNotFound(err) {
			c.JSON(http.StatusNotFound, apierror.New("OT no encontrada"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *JobsHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteJob(c.Request.Context(), id); err != nil {
		if repository.IsNotFound(err) {
			c.JSON(http.StatusNotFound, apierror.New("OT no encontrada"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al eliminar OT"))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *JobsHandler) AddNote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.CreateNoteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	note, err := h.svc.AddNote(c.Request.Context(), id, claims.UserID, req.Content)
	if err != nil {
		if repository.IsNotFound(err) {
			c.JSON(http.StatusNotFound, apierror.New("OT no encontrada"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, note)
}

// Print returns the boleta context as JSON.
func (h *JobsHandler) Print(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.views.PrintableJob(c.Request.Context(), id)
	if err != nil {
		if repository.IsNotFound(err) {
			c.JSON(http.StatusNotFound, apierror.New("OT no encontrada"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar boleta"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PrintPDF renders the boleta to a PDF and streams it back.
func (h *JobsHandler) PrintPDF(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	doc, err := h.views.PrintableJob(c.Request.Context(), id)
	if err != nil {
		if repository.IsNotFound(err) {
			c.JSON(http.StatusNotFound, apierror.New("OT no encontrada"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar boleta"))
		return
	}
	path, err := infra.GenerateJobPDF(doc, h.pdfPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar PDF"))
		return
	}
	c.File(path)
}
