package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mirandajandir7-prog/mitaller/internal/apierror"
	"github.com/mirandajandir7-prog/mitaller/internal/dto"
	"github.com/mirandajandir7-prog/mitaller/internal/repository"
	"github.com/mirandajandir7-prog/mitaller/internal/service"
)

type ClientsHandler struct {
	svc   service.WorkshopService
	views service.ViewService
}

func NewClientsHandler(svc service.WorkshopService, views service.ViewService) *ClientsHandler {
	return &ClientsHandler{svc: svc, views: views}
}

func (h *ClientsHandler) Create(c *gin.Context) {
	var req dto.CreateClientRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateClient(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicatePlate) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ClientsHandler) List(c *gin.Context) {
	resp, err := h.views.ClientsList(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar clientes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClientsHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateClientRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.UpdateClient(c.Request.Context(), id, req); err != nil {
		if repository.IsNotFound(err) {
			c.JSON(http.StatusNotFound, apierror.New("Cliente no encontrado"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ClientsHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteClient(c.Request.Context(), id); err != nil {
		if repository.IsNotFound(err) {
			c.JSON(http.StatusNotFound, apierror.New("Cliente no encontrado"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al eliminar cliente"))
		return
	}
	c.Status(http.StatusNoContent)
}
