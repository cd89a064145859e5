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

type VehiclesHandler struct {
	svc   service.WorkshopService
	views service.ViewService
}

func NewVehiclesHandler(svc service.WorkshopService, views service.ViewService) *VehiclesHandler {
	return &VehiclesHandler{svc: svc, views: views}
}

func (h *VehiclesHandler) Create(c *gin.Context) {
	var req dto.CreateVehicleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	vehicle, err := h.svc.CreateVehicle(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicatePlate):
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
		case repository.IsNotFound(err):
			c.JSON(http.StatusNotFound, apierror.New("Cliente no encontrado"))
		default:
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		}
		return
	}
	c.JSON(http.StatusCreated, vehicle)
}

func (h *VehiclesHandler) List(c *gin.Context) {
	resp, err := h.views.VehiclesList(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar vehiculos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Info returns the quick-lookup summary (owner name, last intake date) the
// intake form shows while typing a plate.
func (h *VehiclesHandler) Info(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.views.VehicleInfo(c.Request.Context(), id)
	if err != nil {
		if repository.IsNotFound(err) {
			c.JSON(http.StatusNotFound, apierror.New("Vehiculo no encontrado"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar vehiculo"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VehiclesHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateVehicleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.UpdateVehicle(c.Request.Context(), id, req); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicatePlate):
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
		case repository.IsNotFound(err):
			c.JSON(http.StatusNotFound, apierror.New("Vehiculo no encontrado"))
		default:
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *VehiclesHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteVehicle(c.Request.Context(), id); err != nil {
		if repository.IsNotFound(err) {
			c.JSON(http.StatusNotFound, apierror.New("Vehiculo no encontrado"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al eliminar vehiculo"))
		return
	}
	c.Status(http.StatusNoContent)
}
