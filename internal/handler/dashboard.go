package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mirandajandir7-prog/mitaller/internal/apierror"
	"github.com/mirandajandir7-prog/mitaller/internal/service"
)

type DashboardHandler struct{ views service.ViewService }

func NewDashboardHandler(views service.ViewService) *DashboardHandler {
	return &DashboardHandler{views: views}
}

func (h *DashboardHandler) Get(c *gin.Context) {
	resp, err := h.views.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar el panel"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
