package attendance

import (
	"net/http"

	"github.com/MuleAlemuB/project1-sub002/internal/middleware"
	"github.com/MuleAlemuB/project1-sub002/internal/shared/apperror"
	"github.com/MuleAlemuB/project1-sub002/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) ClockIn(c *gin.Context) {
	caller, ok := middleware.IdentityFrom(c)
	if !ok {
		writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	var req ClockInRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeServiceError(c, apperror.MapValidationError(err))
			return
		}
	}

	resp, err := h.service.ClockIn(c.Request.Context(), caller, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ClockOut(c *gin.Context) {
	caller, ok := middleware.IdentityFrom(c)
	if !ok {
		writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	var req ClockOutRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeServiceError(c, apperror.MapValidationError(err))
			return
		}
	}

	resp, err := h.service.ClockOut(c.Request.Context(), caller, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	caller, ok := middleware.IdentityFrom(c)
	if !ok {
		writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	var filter ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.GetAll(c.Request.Context(), caller, filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Paginated(c, resp)
}
