package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/heroxshorts/heroxshorts-studio/internal/domain/entity"
	"github.com/heroxshorts/heroxshorts-studio/internal/fixture"
	"github.com/heroxshorts/heroxshorts-studio/internal/simtask"
	"github.com/heroxshorts/heroxshorts-studio/internal/usecase"
)

type errorResponse struct {
	Error        string               `json:"error"`
	Notification *entity.Notification `json:"notification,omitempty"`
}

func statusFor(err error) int {
	if _, ok := entity.AsValidation(err); ok {
		return http.StatusUnprocessableEntity
	}
	switch {
	case errors.Is(err, usecase.ErrSessionNotFound), errors.Is(err, usecase.ErrProjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, simtask.ErrBusy), errors.Is(err, usecase.ErrNotSelectable):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrUnknownPipeline), errors.Is(err, usecase.ErrUnknownFlow),
		errors.Is(err, fixture.ErrUnknownPlan), errors.Is(err, entity.ErrUnknownPlanType):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func abortWithError(c *gin.Context, err error) {
	resp := errorResponse{Error: err.Error()}
	if ve, ok := entity.AsValidation(err); ok {
		n := ve.Notification()
		resp.Notification = &n
	}
	c.AbortWithStatusJSON(statusFor(err), resp)
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}
