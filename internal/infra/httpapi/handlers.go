package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/heroxshorts/heroxshorts-studio/internal/domain/entity"
	"github.com/heroxshorts/heroxshorts-studio/internal/usecase"
	"go.uber.org/zap"
)

type openSessionRequest struct {
	Flow string `json:"flow" binding:"required"`
}

type urlRequest struct {
	URL string `json:"url"`
}

type processRequest struct {
	Options entity.OptionSet `json:"options"`
}

type planRequest struct {
	Plan string `json:"plan" binding:"required"`
}

type projectsResponse struct {
	Projects []entity.Project      `json:"projects"`
	Cards    []usecase.ProjectCard `json:"cards"`
}

type settingsResponse struct {
	Settings  entity.UserSettings `json:"settings"`
	NextReset time.Time           `json:"next_reset"`
}

func (h *Handler) openSession(c *gin.Context) {
	var req openSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s, err := h.registry.Open(req.Flow)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s.View())
}

func (h *Handler) session(c *gin.Context) (*usecase.Session, bool) {
	s, err := h.registry.Get(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return nil, false
	}
	return s, true
}

func (h *Handler) getSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.View())
}

func (h *Handler) closeSession(c *gin.Context) {
	if err := h.registry.Close(c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) selectFile(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var f entity.FileRef
	if err := c.ShouldBindJSON(&f); err != nil {
		badRequest(c, err)
		return
	}
	if err := s.SelectFile(c.Request.Context(), f); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.View())
}

func (h *Handler) startUpload(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var err error
	if c.Request.ContentLength > 0 {
		var f entity.FileRef
		if err := c.ShouldBindJSON(&f); err != nil {
			badRequest(c, err)
			return
		}
		err = s.UploadFile(c.Request.Context(), f)
	} else {
		err = s.StartUpload(c.Request.Context())
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, s.View())
}

func (h *Handler) submitURL(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req urlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := s.SubmitURL(c.Request.Context(), req.URL); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, s.View())
}

func (h *Handler) cancelUpload(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.CancelUpload()
	c.JSON(http.StatusOK, s.View())
}

func (h *Handler) process(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req processRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	if err := s.Process(c.Request.Context(), req.Options); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, s.View())
}

func (h *Handler) listFlows(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"flows": usecase.FlowKinds()})
}

func (h *Handler) listProjects(c *gin.Context) {
	filter := entity.PipelineType(c.Query("type"))
	projects, err := h.feed.ListProjects(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, projectsResponse{Projects: projects, Cards: usecase.Cards(projects)})
}

func (h *Handler) getProject(c *gin.Context) {
	p, err := h.feed.Project(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) getPlan(c *gin.Context) {
	plan, err := entity.ParsePlanType(c.Param("plan"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	credits, err := h.settings.PlanCredits(plan)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": plan, "credits": credits})
}

func (h *Handler) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, settingsResponse{Settings: h.settings.Settings(), NextReset: h.settings.NextReset()})
}

func (h *Handler) updatePlan(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	plan, err := entity.ParsePlanType(req.Plan)
	if err != nil {
		abortWithError(c, err)
		return
	}

	update, err := h.settings.UpdatePlan(c.Request.Context(), plan)
	if err != nil {
		h.logger.Warn("plan update failed", zap.String("plan", string(plan)), zap.Error(err))
		c.AbortWithStatusJSON(statusFor(err), gin.H{"error": err.Error(), "notification": update.Notification})
		return
	}
	c.JSON(http.StatusOK, update)
}
