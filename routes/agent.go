package routes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"strings"

	"github.com/gin-gonic/gin"

	"social-media-agent/internal/logger"
	"social-media-agent/internal/store"
	"social-media-agent/models"
	"social-media-agent/services"
	"social-media-agent/utils"
)

// ConfigScheduler is the part of services.Scheduler the handlers need.
type ConfigScheduler interface {
	Reconfigure(cfg models.UserConfig) error
	Status() models.ScheduleStatus
}

type AgentHandler struct {
	store     store.Store
	scheduler ConfigScheduler
	job       services.PlanJob
}

func NewAgentHandler(st store.Store, scheduler ConfigScheduler, job services.PlanJob) *AgentHandler {
	return &AgentHandler{store: st, scheduler: scheduler, job: job}
}

func SetupAgentRoutes(router *gin.Engine, h *AgentHandler, runLimit gin.HandlerFunc) {
	router.GET("/", h.showPage)
	router.POST("/save", h.submitSave)
	router.POST("/run", runLimit, h.submitRun)

	api := router.Group("/api")
	api.GET("/interests", h.listInterests)
	api.GET("/config", h.getConfig)
	api.PUT("/config", h.putConfig)
	api.POST("/run", runLimit, h.postRun)
	api.GET("/runlog", h.getRunLog)
	api.GET("/schedule", h.getSchedule)
}

// validateSelection applies the form rules: an address and at least one
// known interest.
func validateSelection(email string, interests []string) error {
	if strings.TrimSpace(email) == "" || len(interests) == 0 {
		return errors.New("Email and interests are required.")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("Invalid email address: %s", email)
	}
	for _, interest := range interests {
		if !models.IsKnownInterest(interest) {
			return fmt.Errorf("Unknown interest: %s", interest)
		}
	}
	return nil
}

// saveAndSchedule persists the selection and re-binds the daily trigger.
func (h *AgentHandler) saveAndSchedule(c *gin.Context, email string, interests []string) (models.UserConfig, error) {
	cfg, err := h.store.SaveConfig(c.Request.Context(), email, interests)
	if err != nil {
		return models.UserConfig{}, err
	}
	if err := h.scheduler.Reconfigure(cfg); err != nil {
		return cfg, err
	}
	logger.Info("Config saved and scheduled", "interests", len(cfg.Interests))
	return cfg, nil
}

func (h *AgentHandler) scheduleNotice() string {
	status := h.scheduler.Status()
	if !status.Active {
		return ""
	}
	msg := fmt.Sprintf("Daily email scheduled for %s (%s).", status.At, status.Timezone)
	if status.NextRun != "" {
		msg += " Next run: " + status.NextRun
	}
	return msg
}

// runContext keeps request values but not cancellation, so a client that
// disconnects does not abort a run halfway through delivery.
func runContext(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}

// Form handlers

func (h *AgentHandler) renderPage(c *gin.Context, status int, email string, interests []string, notices ...notice) {
	data := pageData{
		Email:     email,
		Interests: models.ContentInterests,
		Selected:  make(map[string]bool, len(interests)),
		Notices:   notices,
		Schedule:  h.scheduleNotice(),
	}
	for _, i := range interests {
		data.Selected[i] = true
	}

	if runLog, err := h.store.LoadRunLog(c.Request.Context()); err != nil {
		logger.Warn("Failed to load run log", "error", err)
	} else if runLog != nil {
		pretty, _ := json.MarshalIndent(runLog, "", "  ")
		data.LastRun = string(pretty)
	}

	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(c.Writer, data); err != nil {
		logger.Error("Failed to render page", "error", err)
	}
}

func (h *AgentHandler) showPage(c *gin.Context) {
	cfg, err := h.store.LoadConfig(c.Request.Context())
	if err != nil {
		h.renderPage(c, http.StatusInternalServerError, "", nil, notice{"error", "Failed to load saved settings: " + err.Error()})
		return
	}
	if cfg == nil {
		h.renderPage(c, http.StatusOK, "", nil)
		return
	}
	h.renderPage(c, http.StatusOK, cfg.Email, cfg.Interests)
}

func (h *AgentHandler) submitSave(c *gin.Context) {
	var req models.SaveConfigRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderPage(c, http.StatusBadRequest, "", nil, notice{"error", "Invalid form data"})
		return
	}
	if err := validateSelection(req.Email, req.Interests); err != nil {
		h.renderPage(c, http.StatusBadRequest, req.Email, req.Interests, notice{"error", err.Error()})
		return
	}

	if _, err := h.saveAndSchedule(c, req.Email, req.Interests); err != nil {
		logger.Error("Failed to save settings", "error", err)
		h.renderPage(c, http.StatusInternalServerError, req.Email, req.Interests, notice{"error", "Failed to save settings: " + err.Error()})
		return
	}

	status := h.scheduler.Status()
	h.renderPage(c, http.StatusOK, req.Email, req.Interests,
		notice{"success", fmt.Sprintf("Settings saved. Scheduler activated for %s %s.", status.At, status.Timezone)})
}

func (h *AgentHandler) submitRun(c *gin.Context) {
	var req models.SaveConfigRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderPage(c, http.StatusBadRequest, "", nil, notice{"error", "Invalid form data"})
		return
	}
	if err := validateSelection(req.Email, req.Interests); err != nil {
		h.renderPage(c, http.StatusBadRequest, req.Email, req.Interests, notice{"error", "Fill details first. " + err.Error()})
		return
	}

	runLog, err := h.job.Run(runContext(c), models.TriggerManual, req.Email, req.Interests)
	notices := []notice{}
	if err != nil {
		notices = append(notices, notice{"error", "Run log could not be saved: " + err.Error()})
	}
	if runLog.Succeeded() {
		notices = append(notices, notice{"success", "Email sent successfully!"})
	} else {
		notices = append(notices, notice{"error", "Run failed: " + runLog.Error})
	}
	h.renderPage(c, http.StatusOK, req.Email, req.Interests, notices...)
}

// JSON API

func (h *AgentHandler) listInterests(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"interests": models.ContentInterests})
}

func (h *AgentHandler) getConfig(c *gin.Context) {
	cfg, err := h.store.LoadConfig(c.Request.Context())
	if err != nil {
		utils.RespondWithInternalError(c, "Failed to load config", gin.H{"error": err.Error()})
		return
	}
	if cfg == nil {
		utils.RespondWithNotFound(c, "No config saved yet")
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *AgentHandler) putConfig(c *gin.Context) {
	var req models.SaveConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithBadRequest(c, "Invalid request data", gin.H{"error": err.Error()})
		return
	}
	if err := validateSelection(req.Email, req.Interests); err != nil {
		utils.RespondWithBadRequest(c, err.Error(), nil)
		return
	}

	cfg, err := h.saveAndSchedule(c, req.Email, req.Interests)
	if err != nil {
		utils.RespondWithInternalError(c, "Failed to save and schedule", gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"config":   cfg,
		"schedule": h.scheduler.Status(),
	})
}

// postRun runs the job now. An empty body falls back to the saved config.
func (h *AgentHandler) postRun(c *gin.Context) {
	var req models.SaveConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondWithBadRequest(c, "Invalid request data", gin.H{"error": err.Error()})
		return
	}

	if req.Email == "" && len(req.Interests) == 0 {
		cfg, err := h.store.LoadConfig(c.Request.Context())
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to load config", gin.H{"error": err.Error()})
			return
		}
		if cfg != nil {
			req.Email, req.Interests = cfg.Email, cfg.Interests
		}
	}
	if err := validateSelection(req.Email, req.Interests); err != nil {
		utils.RespondWithBadRequest(c, err.Error(), nil)
		return
	}

	runLog, err := h.job.Run(runContext(c), models.TriggerManual, req.Email, req.Interests)
	if err != nil {
		utils.RespondWithInternalError(c, "Run finished but its log could not be saved", gin.H{"error": err.Error(), "run_log": runLog})
		return
	}
	if !runLog.Succeeded() {
		utils.RespondWithBadGateway(c, runLog.Error, runLog)
		return
	}
	c.JSON(http.StatusOK, runLog)
}

func (h *AgentHandler) getRunLog(c *gin.Context) {
	runLog, err := h.store.LoadRunLog(c.Request.Context())
	if err != nil {
		utils.RespondWithInternalError(c, "Failed to load run log", gin.H{"error": err.Error()})
		return
	}
	if runLog == nil {
		utils.RespondWithNotFound(c, "No run recorded yet")
		return
	}
	c.JSON(http.StatusOK, runLog)
}

func (h *AgentHandler) getSchedule(c *gin.Context) {
	c.JSON(http.StatusOK, h.scheduler.Status())
}
