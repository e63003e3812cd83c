package pricing

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"puretask/internal/domain"
	"puretask/internal/middleware"
	"puretask/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts quoting on an authenticated group and rule
// management on an admin group.
func (h *Handler) RegisterRoutes(authed, admin *gin.RouterGroup) {
	authed.POST("/pricing/quote", h.Quote)

	rules := admin.Group("/pricing-rules")
	rules.GET("", h.ListRules)
	rules.GET("/defaults", h.ListDefaultRules)
	rules.POST("", h.CreateRule)
	rules.PUT("/:id", h.UpdateRule)
	rules.DELETE("/:id", h.DeleteRule)
}

func (h *Handler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if req.ClientEmail == "" && c.GetString(middleware.ContextRole) == string(domain.RoleClient) {
		req.ClientEmail = c.GetString(middleware.ContextEmail)
	}

	quote, err := h.service.Quote(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date, start time, hours or distance")
		case errors.Is(err, ErrCleanerNotFound):
			response.Error(c, http.StatusNotFound, "CLEANER_NOT_FOUND", "Cleaner profile not found")
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute quote")
		}
		return
	}
	response.Success(c, http.StatusOK, quote)
}

func (h *Handler) ListRules(c *gin.Context) {
	rules, err := h.service.ListRules(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list pricing rules")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rules": rules})
}

func (h *Handler) ListDefaultRules(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"rules": DefaultRules()})
}

func (h *Handler) CreateRule(c *gin.Context) {
	var req RuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	rule, err := h.service.CreateRule(c.Request.Context(), req)
	if err != nil {
		h.writeRuleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, rule)
}

func (h *Handler) UpdateRule(c *gin.Context) {
	var req RuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	rule, err := h.service.UpdateRule(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeRuleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rule)
}

func (h *Handler) DeleteRule(c *gin.Context) {
	if err := h.service.DeleteRule(c.Request.Context(), c.Param("id")); err != nil {
		h.writeRuleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}

func (h *Handler) writeRuleError(c *gin.Context, err error) {
	if rve := IsRuleValidationError(err); rve != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid pricing rule", rve.Fields)
		return
	}
	if errors.Is(err, ErrRuleNotFound) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Pricing rule not found")
		return
	}
	_ = c.Error(err)
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save pricing rule")
}
