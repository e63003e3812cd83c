package booking

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"puretask/internal/domain"
	"puretask/internal/middleware"
	"puretask/internal/modules/payout"
	"puretask/internal/modules/pricing"
	"puretask/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(authed, admin *gin.RouterGroup) {
	authed.POST("/bookings", h.CreateBooking)
	authed.GET("/bookings/:id", h.GetBooking)
	admin.POST("/bookings/:id/approve", h.ApproveBooking)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if c.GetString(middleware.ContextRole) == string(domain.RoleClient) {
		req.ClientEmail = c.GetString(middleware.ContextEmail)
	}

	res, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation), errors.Is(err, pricing.ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking request")
		case errors.Is(err, pricing.ErrCleanerNotFound):
			response.Error(c, http.StatusNotFound, "CLEANER_NOT_FOUND", "Cleaner profile not found")
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create booking")
		}
		return
	}
	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) GetBooking(c *gin.Context) {
	b, err := h.service.GetBooking(c.Request.Context(), c.Param("id"),
		c.GetString(middleware.ContextUserID), c.GetString(middleware.ContextEmail), domain.UserRole(c.GetString(middleware.ContextRole)))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't have access to this booking")
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load booking")
		}
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) ApproveBooking(c *gin.Context) {
	var req ApproveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
			return
		}
	}

	res, err := h.service.ApproveBooking(c.Request.Context(), c.Param("id"), req.USDDue)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrAlreadyApproved):
			response.Error(c, http.StatusConflict, "INVALID_STATUS", err.Error())
		case errors.Is(err, payout.ErrInvalidAmount):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to approve booking")
		}
		return
	}
	response.Success(c, http.StatusOK, res)
}
