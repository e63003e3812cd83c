package payout

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"puretask/internal/domain"
	"puretask/internal/middleware"
	"puretask/internal/pkg/response"
	"puretask/internal/repository"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts cleaner self-service, admin settlement and the
// internal weekly trigger on their groups.
func (h *Handler) RegisterRoutes(cleaner, admin, internal *gin.RouterGroup) {
	me := cleaner.Group("/cleaners/me")
	me.GET("/earnings", h.MyEarnings)
	me.GET("/payouts", h.MyPayouts)
	me.POST("/payouts/instant", h.RequestInstant)

	admin.POST("/earnings/:id/reverse", h.ReverseEarning)
	admin.GET("/payouts", h.ListPayouts)
	admin.GET("/payouts/export", h.ExportPayouts)
	admin.POST("/payouts/:id/complete", h.CompletePayout)
	admin.POST("/payouts/:id/fail", h.FailPayout)

	internal.POST("/payouts/weekly/run", h.RunWeekly)
}

func (h *Handler) MyEarnings(c *gin.Context) {
	status := domain.EarningStatus(c.Query("status"))
	summary, err := h.service.EarningsSummary(c.Request.Context(), c.GetString(middleware.ContextUserID), status)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, summary)
}

func (h *Handler) MyPayouts(c *gin.Context) {
	f, ok := h.bindFilter(c)
	if !ok {
		return
	}
	f.CleanerID = c.GetString(middleware.ContextUserID)
	payouts, err := h.service.ListPayouts(c.Request.Context(), f)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payouts": payouts})
}

func (h *Handler) RequestInstant(c *gin.Context) {
	p, err := h.service.RequestInstantPayout(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, PayoutView{Payout: *p, Display: PayoutStatusDisplay(p.Status)})
}

func (h *Handler) ReverseEarning(c *gin.Context) {
	var req ReverseEarningRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
			return
		}
	}
	e, err := h.service.ReverseEarning(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, EarningView{CleanerEarning: *e, Display: EarningStatusDisplay(e.Status)})
}

func (h *Handler) ListPayouts(c *gin.Context) {
	f, ok := h.bindFilter(c)
	if !ok {
		return
	}
	f.CleanerID = c.Query("cleaner_id")
	payouts, err := h.service.ListPayouts(c.Request.Context(), f)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payouts": payouts})
}

func (h *Handler) ExportPayouts(c *gin.Context) {
	f, ok := h.bindFilter(c)
	if !ok {
		return
	}
	f.CleanerID = c.Query("cleaner_id")

	var buf bytes.Buffer
	if err := h.service.ExportPayouts(c.Request.Context(), f, &buf); err != nil {
		h.writeError(c, err)
		return
	}
	name := fmt.Sprintf("payouts_%s.xlsx", time.Now().UTC().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *Handler) CompletePayout(c *gin.Context) {
	p, err := h.service.CompletePayout(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, PayoutView{Payout: *p, Display: PayoutStatusDisplay(p.Status)})
}

func (h *Handler) FailPayout(c *gin.Context) {
	var req FailPayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Failure reason is required")
		return
	}
	p, err := h.service.FailPayout(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, PayoutView{Payout: *p, Display: PayoutStatusDisplay(p.Status)})
}

func (h *Handler) RunWeekly(c *gin.Context) {
	summary, err := h.service.RunWeeklyPayouts(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, summary)
}

// bindFilter reads status and RFC3339 or YYYY-MM-DD from/to query params.
func (h *Handler) bindFilter(c *gin.Context) (repository.PayoutFilter, bool) {
	f := repository.PayoutFilter{Status: domain.PayoutStatus(c.Query("status"))}
	for _, p := range []struct {
		name string
		dst  **time.Time
	}{{"from", &f.From}, {"to", &f.To}} {
		raw := c.Query(p.name)
		if raw == "" {
			continue
		}
		t, err := parseQueryTime(raw, h.service.loc)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid "+p.name+" date")
			return f, false
		}
		*p.dst = &t
	}
	return f, true
}

func parseQueryTime(raw string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", raw, loc)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	if bme, ok := AsBelowMinimum(err); ok {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "BELOW_MINIMUM", bme.Error(), gin.H{
			"threshold": bme.Threshold,
			"amount":    bme.Amount,
		})
		return
	}
	switch {
	case errors.Is(err, ErrNoEarnings):
		response.Error(c, http.StatusUnprocessableEntity, "NO_EARNINGS", "No pending earnings to pay out")
	case errors.Is(err, ErrPayoutInProgress):
		response.Error(c, http.StatusConflict, "PAYOUT_IN_PROGRESS", err.Error())
	case errors.Is(err, ErrPayoutNotFound), errors.Is(err, ErrEarningNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrInvalidStatusTransition), errors.Is(err, ErrEarningInPayout):
		response.Error(c, http.StatusConflict, "INVALID_STATUS", err.Error())
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Payout operation failed")
	}
}
