package subscription

import (
	"net/http"
	"time"

	"coffee-subscribe/internal/common/errors"
	"coffee-subscribe/internal/common/logger"
	"coffee-subscribe/internal/common/metrics"

	"github.com/gin-gonic/gin"
)

// Handler exposes the submission pipeline over POST /api/subscribe.
type Handler struct {
	service *Service
	logger  logger.Logger
}

func NewHandler(service *Service, log logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log.WithFields(map[string]interface{}{"handler": "subscribe"}),
	}
}

//
// --------------------------------------------------
// POST /api/subscribe
// --------------------------------------------------
//

func (h *Handler) Subscribe() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		metrics.SubmissionsReceived.WithLabelValues(h.service.Mode()).Inc()

		var req Request
		if err := c.ShouldBindJSON(&req); err != nil {
			// An unparseable body is a broken client or proxy, not user
			// input: generic 500-class response, detail in the log only.
			parseErr := errors.NewRequestParseFailedError(err)
			h.logger.Warn("request body not parseable", map[string]interface{}{
				"error": parseErr.Details,
			})
			h.reject(c, started, parseErr)
			return
		}

		result, submitErr := h.service.Submit(c.Request.Context(), &req)
		if submitErr != nil {
			h.reject(c, started, submitErr)
			return
		}

		metrics.RequestDuration.WithLabelValues("ok").Observe(time.Since(started).Seconds())
		c.JSON(http.StatusOK, result)
	}
}

func (h *Handler) reject(c *gin.Context, started time.Time, stdErr *errors.StandardError) {
	if !stdErr.IsUserInput() {
		h.logger.Error("submission failed", map[string]interface{}{
			"code":    string(stdErr.Code),
			"details": stdErr.Details,
		})
	}

	metrics.SubmissionsRejected.WithLabelValues(string(stdErr.Code)).Inc()
	metrics.RequestDuration.WithLabelValues("error").Observe(time.Since(started).Seconds())

	c.JSON(stdErr.HTTPStatus(), Result{
		OK:    false,
		Error: stdErr.UserMessage(),
	})
}
