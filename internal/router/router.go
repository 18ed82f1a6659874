package router

import (
	"fmt"
	"net/http"

	"coffee-subscribe/internal/common/errors"
	"coffee-subscribe/internal/common/logger"
	"coffee-subscribe/internal/subscription"
	"coffee-subscribe/internal/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Subscribe *subscription.Handler
	Web       *web.Handler
}

// New builds the gin engine with all routes mounted. Panics anywhere in a
// request are converted to the generic JSON server-error body; no path
// leaves the connection without one.
func New(handlers Handlers, log logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		err, ok := recovered.(error)
		if !ok {
			err = fmt.Errorf("%v", recovered)
		}
		stdErr := errors.Normalize(err)

		log.Error("panic recovered", map[string]interface{}{
			"code":    string(stdErr.Code),
			"details": stdErr.Details,
			"path":    c.Request.URL.Path,
		})
		c.AbortWithStatusJSON(stdErr.HTTPStatus(), subscription.Result{
			OK:    false,
			Error: stdErr.UserMessage(),
		})
	}))
	r.Use(cors.Default())

	r.SetHTMLTemplate(web.Templates())

	// Pages
	r.GET("/", handlers.Web.Form())
	r.POST("/subscribe", handlers.Web.SubmitForm())
	r.GET("/confirm", handlers.Web.Confirm())

	// API
	r.POST("/api/subscribe", handlers.Subscribe.Subscribe())

	// Operational endpoints
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
