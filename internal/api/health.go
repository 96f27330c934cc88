package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type healthRoutes struct {
	store Pinger
}

func NewHealthRoutes(handler gin.IRoutes, store Pinger) {
	r := &healthRoutes{store: store}
	handler.GET("/healthz", r.Health)
}

func (r *healthRoutes) Health(c *gin.Context) {
	if r.store != nil {
		if err := r.store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
