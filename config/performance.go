package config

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

func PerformanceLogger(threshold time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		log.Printf("[PERF] %s %s | Status: %d | Time: %v",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			latency)

		// SSE connections stay open until the client leaves
		if threshold > 0 && latency > threshold && c.Writer.Header().Get("Content-Type") != "text/event-stream" {
			log.Printf("[PERF] slow request: %s %s took %v",
				c.Request.Method, c.Request.URL.Path, latency)
		}
	}
}
