package httpserver

import (
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"kairos/pkg/response"
)

// rateLimitMiddleware enforces a per-client-IP request budget. Limiters are
// kept for the life of the process; the client set is small (one webhook
// source plus a handful of browsers).
func (srv *HTTPServer) rateLimitMiddleware() gin.HandlerFunc {
	var mu sync.Mutex
	limiters := map[string]*rate.Limiter{}

	perSecond := rate.Limit(float64(srv.ratePerMin) / 60.0)
	burst := srv.ratePerMin

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		lim, ok := limiters[ip]
		if !ok {
			lim = rate.NewLimiter(perSecond, burst)
			limiters[ip] = lim
		}
		mu.Unlock()

		if !lim.Allow() {
			response.TooManyRequests(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
