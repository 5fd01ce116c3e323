package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows the configured origins. A "*" entry opens the API
// to any origin without credentials.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	config := cors.Config{
		AllowMethods: []string{
			"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS",
		},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "Authorization",
			"X-Tenant-ID", "X-Requested-With",
			"Cache-Control",
		},
		ExposeHeaders: []string{
			"Content-Type", "Cache-Control",
		},
		MaxAge: 12 * time.Hour,
	}

	for _, origin := range allowedOrigins {
		if origin == "*" {
			config.AllowAllOrigins = true
			return cors.New(config)
		}
	}

	config.AllowOrigins = allowedOrigins
	config.AllowCredentials = true
	return cors.New(config)
}
