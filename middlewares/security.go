package middlewares

import (
	"github.com/gin-gonic/gin"
)

// Header keamanan standar untuk semua respons
var securityHeaders = map[string]string{
	"X-Frame-Options":           "DENY",
	"X-Content-Type-Options":    "nosniff",
	"Content-Security-Policy":   "default-src 'self'",
	"Referrer-Policy":           "strict-origin-when-cross-origin",
	"Strict-Transport-Security": "max-age=31536000; includeSubDomains",
}

func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		for key, value := range securityHeaders {
			c.Header(key, value)
		}
		c.Next()
	}
}
