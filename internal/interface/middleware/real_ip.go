package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// DefaultIPHeaders are checked in order by RealIP.
var DefaultIPHeaders = []string{"CF-Connecting-IP", "X-Real-IP", "X-Forwarded-For"}

// RealIP stores the client address under "real_ip" for access logs. The first header
// holding a parseable IP wins (left-most entry for comma lists); c.ClientIP() otherwise.
func RealIP(headers ...string) gin.HandlerFunc {
	if len(headers) == 0 {
		headers = DefaultIPHeaders
	}
	return func(c *gin.Context) {
		c.Set("real_ip", clientIP(c, headers))
		c.Next()
	}
}

func clientIP(c *gin.Context, headers []string) string {
	for _, h := range headers {
		v := c.GetHeader(h)
		if v == "" {
			continue
		}
		first, _, _ := strings.Cut(v, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}
	return c.ClientIP()
}
