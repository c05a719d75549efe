package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/serenity-circle/serenity/internal/auth"
)

const sessionKey = "session"

// accessLog logs one line per request and feeds the latency histogram.
func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		latency := time.Since(start)
		status := c.Writer.Status()
		s.metrics.observeRequest(c.Request.Method, route, status, latency)

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch {
		case status >= http.StatusInternalServerError:
			s.log.Error("request", fields...)
		case route == "/healthz" || route == "/metrics":
			s.log.Debug("request", fields...)
		default:
			s.log.Info("request", fields...)
		}
	}
}

// token returns the session token from the cookie or a bearer header.
func (s *Server) token(c *gin.Context) string {
	if v, err := c.Cookie(s.session.CookieName); err == nil && v != "" {
		return v
	}
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// requireSession rejects requests without a live session.
func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := s.sessions.Lookup(s.token(c))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

func currentSession(c *gin.Context) auth.Session {
	return c.MustGet(sessionKey).(auth.Session)
}

func (s *Server) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.session.CookieName, token, int(s.session.TTL.Seconds()), "/", "", s.session.SecureCookie, true)
}

func (s *Server) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.session.CookieName, "", -1, "/", "", s.session.SecureCookie, true)
}
