// Package server exposes the wellness service as a JSON API with a
// websocket endpoint for live group chat.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/serenity-circle/serenity/internal/affirm"
	"github.com/serenity-circle/serenity/internal/auth"
	"github.com/serenity-circle/serenity/internal/chat"
	"github.com/serenity-circle/serenity/internal/config"
	"github.com/serenity-circle/serenity/internal/wellness"
)

// Deps are the collaborators a Server routes to.
type Deps struct {
	Service      *wellness.Service
	Sessions     *auth.Sessions
	Hub          *chat.Hub
	Affirmations *affirm.Source
	Logger       *zap.Logger

	// Registry receives the server metrics. Nil creates a private
	// registry with the Go and process collectors.
	Registry *prometheus.Registry
}

// Server is the HTTP front end.
type Server struct {
	cfg      config.ServerConfig
	session  config.SessionConfig
	svc      *wellness.Service
	sessions *auth.Sessions
	hub      *chat.Hub
	affirm   *affirm.Source
	log      *zap.Logger
	registry *prometheus.Registry
	metrics  *Metrics
	upgrader websocket.Upgrader

	engine *gin.Engine
	http   *http.Server
}

// New wires routes and middleware.
func New(cfg config.ServerConfig, session config.SessionConfig, d Deps) *Server {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Affirmations == nil {
		d.Affirmations = affirm.New(nil, d.Logger)
	}
	reg := d.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	s := &Server{
		cfg:      cfg,
		session:  session,
		svc:      d.Service,
		sessions: d.Sessions,
		hub:      d.Hub,
		affirm:   d.Affirmations,
		log:      d.Logger,
		registry: reg,
		metrics:  NewMetrics(reg),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(cfg.CORSOrigins),
		},
	}

	if !cfg.Debug && gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	s.engine = gin.New()
	s.engine.Use(gin.Recovery(), s.accessLog())
	if len(cfg.CORSOrigins) > 0 {
		cc := cors.DefaultConfig()
		if slices.Contains(cfg.CORSOrigins, "*") {
			cc.AllowAllOrigins = true
		} else {
			cc.AllowOrigins = cfg.CORSOrigins
			cc.AllowCredentials = true
		}
		cc.AllowWebSockets = true
		cc.AllowHeaders = append(cc.AllowHeaders, "Authorization")
		s.engine.Use(cors.New(cc))
	}
	s.routes()

	s.http = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// checkOrigin allows same-origin requests and the configured CORS origins.
func checkOrigin(allowed []string) func(*http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || set["*"] || set[origin] {
			return true
		}
		return origin == "http://"+r.Host || origin == "https://"+r.Host
	}
}

// Handler returns the routed engine.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Run serves on the configured address until ctx is done, then shuts down
// gracefully. Websocket connections are closed by the chat hub.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.http.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.log.Info("http server listening", zap.String("addr", ln.Addr().String()))

	errc := make(chan error, 1)
	go func() { errc <- s.http.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()
	if err := s.http.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	<-errc
	s.log.Info("http server stopped")
	return nil
}

func (s *Server) routes() {
	r := s.engine
	r.GET("/healthz", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry})))

	api := r.Group("/api")
	api.GET("/announcements", s.announcements)
	api.GET("/questions", s.questions)
	api.GET("/categories/:label", s.category)
	api.POST("/register", s.register)
	api.POST("/login", s.login)
	api.POST("/logout", s.logout)

	member := api.Group("", s.requireSession())
	member.POST("/assessment", s.submitAssessment)
	member.GET("/assessment/results", s.results)
	member.GET("/dashboard", s.dashboard)
	member.POST("/moods", s.trackMood)
	member.POST("/habits", s.trackHabit)
	member.POST("/emotions", s.trackEmotion)
	member.GET("/poems", s.poems)
	member.POST("/poems", s.savePoem)
	member.GET("/poems/:id", s.poem)
	member.GET("/chat/messages", s.chatHistory)
	member.POST("/chat/messages", s.sendMessage)
	member.GET("/chat/ws", s.chatSocket)
	member.POST("/preferences/dark-mode", s.toggleDarkMode)
	member.GET("/affirmation", s.affirmation)
}
