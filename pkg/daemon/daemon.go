// Package daemon runs the HTTP API that exposes the OS power-scheme
// configuration for remote management.
package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/poti-san/powpowerman/pkg/config"
	"github.com/poti-san/powpowerman/pkg/powrprof"
)

// Server serves the power-scheme HTTP API over a powrprof.API backend.
type Server struct {
	api    powrprof.API
	conf   config.Config
	router *gin.Engine
}

// New builds a server. The backend is usually powrprof.New(); tests
// pass a powrprof.Mock.
func New(api powrprof.API, conf config.Config) *Server {
	s := &Server{api: api, conf: conf}
	s.router = s.setupRoutes()
	return s
}

// Handler returns the HTTP handler, for mounting or testing.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.GET("/version", s.getVersion)
	router.GET("/schemes", s.getSchemes)
	router.GET("/schemes/active", s.getActiveScheme)
	router.PUT("/schemes/active", s.setActiveScheme)
	router.GET("/schemes/:scheme/subgroups", s.getSubgroups)
	router.GET("/schemes/:scheme/subgroups/:subgroup/settings", s.getSettings)
	router.GET("/schemes/:scheme/subgroups/:subgroup/settings/:setting", s.getSetting)
	router.PUT("/schemes/:scheme/subgroups/:subgroup/settings/:setting", s.putSetting)

	return router
}

// Run loads the config, starts the HTTP server and blocks until a
// termination signal. listenOverride, when non-empty, wins over the
// configured listen address.
func Run(configPath, listenOverride string) error {
	conf, err := config.NewFile(configPath)
	if err != nil {
		logrus.Fatalf("failed to parse config during startup: %v", err)
	}

	if level, err := logrus.ParseLevel(conf.LogLevel()); err == nil {
		logrus.SetLevel(level)
	}

	addr := conf.Listen()
	if listenOverride != "" {
		addr = listenOverride
	}

	s := New(powrprof.New(), conf)
	srv := &http.Server{Handler: s.router}

	l, err := net.Listen("tcp", addr)
	if err != nil {
		logrus.Fatal(err)
	}

	go func() {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	// Handle common process-killing signals, so we can gracefully shut
	// down. SIGTERM is a no-op constant on Windows but harmless.
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	sig := <-sigc
	logrus.Infof("caught signal \"%s\": shutting down.", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}

	logrus.Info("exiting")
	return nil
}
