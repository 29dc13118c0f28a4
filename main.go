package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"croniq/pkg/apiclient"
	"croniq/pkg/config"
	"croniq/pkg/dashboard"
	"croniq/pkg/handlers"
	"croniq/pkg/k8s"
	"croniq/pkg/logging"
	"croniq/templates"
	"croniq/web"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
)

func main() {
	configPath := pflag.StringP("config", "c", "config.yaml", "path to the YAML configuration file")
	writeConfig := pflag.String("write-config", "", "write the effective configuration to this path and exit")
	pflag.Parse()

	log := logging.New("main")

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Crit("Failed to load config", "path", *configPath, "err", err)
		os.Exit(1)
	}

	if *writeConfig != "" {
		if err := cfg.Save(*writeConfig); err != nil {
			log.Crit("Failed to write config", "path", *writeConfig, "err", err)
			os.Exit(1)
		}
		log.Info("Configuration written", "path", *writeConfig)
		return
	}

	if err := logging.Setup(cfg.LogLevel); err != nil {
		log.Crit("Failed to configure logging", "err", err)
		os.Exit(1)
	}

	formatter, err := templates.NewFormatter(cfg.Dashboard.Locale, cfg.Dashboard.Timezone)
	if err != nil {
		log.Crit("Failed to configure formatting", "err", err)
		os.Exit(1)
	}

	gin.SetMode(gin.ReleaseMode)

	// Dashboard and static assets
	client := apiclient.New(cfg.Dashboard.APIBaseURL, cfg.Dashboard.RequestTimeout,
		apiclient.WithLogger(logging.New("apiclient")))
	controller := dashboard.NewController(client, logging.New("dashboard"))
	dashboardHandlers := handlers.NewDashboard(controller, formatter)

	servers := []*http.Server{{
		Addr:    cfg.DashboardAddr(),
		Handler: handlers.NewDashboardRouter(dashboardHandlers, web.Static(cfg.Dashboard.StaticDir), logging.New("http.dashboard")),
	}}
	log.Info("Dashboard configured", "addr", cfg.DashboardAddr(), "api", client.BaseURL())

	// Backend API
	if cfg.API.Enabled {
		manager := k8s.NewManager(cfg.API.Kubeconfig)
		apiHandlers := handlers.New(k8s.NewService(manager), logging.New("api"))
		servers = append(servers, &http.Server{
			Addr:    cfg.APIAddr(),
			Handler: handlers.NewAPIRouter(apiHandlers, logging.New("http.api")),
		})
		log.Info("API configured", "addr", cfg.APIAddr(), "kubeconfig", manager.KubeconfigPath())
	}

	errCh := make(chan error, len(servers))
	for _, srv := range servers {
		go func(srv *http.Server) {
			log.Info("Starting server", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}(srv)
	}

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case sig := <-sigCh:
		log.Info("Received signal, shutting down", "signal", sig)
	case err := <-errCh:
		log.Error("Server failed", "err", err)
		exitCode = 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Graceful shutdown failed", "addr", srv.Addr, "err", err)
		}
	}
	log.Info("Servers stopped")
	if exitCode != 0 {
		cancel()
		os.Exit(exitCode)
	}
}
