package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/yaml.v3"

	"doughjo/internal/catalog"
	"doughjo/internal/database"
	"doughjo/internal/monitoring"
	"doughjo/internal/persistence"
	"doughjo/internal/server"
	"doughjo/internal/shift"
	"doughjo/internal/store"
	"doughjo/internal/timer"
)

var (
	port        = flag.Int("port", 8080, "API server port")
	metricsPort = flag.Int("metrics-port", 9090, "Metrics server port")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	// Load configuration
	config, err := loadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	if err := database.InitDB(config.DatabasePath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDB()
	store.InitializeDatabase()

	// Initialize metrics collector
	monitor := monitoring.NewMonitor()

	// One router serves both the store endpoints and the operator API;
	// the engine talks to the store over its own HTTP surface.
	router := gin.Default()
	store.InitializeStoreRoutes(router)

	baseURL := fmt.Sprintf("http://127.0.0.1:%d", *port)
	machine := shift.NewMachine(
		timer.NewWall(),
		rand.New(rand.NewSource(time.Now().UnixNano())),
		catalog.NewClient(baseURL),
		persistence.NewClient(baseURL),
		monitor,
	)
	server.NewShiftServer(router, machine, monitor)

	// Start metrics server
	go startMetricsServer(*metricsPort)

	// Start API server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
	}()

	// Start server
	log.Printf("Starting API server on port %d", *port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

func loadConfig(path string) (*Config, error) {
	config := &Config{
		DatabasePath: "doughjo.db",
		LogLevel:     "info",
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Config file %s not found, using defaults", path)
			return config, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return config, nil
}

func startMetricsServer(port int) {
	metricsRouter := gin.Default()
	metricsRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}

// Config represents the application configuration
type Config struct {
	DatabasePath  string `yaml:"database_path"`
	LogLevel      string `yaml:"log_level"`
	MetricsConfig struct {
		Enabled bool   `yaml:"enabled"`
		Port    int    `yaml:"port"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
}
