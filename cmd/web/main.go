package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/georgemunganga/printa-vendors/internal/config"
	"github.com/georgemunganga/printa-vendors/internal/httpserver"
	"github.com/georgemunganga/printa-vendors/internal/modules/vendorclient"
	"github.com/georgemunganga/printa-vendors/internal/modules/webui"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	configPath := flag.String("config", "", "Path to an optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := vendorclient.New(cfg.Web.APIURL, &http.Client{Timeout: 15 * time.Second})
	ui, err := webui.NewHandler(client)
	if err != nil {
		log.Fatal(err)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	ui.RegisterRoutes(router)

	fmt.Printf("Vendor UI starting on :%s (api: %s)\n", cfg.Web.Port, cfg.Web.APIURL)
	if err := httpserver.Run(ctx, "vendor ui", ":"+cfg.Web.Port, router, cfg.App.ShutdownTimeout); err != nil {
		log.Fatal(err)
	}
}
