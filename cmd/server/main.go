package main

import (
	"context"
	"log"
	"net/http"

	"content-extract/pkg/config"
	"content-extract/pkg/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	processor, err := pipeline.NewProcessor(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to build processor: %v", err)
	}

	server := &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: NewHandler(processor, cfg.Server.RequestTimeout),
	}

	log.Printf("Content extraction API listening on %s", cfg.Server.ListenAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server failed: %v", err)
	}
}
