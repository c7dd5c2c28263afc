package main

import (
	"context"
	"log"

	"genchat/config"
	"genchat/gemini"
	"genchat/stores"
	"genchat/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store, err := stores.NewStore(stores.NewStoreConfig(cfg.StoreType, cfg.StoreDSN))
	if err != nil {
		log.Fatalf("Failed to create history store: %v", err)
	}
	defer store.Close()

	client, err := gemini.NewClient(context.Background(), gemini.Options{
		APIKey:     cfg.GeminiAPIKey,
		ChatModel:  cfg.ChatModel,
		ImageModel: cfg.ImageModel,
		VideoModel: cfg.VideoModel,
	})
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}

	janitor, err := web.NewJanitor(cfg.VideoDir, cfg.VideoTTL, cfg.JanitorSpec)
	if err != nil {
		log.Fatalf("Failed to create video janitor: %v", err)
	}
	janitor.Start()
	defer janitor.Stop()

	server := web.NewServer(store, web.Generators{
		Chats:  client,
		Images: client,
		Videos: client,
	}, cfg.VideoDir, cfg.PollInterval)

	log.Printf("Listening on %s", cfg.ListenAddr)
	if err := server.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
