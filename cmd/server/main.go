package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/voctools/voc-console/internal/ai"
	"github.com/voctools/voc-console/internal/chat"
	"github.com/voctools/voc-console/internal/config"
	"github.com/voctools/voc-console/internal/logger"
	"github.com/voctools/voc-console/internal/proxy"
	"github.com/voctools/voc-console/internal/voc"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadServer()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Task-Mode"},
	}))

	// --- Proxy module wiring ---
	upstream := proxy.NewUpstream(cfg.UpstreamURL, cfg.UpstreamUser, cfg.UpstreamPassword, cfg.UpstreamTimeout)
	proxyHandler := proxy.NewHandler(upstream, log)
	proxy.RegisterRoutes(r, proxyHandler)

	// --- Chat module wiring ---
	aiClient, err := ai.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIModel)
	if err != nil {
		log.Fatal().Err(err).Msg("ai client")
	}
	vocClient := voc.NewClient(cfg.VocAPIBaseURL, cfg.VocAPITimeout)
	chatService := chat.NewService(aiClient, vocClient, log)
	chatHandler := chat.NewHandler(chatService)
	chat.RegisterRoutes(r, chatHandler)

	// --- health ---
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	log.Info().Str("addr", cfg.Addr()).Msg("listening")
	if err := http.ListenAndServe(cfg.Addr(), r); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
