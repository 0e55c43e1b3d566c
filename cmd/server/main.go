// Command server runs the real-time translation room.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/thinkingjet/Real-time-translator-kagi-demo/internal/config"
	"github.com/thinkingjet/Real-time-translator-kagi-demo/internal/handlers"
	httpx "github.com/thinkingjet/Real-time-translator-kagi-demo/internal/http"
	"github.com/thinkingjet/Real-time-translator-kagi-demo/internal/relay"
	"github.com/thinkingjet/Real-time-translator-kagi-demo/internal/room"
	"github.com/thinkingjet/Real-time-translator-kagi-demo/internal/stt"
	"github.com/thinkingjet/Real-time-translator-kagi-demo/internal/translate"
	"github.com/thinkingjet/Real-time-translator-kagi-demo/internal/tts"
	"go.uber.org/zap"
)

const (
	httpClientTimeout = 15 * time.Second
	memoryCacheSize   = 1024
	audioCacheSize    = 256
	shutdownTimeout   = 30 * time.Second
)

func main() {
	cfg := config.Load()

	zl, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	logger := zl.Sugar()
	defer func() { _ = logger.Sync() }()

	store := room.NewStore()
	hub := handlers.NewHub(store, logger)

	translator := newTranslator(cfg, logger)
	translateTimeout := time.Duration(cfg.TranslateTimeoutMS) * time.Millisecond
	rly := relay.New(store, translator, hub, cfg.SourceLanguage, translateTimeout, logger)

	var sttService stt.Service
	if cfg.STTURL != "" {
		sttService = stt.NewWebsocketRecognizer(cfg.STTURL, logger)
	} else {
		logger.Infow("no STT_URL configured, audio ingest disabled")
	}

	var synthesizer tts.Synthesizer = tts.StubSynthesizer{}
	if cfg.TTSURL != "" {
		synthesizer = tts.NewHTTPSynthesizer(cfg.TTSURL, &http.Client{Timeout: httpClientTimeout})
	} else {
		logger.Infow("no TTS_URL configured, using stub synthesizer")
	}

	roomHandler := handlers.NewRoomHandler(store)
	wsHandler := handlers.NewWebSocketHandler(hub, rly, sttService, cfg.SourceLanguage, logger)
	ttsHandler := handlers.NewTTSHandler(synthesizer, tts.NewAudioCache(audioCacheSize), logger)
	router := httpx.NewRouter(roomHandler, wsHandler, ttsHandler, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:              cfg.APIAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Infow("listening", "addr", cfg.APIAddr, "sourceLanguage", cfg.SourceLanguage)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalw("server error", "error", err)
		}
	}()

	<-sigChan
	logger.Infow("shutdown signal received, shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorw("server shutdown error", "error", err)
	}
	logger.Infow("server stopped")
}

// newTranslator builds the translation client: the external HTTP service
// when configured (stub otherwise), wrapped in the selected cache backend.
func newTranslator(cfg config.Config, logger *zap.SugaredLogger) translate.Translator {
	var inner translate.Translator
	if cfg.TranslateURL != "" {
		inner = translate.NewHTTPTranslator(cfg.TranslateURL, cfg.TranslateAPIKey, &http.Client{Timeout: httpClientTimeout}, logger)
	} else {
		logger.Warnw("no TRANSLATE_URL configured, using stub translator")
		inner = translate.NewStubTranslator(nil)
	}

	var cache translate.Cache
	switch cfg.CacheBackend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			PoolSize:     10,
			MinIdleConns: 5,
			MaxRetries:   3,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			PoolTimeout:  4 * time.Second,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Fatalw("failed to connect to redis", "addr", cfg.RedisAddr, "error", err)
		}
		logger.Infow("connected to redis", "addr", cfg.RedisAddr)
		cache = translate.NewRedisCache(rdb, cfg.CacheTTLSec)
	default:
		cache = translate.NewMemoryCache(memoryCacheSize, time.Duration(cfg.CacheTTLSec)*time.Second)
	}

	return translate.NewCachedTranslator(inner, cache, logger)
}
