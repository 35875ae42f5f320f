package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v9"

	"github.com/dkovalev/modelmart/pkg/api/handler"
	"github.com/dkovalev/modelmart/pkg/api/middleware"
	"github.com/dkovalev/modelmart/pkg/auth"
	"github.com/dkovalev/modelmart/pkg/database"
	"github.com/dkovalev/modelmart/pkg/gemini"
	"github.com/dkovalev/modelmart/pkg/logger"
	"github.com/dkovalev/modelmart/pkg/repository"
	"github.com/dkovalev/modelmart/pkg/services"
	"github.com/dkovalev/modelmart/pkg/supabase"
	"github.com/dkovalev/modelmart/pkg/workers"
)

type Config struct {
	SupabaseURL          string        `env:"SUPABASE_URL"`
	SupabaseAnonKey      string        `env:"SUPABASE_ANON_KEY"`
	SupabaseChatFunction string        `env:"SUPABASE_CHAT_FUNCTION" envDefault:"openai-chat"`
	ChatBackendModel     string        `env:"CHAT_BACKEND_MODEL" envDefault:"gpt-4o"`
	GeminiAPIKey         string        `env:"GEMINI_API_KEY"`
	APITokens            []string      `env:"API_TOKENS" envSeparator:" "`
	HTTPAddr             string        `env:"HTTP_ADDR" envDefault:":8080"`
	PgURL                string        `env:"DATABASE_URL"`
	PgHost               string        `env:"DB_HOST" envDefault:"localhost:5432"`
	ConversationTTL      time.Duration `env:"CONVERSATION_TTL" envDefault:"24h"`
	TrainingTickInterval time.Duration `env:"TRAINING_TICK_INTERVAL" envDefault:"800ms"`
}

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.DefaultOptions)))

	if err := runMain(); err != nil {
		slog.Error("shutting down due to error", logger.Err(err))
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}

func runMain() error {
	workerGroup, err := setupWorkers()
	if err != nil {
		return err
	}

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case s := <-sigCh:
			slog.Info("shutting down due to signal", "signal", s.String())
			cancelFn()
		case <-ctx.Done():
		}
	}()

	return workerGroup.Start(ctx)
}

func setupWorkers() (workers.Group, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}

	var worker workers.Worker
	var workerGroup workers.Group

	db, err := database.NewPostgres(cfg.PgURL, cfg.PgHost)
	if err != nil {
		return nil, fmt.Errorf("creating db: %w", err)
	}

	modelRepository := repository.NewModelRepository(db)
	conversationRepository := repository.NewConversationRepository(cfg.ConversationTTL)

	supabaseClient := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, cfg.SupabaseChatFunction)
	geminiClient := gemini.NewClient(cfg.GeminiAPIKey)

	orchestrator := services.NewOrchestrator(
		supabaseClient,
		geminiClient,
		conversationRepository,
		cfg.ChatBackendModel,
	)

	authenticator := auth.NewAuthenticator(cfg.APITokens)

	chatHandler := handler.NewChat(modelRepository, conversationRepository, orchestrator)
	modelsHandler := handler.NewModels(modelRepository)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", requireMethod(http.MethodPost, chatHandler.SendMessage))
	mux.HandleFunc("/api/chat/greeting", requireMethod(http.MethodGet, chatHandler.Greeting))
	mux.HandleFunc("/api/models", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			modelsHandler.Create(w, r)
		case http.MethodGet:
			if r.URL.Query().Get("id") != "" {
				modelsHandler.Get(w, r)
				return
			}
			modelsHandler.List(w, r)
		case http.MethodDelete:
			modelsHandler.Delete(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	if worker, err = workers.NewHTTPServer(cfg.HTTPAddr, middleware.Auth(authenticator, mux)); err == nil {
		workerGroup = append(workerGroup, worker)
	} else {
		return nil, err
	}

	if worker, err = workers.NewTrainingSimulator(modelRepository, cfg.TrainingTickInterval); err == nil {
		workerGroup = append(workerGroup, worker)
	} else {
		return nil, err
	}

	return workerGroup, nil
}

func requireMethod(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}
