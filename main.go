package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"

	"cardczar-bot/api"
	"cardczar-bot/bot"
	"cardczar-bot/botplayer"
	"cardczar-bot/card"
	"cardczar-bot/config"
	"cardczar-bot/live"
	"cardczar-bot/loghandler"
	"cardczar-bot/sessions"
	"cardczar-bot/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Print("No .env file found; using environment variables.")
	}

	cfg := config.Load()
	slog.SetDefault(slog.New(loghandler.NewCompactHandler(os.Stdout, slog.LevelInfo)))

	if cfg.BotToken == "" {
		log.Fatal("BOT_TOKEN is not set")
	}

	slog.Info("configuration", "tag", "main",
		"handSize", cfg.HandSize, "minPlayers", cfg.MinPlayers,
		"prefix", cfg.CommandPrefix, "deckDir", cfg.DeckDir, "apiPort", cfg.APIPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Deck library: the standard deck from disk, then any persisted decks.
	library := card.NewLibrary()
	standard, err := card.LoadDeckFiles(cfg.DeckDir, cfg.StandardDeckName, "")
	if err != nil {
		log.Fatalf("loading standard deck: %v", err)
	}
	library.Put(standard)
	responses, prompts := standard.Counts()
	slog.Info("standard deck loaded", "tag", "main", "responses", responses, "prompts", prompts)

	store, err := storage.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connecting to storage: %v", err)
	}
	defer store.Close()
	if store == nil {
		slog.Info("DATABASE_URL not set; decks and history will not be persisted", "tag", "main")
	} else if err := store.LoadDecks(ctx, library); err != nil {
		log.Fatalf("loading decks from storage: %v", err)
	}

	manager := sessions.NewManager(cfg, library, botplayer.RandomStrategy{})
	roster := botplayer.NewRoster(cfg.BotPlayerNames)
	hub := live.NewHub()

	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		log.Fatalf("creating Discord session: %v", err)
	}
	b := bot.New(cfg, library, manager, roster, store, hub)
	b.Attach(dg)

	if err := dg.Open(); err != nil {
		log.Fatalf("opening Discord connection: %v", err)
	}
	defer dg.Close()
	slog.Info("connected to Discord", "tag", "main")

	// Companion HTTP surface: deck files, history, spectator feed.
	mux := http.NewServeMux()
	api.NewHandler(cfg, library, store, hub).Register(mux)
	srv := &http.Server{Addr: fmt.Sprintf(":%d", cfg.APIPort), Handler: mux}
	go func() {
		slog.Info("API listening", "tag", "main", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("API server: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down", "tag", "main", "sessions", manager.Count())
	manager.EndAll()
	srv.Shutdown(context.Background())
}
