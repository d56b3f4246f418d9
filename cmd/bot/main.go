package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Wolfjoee/Espresstrackk/internal/bot"
	"github.com/Wolfjoee/Espresstrackk/internal/config"
	"github.com/Wolfjoee/Espresstrackk/internal/db"
	"github.com/Wolfjoee/Espresstrackk/internal/logger"
	"github.com/Wolfjoee/Espresstrackk/internal/repo"
)

func main() {
	cfg := config.MustLoad()

	logger.Init(cfg.Env)
	defer logger.Sync()
	log := logger.Get()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalw("database connect", "err", err)
	}
	defer pool.Close()

	if err := db.ApplyMigrations(ctx, pool, "./migrations"); err != nil {
		log.Fatalw("migrations", "err", err)
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalw("bot init", "err", err)
	}
	botAPI.Debug = false

	h := bot.NewHandler(
		botAPI, cfg, log, pool,
		repo.NewTransactions(pool),
		repo.NewDebts(pool),
		repo.NewSettings(pool),
		bot.NewMemorySessions(),
	)

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		cancel()
	}()

	go h.RunDailyReports(ctx, time.Minute)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := botAPI.GetUpdatesChan(u)

	log.Infow("bot started", "username", botAPI.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			log.Infow("shutdown")
			return
		case upd := <-updates:
			h.HandleUpdate(ctx, upd)
		}
	}
}
