package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KamalidenovRustem/KursivMedia/internal/config"
	"github.com/KamalidenovRustem/KursivMedia/internal/conversations"
	"github.com/KamalidenovRustem/KursivMedia/internal/domain/model"
	"github.com/KamalidenovRustem/KursivMedia/internal/infra/telegram"
	"github.com/KamalidenovRustem/KursivMedia/internal/repo/postgres"
	redisrepo "github.com/KamalidenovRustem/KursivMedia/internal/repo/redis"
	"github.com/KamalidenovRustem/KursivMedia/internal/services/access"
	"github.com/KamalidenovRustem/KursivMedia/internal/services/broadcast"
	"github.com/KamalidenovRustem/KursivMedia/internal/services/cooldown"
	"github.com/KamalidenovRustem/KursivMedia/internal/services/submissions"
)

type App struct {
	cfg    config.Config
	logger *zap.Logger
	pool   *pgxpool.Pool
	rdb    *goredis.Client
	bot    *telegram.Bot

	registry    *access.Registry
	submissions *submissions.Service
	dispatcher  *broadcast.Dispatcher
	conv        *conversations.Manager

	usersRepo    *postgres.UsersRepo
	settingsRepo *postgres.SettingsRepo
	bansRepo     *postgres.BansRepo
}

func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	subRepo := postgres.NewSubmissionRepo(pool)
	usersRepo := postgres.NewUsersRepo(pool)
	rolesRepo := postgres.NewRolesRepo(pool)
	settingsRepo := postgres.NewSettingsRepo(pool)
	bansRepo := postgres.NewBansRepo(pool)

	if err := settingsRepo.EnsureDefaults(ctx, model.Settings{
		ChannelChatID:   cfg.Defaults.ChannelChatID,
		CooldownSeconds: cfg.Defaults.CooldownSeconds,
	}); err != nil {
		pool.Close()
		return nil, fmt.Errorf("seed settings: %w", err)
	}
	if err := seedRoles(ctx, rolesRepo, cfg.Defaults); err != nil {
		pool.Close()
		return nil, fmt.Errorf("seed roles: %w", err)
	}

	registry := access.NewRegistry(rolesRepo)
	if err := registry.Reload(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("load role registry: %w", err)
	}

	rdb := redisrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := rdb.Ping(ctx).Err(); err != nil {
		pool.Close()
		_ = rdb.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	limiter := cooldown.NewLimiter(redisrepo.NewCooldownRepo(rdb), settingsRepo)
	submissionsSvc := submissions.NewService(subRepo, limiter, settingsRepo, submissions.Bounds{
		MinWords:    cfg.Submissions.MinWords,
		MaxWords:    cfg.Submissions.MaxWords,
		StatusLimit: cfg.Submissions.StatusLimit,
	})

	bot, err := telegram.NewBot(cfg.Bot.Token, cfg.Bot.PollTimeout)
	if err != nil {
		pool.Close()
		_ = rdb.Close()
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	app := &App{
		cfg:          cfg,
		logger:       logger,
		pool:         pool,
		rdb:          rdb,
		bot:          bot,
		registry:     registry,
		submissions:  submissionsSvc,
		conv:         conversations.NewManager(),
		usersRepo:    usersRepo,
		settingsRepo: settingsRepo,
		bansRepo:     bansRepo,
	}
	app.dispatcher = broadcast.NewDispatcher(&payloadSender{bot: bot}, logger)

	return app, nil
}

// Run serves the long-polling loop and the ops HTTP endpoint until the
// context is cancelled or either of them fails.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- a.bot.Listen(ctx, a.handlers())
	}()
	go func() {
		errCh <- a.runOpsServer(ctx)
	}()

	err := <-errCh
	cancel()
	<-errCh
	return err
}

func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("close redis", zap.Error(err))
		}
	}
}

func seedRoles(ctx context.Context, repo *postgres.RolesRepo, defaults config.DefaultsConfig) error {
	for _, id := range defaults.Admins {
		if err := repo.AddAdmin(ctx, id, 0); err != nil {
			return err
		}
	}
	for _, id := range defaults.Moderators {
		if err := repo.AddModerator(ctx, id, 0); err != nil {
			return err
		}
	}
	return nil
}

// payloadSender adapts the telegram bot to the dispatcher's Sender.
type payloadSender struct {
	bot *telegram.Bot
}

func (s *payloadSender) SendPayload(ctx context.Context, chatID int64, payload broadcast.Payload) error {
	switch payload.Kind {
	case broadcast.PayloadPhoto:
		return s.bot.SendPhoto(ctx, chatID, payload.PhotoID, payload.Text, nil)
	case broadcast.PayloadVideo:
		return s.bot.SendVideo(ctx, chatID, payload.VideoID, payload.Text, nil)
	default:
		return s.bot.SendText(ctx, chatID, payload.Text)
	}
}
