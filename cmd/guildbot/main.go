package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/jonny/guildbot/internal/adapter/inbound/discordbot"
	"github.com/jonny/guildbot/internal/adapter/outbound/discordapi"
	"github.com/jonny/guildbot/internal/adapter/outbound/persistence/sqlite"
	"github.com/jonny/guildbot/internal/config"
	"github.com/jonny/guildbot/internal/domain/model"
	"github.com/jonny/guildbot/internal/domain/service"
	"github.com/jonny/guildbot/pkg/health"
	"github.com/jonny/guildbot/pkg/version"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	syncCommands := flag.Bool("sync", false, "publish the command set to the guild before starting")
	printVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *printVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = buildLogger(cfg.Logging)

	// --- Database ---
	store, err := sqlite.NewStore(sqlite.Config{
		Path:              cfg.Database.SQLite.Path,
		MaxOpenConns:      cfg.Database.SQLite.MaxOpenConns,
		PragmaJournalMode: cfg.Database.SQLite.PragmaJournalMode,
		PragmaBusyTimeout: cfg.Database.SQLite.PragmaBusyTimeout,
	})
	if err != nil {
		logger.Error("failed to open sqlite store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	journal := sqlite.NewJournalRepo(store)

	// --- Discord REST client & relay ---
	apiClient, err := discordapi.NewClient(discordapi.Config{
		Token:         cfg.Discord.Token,
		ApplicationID: cfg.Discord.ApplicationID,
	})
	if err != nil {
		logger.Error("failed to create discord client", "error", err)
		os.Exit(1)
	}

	relay, err := discordapi.NewWebhookRelay(apiClient.Session(), cfg.Pinboard.WebhookURL)
	if err != nil {
		logger.Error("failed to configure pinboard relay", "error", err)
		os.Exit(1)
	}

	// --- Domain services ---
	views := service.NewViewRegistry(cfg.Purge.ConfirmTimeout, logger)
	toggler := service.NewRoleToggler(apiClient, apiClient)
	mirror := service.NewPinMirror(relay, apiClient, journal, cfg.Pinboard.ChannelID, logger)
	watcher := service.NewAuditWatcher(apiClient, mirror, logger)
	purger := service.NewPurger(views, apiClient, apiClient, journal, cfg.Purge.LogChannelID, logger)

	pickerRoles := make([]model.RoleOption, 0, len(cfg.Roles.Picker))
	for _, role := range cfg.Roles.Picker {
		pickerRoles = append(pickerRoles, model.RoleOption{
			RoleID: role.ID,
			Emoji:  role.Emoji,
			Label:  role.Label,
		})
	}
	picker := service.NewRolePicker(apiClient, pickerRoles)

	registry := service.NewCommandRegistry(apiClient)
	for _, d := range []service.CommandDescriptor{
		{Name: "purge", Description: "Purges the current channel", Kind: model.CommandSlash, Handler: purger.HandleCommand},
		{Name: "rolepicker", Description: "Sends the role picker", Kind: model.CommandSlash, Handler: picker.HandleCommand},
		{Name: "Pin message", Kind: model.CommandMessageContext, Handler: mirror.HandleContextMenu},
	} {
		if err := registry.Register(d); err != nil {
			logger.Error("failed to register command", "command", d.Name, "error", err)
			os.Exit(1)
		}
	}

	router := service.NewRouter(registry, views, toggler)

	// --- Gateway bot ---
	bot, err := discordbot.NewBot(discordbot.Config{
		Token:   cfg.Discord.Token,
		GuildID: cfg.Discord.GuildID,
	}, router, watcher, logger)
	if err != nil {
		logger.Error("failed to create gateway bot", "error", err)
		os.Exit(1)
	}

	// --- Signal handling & startup ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *syncCommands {
		logger.Info("publishing guild commands", "guild", cfg.Discord.GuildID)
		if err := registry.Sync(ctx, cfg.Discord.GuildID); err != nil {
			logger.Error("failed to publish commands", "error", err)
			os.Exit(1)
		}
	}

	// --- Health checker ---
	checker := health.NewChecker()
	checker.Register("database", store.Ping)
	checker.Register("gateway", bot.Gateway)

	metricsMux := http.NewServeMux()
	metricsMux.HandleFunc("/healthz", checker.LivenessHandler())
	metricsMux.HandleFunc("/readyz", checker.ReadinessHandler())
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: metricsMux,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Gateway connection.
	g.Go(func() error {
		logger.Info("starting gateway bot", "guild", cfg.Discord.GuildID)
		return bot.Start(gCtx)
	})

	// Metrics/health server.
	g.Go(func() error {
		logger.Info("starting metrics server", "port", cfg.Server.MetricsPort)
		errCh := make(chan error, 1)
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
			close(errCh)
		}()
		select {
		case <-gCtx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			return metricsServer.Shutdown(shutdownCtx)
		case err := <-errCh:
			return err
		}
	})

	logger.Info("guildbot started", "version", version.String())

	if err := g.Wait(); err != nil {
		logger.Error("exited with error", "error", err)
		os.Exit(1)
	}

	logger.Info("guildbot stopped")
}

// buildLogger constructs a slog.Logger based on config.
func buildLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
