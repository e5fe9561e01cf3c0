package main

import (
	"fmt"
	"os"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/lumina/internal/commands"
	"github.com/yourusername/lumina/internal/config"
	"github.com/yourusername/lumina/internal/database"
	"github.com/yourusername/lumina/internal/errors"
	"github.com/yourusername/lumina/internal/handler"
	"github.com/yourusername/lumina/internal/maintenance"
	"github.com/yourusername/lumina/internal/metrics"
	"github.com/yourusername/lumina/internal/output"
	"github.com/yourusername/lumina/internal/reminder"
	"github.com/yourusername/lumina/internal/shutdown"
	"github.com/yourusername/lumina/internal/telegram"
	"github.com/yourusername/lumina/internal/user"
)

func main() {
	logger := output.NewColorLogger()
	logger.Info("Lumina Telegram Bot - Starting...")

	cfg, err := config.LoadOrCreate("config/bot.toml")
	if err != nil {
		logger.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	logger.Success("Configuration loaded")

	// Persistent store handed to command handlers
	var db *database.DB
	if cfg.Bot.TestMode {
		logger.Info("Test mode enabled - using in-memory test database")
		db, err = database.NewTest()
	} else {
		db, err = database.New(cfg.Database.Path)
	}
	if err != nil {
		logger.Error("Failed to initialize database: %v", err)
		os.Exit(1)
	}
	logger.Success("Database initialized")

	out, err := output.NewOutput(cfg.Logging.ErrorLog)
	if err != nil {
		logger.Error("Failed to initialize output: %v", err)
		_ = db.Close()
		os.Exit(1)
	}
	errorHandler := errors.NewErrorHandler(out)

	userMgr := user.NewManager(db, cfg.Bot.OwnerID)

	// With no owner id in the config, ownership is claimed via /verify;
	// make sure a password exists for that flow
	if cfg.Bot.OwnerID == 0 {
		hasPassword, err := userMgr.HasOwnerPassword()
		if err != nil {
			logger.Error("Failed to check owner password: %v", err)
			_ = db.Close()
			os.Exit(1)
		}

		if !hasPassword {
			logger.Info("No owner configured. Please enter an owner verification password:")
			fmt.Print("Enter owner password: ")

			var password string
			_, err := fmt.Scanln(&password)
			if err != nil || password == "" {
				logger.Error("Failed to read password or password is empty")
				_ = db.Close()
				os.Exit(1)
			}

			if err := userMgr.SetOwnerPassword(password); err != nil {
				logger.Error("Failed to set owner password: %v", err)
				_ = db.Close()
				os.Exit(1)
			}

			logger.Success("Owner password set")
			logger.Info("To become owner, send the bot a private message: %sverify %s", cfg.Bot.CommandPrefix, password)
		}
	}

	collector := metrics.NewCollector(db.Conn())

	client, err := telegram.New(cfg.Telegram.Token, logger)
	if err != nil {
		logger.Error("Failed to connect to Telegram: %v", err)
		_ = db.Close()
		os.Exit(1)
	}
	logger.Success("Connected to Telegram as @%s", client.Username())

	// Reminder store and scheduler
	store, err := reminder.NewFileStore(cfg.Reminders.File)
	if err != nil {
		logger.Error("Failed to open reminder store: %v", err)
		_ = db.Close()
		os.Exit(1)
	}
	logger.Info("Reminder store loaded (%d pending)", store.Len())

	remindScheduler := reminder.NewScheduler(store, client, logger, cfg.Reminders.GetPollIntervalDuration())
	remindScheduler.OnDelivered = func(reminder.Reminder) {
		if err := collector.RecordReminderDelivered(); err != nil {
			logger.Warning("Failed to record reminder metric: %v", err)
		}
	}
	if err := remindScheduler.Start(); err != nil {
		logger.Error("Failed to start reminder scheduler: %v", err)
		_ = db.Close()
		os.Exit(1)
	}
	logger.Success("Reminder scheduler started")

	maintenanceScheduler := maintenance.New(db, collector, logger,
		cfg.Database.GetVacuumIntervalDuration(), cfg.Database.AuditRetentionDays)
	if err := maintenanceScheduler.Start(); err != nil {
		logger.Error("Failed to start maintenance scheduler: %v", err)
		_ = db.Close()
		os.Exit(1)
	}

	// Command registration: an explicit descriptor list, so the registry's
	// contents are statically verifiable
	registry := commands.NewRegistry()
	registry.RegisterAll(commands.NewBuiltinCommands(registry, collector, userMgr, cfg.Bot.CommandPrefix).Descriptors())
	registry.RegisterAll(commands.NewVerifyCommands(userMgr, cfg.Bot.CommandPrefix).Descriptors())
	registry.RegisterAll(commands.NewReminderCommands(store, cfg.Bot.CommandPrefix).Descriptors())
	logger.Success("Registered %d commands", len(registry.AllNames()))

	dispatcher := commands.NewDispatcher(
		registry,
		commands.NewSuggester(registry),
		userMgr,
		client,
		errorHandler,
		logger,
		collector,
		db,
		cfg.Bot.CommandPrefix,
		client.Username(),
	)

	keywords := handler.NewKeywordResponder(cfg.Keywords)
	if keywords.Len() > 0 {
		logger.Info("Keyword responder active (%d triggers)", keywords.Len())
	}

	shutdownHandler := shutdown.NewHandler(logger, 10*time.Second)
	shutdownHandler.RegisterShutdownFunc(func() error {
		client.Stop()
		return nil
	})
	shutdownHandler.RegisterShutdownFunc(remindScheduler.Stop)
	shutdownHandler.RegisterShutdownFunc(maintenanceScheduler.Stop)
	shutdownHandler.RegisterShutdownFunc(db.Close)

	go func() {
		for update := range client.Updates(cfg.Telegram.UpdateTimeout) {
			msg := update.Message
			if msg == nil || msg.Text == "" {
				continue
			}

			go func(m *tgbotapi.Message) {
				if dispatcher.Dispatch(client, m) {
					return
				}
				if reply, ok := keywords.Match(m.Text); ok {
					if err := client.SendMessage(m.Chat.ID, reply); err != nil {
						logger.Warning("Failed to send keyword reply to chat %d: %v", m.Chat.ID, err)
					}
				}
			}(msg)
		}
	}()

	logger.Success("Lumina is up. Press Ctrl+C to stop.")
	shutdownHandler.WaitForShutdown()
}
