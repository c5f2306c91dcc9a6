package main

import (
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sushihentaime/inkwell/internal/common"
	"github.com/sushihentaime/inkwell/internal/mailservice"
	"github.com/sushihentaime/inkwell/internal/postservice"
	"github.com/sushihentaime/inkwell/internal/userservice"
)

type application struct {
	config      *Config
	logger      *slog.Logger
	userService *userservice.UserService
	postService *postservice.PostService
	mailService *mailservice.MailService
	covers      *postservice.CoverStore
}

func newLogger(environment string) *slog.Logger {
	if environment == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}

	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// newApplication builds the services on top of an open pool. mb may be nil.
func newApplication(cfg *Config, logger *slog.Logger, db *sql.DB, mb common.MessageProducer) *application {
	tokens := userservice.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)

	return &application{
		config:      cfg,
		logger:      logger,
		userService: userservice.NewUserService(db, mb, tokens, logger),
		postService: postservice.NewPostService(db),
		covers:      postservice.NewCoverStore(filepath.Join(cfg.PublicDir, "imagens", "cover"), cfg.BaseURL),
	}
}

func main() {
	cfg, err := loadConfig(".env")
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := newLogger(cfg.Environment)

	db, err := common.NewDB(cfg.dbConfig())
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	err = common.Migrate(cfg.MigrationsPath, cfg.dbConfig().DSN())
	if err != nil {
		logger.Error("failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var (
		broker   *common.MessageBroker
		producer common.MessageProducer
	)

	if cfg.brokerEnabled() {
		broker, err = common.NewMessageBroker(common.BrokerURI(cfg.RabbitMQ.User, cfg.RabbitMQ.Password, cfg.RabbitMQ.Host, cfg.RabbitMQ.Port))
		if err != nil {
			logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer broker.Close()

		err = common.SetupUserExchange(broker)
		if err != nil {
			logger.Error("failed to setup the user exchange", slog.String("error", err.Error()))
			os.Exit(1)
		}

		producer = broker
	} else {
		logger.Info("RABBITMQ_HOST not set, welcome emails are disabled")
	}

	app := newApplication(cfg, logger, db, producer)

	if broker != nil {
		app.mailService = mailservice.NewMailService(broker, cfg.Mail.Host, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.Sender, cfg.Mail.Port, logger)

		err = app.mailService.SendWelcomeEmail()
		if err != nil {
			logger.Error("failed to start the welcome email consumer", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer app.mailService.Close()
	}

	err = app.serve()
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
