package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/billionaire-caller/btcaller/internal/blockchain"
	"github.com/billionaire-caller/btcaller/internal/bot"
	"github.com/billionaire-caller/btcaller/internal/config"
	"github.com/billionaire-caller/btcaller/internal/http_api"
	"github.com/billionaire-caller/btcaller/internal/monitor"
	"github.com/billionaire-caller/btcaller/internal/repository"
	"github.com/billionaire-caller/btcaller/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:  "btcaller",
		Usage: "Billionaire Caller is a Solana wallet monitoring Telegram bot",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "postgres-user", Aliases: []string{"u"}, Usage: "Postgres user"},
			&cli.StringFlag{Name: "postgres-password", Aliases: []string{"p"}, Usage: "Postgres password"},
			&cli.StringFlag{Name: "postgres-host", Aliases: []string{"t"}, Usage: "Postgres host"},
			&cli.IntFlag{Name: "postgres-port", Aliases: []string{"P"}, Usage: "Postgres port"},
			&cli.StringFlag{Name: "postgres-db", Aliases: []string{"d"}, Usage: "Postgres database name"},
			&cli.StringFlag{Name: "telegram-token", Aliases: []string{"k"}, Usage: "Telegram bot token"},
			&cli.StringFlag{Name: "solana-rpc-url", Aliases: []string{"r"}, Usage: "Solana RPC endpoint"},
			&cli.DurationFlag{Name: "poll-interval", Aliases: []string{"i"}, Usage: "Wallet polling interval"},
			&cli.IntFlag{Name: "api-port", Aliases: []string{"a"}, Usage: "Status API port"},
			&cli.BoolFlag{Name: "development", Aliases: []string{"D"}, Usage: "Development mode"},
		},
		Action: func(c *cli.Context) error {
			return run(c)
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	// Load configuration from environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	// Override with flags if set
	if c.IsSet("postgres-user") {
		cfg.PostgresUser = c.String("postgres-user")
	}
	if c.IsSet("postgres-password") {
		cfg.PostgresPassword = c.String("postgres-password")
	}
	if c.IsSet("postgres-host") {
		cfg.PostgresHost = c.String("postgres-host")
	}
	if c.IsSet("postgres-port") {
		cfg.PostgresPort = c.Int("postgres-port")
	}
	if c.IsSet("postgres-db") {
		cfg.PostgresDB = c.String("postgres-db")
	}
	if c.IsSet("telegram-token") {
		cfg.TelegramBotToken = c.String("telegram-token")
	}
	if c.IsSet("solana-rpc-url") {
		cfg.SolanaRPCURL = c.String("solana-rpc-url")
	}
	if c.IsSet("poll-interval") {
		cfg.PollInterval = c.Duration("poll-interval")
	}
	if c.IsSet("api-port") {
		cfg.APIPort = c.Int("api-port")
	}
	if c.IsSet("development") {
		cfg.Development = c.Bool("development")
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %v", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Development)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %v", err)
	}

	// Initialize database
	db, err := repository.NewPostgresDB(cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDB, cfg.PostgresHost, cfg.PostgresPort, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize the Solana balance client
	balances := blockchain.NewClient(cfg.SolanaRPCURL, cfg.RPCTimeout, log)

	// Initialize the Telegram bot
	tgBot, err := bot.NewBot(cfg.TelegramBotToken, db, balances, log)
	if err != nil {
		return fmt.Errorf("failed to initialize bot: %v", err)
	}

	// The bot delivers monitor notifications to chats
	watcher := monitor.New(db, balances, tgBot, log, cfg)

	// Initialize API server
	apiServer := http_api.NewHTTPServer(db, cfg.APIPort, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go apiServer.Start()
	go watcher.Run(ctx)

	// Start the bot; blocks until the context is cancelled
	tgBot.Run(ctx)

	if err := apiServer.Shutdown(); err != nil {
		log.Error("API server shutdown", "error", err)
	}

	log.Info("Shutdown complete")
	return nil
}
