package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cajun-local/ask-local/api/internal/config"
	"github.com/cajun-local/ask-local/api/internal/infrastructure/session"
	"github.com/cajun-local/ask-local/api/internal/logging"
)

type seedOptions struct {
	driver      string
	mongoURI    string
	mongoDB     string
	postgresDSN string
	timeout     time.Duration
	drop        bool
	userID      string
	tokenTTL    time.Duration
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := seedOptions{}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a demo Acadiana directory and print a member token",
		Long: "seed writes demo businesses, menus, deals, events, promotions and a pro member " +
			"into the configured store. When AUTH_JWT_SECRET is set it also prints a bearer token " +
			"for that member.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.driver, "driver", envOr("STORE_DRIVER", config.DriverMongo), "store driver: mongo or postgres")
	flags.StringVar(&opts.mongoURI, "mongo-uri", envOr("MONGO_URI", "mongodb://localhost:27017"), "Mongo connection string")
	flags.StringVar(&opts.mongoDB, "mongo-db", envOr("MONGO_DB", "cajun-local"), "Mongo database name")
	flags.StringVar(&opts.postgresDSN, "postgres-dsn", os.Getenv("POSTGRES_DSN"), "Postgres DSN")
	flags.DurationVar(&opts.timeout, "timeout", 30*time.Second, "overall seed timeout")
	flags.BoolVar(&opts.drop, "drop", false, "drop existing collections or tables first")
	flags.StringVar(&opts.userID, "user-id", "demo-member", "subject of the seeded pro member")
	flags.DurationVar(&opts.tokenTTL, "token-ttl", 24*time.Hour, "lifetime of the printed token")
	return cmd
}

func runSeed(ctx context.Context, opts seedOptions) error {
	logger, err := logging.New(logging.Config{Level: envOr("LOG_LEVEL", "info"), Format: "console"})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	now := time.Now()
	data := demoDataset(now, opts.userID)

	switch strings.ToLower(strings.TrimSpace(opts.driver)) {
	case config.DriverMongo:
		err = seedMongo(ctx, opts.mongoURI, opts.mongoDB, opts.timeout, data, opts.drop)
	case config.DriverPostgres:
		if opts.postgresDSN == "" {
			return fmt.Errorf("--postgres-dsn or POSTGRES_DSN is required for the postgres driver")
		}
		err = seedPostgres(ctx, opts.postgresDSN, data, opts.drop)
	default:
		return fmt.Errorf("unknown driver %q", opts.driver)
	}
	if err != nil {
		logger.Error("seed failed", zap.String("driver", opts.driver), zap.Error(err))
		return err
	}
	logger.Info("seed complete",
		zap.String("driver", opts.driver),
		zap.Int("businesses", len(data.Businesses)),
		zap.Int("events", len(data.Events)),
		zap.String("member", opts.userID),
	)

	secret := os.Getenv("AUTH_JWT_SECRET")
	if secret == "" {
		logger.Info("AUTH_JWT_SECRET not set; skipping token")
		return nil
	}
	token, err := session.Issue([]byte(secret), session.TokenRequest{
		UserID:   opts.userID,
		Issuer:   os.Getenv("AUTH_JWT_ISSUER"),
		Audience: envOr("AUTH_JWT_AUDIENCE", "authenticated"),
		IssuedAt: now,
		TTL:      opts.tokenTTL,
	})
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
