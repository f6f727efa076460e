package server

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cajun-local/ask-local/api/internal/config"
	mongodoc "github.com/cajun-local/ask-local/api/internal/infrastructure/mongo"
	"github.com/cajun-local/ask-local/api/internal/infrastructure/postgres"
)

// OpenBackend connects the configured store and builds its repositories.
func OpenBackend(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (Backend, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		client, err := mongodoc.Connect(ctx, cfg.MongoURI, cfg.ConnectTimeout)
		if err != nil {
			return Backend{}, err
		}
		db := client.Database(cfg.MongoDatabase)
		logger.Info("directory store connected", zap.String("driver", cfg.Driver), zap.String("database", cfg.MongoDatabase))
		return Backend{
			Directory:    mongodoc.NewDirectoryRepository(db),
			Promotions:   mongodoc.NewPromotionRepository(db),
			Entitlements: mongodoc.NewEntitlementRepository(db),
			Ping:         mongodoc.Pinger(client),
			Close:        client.Disconnect,
		}, nil
	case config.DriverPostgres:
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return Backend{}, err
		}
		logger.Info("directory store connected", zap.String("driver", cfg.Driver))
		return Backend{
			Directory:    postgres.NewDirectoryRepository(db),
			Promotions:   postgres.NewPromotionRepository(db),
			Entitlements: postgres.NewEntitlementRepository(db),
			Ping:         postgres.Pinger(db),
			Close:        func(context.Context) error { return postgres.Close(db) },
		}, nil
	default:
		return Backend{}, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
