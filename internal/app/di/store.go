package di

import (
	"context"
	"fmt"

	"job_backend/internal/app/config"
	authadapters "job_backend/internal/feature/auth/adapters"
	authusecase "job_backend/internal/feature/auth/usecase"
	"job_backend/internal/platform/db"
	mongoplatform "job_backend/internal/platform/mongo"
)

// Closer releases a resource on shutdown.
type Closer func(ctx context.Context) error

// NewUserRepository opens the configured credential store.
// The returned Closer disconnects it.
func NewUserRepository(ctx context.Context, cfg *config.Config) (authusecase.UserRepository, Closer, error) {
	if cfg.StoreDriver == config.StoreMongo {
		client, database, err := mongoplatform.Connect(ctx, mongoplatform.Config{
			URI:      cfg.MongoURI,
			Database: cfg.MongoDatabase,
		})
		if err != nil {
			return nil, nil, err
		}
		repo := authadapters.NewUserMongo(database)
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}
		return repo, client.Disconnect, nil
	}

	gdb, err := db.OpenDB(cfg.SQL, &authadapters.UserModel{})
	if err != nil {
		return nil, nil, fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}
	closer := func(context.Context) error { return db.Close(gdb) }
	return authadapters.NewUserGorm(gdb), closer, nil
}
