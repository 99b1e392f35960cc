package commands

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/shoplist/shopping-api/internal/core/ports"
	"github.com/shoplist/shopping-api/internal/core/service"
	"github.com/shoplist/shopping-api/internal/infrastructure/config"
	mongodb "github.com/shoplist/shopping-api/internal/infrastructure/db/mongo"
	redisstore "github.com/shoplist/shopping-api/internal/infrastructure/db/redis"
	"github.com/shoplist/shopping-api/pkg/logger"
)

// app is the wired object graph shared by the subcommands.
type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	mongo *mongodb.Connector
	redis *goredis.Client

	authn    *service.AuthService
	users    *service.UserService
	products *service.ProductService
	cart     *service.CartService
	data     *service.DataService
}

func bootstrap(ctx context.Context, envFile string) (*app, error) {
	cfg, err := config.Load(ctx, envFile)
	if err != nil {
		return nil, err
	}

	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "shoplist",
	})
	log := logger.Get()

	passwords, err := service.NewPasswordMatcher(cfg.PasswordScheme)
	if err != nil {
		return nil, err
	}

	conn := mongodb.NewConnector(mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	conn.OnConnect(mongodb.IndexHook(logger.Component("mongo")))

	userRepo := mongodb.NewUserRepository(conn)
	productRepo := mongodb.NewProductRepository(conn)
	cartRepo := mongodb.NewCartRepository(conn)

	a := &app{cfg: cfg, log: log, mongo: conn}

	var cache ports.ProductCache
	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	switch {
	case err == nil:
		a.redis = rdb
		cache = redisstore.NewProductCache(rdb)
	case errors.Is(err, redisstore.ErrDisabled):
		log.Info().Msg("product cache disabled")
	default:
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, running without product cache")
	}

	tokens := service.NewJWTCodec(cfg.JWTSecret)
	a.authn = service.NewAuthService(userRepo, tokens, passwords, logger.Component("auth"))
	a.users = service.NewUserService(userRepo, passwords, logger.Component("users"))
	a.products = service.NewProductService(productRepo, cache, cfg.Redis.CacheTTL, logger.Component("products"))
	a.cart = service.NewCartService(cartRepo, productRepo, logger.Component("cart"))
	a.data = service.NewDataService(userRepo, productRepo, cartRepo, passwords, logger.Component("data"))

	return a, nil
}

func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.mongo.Close(ctx); err != nil {
		a.log.Error().Err(err).Msg("mongo disconnect failed")
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Error().Err(err).Msg("redis close failed")
		}
	}
}
