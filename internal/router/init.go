package router

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/six-cities-api/config"
	"github.com/oksasatya/six-cities-api/internal/application"
	"github.com/oksasatya/six-cities-api/internal/container"
	repo "github.com/oksasatya/six-cities-api/internal/domain/repository"
	"github.com/oksasatya/six-cities-api/internal/infrastructure/mongodb"
	"github.com/oksasatya/six-cities-api/internal/infrastructure/search"
	handlers "github.com/oksasatya/six-cities-api/internal/interface/http"
	"github.com/oksasatya/six-cities-api/internal/interface/middleware"
	"github.com/oksasatya/six-cities-api/internal/router/modules"
	"github.com/oksasatya/six-cities-api/pkg/helpers"
)

// Deps are the adapters every module is built from. Index and Jobs are optional.
type Deps struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Users    repo.UserRepository
	Offers   repo.OfferRepository
	Comments repo.CommentRepository
	Index    application.OfferIndexer
	Jobs     application.JobPublisher
	Files    middleware.FileStore
	Tokens   *helpers.TokenManager
	Checks   map[string]handlers.Pinger
}

// DepsFromContainer builds Mongo-backed deps from the infra singletons.
func DepsFromContainer() Deps {
	cfg := container.GetConfig()
	db := container.GetMongoDB()
	d := Deps{
		Config:   cfg,
		Logger:   container.GetLogger(),
		Users:    mongodb.NewUserRepository(db),
		Offers:   mongodb.NewOfferRepository(db),
		Comments: mongodb.NewCommentRepository(db),
		Files:    container.GetFileStore(),
		Tokens:   container.GetTokens(),
		Checks: map[string]handlers.Pinger{
			"mongo": func(ctx context.Context) error { return mongodb.Ping(ctx, container.GetMongoClient()) },
		},
	}
	// keep the interfaces nil when the backing client is absent
	if es := container.GetES(); es != nil {
		d.Index = search.NewOfferIndex(es, cfg.ESOffersIndex)
	}
	if pub := container.GetRabbitPub(); pub != nil {
		d.Jobs = pub
	}
	if rdb := container.GetRedis(); rdb != nil && cfg.RateLimitEnabled {
		d.Checks["redis"] = func(ctx context.Context) error { return helpers.PingRedis(ctx, rdb) }
	}
	return d
}

// InitModules builds services and handlers and registers every module.
// It should be called once during application startup.
func InitModules(r *Registry, d Deps) {
	logger := d.Logger

	userSvc := application.NewUserService(d.Users, d.Jobs, logger, d.Config.AppName)
	authSvc := application.NewAuthService(userSvc, d.Tokens, logger)
	offerSvc := application.NewOfferService(d.Offers, d.Comments, d.Users, d.Index, logger)
	commentSvc := application.NewCommentService(d.Comments, d.Offers, logger)

	guards := modules.Guards{
		Tokens:      authSvc,
		Users:       userSvc,
		UserExists:  userSvc,
		OfferExists: offerSvc,
	}

	r.Add(
		modules.NewHealthModule(handlers.NewHealthHandler(d.Checks, logger)),
		modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), guards, d.Files, d.Config.UploadMaxBytes),
		modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), guards),
		modules.NewOfferModule(
			handlers.NewOfferHandler(offerSvc, logger),
			handlers.NewCommentHandler(commentSvc, userSvc, logger),
			guards,
		),
		modules.NewFavoritesModule(handlers.NewFavoritesHandler(userSvc, offerSvc, logger), guards),
	)
	if d.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
