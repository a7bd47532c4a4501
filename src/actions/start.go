// Package actions wires the configured modules onto shared infrastructure.
package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stake-plus/qotd/src/actions/core"
	"github.com/stake-plus/qotd/src/actions/qotd"
	"github.com/stake-plus/qotd/src/api"
	"github.com/stake-plus/qotd/src/cache"
	"github.com/stake-plus/qotd/src/config"
	"github.com/stake-plus/qotd/src/content"
	"github.com/stake-plus/qotd/src/data"
	"github.com/stake-plus/qotd/src/guild"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Runtime is the infrastructure shared by every module. Redis is optional.
type Runtime struct {
	DB    *gorm.DB
	Redis *redis.Client
	Log   *zap.Logger
}

// NewStores builds the guild and content stores over the database, with the
// Redis cache and delivery stream in front when a client is available.
func NewStores(rt Runtime, cacheTTL time.Duration) qotd.Stores {
	log := rt.Log
	if log == nil {
		log = zap.NewNop()
	}
	var backend guild.Backend = data.NewGuildBackend(rt.DB)
	stores := qotd.Stores{
		Questions: content.NewQuestions(data.NewQuestionBackend(rt.DB)),
		Polls:     content.NewPolls(data.NewPollBackend(rt.DB)),
	}
	if rt.Redis != nil {
		gc := cache.NewGuildCache(backend, rt.Redis, cacheTTL)
		gc.OnError = func(op string, err error) {
			log.Warn("cache: redis unavailable, using database", zap.String("op", op), zap.Error(err))
		}
		backend = gc
		stores.Publisher = cache.NewPublisher(rt.Redis)
	}
	stores.Config = guild.NewConfigStore(backend)
	return stores
}

// StartAll builds the enabled modules and starts them under one manager.
func StartAll(ctx context.Context, rt Runtime) (*core.Manager, error) {
	if rt.Log == nil {
		rt.Log = zap.NewNop()
	}
	mgr := core.NewManager(rt.Log)

	botCfg, err := config.LoadBotConfig(ctx, rt.DB)
	if err != nil {
		rt.Log.Warn("actions: settings table unavailable, using environment", zap.String("module", "qotd"), zap.Error(err))
	}
	stores := NewStores(rt, botCfg.CacheTTL)

	if botCfg.Enabled {
		mod, err := qotd.NewModule(botCfg, stores, rt.Log)
		if err != nil {
			return nil, fmt.Errorf("actions: init qotd module: %w", err)
		}
		if err := mgr.Add(mod); err != nil {
			return nil, fmt.Errorf("actions: add qotd module: %w", err)
		}
	} else {
		rt.Log.Info("actions: qotd module disabled via configuration")
	}

	apiCfg, err := config.LoadAPIConfig(ctx, rt.DB)
	if err != nil {
		rt.Log.Warn("actions: settings table unavailable, using environment", zap.String("module", "api"), zap.Error(err))
	}
	if apiCfg.Enabled {
		mod, err := api.NewModule(apiCfg, api.Deps{DB: rt.DB, Guilds: stores.Config, Log: rt.Log})
		if err != nil {
			return nil, fmt.Errorf("actions: init api module: %w", err)
		}
		if err := mgr.Add(mod); err != nil {
			return nil, fmt.Errorf("actions: add api module: %w", err)
		}
	} else {
		rt.Log.Info("actions: api module disabled via configuration")
	}

	if len(mgr.Names()) == 0 {
		return nil, fmt.Errorf("actions: no modules enabled")
	}
	if err := mgr.Start(ctx); err != nil {
		return nil, err
	}
	return mgr, nil
}
