package main

import (
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/portalguard/modules/portal"
	"github.com/dmitrymomot/portalguard/pkg/config"
	"github.com/dmitrymomot/portalguard/pkg/cookie"
	"github.com/dmitrymomot/portalguard/pkg/httpserver"
	"github.com/dmitrymomot/portalguard/pkg/logger"
	"github.com/dmitrymomot/portalguard/pkg/metrics"
	"github.com/dmitrymomot/portalguard/pkg/ratelimiter"
	"github.com/dmitrymomot/portalguard/pkg/redis"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		var (
			httpCfg   httpserver.Config
			cookieCfg cookie.Config
		)
		if err := config.Load(&httpCfg); err != nil {
			return err
		}
		if err := config.Load(&cookieCfg); err != nil {
			return err
		}

		cookies, err := cookie.NewFromConfig(cookieCfg)
		if err != nil {
			return err
		}

		opts := []portal.Option{
			portal.WithLogger(log),
			portal.WithEnvironment(env),
			portal.WithMetrics(metrics.New()),
			portal.WithCookieManager(cookies),
		}

		var redisClient *goredis.Client
		if portalCfg.TokenStore == portal.StoreRedis {
			var redisCfg redis.Config
			if err := config.Load(&redisCfg); err != nil {
				return err
			}
			client, err := redis.Connect(ctx, redisCfg, log)
			if err != nil {
				log.ErrorContext(ctx, "redis unavailable", logger.Error(err))
				return err
			}
			defer func() { _ = client.Close() }()
			redisClient = client
			opts = append(opts, portal.WithRedis(client))
		}

		var rateCfg ratelimiter.Config
		if err := config.Load(&rateCfg); err != nil {
			return err
		}
		var rateStore ratelimiter.Store
		if redisClient != nil {
			rateStore = ratelimiter.NewRedisStore(redisClient)
		} else {
			mem := ratelimiter.NewMemoryStore()
			defer mem.Close()
			rateStore = mem
		}
		limiter, err := ratelimiter.NewBucket(rateStore, rateCfg)
		if err != nil {
			return err
		}
		opts = append(opts, portal.WithSessionLimiter(limiter))

		p, err := portal.New(portalCfg, opts...)
		if err != nil {
			log.ErrorContext(ctx, "failed to build portal", logger.Error(err))
			return err
		}

		log.InfoContext(ctx, "starting portal",
			logger.Component("http"),
		)
		return httpserver.New(httpCfg, httpserver.WithLogger(log)).Run(ctx, p.Handler())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
