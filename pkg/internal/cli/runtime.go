package cli

import (
	"context"
	"fmt"

	"git.solsynth.dev/hypernet/arcade/pkg/internal/actions"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/cache"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/database"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/events"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/graph"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/locks"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/services"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/store"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/store/mongo"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/store/sanity"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Runtime is everything a command needs, wired from the settings.
type Runtime struct {
	Store   store.DocumentStore
	Service *services.Service
	Actions *actions.Actions
	Bus     *events.Bus

	closers []func(ctx context.Context) error
}

func (v *Runtime) onClose(fn func(ctx context.Context) error) {
	v.closers = append(v.closers, fn)
}

// Close releases the resources in reverse opening order.
func (v *Runtime) Close(ctx context.Context) {
	for idx := len(v.closers) - 1; idx >= 0; idx-- {
		if err := v.closers[idx](ctx); err != nil {
			log.Warn().Err(err).Msg("An error occurred when releasing resources...")
		}
	}
}

func openStore(ctx context.Context, rt *Runtime) (store.DocumentStore, error) {
	driver := viper.GetString("store.driver")
	log.Info().Str("driver", driver).Msg("Opening document store...")

	switch driver {
	case "sanity":
		return sanity.NewStore(sanity.Config{
			ProjectID:  viper.GetString("sanity.project_id"),
			Dataset:    viper.GetString("sanity.dataset"),
			APIVersion: viper.GetString("sanity.api_version"),
			Token:      viper.GetString("sanity.token"),
			UseCDN:     viper.GetBool("sanity.use_cdn"),
		}), nil
	case "mongo":
		out, client, err := mongo.Connect(ctx,
			viper.GetString("mongo.uri"),
			viper.GetString("mongo.database"),
			viper.GetString("mongo.collection"),
		)
		if err != nil {
			return nil, err
		}
		rt.onClose(client.Disconnect)
		return out, nil
	case "postgres":
		if err := database.NewGorm(); err != nil {
			return nil, fmt.Errorf("unable to connect database: %v", err)
		} else if err := database.RunMigration(database.C); err != nil {
			return nil, fmt.Errorf("unable to migrate database: %v", err)
		}
		return database.NewDocumentStore(database.C), nil
	case "memory":
		log.Warn().Msg("Memory store keeps nothing across restarts, use it for development only.")
		return store.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", driver)
}

func openLocker(rt *Runtime) locks.Locker {
	if viper.GetString("locks.driver") != "redis" {
		return locks.NewLocalLocker()
	}
	rdb := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    viper.GetStringSlice("redis.addrs"),
		Password: viper.GetString("redis.password"),
		DB:       viper.GetInt("redis.db"),
	})
	rt.onClose(func(context.Context) error { return rdb.Close() })
	return locks.NewRedisLocker(rdb, viper.GetDuration("locks.ttl"))
}

// startGraph mirrors engagement events into neo4j when graph.uri is set.
func startGraph(ctx context.Context, rt *Runtime) error {
	uri := viper.GetString("graph.uri")
	if len(uri) == 0 {
		return nil
	}
	runner, err := graph.NewNeo4jRunner(
		uri,
		viper.GetString("graph.username"),
		viper.GetString("graph.password"),
		viper.GetString("graph.database"),
	)
	if err != nil {
		return err
	}
	rt.onClose(runner.Close)

	projector := graph.NewProjector(runner)
	log.Info().Str("uri", uri).Msg("Projecting engagement into graph...")
	return rt.Bus.Listen(ctx, func(evt events.Engagement) error {
		if err := projector.Handle(ctx, evt); err != nil {
			// Projection is best effort, a failed edge is not redelivered.
			log.Warn().Err(err).Str("topic", evt.Topic).Msg("An error occurred when projecting engagement...")
		}
		return nil
	}, events.Topics...)
}

func NewRuntime(ctx context.Context) (*Runtime, error) {
	rt := &Runtime{Bus: events.NewBus()}
	rt.onClose(func(context.Context) error { return rt.Bus.Close() })

	s, err := openStore(ctx, rt)
	if err != nil {
		rt.Close(ctx)
		return nil, err
	}
	rt.Store = s

	if err := cache.NewStore(); err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("unable to create cache: %v", err)
	}

	if err := startGraph(ctx, rt); err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("unable to start graph projection: %v", err)
	}

	rt.Service = services.New(s, services.Options{
		Locker:       openLocker(rt),
		Events:       rt.Bus,
		Cache:        cache.S,
		DeletePolicy: services.DeletePolicy(viper.GetString("engagement.comment_delete_policy")),
	})
	rt.Actions = actions.New(rt.Service)
	return rt, nil
}
