package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.solsynth.dev/hypernet/arcade/pkg/internal/actions"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/grpc"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/http"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewMaintenance schedules the repair routines on the cron schedule.
func NewMaintenance(act *actions.Actions, schedule string) (*cron.Cron, error) {
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	_, err := quartz.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		act.RepairMissingKeys(ctx)
		act.RepairDanglingReferences(ctx)
	})
	if err != nil {
		return nil, err
	}
	return quartz, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rt, err := NewRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close(context.Background())

	// Configure timed tasks
	quartz, err := NewMaintenance(rt.Actions, viper.GetString("maintenance.schedule"))
	if err != nil {
		return err
	}
	quartz.Start()

	// Server
	server := http.NewServer(rt.Actions, http.ConfigFromViper())
	go server.Listen()

	rpc := grpc.NewGrpc(rt.Actions)
	go func() {
		if err := rpc.Listen(); err != nil {
			log.Error().Err(err).Msg("An error occurred when starting gRPC server...")
		}
	}()
	if !rpc.CheckHealth(ctx) {
		log.Warn().Msg("Document store is not reachable yet, health reports not serving.")
	}

	log.Info().Str("bind", viper.GetString("bind")).Msg("Arcade is up and running!")

	// Messages
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")
	<-quartz.Stop().Done()
	rpc.Stop()
	return server.Shutdown()
}
