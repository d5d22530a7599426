package grpc

import (
	"net"

	"git.solsynth.dev/hypernet/arcade/pkg/internal/actions"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

type App struct {
	srv    *grpc.Server
	health *health.Server
	act    *actions.Actions
}

func NewGrpc(act *actions.Actions) *App {
	server := &App{
		srv:    grpc.NewServer(),
		health: health.NewServer(),
		act:    act,
	}

	healthpb.RegisterHealthServer(server.srv, server.health)
	reflection.Register(server.srv)

	return server
}

func (v *App) Listen() error {
	listener, err := net.Listen("tcp", viper.GetString("grpc_bind"))
	if err != nil {
		return err
	}
	log.Info().Str("bind", listener.Addr().String()).Msg("gRPC server is listening...")
	return v.srv.Serve(listener)
}

func (v *App) Stop() {
	v.health.Shutdown()
	v.srv.GracefulStop()
}
