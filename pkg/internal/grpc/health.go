package grpc

import (
	"context"

	"github.com/rs/zerolog/log"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// StoreService is the health service name reporting the document store.
const StoreService = "arcade.Store"

// CheckHealth runs the store check and publishes its result on both the overall
// and the store health status.
func (v *App) CheckHealth(ctx context.Context) bool {
	status := healthpb.HealthCheckResponse_SERVING
	out := v.act.CheckStore(ctx)
	if !out.OK() {
		log.Warn().Str("error", out.Error).Msg("Store check failed, reporting not serving...")
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	v.health.SetServingStatus("", status)
	v.health.SetServingStatus(StoreService, status)
	return out.OK()
}
