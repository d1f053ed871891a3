package grpc

import (
	"context"
	"log/slog"

	"google.golang.org/grpc"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the name callers pass to target this service specifically;
// an empty name asks about the whole server.
const ServiceName = "content.scheduling.v1"

type HealthServer struct {
	grpc_health_v1.UnimplementedHealthServer
	ready func(ctx context.Context) error
}

// NewHealthServer answers NOT_SERVING whenever ready returns an error.
// A nil ready always answers SERVING.
func NewHealthServer(ready func(ctx context.Context) error) *HealthServer {
	return &HealthServer{ready: ready}
}

func Register(server grpc.ServiceRegistrar, svc *HealthServer) {
	grpc_health_v1.RegisterHealthServer(server, svc)
}

func (s *HealthServer) Check(ctx context.Context, req *grpc_health_v1.HealthCheckRequest) (*grpc_health_v1.HealthCheckResponse, error) {
	return &grpc_health_v1.HealthCheckResponse{Status: s.status(ctx, req.GetService())}, nil
}

func (s *HealthServer) Watch(req *grpc_health_v1.HealthCheckRequest, stream grpc_health_v1.Health_WatchServer) error {
	return stream.Send(&grpc_health_v1.HealthCheckResponse{Status: s.status(stream.Context(), req.GetService())})
}

func (s *HealthServer) status(ctx context.Context, service string) grpc_health_v1.HealthCheckResponse_ServingStatus {
	if service != "" && service != ServiceName {
		return grpc_health_v1.HealthCheckResponse_SERVICE_UNKNOWN
	}
	if s.ready == nil {
		return grpc_health_v1.HealthCheckResponse_SERVING
	}
	if err := s.ready(ctx); err != nil {
		slog.Default().WarnContext(ctx, "health check failed",
			"module", "M31-Content-Scheduling-Service",
			"layer", "adapter",
			"operation", "grpc_health_check",
			"outcome", "failure",
			"error", err,
		)
		return grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}
	return grpc_health_v1.HealthCheckResponse_SERVING
}
