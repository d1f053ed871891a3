package grpc

import (
	"context"
	"errors"
	"testing"

	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

func TestCheckFollowsReadiness(t *testing.T) {
	var down error
	s := NewHealthServer(func(context.Context) error { return down })

	resp, err := s.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if resp.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
		t.Fatalf("expected SERVING, got %s", resp.GetStatus())
	}

	down = errors.New("database unreachable")
	resp, err = s.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if resp.GetStatus() != grpc_health_v1.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("expected NOT_SERVING, got %s", resp.GetStatus())
	}
}

func TestCheckUnknownService(t *testing.T) {
	s := NewHealthServer(nil)
	resp, err := s.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: "billing.v1"})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if resp.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVICE_UNKNOWN {
		t.Fatalf("expected SERVICE_UNKNOWN, got %s", resp.GetStatus())
	}
}
