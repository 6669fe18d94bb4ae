package httpd

import (
	"context"
	"net"

	"go.trai.ch/bundler/internal/core/ports"
	"go.trai.ch/zerr"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// AdminServer exposes the standard gRPC health service for orchestrators and load balancers.
type AdminServer struct {
	addr   string
	logger ports.Logger
	health *health.Server
	grpc   *grpc.Server
	ready  chan net.Addr
}

// NewAdminServer creates an AdminServer for addr.
func NewAdminServer(addr string, logger ports.Logger) *AdminServer {
	s := &AdminServer{
		addr:   addr,
		logger: logger,
		health: health.NewServer(),
		grpc:   grpc.NewServer(),
		ready:  make(chan net.Addr, 1),
	}
	healthpb.RegisterHealthServer(s.grpc, s.health)
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

// SetServing flips the overall health status.
func (s *AdminServer) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
}

// Ready yields the bound address once Serve is listening.
func (s *AdminServer) Ready() <-chan net.Addr {
	return s.ready
}

// Serve listens and serves until ctx is done.
func (s *AdminServer) Serve(ctx context.Context) error {
	var lc net.ListenConfig
	lis, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to listen"), "addr", s.addr)
	}
	s.ready <- lis.Addr()

	if s.logger != nil {
		s.logger.Info("admin health service on " + lis.Addr().String())
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.grpc.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		s.health.Shutdown()
		s.grpc.GracefulStop()
		return nil
	case err := <-errCh:
		if err != nil {
			return zerr.Wrap(err, "admin server stopped")
		}
		return nil
	}
}
