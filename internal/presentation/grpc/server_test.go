package grpc_test

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	grpcpresentation "github.com/MarwanRagab123/Bank-risk-analysis/internal/presentation/grpc"
)

const serviceName = "risk-analysis"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startServer(t *testing.T, opts grpcpresentation.Options) (*grpcpresentation.Server, healthpb.HealthClient) {
	t.Helper()

	srv, err := grpcpresentation.NewServer("bufnet", opts, discardLogger())
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return srv, healthpb.NewHealthClient(conn)
}

func TestServer_HealthCheck(t *testing.T) {
	srv, client := startServer(t, grpcpresentation.Options{ServiceName: serviceName})
	ctx := context.Background()

	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: serviceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	srv.SetServing(false)
	resp, err = client.Check(ctx, &healthpb.HealthCheckRequest{Service: serviceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}

func TestServer_UnknownService(t *testing.T) {
	_, client := startServer(t, grpcpresentation.Options{ServiceName: serviceName, Reflection: true})

	_, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "ledger"})
	require.Error(t, err)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestNewServer_BadCertificate(t *testing.T) {
	_, err := grpcpresentation.NewServer(":0", grpcpresentation.Options{
		ServiceName: serviceName,
		CertFile:    "/nonexistent/server.crt",
		KeyFile:     "/nonexistent/server.key",
	}, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load gRPC TLS credentials")
}
