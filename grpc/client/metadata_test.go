package client

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
)

func TestGetUserAgent(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("user-agent", "mmm-pda/1.2.3 grpc-go/1.64.0"))

	userAgent, err := GetUserAgent(ctx)
	require.NoError(t, err)
	assert.Equal(t, "mmm-pda", userAgent.Product)
	assert.Equal(t, "1.2.3", userAgent.Version)
	assert.Equal(t, "mmm-pda/1.2.3", userAgent.String())

	ctx = metadata.NewIncomingContext(context.Background(), metadata.Pairs("user-agent", "curl"))
	userAgent, err = GetUserAgent(ctx)
	require.NoError(t, err)
	assert.Equal(t, "curl", userAgent.String())

	_, err = GetUserAgent(context.Background())
	assert.Equal(t, ErrUserAgentNotFound, err)

	ctx = metadata.NewIncomingContext(context.Background(), metadata.Pairs("user-agent", " "))
	_, err = GetUserAgent(ctx)
	assert.Equal(t, ErrUserAgentNotFound, err)
}

func TestInjectLoggingMetadata(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("user-agent", "mmm-pda/1.2.3"))
	ctx = peer.NewContext(ctx, &peer.Peer{Addr: &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 5555}})

	InjectLoggingMetadata(ctx, zap.New(core)).Info("derived")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "mmm-pda/1.2.3", fields["user_agent"])
	assert.Equal(t, "127.0.0.1:5555", fields["client_ip"])
}
