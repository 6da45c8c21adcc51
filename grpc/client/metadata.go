package client

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
)

const (
	userAgentHeaderName = "user-agent"
)

var (
	ErrUserAgentNotFound = errors.New("user agent not found")
)

// UserAgent is the leading product token of a client's user-agent header,
// e.g. mmm-pda/1.0.0 from "mmm-pda/1.0.0 grpc-go/1.64.0"
type UserAgent struct {
	Product string
	Version string
}

func (ua *UserAgent) String() string {
	if len(ua.Version) == 0 {
		return ua.Product
	}
	return ua.Product + "/" + ua.Version
}

// GetUserAgent gets the client's user agent from incoming request metadata
func GetUserAgent(ctx context.Context) (*UserAgent, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil, ErrUserAgentNotFound
	}

	values := md.Get(userAgentHeaderName)
	if len(values) == 0 {
		return nil, ErrUserAgentNotFound
	}

	fields := strings.Fields(values[0])
	if len(fields) == 0 {
		return nil, ErrUserAgentNotFound
	}

	product, version, _ := strings.Cut(fields[0], "/")
	if len(product) == 0 {
		return nil, errors.Errorf("invalid user agent: %s", values[0])
	}
	return &UserAgent{Product: product, Version: version}, nil
}

// GetIPAddress gets the client's address from the connection peer
func GetIPAddress(ctx context.Context) (string, error) {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return "", errors.New("peer not found")
	}
	return p.Addr.String(), nil
}

// InjectLoggingMetadata adds client metadata to log, when available
func InjectLoggingMetadata(ctx context.Context, log *zap.Logger) *zap.Logger {
	if userAgent, err := GetUserAgent(ctx); err == nil {
		log = log.With(zap.String("user_agent", userAgent.String()))
	}
	if ip, err := GetIPAddress(ctx); err == nil {
		log = log.With(zap.String("client_ip", ip))
	}
	return log
}
