package geo

import (
	"context"
	"encoding/json"
	"net"
	"strings"
	"time"

	"github.com/gatelink/gatelink/internal/infrastructure/logger"
	"github.com/gatelink/gatelink/internal/processing/redirect"
	"github.com/gatelink/gatelink/pkg/httpclient"
	"go.uber.org/zap"
)

const mappedV4Prefix = "::ffff:"

// Resolver looks up IP geolocation against an ip-api style provider. It never
// returns an error: private and loopback addresses short-circuit to the Local
// triple, and every failure mode degrades to the Unknown triple. One attempt
// per call, no caching; the circuit breaker inside the client sheds calls
// when the provider is down.
type Resolver struct {
	endpoint string
	timeout  time.Duration
	client   *httpclient.Client
}

type Options struct {
	Endpoint    string
	Timeout     time.Duration
	MaxFailures int
	OpenTimeout time.Duration
}

func NewResolver(opts Options) *Resolver {
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	return &Resolver{
		endpoint: strings.TrimRight(opts.Endpoint, "/"),
		timeout:  opts.Timeout,
		client:   httpclient.NewClient(opts.Timeout, opts.MaxFailures, opts.OpenTimeout),
	}
}

// providerResponse mirrors the ip-api JSON shape.
type providerResponse struct {
	Status     string `json:"status"`
	Country    string `json:"country"`
	City       string `json:"city"`
	RegionName string `json:"regionName"`
}

func (r *Resolver) Resolve(ctx context.Context, ip string) redirect.Location {
	ip = strings.TrimSpace(ip)
	ip = strings.TrimPrefix(ip, mappedV4Prefix)

	if isLocalAddress(ip) {
		return redirect.Location{
			Country: redirect.LocalLocation,
			City:    redirect.LocalLocation,
			Region:  redirect.LocalLocation,
		}
	}

	lookupCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.client.Get(lookupCtx, r.endpoint+"/"+ip, nil)
	if err != nil {
		logger.Warn("geo lookup failed", zap.Error(err), zap.String("ip", ip))
		return unknownLocation()
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		logger.Warn("geo provider returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.String("ip", ip),
		)
		return unknownLocation()
	}

	var body providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		logger.Warn("geo response decode failed", zap.Error(err), zap.String("ip", ip))
		return unknownLocation()
	}
	if body.Status != "success" {
		return unknownLocation()
	}

	return redirect.Location{
		Country: orUnknown(body.Country),
		City:    orUnknown(body.City),
		Region:  orUnknown(body.RegionName),
	}
}

func unknownLocation() redirect.Location {
	return redirect.Location{
		Country: redirect.Unknown,
		City:    redirect.Unknown,
		Region:  redirect.Unknown,
	}
}

func orUnknown(v string) string {
	if strings.TrimSpace(v) == "" {
		return redirect.Unknown
	}
	return v
}

// isLocalAddress covers loopback, the RFC1918 private ranges and IPv6
// loopback forms. Unparseable addresses are treated as non-local and left to
// the provider to reject.
func isLocalAddress(ip string) bool {
	switch ip {
	case "localhost", "::1", "":
		return true
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	return parsed.IsLoopback() || parsed.IsPrivate()
}
