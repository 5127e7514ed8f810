package nettools

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/juju/ratelimit"
)

const (
	// DefaultFetchLimit is the number of characters of a body that are shown.
	DefaultFetchLimit = 2000
	// DefaultFetchBytesPerSecond caps download speed at 2Mbps.
	DefaultFetchBytesPerSecond = 2 * 1000 * 1000
	// DefaultFetchMaxBytes caps the amount of a body that is read at all.
	DefaultFetchMaxBytes = 1 << 20

	truncatedSuffix = "\n... (output truncated)"
)

// dialControl prevents basic SSRF attacks by only allowing public TCP/UDP
// destinations.
func dialControl(network string, address string, conn syscall.RawConn) error {
	switch network {
	case "tcp", "tcp4", "tcp6", "udp", "udp4", "udp6":
		// Accept types used for HTTP1/2/3.
	default:
		return fmt.Errorf("unknown network type: %v", network)
	}

	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return fmt.Errorf("bad network address: %v", address)
	}

	ipAddress := net.ParseIP(host)
	if ipAddress == nil {
		return fmt.Errorf("bad network address: %v", address)
	}

	if ipAddress.IsLoopback() || ipAddress.IsPrivate() || ipAddress.IsUnspecified() || ipAddress.IsLinkLocalUnicast() {
		return fmt.Errorf("couldn't connect to: %s", address)
	}

	return nil
}

// NewHTTPClient creates a client that refuses to dial local networks.
func NewHTTPClient() *http.Client {
	dialer := &net.Dialer{
		Timeout: 5 * time.Second,
		Control: dialControl,
	}

	return &http.Client{
		Timeout: 20 * time.Second,
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          10,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   5 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
			DialContext:           dialer.DialContext,
		},
	}
}

// Fetcher retrieves URLs for curl and wget.
type Fetcher struct {
	Client *http.Client
	// Limit is the number of characters displayed before truncation.
	Limit int
	// BytesPerSecond rate limits body reads, zero disables limiting.
	BytesPerSecond int64
	MaxBytes       int64
}

// NewFetcher creates a Fetcher with a local-network-blocking client.
func NewFetcher(limit int, bytesPerSecond int64) *Fetcher {
	if limit <= 0 {
		limit = DefaultFetchLimit
	}
	return &Fetcher{
		Client:         NewHTTPClient(),
		Limit:          limit,
		BytesPerSecond: bytesPerSecond,
		MaxBytes:       DefaultFetchMaxBytes,
	}
}

// Fetch performs a GET of url on behalf of tool.
func (f *Fetcher) Fetch(ctx context.Context, tool Tool, url string) Response {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Failure(fmt.Sprintf("%s: (3) %v", tool, err))
	}
	switch tool {
	case Wget:
		request.Header.Set("User-Agent", "Wget/1.21.2")
	default:
		request.Header.Set("User-Agent", "curl/7.81.0")
	}

	response, err := f.Client.Do(request)
	if err != nil {
		return Failure(fetchError(tool, err))
	}
	defer response.Body.Close()

	var body io.Reader = response.Body
	if f.MaxBytes > 0 {
		body = io.LimitReader(body, f.MaxBytes)
	}
	if f.BytesPerSecond > 0 {
		bucket := ratelimit.NewBucketWithRate(float64(f.BytesPerSecond), f.BytesPerSecond)
		body = ratelimit.Reader(body, bucket)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return Failure(fetchError(tool, err))
	}

	return Response{
		Text: Truncate(string(data), f.Limit),
		Body: string(data),
	}
}

// Truncate shortens text to limit characters, marking it when cut.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + truncatedSuffix
}

// fetchError renders err like curl's numbered error messages.
func fetchError(tool Tool, err error) string {
	var (
		dnsErr *net.DNSError
		netErr net.Error
		opErr  *net.OpError
	)

	code := "ERR"
	switch {
	case errors.As(err, &dnsErr):
		code = "6"
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		code = "28"
	case errors.As(err, &opErr):
		code = "7"
	}

	return fmt.Sprintf("%s: (%s) %v", tool, code, err)
}
