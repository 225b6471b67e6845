// ABOUTME: Guarded fetch of user-supplied URLs with SSRF host policy
// ABOUTME: Enforces scheme, blocked-host, timeout and streaming size limits

package fetch

import (
	"context"
	"errors"
	"io"
	"net"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	coreerrors "readwell-api/core/errors"
	"readwell-api/core/interfaces"
)

const (
	// DefaultTimeout is the hard budget for a single guarded fetch.
	DefaultTimeout = 12 * time.Second

	// DefaultMaxBytes caps how much of a response body is read. Enforced
	// while streaming, so a server that omits Content-Length cannot make
	// memory use exceed the ceiling by more than one chunk.
	DefaultMaxBytes = 3 * 1024 * 1024
)

var privateIPBlocks []*net.IPNet

func init() {
	for _, cidr := range []string{
		"127.0.0.0/8",    // IPv4 loopback
		"10.0.0.0/8",     // RFC1918
		"172.16.0.0/12",  // RFC1918
		"192.168.0.0/16", // RFC1918
		"169.254.0.0/16", // RFC3927 link-local, includes cloud metadata
		"::1/128",        // IPv6 loopback
		"fe80::/10",      // IPv6 link-local
		"fc00::/7",       // IPv6 unique local
	} {
		_, block, err := net.ParseCIDR(cidr)
		if err != nil {
			panic("fetch: bad CIDR " + cidr + ": " + err.Error())
		}
		privateIPBlocks = append(privateIPBlocks, block)
	}
}

// IsBlockedHost reports whether hostname may not be fetched. It rejects
// localhost names, the unspecified address and literal IPs in loopback,
// private or link-local ranges. DNS names resolving to private addresses are
// caught separately at dial time by the guarded HTTP client.
func IsBlockedHost(hostname string) bool {
	h := strings.ToLower(hostname)
	if h == "localhost" || strings.HasSuffix(h, ".localhost") {
		return true
	}
	ip := net.ParseIP(h)
	if ip == nil {
		return false
	}
	if ip.IsUnspecified() {
		return true
	}
	for _, block := range privateIPBlocks {
		if block.Contains(ip) {
			return true
		}
	}
	return false
}

// IsPrivateIP reports whether a resolved address falls in a range the guard
// refuses to connect to.
func IsPrivateIP(ip net.IP) bool {
	if ip.IsUnspecified() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
		return true
	}
	for _, block := range privateIPBlocks {
		if block.Contains(ip) {
			return true
		}
	}
	return false
}

// Guard performs policy-checked, bounded retrieval of remote pages.
type Guard struct {
	client   interfaces.HTTPClient
	logger   interfaces.Logger
	timeout  time.Duration
	maxBytes int64
}

// NewGuard creates a fetch guard around the given HTTP client. A non-positive
// timeout or byte limit falls back to the defaults.
func NewGuard(client interfaces.HTTPClient, logger interfaces.Logger, timeout time.Duration, maxBytes int64) *Guard {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Guard{
		client:   client,
		logger:   logger,
		timeout:  timeout,
		maxBytes: maxBytes,
	}
}

// Fetch validates rawURL against the host policy and retrieves its body as
// UTF-8 text. All failures are reported as *errors.FetchError.
func (g *Guard) Fetch(ctx context.Context, rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || !parsed.IsAbs() || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", &coreerrors.FetchError{
			Kind:    coreerrors.FetchInvalidScheme,
			URL:     rawURL,
			Message: "url must be absolute http or https",
		}
	}

	if IsBlockedHost(parsed.Hostname()) {
		return "", &coreerrors.FetchError{
			Kind:    coreerrors.FetchBlockedHost,
			URL:     rawURL,
			Message: "host is not allowed",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Get(ctx, rawURL)
	if err != nil {
		return "", g.classifyTransportError(rawURL, err)
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return "", &coreerrors.FetchError{
			Kind:       coreerrors.FetchUpstreamHTTP,
			URL:        rawURL,
			StatusCode: resp.StatusCode(),
		}
	}

	body, err := readLimited(resp.Body(), g.maxBytes)
	if err != nil {
		var fetchErr *coreerrors.FetchError
		if errors.As(err, &fetchErr) {
			fetchErr.URL = rawURL
			return "", fetchErr
		}
		return "", g.classifyTransportError(rawURL, err)
	}

	if !utf8.Valid(body) {
		return "", &coreerrors.FetchError{
			Kind:    coreerrors.FetchDecodeError,
			URL:     rawURL,
			Message: "response body is not valid UTF-8",
		}
	}

	if g.logger != nil {
		g.logger.Debug("Fetched page", map[string]interface{}{
			"url":   rawURL,
			"bytes": len(body),
		})
	}

	return string(body), nil
}

// readLimited reads at most limit bytes from r. It reads limit+1 bytes so an
// oversized body is detected without buffering past the ceiling.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	lr := io.LimitReader(r, limit+1)
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, &coreerrors.FetchError{
			Kind:    coreerrors.FetchResponseTooLarge,
			Message: "response body exceeds size limit",
		}
	}
	return data, nil
}

func (g *Guard) classifyTransportError(rawURL string, err error) error {
	kind := coreerrors.FetchUpstreamHTTP
	msg := "fetch failed"

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = coreerrors.FetchTimeout
		msg = "fetch timed out"
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = coreerrors.FetchTimeout
		msg = "fetch timed out"
	case strings.Contains(err.Error(), "blocked connection"):
		// The guarded dialer refused a DNS answer in a private range.
		kind = coreerrors.FetchBlockedHost
		msg = "host is not allowed"
	}

	if g.logger != nil {
		g.logger.Warn("Fetch failed", map[string]interface{}{
			"url":   rawURL,
			"error": err.Error(),
		})
	}

	return &coreerrors.FetchError{Kind: kind, URL: rawURL, Message: msg}
}
