package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"syscall"
	"time"

	"github.com/deppfellow/venues/internal/config"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

const defaultLinkCheckTimeout = 10 * time.Second

// ErrBlockedAddress is returned when a venue URL resolves to an address the
// link checker must not contact.
var ErrBlockedAddress = errors.New("address not allowed for link checks")

// carrier-grade NAT, not covered by net.IP.IsPrivate
var sharedAddressSpace = &net.IPNet{IP: net.IPv4(100, 64, 0, 0), Mask: net.CIDRMask(10, 32)}

// publicAddressOnly rejects loopback, private, link-local (cloud metadata)
// and other non-routable addresses.
func publicAddressOnly(ip net.IP) error {
	if ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() || ip.IsMulticast() ||
		sharedAddressSpace.Contains(ip) {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, ip)
	}
	return nil
}

// newLinkCheckClient builds the HEAD client. allow runs on the resolved IP
// of every connection, so DNS names pointing inward are caught too; a nil
// allow permits everything. Redirects are never followed.
func newLinkCheckClient(timeout time.Duration, allow func(net.IP) error) *http.Client {
	dialer := &net.Dialer{Timeout: timeout}
	if allow != nil {
		dialer.Control = func(_, address string, _ syscall.RawConn) error {
			host, _, err := net.SplitHostPort(address)
			if err != nil {
				return err
			}
			ip := net.ParseIP(host)
			if ip == nil {
				return fmt.Errorf("%w: %s", ErrBlockedAddress, host)
			}
			return allow(ip)
		}
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// InitHandlers prepares the dependencies the task handlers use.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	timeout := cfg.Jobs.LinkCheckTimeout
	if timeout <= 0 {
		timeout = defaultLinkCheckTimeout
	}

	j.httpClient = newLinkCheckClient(timeout, publicAddressOnly)
	j.logger = logger
}

// handleLinkCheckTask issues a HEAD request to the venue URL and logs the
// outcome. Unparseable URLs and non-public addresses are dropped without
// retry; network failures are retried by asynq.
func (j *JobService) handleLinkCheckTask(ctx context.Context, t *asynq.Task) error {
	var p LinkCheckPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal link check payload: %w: %w", err, asynq.SkipRetry)
	}

	target, err := url.Parse(p.URL)
	if err != nil || (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
		j.logger.Warn().
			Str("type", "link_check").
			Str("venue_id", p.VenueID).
			Str("url", p.URL).
			Msg("venue url is not an http(s) address, skipping")
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to build link check request: %w: %w", err, asynq.SkipRetry)
	}

	resp, err := j.httpClient.Do(req)
	if errors.Is(err, ErrBlockedAddress) {
		j.logger.Warn().
			Str("type", "link_check").
			Str("venue_id", p.VenueID).
			Str("url", p.URL).
			Err(err).
			Msg("venue url points at a non-public address, skipping")
		return nil
	}
	if err != nil {
		j.logger.Error().
			Str("type", "link_check").
			Str("venue_id", p.VenueID).
			Str("url", p.URL).
			Err(err).
			Msg("venue url unreachable")
		return err
	}
	defer resp.Body.Close()

	event := j.logger.Info()
	if resp.StatusCode >= http.StatusBadRequest {
		event = j.logger.Warn()
	}
	event.
		Str("type", "link_check").
		Str("venue_id", p.VenueID).
		Str("url", p.URL).
		Int("status", resp.StatusCode).
		Msg("checked venue url")

	return nil
}
