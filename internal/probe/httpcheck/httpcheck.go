// Package httpcheck implements an activity probe that performs an HTTP GET
// and matches a regular expression against the response body, modeled on
// the teacher's executeHTTPProbe in pkg/probe/probe.go (request
// construction, client timeout). No custom request headers are sent.
package httpcheck

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/cbluth/autosuspend/internal/probe"
)

const className = "http"

func init() {
	probe.RegisterActivity(className, newActivity, probe.WithCommonParams(
		probe.Param{
			Name:        "url",
			Type:        probe.TypeString,
			Description: "URL to GET",
			Required:    true,
		},
		probe.Param{
			Name:        "regex",
			Type:        probe.TypeString,
			Description: "pattern matched against the response body; a match means active",
			Required:    true,
		},
		probe.Param{
			Name:        "timeout",
			Type:        probe.TypeNumber,
			Description: "request timeout in seconds",
			Default:     5,
			Minimum:     probe.Min(0),
		},
	))
}

// Probe performs an HTTP GET against URL and reports active if Pattern
// matches the response body.
type Probe struct {
	name    string
	url     string
	pattern *regexp.Regexp
	client  *http.Client
}

func newActivity(name string, opts probe.Options) (probe.Activity, error) {
	url, err := opts.Required("url")
	if err != nil {
		return nil, err
	}
	rawPattern, err := opts.Required("regex")
	if err != nil {
		return nil, err
	}
	pattern, err := regexp.Compile(rawPattern)
	if err != nil {
		return nil, probe.NewConfigurationError("option %q: invalid regular expression: %v", "regex", err)
	}
	timeout, err := opts.Duration("timeout", probe.DefaultTimeout)
	if err != nil {
		return nil, err
	}
	return &Probe{
		name:    name,
		url:     url,
		pattern: pattern,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

func (p *Probe) Name() string { return p.name }

// Evaluate fetches URL and checks its body against the configured pattern.
// A network failure or non-2xx status is a TemporaryError: the remote
// endpoint may simply be unreachable this tick.
func (p *Probe) Evaluate(ctx context.Context, now time.Time) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return "", probe.NewPermanentError(p.name, fmt.Errorf("build request: %w", err))
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", probe.NewTemporaryError(p.name, fmt.Errorf("GET %s: %w", p.url, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", probe.NewTemporaryError(p.name, fmt.Errorf("GET %s: unexpected status %d", p.url, resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", probe.NewTemporaryError(p.name, fmt.Errorf("read response body: %w", err))
	}

	if p.pattern.Match(body) {
		return fmt.Sprintf("response from %s matched %q", p.url, p.pattern.String()), nil
	}
	return "", nil
}
