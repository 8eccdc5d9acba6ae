// Package ncbi implements ports.AlignmentSearcher over the NCBI BLAST URL API.
package ncbi

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_sequence_tools/internal/core/domain"
	"github.com/baditaflorin/go_sequence_tools/internal/ports"
)

// Default configuration
const (
	DefaultBaseURL        = "https://blast.ncbi.nlm.nih.gov/Blast.cgi"
	DefaultProgram        = "blastn"
	DefaultDatabase       = "nt"
	DefaultHitlistSize    = 1
	DefaultPollInterval   = time.Minute
	DefaultMaxPoll        = 2 * time.Minute
	DefaultRequestTimeout = 2 * time.Minute
	DefaultTool           = "go_sequence_tools"
)

var (
	ridPattern    = regexp.MustCompile(`RID = (\S+)`)
	rtoePattern   = regexp.MustCompile(`RTOE = (\d+)`)
	statusPattern = regexp.MustCompile(`Status=(\w+)`)
	hitsPattern   = regexp.MustCompile(`ThereAreHits=(\w+)`)
)

// Config holds settings for the BLAST client.
type Config struct {
	BaseURL     string
	Program     string
	Database    string
	HitlistSize int
	// PollInterval is the shortest wait between status checks of one RID.
	// NCBI asks clients not to poll more than once a minute.
	PollInterval time.Duration
	// MaxPollInterval caps the doubling wait between status checks.
	MaxPollInterval time.Duration
	// RTOEUnit converts the advertised RTOE into a duration.
	RTOEUnit time.Duration
	// RequestTimeout bounds each HTTP round trip when ctx has no earlier deadline.
	RequestTimeout time.Duration
	Tool           string
	Email          string
}

// DefaultConfig returns a configuration for the public NCBI service.
func DefaultConfig() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		Program:        DefaultProgram,
		Database:       DefaultDatabase,
		HitlistSize:    DefaultHitlistSize,
		PollInterval:    DefaultPollInterval,
		MaxPollInterval: DefaultMaxPoll,
		RTOEUnit:        time.Second,
		RequestTimeout:  DefaultRequestTimeout,
		Tool:            DefaultTool,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base URL is required")
	}
	if c.Program == "" || c.Database == "" {
		return errors.New("program and database are required")
	}
	if c.HitlistSize < 1 {
		return errors.New("hitlist size must be at least 1")
	}
	if c.PollInterval <= 0 {
		return errors.New("poll interval must be greater than 0")
	}
	if c.MaxPollInterval < c.PollInterval {
		return errors.New("max poll interval must not be below the poll interval")
	}
	if c.RTOEUnit <= 0 {
		return errors.New("RTOE unit must be greater than 0")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be greater than 0")
	}
	return nil
}

// Client submits queries to BLAST and waits for their results.
type Client struct {
	config Config
	http   *fasthttp.Client
	logger ports.Logger
}

// NewClient creates a BLAST client. A nil httpClient gets a default fasthttp client.
func NewClient(config Config, httpClient *fasthttp.Client, logger ports.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "go_sequence_tools",
			MaxIdleConnDuration: 30 * time.Second,
		}
	}
	return &Client{config: config, http: httpClient, logger: logger}, nil
}

// Search submits seq, polls until the search finishes and returns its hits.
func (c *Client) Search(ctx context.Context, seq string) ([]domain.AlignmentHit, error) {
	startTime := time.Now()

	rid, rtoe, err := c.submit(ctx, seq)
	if err != nil {
		return nil, err
	}
	c.logger.Info("BLAST search submitted", "rid", rid, "rtoe_seconds", rtoe)

	hasHits, err := c.waitReady(ctx, rid, rtoe)
	if err != nil {
		return nil, err
	}
	if !hasHits {
		c.logger.Info("BLAST search finished without hits", "rid", rid, "duration", time.Since(startTime))
		return nil, nil
	}

	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)
	args.Set("CMD", "Get")
	args.Set("RID", rid)
	args.Set("FORMAT_TYPE", "XML")
	args.Set("ALIGNMENTS", strconv.Itoa(c.config.HitlistSize))
	args.Set("DESCRIPTIONS", strconv.Itoa(c.config.HitlistSize))

	body, err := c.get(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("fetching results for %s: %w", rid, err)
	}

	hits, err := ParseXML(body)
	if err != nil {
		return nil, err
	}
	c.logger.Info("BLAST search completed",
		"rid", rid,
		"hits", len(hits),
		"duration", time.Since(startTime),
	)
	return hits, nil
}

// submit sends CMD=Put and returns the request id and estimated wait.
func (c *Client) submit(ctx context.Context, seq string) (string, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.config.BaseURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/x-www-form-urlencoded")

	args := req.PostArgs()
	args.Set("CMD", "Put")
	args.Set("PROGRAM", c.config.Program)
	args.Set("DATABASE", c.config.Database)
	args.Set("QUERY", seq)
	args.Set("HITLIST_SIZE", strconv.Itoa(c.config.HitlistSize))
	if c.config.Tool != "" {
		args.Set("TOOL", c.config.Tool)
	}
	if c.config.Email != "" {
		args.Set("EMAIL", c.config.Email)
	}

	if err := c.do(ctx, req, resp); err != nil {
		return "", 0, fmt.Errorf("submitting query: %w", err)
	}

	body := resp.Body()
	m := ridPattern.FindSubmatch(body)
	if m == nil {
		return "", 0, errors.New("submitting query: no RID in response")
	}
	rtoe := 0
	if t := rtoePattern.FindSubmatch(body); t != nil {
		rtoe, _ = strconv.Atoi(string(t[1]))
	}
	return string(m[1]), rtoe, nil
}

// waitReady polls the search status until it is READY and reports whether
// the search produced hits. The first check waits out the advertised RTOE,
// later checks back off from PollInterval up to MaxPollInterval.
func (c *Client) waitReady(ctx context.Context, rid string, rtoe int) (bool, error) {
	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)
	args.Set("CMD", "Get")
	args.Set("FORMAT_OBJECT", "SearchInfo")
	args.Set("RID", rid)

	wait := time.Duration(rtoe) * c.config.RTOEUnit
	if wait < c.config.PollInterval {
		wait = c.config.PollInterval
	}
	next := c.config.PollInterval

	for polls := 1; ; polls++ {
		if err := sleep(ctx, wait); err != nil {
			return false, err
		}
		wait = next
		if next *= 2; next > c.config.MaxPollInterval {
			next = c.config.MaxPollInterval
		}

		body, err := c.get(ctx, args)
		if err != nil {
			return false, fmt.Errorf("polling %s: %w", rid, err)
		}

		m := statusPattern.FindSubmatch(body)
		if m == nil {
			return false, fmt.Errorf("polling %s: no status in response", rid)
		}
		status := string(m[1])
		c.logger.Debug("BLAST search status", "rid", rid, "status", status, "polls", polls)

		switch status {
		case "WAITING":
			continue
		case "READY":
			h := hitsPattern.FindSubmatch(body)
			return h != nil && string(h[1]) == "yes", nil
		case "FAILED":
			return false, fmt.Errorf("search %s failed on the server", rid)
		case "UNKNOWN":
			return false, fmt.Errorf("search %s expired or is unknown", rid)
		default:
			return false, fmt.Errorf("search %s returned unexpected status %q", rid, status)
		}
	}
}

// get performs a GET with the given query args and returns a copy of the body.
func (c *Client) get(ctx context.Context, args *fasthttp.Args) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.config.BaseURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.URI().SetQueryStringBytes(args.QueryString())

	if err := c.do(ctx, req, resp); err != nil {
		return nil, err
	}
	return append([]byte(nil), resp.Body()...), nil
}

// do executes req with a deadline taken from ctx or the configured timeout,
// whichever comes first, and rejects non-200 responses.
func (c *Client) do(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	deadline := time.Now().Add(c.config.RequestTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	if code := resp.StatusCode(); code != fasthttp.StatusOK {
		return fmt.Errorf("unexpected HTTP status %d", code)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
