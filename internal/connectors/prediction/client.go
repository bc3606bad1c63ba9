package prediction

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"

	"go-meddevice-intelligence-ui/internal/config"
)

const (
	DefaultMockDelayMin = 1500 * time.Millisecond
	DefaultMockDelayMax = 2500 * time.Millisecond
)

// Mode names used in logs and metrics.
const (
	ModeLive = "live"
	ModeMock = "mock"
)

// Client performs one typed exchange with the prediction API per call. When
// mock data is enabled it answers from a Generator and never dials out.
type Client struct {
	cfg       config.Config
	http      *http.Client
	mock      bool
	generator *Generator
	delayMin  time.Duration
	delayMax  time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the transport used in live mode.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithGenerator(g *Generator) Option {
	return func(c *Client) {
		if g != nil {
			c.generator = g
		}
	}
}

// WithMockDelay sets the artificial latency window of mocked calls.
func WithMockDelay(lo, hi time.Duration) Option {
	return func(c *Client) {
		c.delayMin, c.delayMax = lo, hi
	}
}

func NewClient(cfg config.Config, opts ...Option) *Client {
	c := &Client{
		cfg:      cfg,
		http:     &http.Client{},
		mock:     cfg.Features.EnableMockData,
		delayMin: DefaultMockDelayMin,
		delayMax: DefaultMockDelayMax,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.mock && c.generator == nil {
		c.generator = NewGenerator()
	}
	return c
}

func (c *Client) Mode() string {
	if c.mock {
		return ModeMock
	}
	return ModeLive
}

// Endpoints returns the resolved upstream URL of every exchange.
func (c *Client) Endpoints() map[string]string {
	e := c.cfg.API.Endpoints
	return map[string]string{
		"pre_multiclass": c.cfg.APIURL(e.PreMulticlass),
		"post_binary":    c.cfg.APIURL(e.PostBinary),
		"status_summary": c.cfg.APIURL(e.StatusSummary),
	}
}

func (c *Client) PredictPreMulticlass(ctx context.Context, req PreMulticlassRequest) (*PreMulticlassResponse, error) {
	if c.mock {
		if err := c.wait(ctx); err != nil {
			return nil, err
		}
		resp := c.generator.PreMulticlass(req)
		return &resp, nil
	}

	var out PreMulticlassResponse
	endpoint := c.cfg.API.Endpoints.PreMulticlass
	if err := c.post(ctx, endpoint, req, &out); err != nil {
		return nil, err
	}
	if err := validateResponse(endpoint, out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PredictPostBinary(ctx context.Context, req PostBinaryRequest) (*PostBinaryResponse, error) {
	if c.mock {
		if err := c.wait(ctx); err != nil {
			return nil, err
		}
		resp := c.generator.PostBinary(req)
		return &resp, nil
	}

	var out PostBinaryResponse
	endpoint := c.cfg.API.Endpoints.PostBinary
	if err := c.post(ctx, endpoint, req, &out); err != nil {
		return nil, err
	}
	if err := validateResponse(endpoint, out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StatusSummary returns the aggregate event statistics for one device. A
// domain error such as "Device not found" comes back in the response, not as
// a Go error.
func (c *Client) StatusSummary(ctx context.Context, req StatusSummaryRequest) (*StatusSummaryResponse, error) {
	if c.mock {
		if err := c.wait(ctx); err != nil {
			return nil, err
		}
		resp := c.generator.StatusSummary(req)
		return &resp, nil
	}

	var out StatusSummaryResponse
	endpoint := c.cfg.API.Endpoints.StatusSummary
	if err := c.post(ctx, endpoint, req, &out); err != nil {
		return nil, err
	}
	if out.Failed() {
		return &out, nil
	}
	if err := validateResponse(endpoint, out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) wait(ctx context.Context) error {
	d := c.generator.Delay(c.delayMin, c.delayMax)
	log.WithField("delay", d).Debug("serving mock prediction response")
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (c *Client) post(ctx context.Context, endpoint string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrapf(err, "encode %s request", endpoint)
	}

	url := c.cfg.APIURL(endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrapf(err, "build %s request", endpoint)
	}
	req.Header = c.cfg.APIHeaders()

	log.WithField("url", url).Debug("calling prediction API")
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "POST %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		blob, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &RequestFailedError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			StatusText: statusText(resp),
			Body:       strings.TrimSpace(string(blob)),
		}
	}

	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "read %s response", endpoint)
	}
	if err := json.Unmarshal(blob, out); err != nil {
		return errors.Mark(errors.Wrapf(err, "decode %s response", endpoint), ErrInvalidResponse)
	}
	if r, ok := out.(keyed); ok {
		if missing := missingKeys(blob, r.requiredKeys()); len(missing) > 0 {
			return errors.Mark(
				errors.Newf("%s response: missing %s", endpoint, strings.Join(missing, ", ")),
				ErrInvalidResponse,
			)
		}
	}
	return nil
}

// keyed is implemented by responses whose fields must be present on the wire;
// a zero value after decoding cannot tell an omitted field from a real 0.
type keyed interface {
	requiredKeys() []string
}

// missingKeys reports which dotted paths are absent or null in blob.
func missingKeys(blob []byte, paths []string) []string {
	var missing []string
	for _, path := range paths {
		if !hasKey(blob, strings.Split(path, ".")) {
			missing = append(missing, path)
		}
	}
	return missing
}

func hasKey(blob []byte, path []string) bool {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(blob, &obj); err != nil {
		return false
	}
	raw, ok := obj[path[0]]
	if !ok || string(bytes.TrimSpace(raw)) == "null" {
		return false
	}
	if len(path) == 1 {
		return true
	}
	return hasKey(raw, path[1:])
}

// statusText strips the numeric prefix from resp.Status, falling back to the
// canonical reason phrase.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
