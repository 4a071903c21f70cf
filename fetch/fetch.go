// Package fetch retrieves the aggregates from the backend API.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	charts "github.com/midbel/titledash"
	"github.com/midbel/titledash/decode"
	"github.com/midbel/titledash/logger"
)

const (
	EndpointCombined = "/api/data"
	EndpointData     = "/data"
	EndpointRatings  = "/ratings"
	EndpointGenres   = "/genres"
	EndpointRuntime  = "/runtime-data"
	EndpointYears    = "/years"
	EndpointScores   = "/imdb-data/%d"
)

// ErrFetch marks every failure to obtain a usable aggregate: network error,
// unexpected status or undecodable body.
var ErrFetch = errors.New("fetch failed")

type Option func(*Client)

// WithRate limits the number of requests per second sent to the backend. A
// null or negative rate means no limit.
func WithRate(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Client) {
		c.logger = log
	}
}

func WithHeader(name, value string) Option {
	return func(c *Client) {
		c.Headers.Add(name, value)
	}
}

func WithBasicAuth(user, passwd string) Option {
	return func(c *Client) {
		c.Username = user
		c.Password = passwd
	}
}

type Client struct {
	Username string
	Password string
	Headers  http.Header

	base    *url.URL
	client  *http.Client
	limiter *rate.Limiter
	logger  *zap.SugaredLogger
}

func NewClient(base string, options ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return nil, errors.WithHint(errors.Wrapf(err, "backend url %q", base), "set backend.url to an absolute http(s) url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.WithHint(errors.Newf("backend url %q: unsupported scheme %q", base, u.Scheme), "set backend.url to an absolute http(s) url")
	}
	c := Client{
		Headers: make(http.Header),
		base:    u,
		client:  http.DefaultClient,
		logger:  logger.Named("fetch"),
	}
	for _, o := range options {
		o(&c)
	}
	return &c, nil
}

// Aggregate fetches one aggregate. The endpoint is resolved against the base
// url of the backend.
func (c *Client) Aggregate(ctx context.Context, endpoint string, options ...decode.Option) (charts.Aggregate, error) {
	var agg charts.Aggregate
	err := c.get(ctx, endpoint, func(r io.Reader) error {
		var err error
		agg, err = decode.NewDecoder(r, options...).Decode()
		return err
	})
	return agg, err
}

// Combined fetches the single document holding every aggregate of the
// dashboard, keyed graph1 to graph4.
func (c *Client) Combined(ctx context.Context) ([]decode.Section, error) {
	var list []decode.Section
	err := c.get(ctx, EndpointCombined, func(r io.Reader) error {
		var err error
		list, err = decode.NewDecoder(r).DecodeSections()
		return err
	})
	return list, err
}

// Years fetches the release years available for the score chart. Values that
// are not integers are skipped.
func (c *Client) Years(ctx context.Context) ([]int, error) {
	var values []any
	err := c.get(ctx, EndpointYears, func(r io.Reader) error {
		var err error
		values, err = decode.NewDecoder(r).DecodeValues()
		return err
	})
	if err != nil {
		return nil, err
	}
	var years []int
	for _, v := range values {
		if y, ok := toInt(v); ok {
			years = append(years, y)
		}
	}
	return years, nil
}

// Scores fetches the IMDb score of the titles released during year.
func (c *Client) Scores(ctx context.Context, year int) (charts.Aggregate, error) {
	return c.Aggregate(ctx, fmt.Sprintf(EndpointScores, year), decode.WithKey("title"), decode.WithValue("imdb_score"))
}

func (c *Client) get(ctx context.Context, endpoint string, read func(io.Reader) error) error {
	target := c.resolve(endpoint)
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return errors.Mark(errors.Wrapf(err, "GET %s", target), ErrFetch)
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "GET %s", target), ErrFetch)
	}
	for k, vs := range c.Headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if c.Username != "" {
		req.SetBasicAuth(c.Username, c.Password)
	}

	now := time.Now()
	res, err := c.client.Do(req)
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "GET %s", target), ErrFetch)
	}
	defer res.Body.Close()

	c.logger.Debugw("backend responded",
		logger.FieldEndpoint, endpoint,
		logger.FieldStatus, res.StatusCode,
		logger.FieldDurationMS, time.Since(now).Milliseconds(),
	)
	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		io.Copy(io.Discard, res.Body)
		return errors.Mark(errors.Newf("GET %s: unexpected status %s", target, res.Status), ErrFetch)
	}
	if err := read(res.Body); err != nil {
		return errors.Mark(errors.Wrapf(err, "GET %s: decode", target), ErrFetch)
	}
	return nil
}

func (c *Client) resolve(endpoint string) string {
	u := *c.base
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimPrefix(endpoint, "/")
	return u.String()
}

func toInt(v any) (int, bool) {
	var str string
	switch v := v.(type) {
	case string:
		str = strings.TrimSpace(v)
	case fmt.Stringer:
		str = v.String()
	default:
		return 0, false
	}
	n, err := strconv.Atoi(str)
	if err != nil {
		f, err := strconv.ParseFloat(str, 64)
		if err != nil || f != float64(int(f)) {
			return 0, false
		}
		return int(f), true
	}
	return n, true
}
