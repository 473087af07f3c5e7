package liquipedia

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/rl-fantasy/internal/domain/schedule"
	"github.com/riskibarqy/rl-fantasy/internal/platform/logging"
	"github.com/riskibarqy/rl-fantasy/internal/platform/resilience"
	"github.com/riskibarqy/rl-fantasy/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

const (
	defaultBaseURL   = "https://liquipedia.net/rocketleague/api.php"
	defaultPage      = "Icelandic_Esports_League/Season_11/League_Play"
	defaultUserAgent = "RLISFantasy/1.0 (https://rlis-fantasy.vercel.app; contact@rlis.is)"
	defaultTimeout   = 10 * time.Second
	maxResponseSize  = 4 << 20
)

var errLiquipediaTransient = crerr.New("liquipedia transient failure")

type ClientConfig struct {
	BaseURL        string
	Page           string
	UserAgent      string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads league-play match results from the Liquipedia MediaWiki API.
type Client struct {
	httpClient *fasthttp.Client
	baseURL    string
	page       string
	userAgent  string
	timeout    time.Duration
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	flight     resilience.Flight[[]byte]
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	page := strings.TrimSpace(cfg.Page)
	if page == "" {
		page = defaultPage
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		httpClient: &fasthttp.Client{
			Name:                userAgent,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxResponseSize,
		},
		baseURL:   baseURL,
		page:      page,
		userAgent: userAgent,
		timeout:   timeout,
		logger:    logger,
		breaker:   resilience.NewCircuitBreaker(cfg.CircuitBreaker),
	}
}

type parseEnvelope struct {
	Parse *struct {
		Wikitext struct {
			Text string `json:"*"`
		} `json:"wikitext"`
	} `json:"parse"`
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

// FetchResults returns every finished match on the configured page.
func (c *Client) FetchResults(ctx context.Context) ([]schedule.Result, error) {
	wikitext, err := c.fetchWikitext(ctx)
	if err != nil {
		return nil, err
	}

	results := ParseResults(wikitext)
	c.logger.DebugContext(ctx, "liquipedia results parsed", "page", c.page, "matches", len(results))
	return results, nil
}

func (c *Client) fetchWikitext(ctx context.Context) (string, error) {
	fullURL := c.parseURL()
	raw, _, err := c.flight.Do(ctx, fullURL, func(ctx context.Context) ([]byte, error) {
		var body []byte
		runErr := c.breaker.Run(func() error {
			var reqErr error
			body, reqErr = c.executeRequest(ctx, fullURL)
			return reqErr
		}, isTransient)
		return body, runErr
	})
	if crerr.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "liquipedia circuit breaker rejected request", "state", c.breaker.State())
		return "", fmt.Errorf("%w: match results provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	if err != nil {
		return "", err
	}

	var envelope parseEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return "", crerr.Wrap(err, "decode liquipedia payload")
	}
	if envelope.Error != nil {
		return "", crerr.Newf("liquipedia api error code=%s info=%s", envelope.Error.Code, envelope.Error.Info)
	}
	if envelope.Parse == nil || strings.TrimSpace(envelope.Parse.Wikitext.Text) == "" {
		return "", crerr.Newf("liquipedia page %s has no wikitext", c.page)
	}
	return envelope.Parse.Wikitext.Text, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetUserAgent(c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		c.logger.WarnContext(ctx, "liquipedia request failed", "url", fullURL, "error", err)
		return nil, crerr.Mark(crerr.Wrap(err, "send liquipedia request"), errLiquipediaTransient)
	}

	status := resp.StatusCode()
	body, err := resp.BodyUncompressed()
	if err != nil {
		return nil, crerr.Wrap(err, "read liquipedia response body")
	}
	if status < fasthttp.StatusOK || status >= fasthttp.StatusMultipleChoices {
		err := crerr.Newf("liquipedia status=%d body=%s", status, abbreviateBody(body))
		if isRetryableStatus(status) {
			err = crerr.Mark(err, errLiquipediaTransient)
		}
		return nil, err
	}

	return append([]byte(nil), body...), nil
}

func (c *Client) parseURL() string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	values := url.Values{}
	values.Set("action", "parse")
	values.Set("page", c.page)
	values.Set("prop", "wikitext")
	values.Set("format", "json")

	_, _ = buf.WriteString(c.baseURL)
	_ = buf.WriteByte('?')
	_, _ = buf.WriteString(values.Encode())
	return buf.String()
}

func isTransient(err error) bool {
	return crerr.Is(err, errLiquipediaTransient)
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= fasthttp.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	const limit = 256
	text := strings.TrimSpace(string(body))
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
