package loader

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/user/jobboard/internal/config"
	"github.com/user/jobboard/internal/posting"
	"go.uber.org/zap"
)

type Options struct {
	Endpoint string
	Token    config.Secret
	// Timeout bounds the whole request. Zero means no timeout.
	Timeout time.Duration
	// HTTPClient overrides the default client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// OptionsFromConfig builds loader options from the source section.
func OptionsFromConfig(cfg config.SourceConfig) Options {
	return Options{
		Endpoint: cfg.Endpoint,
		Token:    cfg.Token,
		Timeout:  cfg.Timeout,
	}
}

// Loader retrieves the postings collection from the remote record store.
type Loader struct {
	client   *http.Client
	endpoint string
	token    config.Secret
	logger   *zap.Logger
}

func New(opts Options, logger *zap.Logger) *Loader {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		client:   client,
		endpoint: opts.Endpoint,
		token:    opts.Token,
		logger:   logger,
	}
}

type recordsResponse struct {
	Records []posting.Record `json:"records"`
}

// Fetch performs a single GET against the endpoint. It does not retry.
// Every error it returns is a *FetchError.
func (l *Loader) Fetch(ctx context.Context) ([]posting.Posting, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint, nil)
	if err != nil {
		return nil, transport("creating request", err)
	}
	req.Header.Set("Accept", "application/json")
	if l.token != "" {
		req.Header.Set("Authorization", "Bearer "+l.token.Reveal())
	}

	l.logger.Debug("fetching postings", zap.String("url", l.endpoint))

	resp, err := l.client.Do(req)
	if err != nil {
		l.logger.Error("failed to execute request", zap.Error(err))
		return nil, transport("executing request", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			l.logger.Warn("failed to close response body", zap.Error(cerr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		l.logger.Error("unexpected status code", zap.Int("status_code", resp.StatusCode))
		return nil, httpStatus(resp.StatusCode)
	}

	var body recordsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		l.logger.Error("failed to decode response", zap.Error(err))
		return nil, transport("decoding response", err)
	}

	postings := posting.FromRecords(body.Records)
	l.logger.Info("fetched postings", zap.Int("count", len(postings)))
	return postings, nil
}
