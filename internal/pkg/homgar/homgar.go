package homgar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/anicoll/homgar-integration/internal/pkg/cache"
	"github.com/anicoll/homgar-integration/internal/pkg/config"
	"github.com/anicoll/homgar-integration/internal/pkg/model"
)

// APIError is returned when the HomGar API responds with a non-zero code.
type APIError struct {
	Code int
	Msg  string
}

func (e *APIError) Error() string {
	s := fmt.Sprintf("homgar api returned code %d", e.Code)
	if e.Msg != "" {
		s += fmt.Sprintf(" (%q)", e.Msg)
	}
	return s
}

type service struct {
	cfg    *config.HomgarConfig
	client *http.Client
	cache  *cache.Cache
	logger *zap.Logger
}

func New(cfg *config.HomgarConfig, credentials *cache.Cache) *service {
	return &service{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		cache:  credentials,
		logger: zap.L(), // returns the global logger.
	}
}

// requestJSON issues one API call, unwraps the response envelope and decodes
// its data payload into out (which may be nil for calls without a payload).
func (s *service) requestJSON(ctx context.Context, method, path string, query url.Values, body any, withAuth bool, out any) error {
	u := s.cfg.APIBase + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("lang", "en")
	req.Header.Set("appCode", "1")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withAuth {
		req.Header.Set("auth", s.cache.Token)
	}

	s.logger.Debug("sending request", zap.String("method", method), zap.String("path", path))
	res, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute %s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	var envelope model.ParsedResult[json.RawMessage]
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	if envelope.Code != 0 {
		return &APIError{Code: envelope.Code, Msg: envelope.Msg}
	}
	if out == nil || envelope.Data == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to decode %s data payload: %w", path, err)
	}
	return nil
}

func (s *service) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	return s.requestJSON(ctx, http.MethodGet, path, query, nil, true, out)
}
