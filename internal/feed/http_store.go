package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

type httpStore struct {
	cfg    Config
	client *http.Client
}

func newHTTPStore(cfg Config) Store {
	return &httpStore{
		cfg: cfg,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (s *httpStore) fetch(ctx context.Context, path string, q Query, out interface{}) error {
	params := url.Values{}
	if !q.From.IsZero() {
		params.Set("from", q.From.UTC().Format(time.RFC3339))
	}
	if !q.To.IsZero() {
		params.Set("to", q.To.UTC().Format(time.RFC3339))
	}
	if q.Limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", q.Limit))
	}

	u := s.cfg.BaseURL + path
	if encoded := params.Encode(); encoded != "" {
		u += "?" + encoded
	}
	log.Debug().Str("url", u).Msg("Requesting activity records")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	if s.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.Token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return fmt.Errorf("records API authentication failed (%d), check FEED_TOKEN", resp.StatusCode)
		}
		return fmt.Errorf("records API returned status %d for %s", resp.StatusCode, path)
	}

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("failed to decode records response: %w", err)
	}
	return nil
}

func (s *httpStore) FetchAnalyses(ctx context.Context, q Query) ([]AnalysisDTO, error) {
	var dtos []AnalysisDTO
	if err := s.fetch(ctx, "/analyses", q, &dtos); err != nil {
		return nil, err
	}
	return dtos, nil
}

func (s *httpStore) FetchReviews(ctx context.Context, q Query) ([]ReviewDTO, error) {
	var dtos []ReviewDTO
	if err := s.fetch(ctx, "/reviews", q, &dtos); err != nil {
		return nil, err
	}
	return dtos, nil
}

func (s *httpStore) FetchFOIAAnalyses(ctx context.Context, q Query) ([]FOIAAnalysisDTO, error) {
	var dtos []FOIAAnalysisDTO
	if err := s.fetch(ctx, "/foia-analyses", q, &dtos); err != nil {
		return nil, err
	}
	return dtos, nil
}

func (s *httpStore) FetchChatSessions(ctx context.Context, q Query) ([]ChatSessionDTO, error) {
	var dtos []ChatSessionDTO
	if err := s.fetch(ctx, "/chat-sessions", q, &dtos); err != nil {
		return nil, err
	}
	return dtos, nil
}
