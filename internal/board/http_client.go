package board

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type httpClient struct {
	cfg         Config
	client      *http.Client
	mu          sync.Mutex
	lastRequest time.Time

	// Session cache: the item snapshot and audit log are re-requested on
	// every summary recompute, but the board rarely changes within minutes.
	cache      map[string]*sessionEntry
	cacheMutex sync.RWMutex
}

type sessionEntry struct {
	value      interface{}
	expiration time.Time
}

func newHTTPClient(cfg Config) Client {
	if cfg.RequestDelay == 0 {
		cfg.RequestDelay = 2 * time.Second
	}
	return &httpClient{
		cfg: cfg,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		cache: make(map[string]*sessionEntry),
	}
}

func (c *httpClient) getFromCache(key string) (interface{}, bool) {
	c.cacheMutex.RLock()
	defer c.cacheMutex.RUnlock()

	entry, ok := c.cache[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiration) {
		return nil, false
	}
	log.Debug().Str("key", key).Msg("Board session cache hit")
	return entry.value, true
}

func (c *httpClient) addToCache(key string, value interface{}, ttl time.Duration) {
	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()
	c.cache[key] = &sessionEntry{value: value, expiration: time.Now().Add(ttl)}
}

func (c *httpClient) throttle() {
	c.mu.Lock()
	defer c.mu.Unlock()

	elapsed := time.Since(c.lastRequest)
	if elapsed < c.cfg.RequestDelay {
		wait := c.cfg.RequestDelay - elapsed
		log.Debug().Dur("wait", wait).Msg("Throttling board request")
		time.Sleep(wait)
	}
	c.lastRequest = time.Now()
}

func (c *httpClient) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	c.throttle()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("board authentication failed (%d), check BOARD_TOKEN", resp.StatusCode)
		case http.StatusTooManyRequests:
			return fmt.Errorf("board rate limit exceeded (429)")
		default:
			return fmt.Errorf("board API returned status %d", resp.StatusCode)
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode board response: %w", err)
	}
	return nil
}

func (c *httpClient) FetchItems(ctx context.Context) ([]Item, error) {
	cacheKey := "items:" + c.cfg.BoardID
	if val, ok := c.getFromCache(cacheKey); ok {
		return val.([]Item), nil
	}

	u := fmt.Sprintf("%s/boards/%s/items", c.cfg.BaseURL, url.PathEscape(c.cfg.BoardID))
	log.Info().Str("board", c.cfg.BoardID).Msg("Requesting item snapshot from board")

	var resp ItemsResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(resp.Items))
	for _, dto := range resp.Items {
		items = append(items, MapItem(dto))
	}

	c.addToCache(cacheKey, items, 5*time.Minute)
	return items, nil
}

func (c *httpClient) FetchMoveEvents(ctx context.Context, limit int) ([]MoveEvent, error) {
	if limit <= 0 {
		limit = 500
	}

	cacheKey := fmt.Sprintf("activity:%s:%d", c.cfg.BoardID, limit)
	if val, ok := c.getFromCache(cacheKey); ok {
		return val.([]MoveEvent), nil
	}

	params := url.Values{}
	params.Set("limit", fmt.Sprintf("%d", limit))
	u := fmt.Sprintf("%s/boards/%s/activity?%s", c.cfg.BaseURL, url.PathEscape(c.cfg.BoardID), params.Encode())
	log.Debug().Str("url", u).Msg("Requesting board audit log")

	var resp ActivityLogResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}

	moves := MapMoveEvents(resp.Events)
	c.addToCache(cacheKey, moves, 5*time.Minute)
	return moves, nil
}

func (c *httpClient) FetchItemUpdateCount(ctx context.Context, itemID string) (int, error) {
	u := fmt.Sprintf("%s/items/%s/updates/count", c.cfg.BaseURL, url.PathEscape(itemID))

	var resp UpdateCountResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}
