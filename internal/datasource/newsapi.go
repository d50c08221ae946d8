package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/seenimoa/newspulse/pkg/models"
)

const defaultNewsAPIBaseURL = "https://newsapi.org/v2"

// NewsAPI implements article fetching from newsapi.org's /v2/everything
// endpoint.
type NewsAPI struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *RateLimiter
}

// NewsAPIOption configures the NewsAPI source.
type NewsAPIOption func(*NewsAPI)

// WithNewsAPIBaseURL overrides the API base URL. Useful for testing.
func WithNewsAPIBaseURL(baseURL string) NewsAPIOption {
	return func(s *NewsAPI) { s.baseURL = baseURL }
}

// WithNewsAPIHTTPClient sets a custom HTTP client.
func WithNewsAPIHTTPClient(client *http.Client) NewsAPIOption {
	return func(s *NewsAPI) { s.client = client }
}

// NewNewsAPI creates a NewsAPI source. The key may be empty; fetches
// will then fail with ErrNoAPIKey.
func NewNewsAPI(apiKey string, opts ...NewsAPIOption) *NewsAPI {
	s := &NewsAPI{
		apiKey:  apiKey,
		baseURL: defaultNewsAPIBaseURL,
		client:  HTTPClient,
		limiter: NewRateLimiter(5, time.Second),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the data source name.
func (s *NewsAPI) Name() string { return "NewsAPI" }

// --- Wire format ---

type newsAPIResponse struct {
	Status       string           `json:"status"`
	TotalResults int              `json:"totalResults"`
	Code         string           `json:"code"`
	Message      string           `json:"message"`
	Articles     []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// FetchArticles queries /everything sorted by publication time.
func (s *NewsAPI) FetchArticles(ctx context.Context, q Query) ([]models.Article, error) {
	if s.apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", q.Query)
	if q.Language != "" {
		params.Set("language", q.Language)
	}
	if !q.From.IsZero() {
		params.Set("from", q.From.UTC().Format("2006-01-02T15:04:05"))
	}
	params.Set("sortBy", "publishedAt")
	if q.PageSize > 0 {
		params.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	params.Set("apiKey", s.apiKey)

	body, _, err := doGet(ctx, s.client, s.baseURL+"/everything?"+params.Encode(), nil)
	if err != nil {
		var httpErr *ErrHTTP
		if errors.As(err, &httpErr) {
			switch httpErr.StatusCode {
			case http.StatusUnauthorized:
				return nil, fmt.Errorf("newsapi: unauthorized: %w", ErrNoAPIKey)
			case http.StatusTooManyRequests:
				return nil, fmt.Errorf("newsapi: %w", ErrRateLimited)
			}
		}
		return nil, err
	}
	defer body.Close()

	var resp newsAPIResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode newsapi response: %w", err)
	}
	if resp.Status != "ok" {
		return nil, fmt.Errorf("newsapi error %s: %s", resp.Code, resp.Message)
	}

	articles := make([]models.Article, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		art := models.Article{
			Title:       a.Title,
			Source:      a.Source.Name,
			URL:         a.URL,
			Description: a.Description,
		}
		// publishedAt is RFC 3339 when present; a missing or odd value
		// leaves the zero time rather than failing the whole page.
		if t, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
			art.PublishedAt = t
		}
		articles = append(articles, art)
	}
	return articles, nil
}
