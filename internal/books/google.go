package books

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/iudanet/bookshelf/internal/models"
)

// DefaultBaseURL адрес Google Books volumes API
const DefaultBaseURL = "https://www.googleapis.com/books/v1"

// Client представляет HTTP клиент для Google Books volumes API
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый клиент каталога книг
// baseURL переопределяется в тестах, пустая строка = DefaultBaseURL
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// volumesResponse представляет ответ volumes API (только нужные поля)
type volumesResponse struct {
	Items []struct {
		ID         string `json:"id"`
		VolumeInfo struct {
			Title       string   `json:"title"`
			Authors     []string `json:"authors"`
			Description string   `json:"description"`
			InfoLink    string   `json:"infoLink"`
			ImageLinks  struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// Search ищет книги по запросу и возвращает не более limit результатов
func (c *Client) Search(ctx context.Context, query string, limit int) ([]models.SavedBook, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", fmt.Sprintf("%d", limit))

	reqURL := fmt.Sprintf("%s/volumes?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("books api returned status %d", resp.StatusCode)
	}

	var volumes volumesResponse
	if err := json.Unmarshal(body, &volumes); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	books := make([]models.SavedBook, 0, len(volumes.Items))
	for _, item := range volumes.Items {
		authors := item.VolumeInfo.Authors
		if authors == nil {
			authors = []string{}
		}
		books = append(books, models.SavedBook{
			BookID:      item.ID,
			Title:       item.VolumeInfo.Title,
			Authors:     authors,
			Description: item.VolumeInfo.Description,
			Image:       item.VolumeInfo.ImageLinks.Thumbnail,
			Link:        item.VolumeInfo.InfoLink,
		})
	}

	return books, nil
}
