package items

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gonewx/cinereel/pkg/components"
)

// NowPlayingPath 后端的“正在上映”接口路径
const NowPlayingPath = "/filmes/now-playing"

// HTTPSource 从后端接口读取影片列表
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
	// Attempts 最多请求次数（含首次），<= 0 时为 3
	Attempts int
	// Backoff 首次重试前的等待时间，<= 0 时为 500ms
	Backoff time.Duration
	Limit   int
}

// NewHTTPSource 创建指向 baseURL 的数据源（末尾的 / 会被去掉）
func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// filmRecord 接口返回的单条记录，同时兼容葡语和 TMDB 字段名
type filmRecord struct {
	Titulo       *string  `json:"titulo"`
	Title        *string  `json:"title"`
	Poster       *string  `json:"poster"`
	BackdropPath *string  `json:"backdrop_path"`
	Nota         *float64 `json:"nota"`
	VoteAverage  *float64 `json:"vote_average"`
	Sinopse      *string  `json:"sinopse"`
	Overview     *string  `json:"overview"`
	Trailer      string   `json:"trailer"`
}

func (r filmRecord) item() components.Item {
	return components.Item{
		Key:      firstString(r.Titulo, r.Title),
		ImageRef: firstString(r.Poster, r.BackdropPath),
		Rating:   firstFloat(r.Nota, r.VoteAverage),
		Synopsis: firstString(r.Sinopse, r.Overview),
		Trailer:  r.Trailer,
	}
}

// Load 请求 NowPlayingPath；网络错误和 5xx 会按退避策略重试
func (s *HTTPSource) Load(ctx context.Context) ([]components.Item, error) {
	attempts := s.Attempts
	if attempts <= 0 {
		attempts = 3
	}
	backoff := s.Backoff
	if backoff <= 0 {
		backoff = 500 * time.Millisecond
	}

	var records []filmRecord
	err := withBackoff(ctx, attempts, backoff, func() error {
		var err error
		records, err = s.fetch(ctx)
		if err != nil {
			log.Debug("now-playing request failed", "url", s.BaseURL+NowPlayingPath, "err", err)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load now-playing films: %w", err)
	}

	out := make([]components.Item, 0, len(records))
	for _, r := range records {
		out = append(out, r.item())
	}
	if len(out) == 0 {
		return nil, ErrNoItems
	}
	return normalize(out, s.Limit), nil
}

func (s *HTTPSource) fetch(ctx context.Context) ([]filmRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+NowPlayingPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var records []filmRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return records, nil
}

func firstString(values ...*string) string {
	for _, v := range values {
		if v != nil && *v != "" {
			return *v
		}
	}
	return ""
}

func firstFloat(values ...*float64) float64 {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}
