package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/google/uuid"
	"github.com/uma-arai/sbcntr-restaurant-client/internal/common/config"
)

// レスポンスボディの読み込み上限
const maxResponseBytes = 4 << 20

// TokenSource は認証付きリクエストに載せるベアラートークンを返します
type TokenSource interface {
	Token() string
}

// APIClient は予約APIへのHTTPクライアントです
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// NewAPIClient は新しいAPIClientを作成します
// tracing が true の場合はHTTP呼び出しをX-Rayのサブセグメントとして記録します
func NewAPIClient(cfg config.APIConfig, tokens TokenSource, tracing bool) *APIClient {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	if tracing {
		httpClient = xray.Client(httpClient)
	}
	return &APIClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		tokens:     tokens,
	}
}

type apiRequest struct {
	op     string
	method string
	path   string
	query  url.Values
	body   interface{}
	auth   bool

	// 0 以外の場合、このステータス以外は失敗として扱う
	expectStatus int
}

// messageResponse は削除・更新APIが返す { "message": "..." } です
type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *APIClient) do(ctx context.Context, r apiRequest, out interface{}) error {
	endpoint := c.baseURL + r.path
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("%s: failed to encode request: %w", r.op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, body)
	if err != nil {
		return fmt.Errorf("%s: failed to build request: %w", r.op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.auth && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: r.op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &TransportError{Op: r.op, Err: err}
	}

	failed := resp.StatusCode < 200 || resp.StatusCode > 299
	if r.expectStatus != 0 {
		failed = resp.StatusCode != r.expectStatus
	}
	if failed {
		apiErr := &APIError{Op: r.op, StatusCode: resp.StatusCode}
		var e errorResponse
		if json.Unmarshal(data, &e) == nil {
			apiErr.Message = e.Error
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", r.op, err)
	}
	return nil
}
