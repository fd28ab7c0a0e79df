package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultTimeout はクライアントの既定タイムアウト。
	DefaultTimeout = 30 * time.Second
	// MaxResponseBytes は読み取るレスポンスボディの上限。
	MaxResponseBytes = 1 << 20
)

// ErrResponseTooLarge は2xxレスポンスのボディがMaxResponseBytesを超えた場合のエラー。
var ErrResponseTooLarge = errors.New("レスポンスボディが大きすぎる")

// Client は外部APIとの通信用のHTTPクライアント。
// タイムアウトと全リクエストに付与する固定ヘッダーを持つ。
type Client struct {
	// httpClient は内部で使用するHTTPクライアント。
	httpClient *http.Client
	// baseURL は接続先APIのベースURL。
	baseURL string
	// header は全リクエストに付与するヘッダー。
	header http.Header
}

// Option はClientの設定を変更する関数。
type Option func(*Client)

// WithTimeout はリクエスト全体のタイムアウトを設定する。
// 0以下の値を指定した場合はDefaultTimeoutのままとする。
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHeader は全リクエストに付与するヘッダーを追加する。
// 値は加工せずにそのまま送信される。
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.header.Set(key, value)
	}
}

// New は新しいHTTPクライアントを生成する。
// baseURLには接続先APIのベースURL（例: "https://api.example.com"）を指定する。
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		baseURL: baseURL,
		header:  make(http.Header),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StatusError は2xx以外のレスポンスを受け取った場合のエラー。
type StatusError struct {
	// StatusCode はレスポンスのステータスコード。
	StatusCode int
	// Body はレスポンスボディ。MaxResponseBytesで切り詰められる。
	Body []byte
}

// errorBodyBytes はエラーメッセージに含めるボディの上限。
const errorBodyBytes = 512

func (e *StatusError) Error() string {
	body := e.Body
	if len(body) > errorBodyBytes {
		body = body[:errorBodyBytes]
	}
	return fmt.Sprintf("HTTPエラー: status=%d, body=%s", e.StatusCode, string(body))
}

// PostJSON は指定パスにJSONボディでPOSTリクエストを送信し、
// 2xxレスポンスのボディをそのまま返す。
func (c *Client) PostJSON(ctx context.Context, path string, body any) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("リクエストボディのシリアライズに失敗: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの作成に失敗: %w", err)
	}
	for key, values := range c.header {
		req.Header[key] = values
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの送信に失敗: %w", err)
	}
	defer resp.Body.Close()

	// 上限を1バイト超えて読み、超過したかどうかを判定する
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("レスポンスボディの読み取りに失敗: %w", err)
	}
	tooLarge := len(respBody) > MaxResponseBytes
	if tooLarge {
		respBody = respBody[:MaxResponseBytes]
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: respBody}
	}
	if tooLarge {
		return nil, ErrResponseTooLarge
	}
	return respBody, nil
}
