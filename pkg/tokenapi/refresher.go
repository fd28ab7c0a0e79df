package tokenapi

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tidwall/gjson"

	"github.com/nao1215/refreshgate/pkg/httpclient"
)

const (
	// TokensPath はトークン発行APIのエンドポイントパス。
	TokensPath = "/v1/tokens"
	// DefaultTTL はリフレッシュ時に要求するトークンの有効期間（15分）。
	DefaultTTL = "15m"
)

// ErrTokenMissing はレスポンスに文字列のtokenフィールドが存在しない場合のエラー。
var ErrTokenMissing = errors.New("レスポンスにtokenフィールドがありません")

// TokenRequest はトークン発行APIへのリクエストボディ。
type TokenRequest struct {
	// TTL はトークンの有効期間。末尾に"m"を付けると分単位、付けなければ時間単位。
	TTL string `json:"ttl"`
}

// Refresher はトークン発行APIから短期トークンを取得する。
type Refresher struct {
	client *httpclient.Client
}

// NewRefresher は新しいRefresherを生成する。
// apiKeyはスキームを付けずにAuthorizationヘッダーへそのまま設定される。
func NewRefresher(apiServer, apiKey string, timeout time.Duration) *Refresher {
	return &Refresher{
		client: httpclient.New(apiServer,
			httpclient.WithTimeout(timeout),
			httpclient.WithHeader("Authorization", apiKey),
			httpclient.WithHeader("Cache-Control", "no-cache"),
		),
	}
}

// Refresh はTTL 15分のトークンを発行させ、レスポンスのtokenフィールドを返す。
func (r *Refresher) Refresh(ctx context.Context) (string, error) {
	body, err := r.client.PostJSON(ctx, TokensPath, TokenRequest{TTL: DefaultTTL})
	if err != nil {
		return "", fmt.Errorf("トークン発行APIの呼び出しに失敗: %w", err)
	}
	return extractToken(body)
}

// extractToken はトークン発行APIのレスポンスからtokenを取り出す。
func extractToken(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("レスポンスが不正なJSONです: %s", string(body))
	}
	token := gjson.GetBytes(body, "token")
	if token.Type != gjson.String {
		return "", ErrTokenMissing
	}
	return token.String(), nil
}
