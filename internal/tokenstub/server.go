package tokenstub

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/nao1215/refreshgate/pkg/middleware"
	"github.com/nao1215/refreshgate/pkg/tokenapi"
)

const (
	// Issuer は発行するJWTのiss。
	Issuer = "refreshgate-tokenstub"
	// defaultTTL はttlが指定されない場合の有効期間（1時間）。
	defaultTTL = "1"
)

// Claims は発行するJWTのクレーム。
type Claims struct {
	jwt.RegisteredClaims
	// TTL はリクエストで指定されたTTL表記。
	TTL string `json:"ttl"`
}

// Server はトークン発行APIの開発用スタブ。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// httpServer はrouterを公開するHTTPサーバー。
	httpServer *http.Server
	// apiKey は受け付けるAPIキー。
	apiKey string
	// jwtSecret はJWT署名用の秘密鍵。
	jwtSecret string
	// now は現在時刻を返す。テストで差し替える。
	now func() time.Time
}

// NewServer は新しいスタブサーバーを生成する。
func NewServer(port, apiKey, jwtSecret string) *Server {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())

	s := &Server{
		router: router,
		httpServer: &http.Server{
			Addr:    ":" + port,
			Handler: router,
		},
		apiKey:    apiKey,
		jwtSecret: jwtSecret,
		now:       time.Now,
	}
	s.setupRoutes()
	return s
}

// Handler はスタブのhttp.Handlerを返す。
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run はHTTPサーバーを起動する。Shutdownが呼ばれるまで戻らない。
func (s *Server) Run() error {
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown は処理中のリクエストを待ってサーバーを停止する。
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	s.router.POST(tokenapi.TokensPath, s.handleIssueToken())

	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "tokenstub"})
	})
}

// handleIssueToken はAPIキーを検証し、指定TTLのJWTを発行するハンドラを返す。
func (s *Server) handleIssueToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		// APIキーはスキーム無しでそのまま送られてくる
		key := c.GetHeader("Authorization")
		if subtle.ConstantTimeCompare([]byte(key), []byte(s.apiKey)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "APIキーが無効です"})
			return
		}

		var req tokenapi.TokenRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "リクエストボディが不正です"})
			return
		}
		if req.TTL == "" {
			req.TTL = defaultTTL
		}

		ttl, err := tokenapi.ParseTTL(req.TTL)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		token, err := s.issue(req.TTL, ttl)
		if err != nil {
			log.WithError(err).Error("JWT生成に失敗")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "トークン生成に失敗しました"})
			return
		}

		c.Header("Cache-Control", "no-store")
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

// issue はttl後に失効するJWTに署名する。
func (s *Server) issue(ttlText string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		TTL: ttlText,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("JWTトークンの署名に失敗: %w", err)
	}
	return signed, nil
}
