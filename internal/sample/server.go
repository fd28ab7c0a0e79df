package sample

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/refreshgate/pkg/config"
	"github.com/nao1215/refreshgate/pkg/loginstore"
	"github.com/nao1215/refreshgate/pkg/middleware"
	"github.com/nao1215/refreshgate/pkg/tokenapi"
)

//go:embed templates/*.html
var templatesFS embed.FS

// TokenRefresher はトークン発行APIから短期トークンを取得する。
type TokenRefresher interface {
	Refresh(ctx context.Context) (string, error)
}

// Server はサンプルアプリのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// httpServer はrouterを公開するHTTPサーバー。
	httpServer *http.Server
	// store はログイン済みセッションIDの登録簿。
	store loginstore.Store
	// refresher はトークン発行APIのクライアント。
	refresher TokenRefresher
}

// NewServer は設定とログインストアから新しいサーバーを生成する。
func NewServer(cfg config.Config, store loginstore.Store) (*Server, error) {
	refresher := tokenapi.NewRefresher(cfg.APIServer, cfg.APIKey, cfg.RefreshTimeout)
	return newServer(cfg.Port, store, refresher, cfg.AllowedOrigins)
}

func newServer(port string, store loginstore.Store, refresher TokenRefresher, allowedOrigins []string) (*Server, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("テンプレートの読み込みに失敗: %w", err)
	}

	router := gin.New()
	// /login/a%2Fb のようにエンコードされた"/"を含むIDも1つのパスパラメータとして扱う
	router.UseRawPath = true
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	if len(allowedOrigins) > 0 {
		router.Use(middleware.CORS(allowedOrigins))
	}
	router.SetHTMLTemplate(tmpl)

	s := &Server{
		router: router,
		httpServer: &http.Server{
			Addr:    ":" + port,
			Handler: router,
		},
		store:     store,
		refresher: refresher,
	}
	s.setupRoutes()

	return s, nil
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

// setupRoutes はルーティングを設定する。
func (s *Server) setupRoutes() {
	// 画面
	s.router.GET("/", s.handleHome())
	s.router.POST("/", s.handleHomeSubmit())
	s.router.GET("/ddi", s.handleDDI())
	s.router.GET("/other", s.handleOther())

	// 疑似ログイン
	s.router.GET("/login/:user_id", s.handleLogin())
	s.router.GET("/logout", s.handleLogout())

	// トークンリフレッシュ
	s.router.GET("/refresh-jwt", s.handleRefresh())
	s.router.GET("/protected-refresh-jwt", s.handleProtectedRefresh())

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "sample"})
	})
}
