package sample

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/nao1215/refreshgate/pkg/middleware"
)

// notLoggedInMessage は未ログイン時にprotected-refresh-jwtが返す本文。
const notLoggedInMessage = "not logged in"

// pageData は画面テンプレートに渡す値。
type pageData struct {
	// Name はフォームから送信された名前。
	Name string
	// Medications はフォームから送信された薬の一覧。検索処理は行わない。
	Medications []string
	// LoggedIn は現在のセッションがログイン済みかどうか。
	LoggedIn bool
	// UserID は現在のセッションID。
	UserID string
}

// handleHome はトップページを表示するハンドラを返す。
func (s *Server) handleHome() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.render(c, "sample.html", pageData{Medications: []string{}})
	}
}

// handleHomeSubmit はフォームの内容をそのまま表示するハンドラを返す。
func (s *Server) handleHomeSubmit() gin.HandlerFunc {
	return func(c *gin.Context) {
		medications := c.PostFormArray("medications")
		if len(medications) == 0 {
			medications = c.PostFormArray("medications[]")
		}
		if medications == nil {
			medications = []string{}
		}
		s.render(c, "sample.html", pageData{
			Name:        c.PostForm("name"),
			Medications: medications,
		})
	}
}

// handleDDI は2つ目の画面を表示するハンドラを返す。
func (s *Server) handleDDI() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.render(c, "sample_ddi.html", pageData{Medications: []string{}})
	}
}

// handleOther は静的な3つ目の画面を表示するハンドラを返す。
func (s *Server) handleOther() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.render(c, "sample_other.html", pageData{})
	}
}

// render はログイン状態を付与してテンプレートを描画する。
func (s *Server) render(c *gin.Context, name string, data pageData) {
	loggedIn, ok := s.loggedIn(c)
	if !ok {
		return
	}
	data.LoggedIn = loggedIn
	data.UserID = sessionID(c)
	c.HTML(http.StatusOK, name, data)
}

// handleLogin はパスのIDをセッションCookieに設定してログイン済みとして登録するハンドラを返す。
// IDの形式は検証しない。
func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("user_id")
		if err := s.store.Add(c.Request.Context(), id); err != nil {
			log.WithError(err).Error("ログインIDの登録に失敗")
			c.String(http.StatusInternalServerError, middleware.InternalErrorMessage)
			return
		}
		setSessionID(c, id)
		redirectBack(c)
	}
}

// handleLogout は現在のセッションIDの登録を取り除くハンドラを返す。
// 未登録やCookieが無い場合も何もせずにリダイレクトする。
func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := sessionID(c); id != "" {
			if err := s.store.Remove(c.Request.Context(), id); err != nil {
				log.WithError(err).Error("ログインIDの削除に失敗")
				c.String(http.StatusInternalServerError, middleware.InternalErrorMessage)
				return
			}
		}
		redirectBack(c)
	}
}

// handleRefresh はログイン状態に関係なくトークンを取得して返すハンドラを返す。
// アクセス制御の無い、安全でない例として用意している。
func (s *Server) handleRefresh() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.refresh(c)
	}
}

// handleProtectedRefresh はログイン済みの場合だけトークンを取得して返すハンドラを返す。
func (s *Server) handleProtectedRefresh() gin.HandlerFunc {
	return func(c *gin.Context) {
		loggedIn, ok := s.loggedIn(c)
		if !ok {
			return
		}
		if !loggedIn {
			c.String(http.StatusOK, notLoggedInMessage)
			return
		}
		s.refresh(c)
	}
}

// refresh はトークン発行APIを呼び出し、トークン文字列だけを返す。
func (s *Server) refresh(c *gin.Context) {
	token, err := s.refresher.Refresh(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("トークンのリフレッシュに失敗")
		c.String(http.StatusInternalServerError, middleware.InternalErrorMessage)
		return
	}
	c.String(http.StatusOK, token)
}

// loggedIn は現在のセッションIDが登録済みかを返す。
// ストアの参照に失敗した場合は500を書き込み、2つ目の戻り値にfalseを返す。
func (s *Server) loggedIn(c *gin.Context) (bool, bool) {
	loggedIn, err := s.store.IsLoggedIn(c.Request.Context(), sessionID(c))
	if err != nil {
		log.WithError(err).Error("ログイン状態の取得に失敗")
		c.String(http.StatusInternalServerError, middleware.InternalErrorMessage)
		return false, false
	}
	return loggedIn, true
}
