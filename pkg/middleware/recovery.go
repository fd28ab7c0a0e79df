package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// InternalErrorMessage はクライアントに返す500エラーの本文。
// 内部の詳細や認証情報を含めない。
const InternalErrorMessage = "internal server error"

// Recovery はパニックからの回復を行うGinミドルウェアを返す。
// パニック内容はログにのみ出力し、クライアントには定型文の500を返す。
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.WithFields(log.Fields{
					"method": c.Request.Method,
					"path":   routeOf(c),
					"panic":  r,
				}).Error("パニックから回復しました")
				c.Abort()
				c.String(http.StatusInternalServerError, InternalErrorMessage)
			}
		}()
		c.Next()
	}
}
