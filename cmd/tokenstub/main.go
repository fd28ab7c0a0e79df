// トークン発行APIの開発用スタブのエントリポイント。
// サンプルアプリのapi_serverにこのサーバーを指定するとローカルで動作確認できる。
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/nao1215/refreshgate/internal/tokenstub"
	"github.com/nao1215/refreshgate/pkg/config"
	"github.com/nao1215/refreshgate/pkg/logging"
)

func main() {
	cfg, err := config.LoadStub()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗: %v", err)
	}

	closer, err := logging.Setup(cfg.Log)
	if err != nil {
		log.Fatalf("ログ設定に失敗: %v", err)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := tokenstub.NewServer(cfg.Port, cfg.APIKey, cfg.JWTSecret)
	go func() {
		if err := server.Run(); err != nil {
			log.Fatalf("トークン発行スタブの起動に失敗: %v", err)
		}
	}()
	log.WithField("port", cfg.Port).Info("トークン発行スタブを起動しました")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("グレースフルシャットダウンに失敗: %v", err)
	}
}
