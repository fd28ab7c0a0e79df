// サンプルアプリのエントリポイント。
// Cookieによる疑似ログインと、ログイン済みセッションだけに許可する
// トークンリフレッシュを提供する。
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/nao1215/refreshgate/internal/sample"
	"github.com/nao1215/refreshgate/pkg/config"
	"github.com/nao1215/refreshgate/pkg/logging"
	"github.com/nao1215/refreshgate/pkg/loginstore"
)

func main() {
	defaultPath := os.Getenv("CONFIG_PATH")
	if defaultPath == "" {
		defaultPath = "config.yml"
	}
	configPath := flag.String("config", defaultPath, "設定ファイルのパス")
	flag.Parse()

	cfg, err := config.Load(*configPath)
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

	store, err := loginstore.New(ctx, loginstore.Options{
		Kind:       loginstore.Kind(cfg.LoginStore),
		SQLitePath: cfg.SQLitePath,
	})
	if err != nil {
		log.Fatalf("ログインストアの初期化に失敗: %v", err)
	}
	defer store.Close()

	server, err := sample.NewServer(cfg, store)
	if err != nil {
		log.Fatalf("サーバーの初期化に失敗: %v", err)
	}

	go func() {
		if err := server.Run(); err != nil {
			log.Fatalf("サンプルアプリの起動に失敗: %v", err)
		}
	}()
	log.WithFields(log.Fields{
		"port":        cfg.Port,
		"login_store": cfg.LoginStore,
	}).Info("サンプルアプリを起動しました")

	<-ctx.Done()
	log.Info("停止シグナルを受信しました")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("グレースフルシャットダウンに失敗: %v", err)
		return
	}
	log.Info("サンプルアプリを停止しました")
}
