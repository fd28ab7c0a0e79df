// Package config はサンプルアプリとトークン発行スタブの設定を読み込む。
//
// 既定値、YAMLファイル（config.yml）、.envファイル、環境変数の順に
// 上書きし、起動時に必須項目を検証する。
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMissingValue は必須の設定値が無い場合のエラー。
var ErrMissingValue = errors.New("必須の設定値がありません")

// Config はサンプルアプリの設定。
type Config struct {
	// Port はサーバーのリッスンポート。
	Port string `yaml:"port"`
	// APIServer はトークン発行APIのベースURL。
	APIServer string `yaml:"api_server"`
	// APIKey はAuthorizationヘッダーにそのまま設定するAPIキー。
	APIKey string `yaml:"api_key"`
	// LoginStore はログイン済みIDの保存先（memory / cache / sqlite）。
	LoginStore string `yaml:"login_store"`
	// SQLitePath はLoginStoreがsqliteの場合のファイルパス。
	SQLitePath string `yaml:"sqlite_path"`
	// RefreshTimeout はトークン発行API呼び出しのタイムアウト。
	RefreshTimeout time.Duration `yaml:"refresh_timeout"`
	// AllowedOrigins はCookie付きのクロスオリジンアクセスを許可するオリジン。
	AllowedOrigins []string `yaml:"allowed_origins"`
	// Log はログ出力の設定。
	Log LogConfig `yaml:"log"`
}

// LogConfig はログ出力の設定。
type LogConfig struct {
	// Level はログレベル（debug / info / warn / error）。
	Level string `yaml:"level"`
	// Format は出力形式（text / json）。
	Format string `yaml:"format"`
	// File が空でない場合、ローテーションしながらファイルにも出力する。
	File string `yaml:"file"`
}

// StubConfig はトークン発行スタブの設定。
type StubConfig struct {
	// Port はサーバーのリッスンポート。
	Port string
	// APIKey は受け付けるAPIキー。
	APIKey string
	// JWTSecret は発行するJWTの署名鍵。
	JWTSecret string
	// Log はログ出力の設定。
	Log LogConfig
}

// Default は既定値の設定を返す。
func Default() Config {
	return Config{
		Port:           "4567",
		LoginStore:     "memory",
		SQLitePath:     "sample.db",
		RefreshTimeout: 30 * time.Second,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load はpathのYAMLファイルと環境変数から設定を読み込み、検証する。
// pathのファイルが存在しない場合は環境変数のみを使う。
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("設定ファイルのパースに失敗: %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("設定ファイルの読み込みに失敗: %s: %w", path, err)
		}
	}

	loadDotEnv()
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv は環境変数が設定されている項目を上書きする。
func (c *Config) applyEnv() error {
	c.Port = getEnvOr("PORT", c.Port)
	c.APIServer = getEnvOr("API_SERVER", c.APIServer)
	c.APIKey = getEnvOr("API_KEY", c.APIKey)
	c.LoginStore = getEnvOr("LOGIN_STORE", c.LoginStore)
	c.SQLitePath = getEnvOr("SQLITE_PATH", c.SQLitePath)
	c.Log.Level = getEnvOr("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnvOr("LOG_FORMAT", c.Log.Format)
	c.Log.File = getEnvOr("LOG_FILE", c.Log.File)

	if v := os.Getenv("REFRESH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("REFRESH_TIMEOUTの形式が不正: %q: %w", v, err)
		}
		c.RefreshTimeout = d
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.AllowedOrigins = append(c.AllowedOrigins, o)
			}
		}
	}
	return nil
}

// Validate は必須項目と値の形式を検証する。
func (c Config) Validate() error {
	if c.APIServer == "" {
		return fmt.Errorf("%w: api_server", ErrMissingValue)
	}
	if c.APIKey == "" {
		return fmt.Errorf("%w: api_key", ErrMissingValue)
	}
	u, err := url.Parse(c.APIServer)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_serverはhttp(s)の絶対URLで指定してください: %q", c.APIServer)
	}
	if c.Port == "" {
		return fmt.Errorf("%w: port", ErrMissingValue)
	}
	if c.RefreshTimeout <= 0 {
		return fmt.Errorf("refresh_timeoutは正の値で指定してください: %v", c.RefreshTimeout)
	}
	return nil
}

// LoadStub は環境変数からトークン発行スタブの設定を読み込む。
func LoadStub() (StubConfig, error) {
	loadDotEnv()

	cfg := StubConfig{
		Port:      getEnvOr("PORT", "9090"),
		APIKey:    os.Getenv("API_KEY"),
		JWTSecret: getEnvOr("JWT_SECRET", "dev-secret-key"),
		Log: LogConfig{
			Level:  getEnvOr("LOG_LEVEL", "info"),
			Format: getEnvOr("LOG_FORMAT", "text"),
			File:   os.Getenv("LOG_FILE"),
		},
	}
	if cfg.APIKey == "" {
		return StubConfig{}, fmt.Errorf("%w: API_KEY", ErrMissingValue)
	}
	return cfg, nil
}

// loadDotEnv はカレントディレクトリの.envを読み込む。
// 既に設定されている環境変数は上書きしない。ファイルが無くてもエラーにしない。
func loadDotEnv() {
	_ = godotenv.Load()
}

// getEnvOr は環境変数を取得し、設定されていない場合はデフォルト値を返す。
func getEnvOr(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
