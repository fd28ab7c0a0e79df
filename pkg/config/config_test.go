package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// envKeys はこのパッケージが参照する環境変数。
var envKeys = []string{
	"PORT", "API_SERVER", "API_KEY", "LOGIN_STORE", "SQLITE_PATH",
	"REFRESH_TIMEOUT", "ALLOWED_ORIGINS", "LOG_LEVEL", "LOG_FORMAT", "LOG_FILE",
	"JWT_SECRET",
}

// clearEnv はテスト中だけ参照対象の環境変数を空にする。
// t.Setenvを使うためt.Parallelとは併用できない。
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

// writeConfig はテスト用の設定ファイルを書き出してパスを返す。
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("設定ファイルの書き込みに失敗: %v", err)
	}
	return path
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
api_server: https://api.example.com
api_key: secret-key
login_store: sqlite
sqlite_path: /tmp/login.db
refresh_timeout: 5s
allowed_origins:
  - https://plugin.example.com
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load()でエラーが発生: %v", err)
	}

	if cfg.APIServer != "https://api.example.com" {
		t.Errorf("APIServer = %q", cfg.APIServer)
	}
	if cfg.APIKey != "secret-key" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
	if cfg.LoginStore != "sqlite" {
		t.Errorf("LoginStore = %q", cfg.LoginStore)
	}
	if cfg.SQLitePath != "/tmp/login.db" {
		t.Errorf("SQLitePath = %q", cfg.SQLitePath)
	}
	if cfg.RefreshTimeout != 5*time.Second {
		t.Errorf("RefreshTimeout = %v, want 5s", cfg.RefreshTimeout)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "https://plugin.example.com" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	// YAMLに無い項目は既定値のまま
	if cfg.Port != "4567" {
		t.Errorf("Port = %q, want %q", cfg.Port, "4567")
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
api_server: https://api.example.com
api_key: from-file
`)
	t.Setenv("API_KEY", "from-env")
	t.Setenv("PORT", "8080")
	t.Setenv("REFRESH_TIMEOUT", "250ms")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load()でエラーが発生: %v", err)
	}

	if cfg.APIKey != "from-env" {
		t.Errorf("APIKey = %q, want %q", cfg.APIKey, "from-env")
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.RefreshTimeout != 250*time.Millisecond {
		t.Errorf("RefreshTimeout = %v, want 250ms", cfg.RefreshTimeout)
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if len(cfg.AllowedOrigins) != len(want) {
		t.Fatalf("AllowedOrigins = %v, want %v", cfg.AllowedOrigins, want)
	}
	for i := range want {
		if cfg.AllowedOrigins[i] != want[i] {
			t.Errorf("AllowedOrigins[%d] = %q, want %q", i, cfg.AllowedOrigins[i], want[i])
		}
	}
}

func TestLoad_MissingFileUsesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_SERVER", "http://localhost:9090")
	t.Setenv("API_KEY", "dev-key")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Load()でエラーが発生: %v", err)
	}
	if cfg.APIServer != "http://localhost:9090" {
		t.Errorf("APIServer = %q", cfg.APIServer)
	}
	if cfg.LoginStore != "memory" {
		t.Errorf("LoginStore = %q, want %q", cfg.LoginStore, "memory")
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		env     map[string]string
		missing bool
	}{
		{
			name:    "api_serverが無い",
			yaml:    "api_key: k\n",
			missing: true,
		},
		{
			name:    "api_keyが無い",
			yaml:    "api_server: https://api.example.com\n",
			missing: true,
		},
		{
			name: "api_serverが相対URL",
			yaml: "api_server: api.example.com\napi_key: k\n",
		},
		{
			name: "REFRESH_TIMEOUTが不正",
			yaml: "api_server: https://api.example.com\napi_key: k\n",
			env:  map[string]string{"REFRESH_TIMEOUT": "soon"},
		},
		{
			name: "YAMLが不正",
			yaml: "api_server: [\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(writeConfig(t, tt.yaml))
			if err == nil {
				t.Fatal("Load()がエラーを返すべきだが、nilが返った")
			}
			if tt.missing && !errors.Is(err, ErrMissingValue) {
				t.Errorf("err = %v, want ErrMissingValue", err)
			}
		})
	}
}

func TestLoadStub(t *testing.T) {
	t.Run("API_KEYが無い場合はエラー", func(t *testing.T) {
		clearEnv(t)

		if _, err := LoadStub(); !errors.Is(err, ErrMissingValue) {
			t.Errorf("err = %v, want ErrMissingValue", err)
		}
	})

	t.Run("既定値が設定されること", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("API_KEY", "dev-key")

		cfg, err := LoadStub()
		if err != nil {
			t.Fatalf("LoadStub()でエラーが発生: %v", err)
		}
		if cfg.Port != "9090" {
			t.Errorf("Port = %q, want %q", cfg.Port, "9090")
		}
		if cfg.JWTSecret != "dev-secret-key" {
			t.Errorf("JWTSecret = %q, want %q", cfg.JWTSecret, "dev-secret-key")
		}
	})
}
