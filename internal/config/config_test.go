package config

import (
	"reflect"
	"testing"
	"time"
)

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("CONFIG_TEST_KEY", "value")

	if got := envOrDefault("CONFIG_TEST_KEY", "fallback"); got != "value" {
		t.Errorf("expected env value, got %q", got)
	}
	if got := envOrDefault("CONFIG_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("expected fallback, got %q", got)
	}
}

func TestParseList(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		fallback []string
		expected []string
	}{
		{
			name:     "comma separated",
			value:    "https://a.test, https://b.test",
			fallback: []string{"*"},
			expected: []string{"https://a.test", "https://b.test"},
		},
		{
			name:     "empty falls back",
			value:    "",
			fallback: []string{"*"},
			expected: []string{"*"},
		},
		{
			name:     "only separators falls back",
			value:    " , ,",
			fallback: []string{"*"},
			expected: []string{"*"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CONFIG_TEST_LIST", tt.value)
			if got := parseList("CONFIG_TEST_LIST", tt.fallback); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("AUTH_JWT_ISSUER", "test-issuer")
	t.Setenv("AUTH_JWT_AUDIENCE", "test-audience")
	t.Setenv("PUBLIC_BASE_URL", "https://mailpoll.test")
	t.Setenv("MONGO_CONNECT_TIMEOUT", "3s")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("MONGO_DB", "mailpoll_test")

	cfg := Load()

	if cfg.Addr != ":9090" {
		t.Errorf("expected addr :9090, got %q", cfg.Addr)
	}
	if cfg.MongoDatabase != "mailpoll_test" {
		t.Errorf("expected database mailpoll_test, got %q", cfg.MongoDatabase)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("expected timeout 3s, got %v", cfg.Timeout)
	}
	if len(cfg.JWTConfigs) != 1 || cfg.JWTConfigs[0].Issuer != "test-issuer" {
		t.Errorf("unexpected jwt configs: %+v", cfg.JWTConfigs)
	}
	if cfg.JWTAudience != "test-audience" {
		t.Errorf("expected audience test-audience, got %q", cfg.JWTAudience)
	}
	if cfg.PublicBaseURL != "https://mailpoll.test" {
		t.Errorf("expected public base url, got %q", cfg.PublicBaseURL)
	}
	if cfg.SurveyCollection != "surveys" || cfg.UserCollection != "users" {
		t.Errorf("unexpected collection defaults: %q / %q", cfg.SurveyCollection, cfg.UserCollection)
	}
	if cfg.ServerLog == nil {
		t.Error("server logger must be constructed")
	}
}
