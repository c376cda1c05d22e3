package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "gemini-test")
	t.Setenv("GOOGLE_MAPS_API_KEY", "AIzaTest")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, ProviderGemini, cfg.AI.Provider)
	assert.Equal(t, 0.4, cfg.AI.Temperature)
	assert.Equal(t, StorePostgres, cfg.Store.Backend)
	assert.Equal(t, 20, cfg.Quota.MonthlyPlans)
	assert.Equal(t, 7*24*time.Hour, cfg.Maps.CacheTTL)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("WANDER_AI_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("WANDER_CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("WANDER_MONTHLY_PLANS", "5")
	t.Setenv("WANDER_PHOTO_MISS_TTL", "30m")
	t.Setenv("WANDER_LOG_DEV", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, cfg.AI.Provider)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, 5, cfg.Quota.MonthlyPlans)
	assert.Equal(t, 30*time.Minute, cfg.Maps.MissTTL)
	assert.True(t, cfg.Log.Dev)
}

func TestLoadMissingRequired(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"gemini key", map[string]string{"GEMINI_API_KEY": "", "GOOGLE_MAPS_API_KEY": "AIzaTest"}, "GEMINI_API_KEY"},
		{"openai key", map[string]string{"WANDER_AI_PROVIDER": "openai", "OPENAI_API_KEY": "", "GOOGLE_MAPS_API_KEY": "AIzaTest"}, "OPENAI_API_KEY"},
		{"firestore project", map[string]string{"GEMINI_API_KEY": "g", "GOOGLE_MAPS_API_KEY": "AIzaTest", "WANDER_STORE": "firestore", "WANDER_FIREBASE_PROJECT_ID": ""}, "WANDER_FIREBASE_PROJECT_ID"},
		{"unknown provider", map[string]string{"WANDER_AI_PROVIDER": "llama", "GOOGLE_MAPS_API_KEY": "AIzaTest"}, "unknown provider"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadWithoutMapsKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gemini-test")
	t.Setenv("GOOGLE_MAPS_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err, "photo-less tools load without a Places key")

	err = cfg.RequireMaps()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_MAPS_API_KEY")

	cfg.Maps.APIKey = "AIzaTest"
	assert.NoError(t, cfg.RequireMaps())
}
