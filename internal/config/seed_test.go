package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSeed_Defaults(t *testing.T) {
	cfg, err := LoadSeed()
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.Products)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, SeedTargetFile, cfg.Target)
	assert.Equal(t, "catalog.json", cfg.Output)
}

func TestLoadSeed_Postgres(t *testing.T) {
	t.Setenv("SEED_TARGET", "postgres")
	t.Setenv("SEED_PRODUCTS", "10000")
	t.Setenv("POSTGRES_HOST", "db")

	cfg, err := LoadSeed()
	require.NoError(t, err)

	assert.Equal(t, 10000, cfg.Products)
	assert.Equal(t, "db", cfg.Postgres().Host)
}

func TestLoadSeed_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"zero products", map[string]string{"SEED_PRODUCTS": "0"}, "SEED_PRODUCTS"},
		{"zero batch", map[string]string{"SEED_BATCH_SIZE": "0"}, "SEED_BATCH_SIZE"},
		{"unknown target", map[string]string{"SEED_TARGET": "s3"}, "SEED_TARGET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadSeed()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
