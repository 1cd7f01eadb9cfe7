package cache_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/knapgrid/internal/cache"
	"github.com/katalvlaran/knapgrid/internal/config"
)

func TestNewRedisStore_Unreachable(t *testing.T) {
	cfg := config.Default().Redis
	cfg.Addr = "127.0.0.1:1"

	store, err := cache.NewRedisStore(context.Background(), cfg)
	assert.Error(t, err)
	assert.Nil(t, store)
}
