package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestPingClient_WrapperExecutes(t *testing.T) {
	c := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"})
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := pingClient(ctx, c); err == nil {
		t.Fatal("expected ping error for invalid redis endpoint")
	}
}

func TestInit_PingHookError(t *testing.T) {
	orig := pingClient
	prev := client
	t.Cleanup(func() {
		pingClient = orig
		client = prev
	})

	pingClient = func(context.Context, *goredis.Client) error { return errors.New("ping failed") }
	err := Init("redis://127.0.0.1:6379/0", "")
	assert.EqualError(t, err, "ping failed")
}
