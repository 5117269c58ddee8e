//go:build integration

package middleware

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestRedisLimiter(t *testing.T) {
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	t.Cleanup(func() { _ = client.Close() })

	l := NewRedisLimiter(client, 2*time.Second)
	for i := int64(1); i <= 3; i++ {
		n, reset, err := l.Hit(ctx, "203.0.113.7")
		require.NoError(t, err)
		assert.Equal(t, i, n)
		assert.LessOrEqual(t, reset, 2*time.Second)
	}

	time.Sleep(2100 * time.Millisecond)
	n, _, err := l.Hit(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
