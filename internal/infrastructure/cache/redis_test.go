package cache

import (
	"context"
	"io"
	"net"
	"testing"

	"clinic-scheduling-api/config"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestNewRedisClient_Connects(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)

	client, err := NewRedisClient(context.Background(), config.RedisConfig{Host: host, Port: port}, quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	assert.True(t, mr.Exists("k"))
}

func TestNewRedisClient_FailsWhenUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)
	mr.Close()

	client, err := NewRedisClient(context.Background(), config.RedisConfig{Host: host, Port: port}, quietLogger())
	assert.Error(t, err)
	assert.Nil(t, client)
}
