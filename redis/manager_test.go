package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shroudlabs/go-shroud-data/logger"
)

func testLogger(t *testing.T) *logger.CtxZapLogger {
	t.Helper()
	return logger.GetLogger("redis-test")
}

func TestNewManager(t *testing.T) {
	mr := miniredis.RunT(t)

	m, err := NewManager(map[string]Config{
		"default": {Addr: mr.Addr()},
	}, testLogger(t))
	require.NoError(t, err)
	defer m.Close()

	client := m.Client("default")
	require.NotNil(t, client)
	assert.NoError(t, client.Ping(context.Background()).Err())

	assert.Nil(t, m.Client("absent"))
	assert.Nil(t, m.Cluster("default"))
	assert.Equal(t, []string{"default"}, m.InstanceNames())
}

func TestNewManager_NilLogger(t *testing.T) {
	_, err := NewManager(nil, nil)
	assert.Error(t, err)
}

func TestNewManager_InvalidConfig(t *testing.T) {
	_, err := NewManager(map[string]Config{
		"bad": {Mode: "sentinel", Addr: "localhost:6379"},
	}, testLogger(t))
	assert.Error(t, err)
}

func TestNewManager_UnreachableInstance(t *testing.T) {
	_, err := NewManager(map[string]Config{
		"down": {Addr: "127.0.0.1:1"},
	}, testLogger(t))
	assert.Error(t, err)
}

func TestManager_Ping(t *testing.T) {
	mr := miniredis.RunT(t)

	m, err := NewManager(map[string]Config{
		"default": {Addr: mr.Addr()},
	}, testLogger(t))
	require.NoError(t, err)
	defer m.Close()

	assert.NoError(t, m.Ping(context.Background()))

	mr.Close()
	assert.Error(t, m.Ping(context.Background()))
}

func TestManager_CloseIsIdempotent(t *testing.T) {
	mr := miniredis.RunT(t)

	m, err := NewManager(map[string]Config{
		"default": {Addr: mr.Addr()},
	}, testLogger(t))
	require.NoError(t, err)

	assert.NoError(t, m.Close())
	assert.NoError(t, m.Close())
	assert.Nil(t, m.Client("default"))
}
