package validator

import (
	"errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shroudlabs/go-shroud-data/errcode"
)

type demoConfig struct {
	Store string
	TTL   int
}

func (c demoConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Store, validation.Required, validation.In("memory", "redis")),
		validation.Field(&c.TTL, validation.Min(1)),
	)
}

func TestValidateConfig_Valid(t *testing.T) {
	assert.NoError(t, ValidateConfig(demoConfig{Store: "redis", TTL: 60}))
}

func TestValidateConfig_Invalid(t *testing.T) {
	err := ValidateConfig(demoConfig{Store: "etcd", TTL: 0})
	require.Error(t, err)

	le, ok := errcode.FromError(err)
	require.True(t, ok)
	assert.Equal(t, "common", le.Module())

	fields, ok := le.Data()["fields"].(map[string]string)
	require.True(t, ok)
	assert.Contains(t, fields, "Store")
	assert.Contains(t, fields, "TTL")
}

type plainErrConfig struct{}

func (plainErrConfig) Validate() error { return errors.New("broken") }

func TestValidateConfig_NonOzzoError(t *testing.T) {
	err := ValidateConfig(plainErrConfig{})
	require.Error(t, err)
	_, ok := errcode.FromError(err)
	assert.False(t, ok, "plain errors pass through unconverted")
}
