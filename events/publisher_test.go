package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poolwatch/config"
	"poolwatch/model"
)

func TestNewPublisherDisabled(t *testing.T) {
	n, err := NewPublisher(config.RedisConfig{Stream: "leaderlogs"})
	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestNewPublisherBadURL(t *testing.T) {
	_, err := NewPublisher(config.RedisConfig{URL: "http://not-redis", Stream: "leaderlogs"})
	require.Error(t, err)
	assert.Equal(t, model.Configuration, model.KindOf(err))
}

func TestNewPublisher(t *testing.T) {
	n, err := NewPublisher(config.RedisConfig{URL: "redis://localhost:6379/2", Stream: "leaderlogs"})
	require.NoError(t, err)
	require.NotNil(t, n)
	p, ok := n.(*Publisher)
	require.True(t, ok)
	assert.Equal(t, "leaderlogs", p.stream)
	assert.NoError(t, n.Close())
}
