package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil pipeline service returns error", func(t *testing.T) {
		ports := &Ports{Scorer: &mockScoreService{}}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingPipelineService)
	})

	t.Run("nil score service returns error", func(t *testing.T) {
		ports := &Ports{Pipeline: &mockPipelineService{}}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingScoreService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports := &Ports{
			Pipeline: &mockPipelineService{},
			Scorer:   &mockScoreService{},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil pipeline service returns error", func(t *testing.T) {
		ports := &Ports{Scorer: &mockScoreService{}}
		err := ports.Validate()
		assert.ErrorIs(t, err, ErrMissingPipelineService)
	})

	t.Run("nil score service returns error", func(t *testing.T) {
		ports := &Ports{Pipeline: &mockPipelineService{}}
		err := ports.Validate()
		assert.ErrorIs(t, err, ErrMissingScoreService)
	})

	t.Run("catalog is optional", func(t *testing.T) {
		ports := &Ports{
			Pipeline: &mockPipelineService{},
			Scorer:   &mockScoreService{},
		}
		err := ports.Validate()
		assert.NoError(t, err)
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Pipeline: &mockPipelineService{},
			Scorer:   &mockScoreService{},
			Catalog:  &mockStoreCatalog{},
		}
		err := ports.Validate()
		assert.NoError(t, err)
	})
}
