package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Name() string { return s.name }
func (s stubChecker) Check(_ context.Context) error { return s.err }

func TestReady(t *testing.T) {
	t.Run("all healthy", func(t *testing.T) {
		svc := NewService(stubChecker{name: "postgres"}, stubChecker{name: "redis"})
		require.NoError(t, svc.Ready(context.Background()))
		assert.Equal(t, []string{"postgres", "redis"}, svc.Components())
	})

	t.Run("failing dependency is named", func(t *testing.T) {
		down := errors.New("connection refused")
		svc := NewService(stubChecker{name: "postgres"}, stubChecker{name: "redis", err: down})
		err := svc.Ready(context.Background())
		require.ErrorIs(t, err, down)
		assert.Contains(t, err.Error(), "redis")
	})

	t.Run("nil checkers are skipped", func(t *testing.T) {
		var none Checker
		svc := NewService(none)
		require.NoError(t, svc.Ready(context.Background()))
		assert.Empty(t, svc.Components())
	})
}
