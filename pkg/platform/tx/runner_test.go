package tx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "checkpoint/pkg/domain-errors"
)

func TestNoopRunner(t *testing.T) {
	called := false
	err := NoopRunner{}.RunInTx(context.Background(), func(ctx context.Context) error {
		called = true
		_, ok := From(ctx)
		assert.False(t, ok)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)

	boom := errors.New("boom")
	assert.ErrorIs(t, NoopRunner{}.RunInTx(context.Background(), func(context.Context) error { return boom }), boom)
}

func TestRunInTxCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewRunner(nil, 0).RunInTx(ctx, func(context.Context) error {
		t.Fatal("fn must not run on a cancelled context")
		return nil
	})
	assert.Equal(t, dErrors.CodeTimeout, dErrors.CodeOf(err))
}

func TestWithTx(t *testing.T) {
	ctx := WithTx(context.Background(), nil)
	_, ok := From(ctx)
	assert.False(t, ok, "nil tx is not stored")

	tx := &sql.Tx{}
	got, ok := From(WithTx(context.Background(), tx))
	require.True(t, ok)
	assert.Same(t, tx, got)
}
