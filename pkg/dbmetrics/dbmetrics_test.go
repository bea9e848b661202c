package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTx struct {
	DBExecutor
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

type fakeDB struct {
	DBExecutor
}

func TestGetExecutor(t *testing.T) {
	db := &fakeDB{}
	tx := &fakeTx{}

	ctx := context.Background()
	assert.Same(t, db, GetExecutor(ctx, db))
	assert.False(t, IsInTransaction(ctx))

	txCtx := WithTx(ctx, tx)
	assert.Same(t, tx, GetExecutor(txCtx, db))
	assert.True(t, IsInTransaction(txCtx))

	detached := WithoutTransaction(txCtx)
	assert.Same(t, db, GetExecutor(detached, db))
	assert.False(t, IsInTransaction(detached))
}

func TestWithoutTransaction_KeepsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(WithTx(context.Background(), &fakeTx{}))
	detached := WithoutTransaction(ctx)

	cancel()
	assert.ErrorIs(t, detached.Err(), context.Canceled)
}

func TestOperation(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"SELECT id FROM holidays", "select"},
		{"  INSERT INTO enquiries", "insert"},
		{"update\nschedule_blocks SET", "update"},
		{"", "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, operation(tt.query), tt.query)
	}
}

var _ TxExecutor = (*SqlTxWrapper)(nil)
var _ TxExecutor = (*Tx)(nil)
var _ DBExecutor = (*DB)(nil)
var _ DBExecutor = (*sql.DB)(nil)
