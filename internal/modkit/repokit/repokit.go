// Package repokit defines the narrow DB surface repositories depend on
package repokit

import (
	"context"

	"pulsetrack/internal/platform/store"
)

// Queryer is what a repo needs to run queries, satisfied by a pool or a tx
type Queryer = store.RowQuerier

// TxRunner runs a function inside a transaction
type TxRunner = store.TxRunner

// Rows mirrors the store row iterator
type Rows = store.Rows

// Row mirrors the store single row
type Row = store.Row

// CommandTag mirrors the store exec result
type CommandTag = store.CommandTag

// Binder builds a repository bound to a specific Queryer.
// Services hold a Binder and bind per call site (pool or tx)
type Binder[T any] interface {
	Bind(q Queryer) T
}

// BindFunc adapts a constructor func into a Binder
type BindFunc[T any] func(q Queryer) T

// Bind implements Binder
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// WithTx runs fn with a repo bound to a fresh transaction
func WithTx[T any](ctx context.Context, tx TxRunner, b Binder[T], fn func(repo T) error) error {
	return tx.Tx(ctx, func(q Queryer) error {
		return fn(b.Bind(q))
	})
}
