package repository

import "context"

// Transactor runs fn inside a single store transaction. Repository calls made
// with the ctx passed to fn join that transaction; a returned error rolls
// everything back. Nested calls join the outermost transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
