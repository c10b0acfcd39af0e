package repository

import (
	"context"

	domainRepo "github.com/sangkips/cafe-api/internal/domain/repository"
	"gorm.io/gorm"
)

type ctxKey string

// TxKey is the context key under which an open transaction is stored
const TxKey ctxKey = "gorm_tx"

// conn returns the transaction stored in ctx, or db when there is none.
// Every repository query goes through it so that work started inside
// WithinTransaction stays on the transaction's connection.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(TxKey).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// InTransaction reports whether ctx carries an open transaction
func InTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(TxKey).(*gorm.DB)
	return ok
}

type transactor struct {
	db *gorm.DB
}

// NewTransactor creates a transactor backed by db
func NewTransactor(db *gorm.DB) domainRepo.Transactor {
	return &transactor{db: db}
}

func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if InTransaction(ctx) {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, TxKey, tx))
	})
}
