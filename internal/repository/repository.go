// Package repository provides the database access layer.
//
// Queries are written against database/sql with the pgx stdlib driver. All
// methods take a context and return either typed rows or sql.ErrNoRows,
// which the service layer translates into domain errors.
package repository

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by queries, satisfied by both
// *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// Queries exposes all database operations.
type Queries struct {
	db DBTX
}

// New creates a Queries instance bound to the given database or transaction.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries instance that runs on the given transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}
