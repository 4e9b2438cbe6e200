package database

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// driverName is the database/sql driver registered by modernc.org/sqlite
const driverName = "sqlite"

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding; every
// repository runs its statements against ext, which is either the pooled
// handle or an open transaction.
type Repository struct {
	*TenantRepo
	*BoardRepo
	*ColumnRepo
	*TaskRepo
	*LabelRepo
	*ActivityRepo
	*NotificationRepo

	db *sqlx.DB // nil when bound to a transaction
}

// NewRepository creates a new Repository wrapping the given database connection
func NewRepository(db *sql.DB) *Repository {
	xdb := sqlx.NewDb(db, driverName)
	r := bind(xdb)
	r.db = xdb
	return r
}

func bind(ext sqlx.ExtContext) *Repository {
	return &Repository{
		TenantRepo:       &TenantRepo{ext: ext},
		BoardRepo:        &BoardRepo{ext: ext},
		ColumnRepo:       &ColumnRepo{ext: ext},
		TaskRepo:         &TaskRepo{ext: ext},
		LabelRepo:        &LabelRepo{ext: ext},
		ActivityRepo:     &ActivityRepo{ext: ext},
		NotificationRepo: &NotificationRepo{ext: ext},
	}
}

// Compile-time verification that *Repository implements DataStore
var _ DataStore = (*Repository)(nil)

// WithTx runs fn in a transaction. Calls on a repository that is already
// bound to a transaction join it instead of nesting.
func (r *Repository) WithTx(ctx context.Context, fn func(tx DataStore) error) error {
	if r.db == nil {
		return fn(r)
	}
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return fn(bind(tx))
	})
}
