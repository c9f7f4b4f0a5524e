package database

import "context"

// Transactor runs fn atomically against whichever store backs the
// repositories. Repositories called with the ctx passed to fn join the
// transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
