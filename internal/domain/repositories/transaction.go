package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager scopes a function to one database transaction.
// Operation creation uses it so the parent read and the node insert are
// a single atomic unit.
type TransactionManager interface {
	// ExecTx executes fn inside a transaction, committing on nil and
	// rolling back on error
	ExecTx(ctx context.Context, fn TxFn) error
}
