package utils

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gunceblog/gunce-backend/gunce/database/models"
	"github.com/uptrace/bun"
)

// TransactionOptions configures transaction behavior
type TransactionOptions struct {
	IsolationLevel sql.IsolationLevel
	Timeout        time.Duration
}

// EconomicTransactionManager provides standardized transaction utilities for
// economy operations. Every mutation of a profile goes through one of these
// transactions; there is no read-then-write outside a transaction boundary.
type EconomicTransactionManager struct {
	db *bun.DB
}

// NewEconomicTransactionManager creates a new transaction manager
func NewEconomicTransactionManager(db *bun.DB) *EconomicTransactionManager {
	return &EconomicTransactionManager{db: db}
}

// StandardTransactionOptions returns default transaction options
func StandardTransactionOptions() *TransactionOptions {
	return &TransactionOptions{
		IsolationLevel: sql.LevelReadCommitted,
		Timeout:        DefaultTxTimeout,
	}
}

// SerializableTransactionOptions returns serializable isolation level options for critical operations
func SerializableTransactionOptions() *TransactionOptions {
	return &TransactionOptions{
		IsolationLevel: sql.LevelSerializable,
		Timeout:        DefaultTxTimeout,
	}
}

// WithTransaction executes a function within a database transaction
func (etm *EconomicTransactionManager) WithTransaction(ctx context.Context, opts *TransactionOptions, fn func(context.Context, bun.Tx) error) error {
	if opts == nil {
		opts = StandardTransactionOptions()
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	tx, err := etm.db.BeginTx(timeoutCtx, &sql.TxOptions{
		Isolation: opts.IsolationLevel,
	})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(timeoutCtx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ErrProfileRowMissing is returned by the locking helpers when no profile
// row exists for the user.
var ErrProfileRowMissing = errors.New("profile row not found")

// GetProfileForUpdate reads the profile row with a row-level lock so the
// balance check and the later write belong to the same atomic unit.
func (etm *EconomicTransactionManager) GetProfileForUpdate(ctx context.Context, tx bun.Tx, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := tx.NewSelect().
		Model(&profile).
		Where("user_id = ?", userID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileRowMissing
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

// UpdateProfileTx persists the full profile snapshot inside the transaction.
func (etm *EconomicTransactionManager) UpdateProfileTx(ctx context.Context, tx bun.Tx, profile *models.Profile) error {
	profile.UpdatedAt = time.Now()
	result, err := tx.NewUpdate().
		Model(profile).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrProfileRowMissing
	}
	return nil
}

// GetDB returns the underlying database connection
func (etm *EconomicTransactionManager) GetDB() *bun.DB {
	return etm.db
}
