package workflows

import (
	"context"
	"fmt"

	logger "github.com/PolarWolf314/tokn/internal/logging"
	"github.com/PolarWolf314/tokn/internal/profiles"
	"github.com/PolarWolf314/tokn/internal/secrets"
)

// secretTxn applies secret writes for one profile and remembers how to
// undo them.
type secretTxn struct {
	repo *profiles.Repository
	name string
	log  logger.Logger

	undo []func(ctx context.Context) error
}

func newSecretTxn(env *Env, name string) *secretTxn {
	return &secretTxn{repo: env.Repo, name: name, log: env.Logger}
}

func (tx *secretTxn) set(ctx context.Context, secretType secrets.SecretType, value string) error {
	if err := tx.remember(ctx, secretType); err != nil {
		return err
	}
	return tx.repo.SetSecret(ctx, tx.name, secretType, value)
}

func (tx *secretTxn) remove(ctx context.Context, secretType secrets.SecretType) error {
	if err := tx.remember(ctx, secretType); err != nil {
		return err
	}
	return tx.repo.DeleteSecret(ctx, tx.name, secretType)
}

func (tx *secretTxn) remember(ctx context.Context, secretType secrets.SecretType) error {
	previous, existed, err := tx.repo.Secret(ctx, tx.name, secretType)
	if err != nil {
		return fmt.Errorf("reading current %s: %w", secretType, err)
	}

	tx.undo = append(tx.undo, func(ctx context.Context) error {
		if existed {
			return tx.repo.SetSecret(ctx, tx.name, secretType, previous)
		}
		return tx.repo.DeleteSecret(ctx, tx.name, secretType)
	})
	return nil
}

// rollback restores every secret touched by the transaction, newest first.
// It runs even when ctx is already cancelled.
func (tx *secretTxn) rollback(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	for i := len(tx.undo) - 1; i >= 0; i-- {
		if err := tx.undo[i](ctx); err != nil {
			tx.log.Warnf("Could not restore a secret of profile %s: %v", tx.name, err)
		}
	}
	tx.undo = nil
}
