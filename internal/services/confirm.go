package services

import "context"

// Confirmer asks the user to approve a destructive action
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// AlwaysConfirm approves every prompt
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string) (bool, error) {
	return true, nil
})

func confirm(ctx context.Context, c Confirmer, prompt string) error {
	if c == nil {
		return nil
	}
	ok, err := c.Confirm(ctx, prompt)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCancelled
	}
	return nil
}
