package model_test

import (
	"errors"
	"fmt"
	"testing"

	"casebem/internal/model"
)

func TestErrorIs(t *testing.T) {
	errDup := model.NewError(model.KindDuplicateQuote, "supplier already has an active quote")

	if !errors.Is(errDup, model.ErrDuplicateQuote) {
		t.Error("expected kind sentinel to match")
	}
	if errors.Is(errDup, model.ErrFrozen) {
		t.Error("different kinds must not match")
	}
	other := model.NewError(model.KindDuplicateQuote, "something else")
	if errors.Is(errDup, other) {
		t.Error("messages differ, must not match")
	}

	wrapped := fmt.Errorf("submit: %w", errDup)
	if model.KindOf(wrapped) != model.KindDuplicateQuote {
		t.Errorf("KindOf(wrapped) = %s", model.KindOf(wrapped))
	}
}

func TestErrorAtLine(t *testing.T) {
	base := model.NewError(model.KindInvalidLine, "item belongs to another supplier")
	err := base.AtLine(2)

	if err.Error() != "line 2: item belongs to another supplier" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, base) {
		t.Error("line copy should still match its base error")
	}
	if base.Line != 0 {
		t.Error("AtLine must not mutate the base error")
	}
}

func TestStorageError(t *testing.T) {
	cause := errors.New("connection reset")
	err := model.StorageError(cause)

	if model.KindOf(err) != model.KindStorage {
		t.Errorf("KindOf = %s", model.KindOf(err))
	}
	if !errors.Is(err, cause) {
		t.Error("cause should be reachable through Unwrap")
	}
	if model.StorageError(model.ErrFrozen) != error(model.ErrFrozen) {
		t.Error("domain errors pass through")
	}
	if model.KindOf(errors.New("plain")) != model.KindStorage {
		t.Error("unknown errors count as storage errors")
	}
}
