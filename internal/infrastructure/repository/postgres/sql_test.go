package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	if !isNotFound(sql.ErrNoRows) {
		t.Error("isNotFound(sql.ErrNoRows) = false, want true")
	}
	if !isNotFound(fmt.Errorf("get row: %w", sql.ErrNoRows)) {
		t.Error("isNotFound(wrapped ErrNoRows) = false, want true")
	}
	if isNotFound(errors.New("connection refused")) {
		t.Error("isNotFound(other error) = true, want false")
	}
	if isNotFound(nil) {
		t.Error("isNotFound(nil) = true, want false")
	}
}
