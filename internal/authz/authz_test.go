package authz

import (
	"errors"
	"testing"

	"reviewhub/internal/apperr"
)

func TestRequireOwner(t *testing.T) {
	if err := RequireOwner("u1", "u1"); err != nil {
		t.Fatalf("owner rejected: %v", err)
	}

	err := RequireOwner("u1", "u2")
	if err == nil {
		t.Fatal("non-owner accepted")
	}
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Kind != apperr.KindAuthorization {
		t.Fatalf("err = %v, want authorization kind", err)
	}
}
