package errorutil_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/iludo/profile-service/internal/domain"
	"github.com/iludo/profile-service/pkg/util/errorutil"
)

func TestToDomainErrorSentinels(t *testing.T) {
	tests := []struct {
		err        error
		wantCode   string
		wantStatus int
	}{
		{domain.ErrUnderage, "VALIDATION_FAILED", http.StatusBadRequest},
		{domain.ErrBadPreference, "VALIDATION_FAILED", http.StatusBadRequest},
		{domain.ErrAlreadyInvited, "CONFLICT", http.StatusForbidden},
		{domain.ErrPlateTaken, "CONFLICT", http.StatusForbidden},
		{domain.ErrNoMatch, "CONFLICT", http.StatusForbidden},
		{domain.ErrCodeNotFound, "NOT_FOUND", http.StatusNotFound},
		{domain.ErrPlateNotFound, "NOT_FOUND", http.StatusNotFound},
		{domain.ErrInviteNotReady, "PRECONDITION_FAILED", http.StatusNotAcceptable},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			got := errorutil.ToDomainError(tt.err)
			if got.Code != tt.wantCode || got.HTTPStatus != tt.wantStatus {
				t.Errorf("ToDomainError(%v) = %s/%d, want %s/%d",
					tt.err, got.Code, got.HTTPStatus, tt.wantCode, tt.wantStatus)
			}
		})
	}
}

func TestToDomainErrorWrapped(t *testing.T) {
	wrapped := fmt.Errorf("redeem invite: %w", domain.ErrAlreadyInvited)
	got := errorutil.ToDomainError(wrapped)
	if got.HTTPStatus != http.StatusForbidden {
		t.Errorf("status = %d, want 403", got.HTTPStatus)
	}
	if !errors.Is(got, domain.ErrAlreadyInvited) {
		t.Error("mapped error lost the sentinel")
	}
}

func TestToDomainErrorNoRows(t *testing.T) {
	got := errorutil.ToDomainError(pgx.ErrNoRows)
	if got.HTTPStatus != http.StatusNotFound {
		t.Errorf("status = %d, want 404", got.HTTPStatus)
	}
}

func TestToDomainErrorFallback(t *testing.T) {
	got := errorutil.ToDomainError(errors.New("boom"))
	if got.HTTPStatus != http.StatusInternalServerError || got.Code != "INTERNAL_ERROR" {
		t.Errorf("got %s/%d, want INTERNAL_ERROR/500", got.Code, got.HTTPStatus)
	}
}

func TestToDomainErrorPassthrough(t *testing.T) {
	original := errorutil.NewConflict("finish setting up your profile first", nil)
	got := errorutil.ToDomainError(original)
	if got.HTTPStatus != http.StatusForbidden {
		t.Errorf("status = %d, want 403", got.HTTPStatus)
	}
}
