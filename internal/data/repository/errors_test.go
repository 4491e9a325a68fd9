package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapError(t *testing.T) {
	plain := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unique", &pgconn.PgError{Code: "23505", ConstraintName: "reviews_movie_id_user_id_key"}, ErrUniqueViolation},
		{"foreign key", &pgconn.PgError{Code: "23503"}, ErrForeignKeyViolation},
		{"check", &pgconn.PgError{Code: "23514", ConstraintName: "profile_follows_no_self"}, ErrCheckViolation},
		{"wrapped", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), ErrUniqueViolation},
		{"other code", &pgconn.PgError{Code: "42P01"}, nil},
		{"not postgres", plain, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.err)
			if tt.want == nil {
				if got != tt.err {
					t.Fatalf("expected error unchanged, got %v", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			var pgErr *pgconn.PgError
			if !errors.As(got, &pgErr) {
				t.Error("expected driver error to stay in the chain")
			}
		})
	}
}
