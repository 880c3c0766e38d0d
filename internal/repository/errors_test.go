package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	apperrors "moviedb/internal/errors"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperrors.Kind
	}{
		{name: "record not found", err: gorm.ErrRecordNotFound, want: apperrors.KindNotFound},
		{name: "gorm duplicated key", err: gorm.ErrDuplicatedKey, want: apperrors.KindConflict},
		{name: "mysql duplicate entry", err: &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, want: apperrors.KindConflict},
		{name: "postgres unique violation", err: &pgconn.PgError{Code: "23505"}, want: apperrors.KindConflict},
		{name: "wrapped postgres unique violation", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), want: apperrors.KindConflict},
		{name: "mysql no referenced row", err: &mysql.MySQLError{Number: 1452}, want: apperrors.KindBadRequest},
		{name: "mysql row is referenced", err: &mysql.MySQLError{Number: 1451}, want: apperrors.KindBadRequest},
		{name: "postgres foreign key", err: &pgconn.PgError{Code: "23503"}, want: apperrors.KindBadRequest},
		{name: "gorm foreign key", err: gorm.ErrForeignKeyViolated, want: apperrors.KindBadRequest},
		{name: "other mysql error", err: &mysql.MySQLError{Number: 1205}, want: apperrors.KindInternal},
		{name: "connection error", err: errors.New("connection refused"), want: apperrors.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.err)
			assert.Equal(t, tt.want, apperrors.KindOf(got))
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestTranslateError_KeepsAppErrors(t *testing.T) {
	orig := apperrors.Forbidden("nope")
	assert.Same(t, orig, translateError(orig))
	assert.NoError(t, translateError(nil))
}
