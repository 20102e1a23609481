package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPostgres(t *testing.T) (*Postgres, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewPostgres(db), mock
}

func TestPostgres_Load(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		want    string
		wantErr error
	}{
		{
			name: "existing key",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(loadQuery)).
					WithArgs("c1:profile").
					WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{"id":"1"}`)))
			},
			want: `{"id":"1"}`,
		},
		{
			name: "missing key",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(loadQuery)).
					WithArgs("c1:profile").
					WillReturnRows(sqlmock.NewRows([]string{"value"}))
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pg, mock := newMockPostgres(t)
			tt.setup(mock)

			got, err := pg.Load(context.Background(), "c1:profile")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, string(got))
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgres_LoadQueryError(t *testing.T) {
	pg, mock := newMockPostgres(t)
	mock.ExpectQuery(regexp.QuoteMeta(loadQuery)).
		WithArgs("k").
		WillReturnError(errors.New("connection reset"))

	_, err := pg.Load(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestPostgres_SaveUpserts(t *testing.T) {
	pg, mock := newMockPostgres(t)
	mock.ExpectExec(regexp.QuoteMeta(upsertQuery)).
		WithArgs("c1:talent-horizon-tax-refund-applications", []byte(`[]`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, pg.Save(context.Background(), "c1:talent-horizon-tax-refund-applications", []byte(`[]`)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Migrate(t *testing.T) {
	pg, mock := newMockPostgres(t)
	mock.ExpectExec(regexp.QuoteMeta(createTableQuery)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, pg.Migrate(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
