package catalog

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/avilov/fieldsync/internal/common"
	"github.com/avilov/fieldsync/internal/server/models"
)

func newReaderWithMock(t *testing.T) (*PostgresReader, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresReader(db, 0), mock, db
}

func respRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"uri", "top_level_uri", "creation_date", "content", "octet_length", "unrooted_file_path"})
}

func partRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"uri", "parent_uri", "creation_date", "content", "octet_length", "unrooted_file_path", "full_name"})
}

func TestDiscover_EmptySubmissionRoot(t *testing.T) {
	reader, mock, db := newReaderWithMock(t)
	defer db.Close()

	got, err := reader.Discover(context.Background(), "", models.Categories())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("want no candidates, got %d", len(got))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no query must be issued: %v", err)
	}
}

func TestDiscover_BothCategories(t *testing.T) {
	reader, mock, db := newReaderWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`FROM\s+resp_signature_bn`).
		WithArgs("sub-123").
		WillReturnRows(respRows().
			AddRow("uuid:r1", "sub-123", now, []byte("png-1"), int64(5), "resp1.png").
			AddRow("uuid:r2", "sub-123", now, []byte("png-2"), int64(5), "resp2.png"))

	mock.ExpectQuery(`FROM\s+participant_signature_bn`).
		WithArgs("sub-123").
		WillReturnRows(partRows().
			AddRow("uuid:p1", "uuid:part-9", now, []byte("png-3"), int64(5), "part1.png", "Jane Doe"))

	got, err := reader.Discover(context.Background(), "sub-123", models.Categories())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("want 3 candidates, got %d", len(got))
	}

	// discovery order: responsible first, then participant, each by uri
	if got[0].ExternalURI != "uuid:r1" || got[0].Category != models.CategoryResponsible {
		t.Fatalf("unexpected first candidate: %+v", got[0])
	}
	if got[2].Category != models.CategoryParticipant || got[2].ParticipantLabel != "Jane Doe" {
		t.Fatalf("unexpected participant candidate: %+v", got[2])
	}
	if got[2].ParentURI != "uuid:part-9" {
		t.Fatalf("participant parent uri lost: %+v", got[2])
	}
}

func TestDiscover_SingleCategory(t *testing.T) {
	reader, mock, db := newReaderWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+resp_signature_bn`).
		WithArgs("sub-123").
		WillReturnRows(respRows())

	got, err := reader.Discover(context.Background(), "sub-123", []models.Category{models.CategoryResponsible})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("want 0 candidates, got %d", len(got))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("participant query must not run: %v", err)
	}
}

func TestDiscover_QueryErrorIsFatal(t *testing.T) {
	reader, mock, db := newReaderWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+resp_signature_bn`).
		WithArgs("sub-123").
		WillReturnError(errors.New("connection refused"))

	_, err := reader.Discover(context.Background(), "sub-123", models.Categories())
	if !errors.Is(err, common.ErrCatalogUnavailable) {
		t.Fatalf("want ErrCatalogUnavailable, got %v", err)
	}
}

func TestDiscover_UnknownCategory(t *testing.T) {
	reader, _, db := newReaderWithMock(t)
	defer db.Close()

	_, err := reader.Discover(context.Background(), "sub-123", []models.Category{"selfie"})
	if err == nil {
		t.Fatalf("expected error for unknown category")
	}
}
