package artifacts

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/avilov/fieldsync/internal/common"
	"github.com/avilov/fieldsync/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestExists_True(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+EXISTS\s*\(\s*SELECT\s+1\s+FROM\s+org_artifacts\b.*\)$`

	mock.ExpectQuery(q).
		WithArgs("org-1", "uuid:abc").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	got, err := repo.Exists(context.Background(), "org-1", "uuid:abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Fatalf("want true")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestExists_QueryError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+EXISTS`).
		WithArgs("org-1", "uuid:abc").
		WillReturnError(errors.New("db down"))

	_, err := repo.Exists(context.Background(), "org-1", "uuid:abc")
	if err == nil || !regexp.MustCompile(`failed to check artifact: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+org_artifacts\b`

	mock.ExpectExec(q).
		WithArgs("org-1", "uuid:abc", "stored.png", "responsible", "", "tech@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &models.Artifact{
		OrganizationID: "org-1",
		ExternalURI:    "uuid:abc",
		StoredFilename: "stored.png",
		Category:       models.CategoryResponsible,
		ImportedBy:     "tech@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_UniqueViolationMapsToDuplicate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+org_artifacts`).
		WithArgs("org-1", "uuid:abc", "stored.png", "responsible", "", "").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "org_artifacts_dedup_idx"})

	err := repo.Create(context.Background(), &models.Artifact{
		OrganizationID: "org-1",
		ExternalURI:    "uuid:abc",
		StoredFilename: "stored.png",
		Category:       models.CategoryResponsible,
	})
	if !errors.Is(err, common.ErrDuplicateArtifact) {
		t.Fatalf("want ErrDuplicateArtifact, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+org_artifacts`).
		WithArgs("org-1", "uuid:abc", "stored.png", "participant", "Jane Doe", "").
		WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &models.Artifact{
		OrganizationID:   "org-1",
		ExternalURI:      "uuid:abc",
		StoredFilename:   "stored.png",
		Category:         models.CategoryParticipant,
		ParticipantLabel: "Jane Doe",
	})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestListByOrganization(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "organization_id", "external_uri", "stored_filename", "category", "participant_label", "imported_by", "imported_at"}).
		AddRow("a1", "org-1", "uuid:abc", "one.png", "responsible", "", "tech@example.com", now).
		AddRow("a2", "org-1", "uuid:def", "two.png", "participant", "Jane Doe", "tech@example.com", now)

	mock.ExpectQuery(`SELECT\s+id,\s+organization_id,.*FROM\s+org_artifacts`).
		WithArgs("org-1").
		WillReturnRows(rows)

	got, err := repo.ListByOrganization(context.Background(), "org-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 artifacts, got %d", len(got))
	}
	if got[1].Category != models.CategoryParticipant || got[1].ParticipantLabel != "Jane Doe" {
		t.Fatalf("unexpected second row: %+v", got[1])
	}
}
