// internal/content/repository_test.go
//
// Unit-tests for the post repository using sqlmock.
//
// Run: go test ./internal/content -v

package content

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/apperr"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { raw.Close() })
	return sqlx.NewDb(raw, "sqlmock"), mock
}

func itemRows(status Status, publishedAt *time.Time) *sqlmock.Rows {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var pub any // NULL unless set
	if publishedAt != nil {
		pub = *publishedAt
	}
	return sqlmock.NewRows([]string{
		"id", "slug", "title", "excerpt", "body", "status",
		"created_at", "updated_at", "published_at",
	}).AddRow(1, "future-of-proptech", "The Future of PropTech", "short",
		"body text", string(status), now, now, pub)
}

func TestGetBySlug(t *testing.T) {
	db, mock := newMockDB(t)

	published := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM\s+post\s+WHERE\s+slug = \?`).
		WithArgs("future-of-proptech").
		WillReturnRows(itemRows(StatusPublished, &published))
	mock.ExpectQuery(`FROM\s+post_tag\s+WHERE\s+post_id = \?`).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"tag"}).AddRow("PropTech").AddRow("AI"))

	it, err := GetBySlug(context.Background(), db, "future-of-proptech")
	if err != nil {
		t.Fatalf("GetBySlug error: %v", err)
	}
	if it.ID != 1 || it.Status != StatusPublished {
		t.Fatalf("unexpected item: %+v", it)
	}
	if len(it.Tags) != 2 || it.Tags[0] != "PropTech" || it.Tags[1] != "AI" {
		t.Fatalf("unexpected tags: %#v", it.Tags)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestGetBySlug_NotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`FROM\s+post\s+WHERE\s+slug = \?`).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := GetBySlug(context.Background(), db, "nope")
	if apperr.IsNotFound(err) == nil {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestInsert_DuplicateSlug(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO post `).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	_, err := Insert(context.Background(), db, &Item{
		Slug: "taken", Title: "Taken", Status: StatusDraft,
	})
	dup := apperr.IsDuplicate(err)
	if dup == nil || dup.Field != "slug" {
		t.Fatalf("expected DuplicateError on slug, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestInsert_WithTags(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO post `).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec(`INSERT INTO post_tag`).
		WithArgs(int64(7), "AI").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO post_tag`).
		WithArgs(int64(7), "Bitcoin").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	id, err := Insert(context.Background(), db, &Item{
		Slug: "new-post", Title: "New Post", Status: StatusDraft,
		Tags: []string{"AI", "Bitcoin"},
	})
	if err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if id != 7 {
		t.Fatalf("id = %d, want 7", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func statusRow(status Status) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"status"}).AddRow(string(status))
}

func TestPublish_StampsPublishedAt(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT\s+status\s+FROM\s+post\s+WHERE\s+id = \?\s+FOR UPDATE`).
		WithArgs(uint64(1)).
		WillReturnRows(statusRow(StatusDraft))

	now := time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC)
	mock.ExpectExec(`UPDATE post`).
		WithArgs(string(StatusPublished), now, uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := Publish(context.Background(), db, 1, now); err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestPublish_ArchivedIsTerminal(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT\s+status\s+FROM\s+post\s+WHERE\s+id = \?\s+FOR UPDATE`).
		WithArgs(uint64(1)).
		WillReturnRows(statusRow(StatusArchived))
	mock.ExpectRollback()

	err := Publish(context.Background(), db, 1, time.Now())
	ve := apperr.IsValidation(err)
	if ve == nil || len(ve.Fields) != 1 || ve.Fields[0].Field != "status" {
		t.Fatalf("expected status ValidationError, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

// Two requests racing to publish: the row lock serializes them, so the
// second transaction reads the first one's committed status and fails the
// lifecycle check instead of re-stamping published_at.
func TestPublish_LoserOfRaceRejected(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT\s+status\s+FROM\s+post\s+WHERE\s+id = \?\s+FOR UPDATE`).
		WithArgs(uint64(1)).
		WillReturnRows(statusRow(StatusPublished))
	mock.ExpectRollback()

	err := Publish(context.Background(), db, 1, time.Now())
	if apperr.IsValidation(err) == nil {
		t.Fatalf("expected status ValidationError, got %v", err)
	}
}
