// internal/contact/repository_test.go
//
// Repository tests against a sqlmock-backed *sqlx.DB.
//
// Run: go test ./internal/contact -v

package contact

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
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
	db := sqlx.NewDb(raw, "sqlmock")
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func sampleRecord() *Record {
	g := GroupAngel
	return &Record{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Message:   "Hello.",
		Group:     &g,
		Labels:    []Label{LabelPropTech, LabelAI},
		Source:    SourceWebsite,
		Meta:      RequestMeta{Device: "desktop", CountryISO: "GB", Referrer: "https://example.com/about"},
	}
}

func TestInsertContact(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`INSERT INTO contact`).
		WithArgs(sqlmock.AnyArg(), // token minted at insert
			"Ada", "Lovelace", "ada@example.com", "Hello.",
			"", "", "", "", "", "",
			"angel", "proptech,ai", "website", false,
			"desktop", "GB", "https://example.com/about").
		WillReturnResult(sqlmock.NewResult(42, 1))

	rec := sampleRecord()
	if err := InsertContact(context.Background(), db, rec); err != nil {
		t.Fatalf("InsertContact: %v", err)
	}
	if rec.ID != 42 {
		t.Errorf("ID = %d, want 42", rec.ID)
	}
	if rec.Token == "" {
		t.Error("token was not minted")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestInsertContact_NilGroupEmptyLabels(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`INSERT INTO contact`).
		WithArgs(sqlmock.AnyArg(),
			"Ada", "Lovelace", "ada@example.com", "Hello.",
			"", "", "", "", "", "",
			nil, "", "website", false,
			"", "", "").
		WillReturnResult(sqlmock.NewResult(1, 1))

	rec := sampleRecord()
	rec.Group = nil
	rec.Labels = nil
	rec.Meta = RequestMeta{}
	if err := InsertContact(context.Background(), db, rec); err != nil {
		t.Fatalf("InsertContact: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestInsertContact_DuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`INSERT INTO contact`).
		WillReturnError(&mysql.MySQLError{Number: mysqlDupEntry, Message: "Duplicate entry"})

	err := InsertContact(context.Background(), db, sampleRecord())
	dup := apperr.IsDuplicate(err)
	if dup == nil {
		t.Fatalf("expected DuplicateError, got %v", err)
	}
	if dup.Field != "email" {
		t.Errorf("Field = %q, want email", dup.Field)
	}
}

func TestInsertSignup(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`INSERT INTO newsletter_signup`).
		WithArgs(sqlmock.AnyArg(),
			"ada@example.com", "", "", "general,bitcoin", "newsletter",
			"", "", "").
		WillReturnResult(sqlmock.NewResult(9, 1))

	s := &Signup{
		Email:  "ada@example.com",
		Topics: []string{"general", "bitcoin"},
		Source: SourceNewsletter,
	}
	if err := InsertSignup(context.Background(), db, s); err != nil {
		t.Fatalf("InsertSignup: %v", err)
	}
	if s.ID != 9 || s.Token == "" {
		t.Errorf("ID = %d, token = %q", s.ID, s.Token)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestInsertSignup_DuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`INSERT INTO newsletter_signup`).
		WillReturnError(&mysql.MySQLError{Number: mysqlDupEntry, Message: "Duplicate entry"})

	err := InsertSignup(context.Background(), db, &Signup{Email: "ada@example.com"})
	if apperr.IsDuplicate(err) == nil {
		t.Fatalf("expected DuplicateError, got %v", err)
	}
}

func TestListContacts(t *testing.T) {
	db, mock := newMockDB(t)

	now := time.Now()
	group := "venture-capital"
	mock.ExpectQuery(`FROM\s+contact`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "token", "first_name", "last_name", "email", "message",
			"company", "phone", "website", "twitter", "linkedin", "github",
			"group", "labels", "source", "allow_marketing",
			"created_at", "updated_at",
		}).
			AddRow(2, "tok-2", "Grace", "Hopper", "grace@example.com", "Hi",
				"", "", "", "", "", "ghopper",
				group, "ai,finance", "referral", true, now, now).
			AddRow(1, "tok-1", "Ada", "Lovelace", "ada@example.com", "Hello",
				"", "", "", "", "", "",
				nil, "", "website", false, now, now))

	recs, err := ListContacts(context.Background(), db)
	if err != nil {
		t.Fatalf("ListContacts: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("len = %d, want 2", len(recs))
	}

	if recs[0].Group == nil || *recs[0].Group != GroupVentureCapital {
		t.Errorf("Group = %v, want venture-capital", recs[0].Group)
	}
	want := []Label{LabelAI, LabelFinance}
	if len(recs[0].Labels) != 2 || recs[0].Labels[0] != want[0] || recs[0].Labels[1] != want[1] {
		t.Errorf("Labels = %v, want %v", recs[0].Labels, want)
	}
	if !recs[0].AllowMarketing {
		t.Error("AllowMarketing not scanned")
	}
	if recs[0].GitHub != "ghopper" {
		t.Errorf("GitHub = %q", recs[0].GitHub)
	}

	if recs[1].Group != nil {
		t.Errorf("Group = %v, want nil", recs[1].Group)
	}
	if len(recs[1].Labels) != 0 {
		t.Errorf("Labels = %v, want empty", recs[1].Labels)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
