// internal/contact/repository.go
//
// SQL access for leads and newsletter signups.
//
// Context
// -------
// Both tables carry a unique index on email.  Concurrent submissions racing
// on the same address are resolved by the database, not by the application:
// the loser's INSERT fails with MySQL error 1062, which is translated here
// into apperr.DuplicateError{Field: "email"} and propagated unchanged.
//
// Labels and topics are stored comma-joined; they are written and read in
// full, never queried by element.
package contact

import (
	"context"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/apperr"
)

const mysqlDupEntry = 1062

// InsertContact persists a validated Record, minting its public token.  The
// token is written back onto rec along with the assigned id.
func InsertContact(ctx context.Context, db *sqlx.DB, rec *Record) error {
	rec.Token = uuid.NewString()

	var group any
	if rec.Group != nil {
		group = string(*rec.Group)
	}

	res, err := db.ExecContext(ctx, `
        INSERT INTO contact
               (token, first_name, last_name, email, message,
                company, phone, website, twitter, linkedin, github,
                `+"`group`"+`, labels, source, allow_marketing,
                device, country_iso, referrer,
                created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		rec.Token, rec.FirstName, rec.LastName, rec.Email, rec.Message,
		rec.Company, rec.Phone, rec.Website, rec.Twitter, rec.LinkedIn, rec.GitHub,
		group, joinLabels(rec.Labels), rec.Source, rec.AllowMarketing,
		rec.Meta.Device, rec.Meta.CountryISO, rec.Meta.Referrer)
	if err != nil {
		return translateDup(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = uint64(id)
	return nil
}

// InsertSignup persists a validated Signup, minting its public token.
func InsertSignup(ctx context.Context, db *sqlx.DB, s *Signup) error {
	s.Token = uuid.NewString()

	res, err := db.ExecContext(ctx, `
        INSERT INTO newsletter_signup
               (token, email, first_name, last_name, topics, source,
                device, country_iso, referrer, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())`,
		s.Token, s.Email, s.FirstName, s.LastName,
		strings.Join(s.Topics, ","), s.Source,
		s.Meta.Device, s.Meta.CountryISO, s.Meta.Referrer)
	if err != nil {
		return translateDup(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// contactRow is the scan target; labels arrive comma-joined.
type contactRow struct {
	Record
	GroupRaw  *string `db:"group"`
	LabelsRaw string  `db:"labels"`
}

// ListContacts returns every lead, newest first, for the admin surface.
func ListContacts(ctx context.Context, db *sqlx.DB) ([]*Record, error) {
	var rows []contactRow
	err := db.SelectContext(ctx, &rows, `
        SELECT id, token, first_name, last_name, email, message,
               company, phone, website, twitter, linkedin, github,
               `+"`group`"+`, labels, source, allow_marketing,
               created_at, updated_at
        FROM   contact
        ORDER  BY created_at DESC`)
	if err != nil {
		return nil, err
	}

	out := make([]*Record, len(rows))
	for i := range rows {
		rec := rows[i].Record
		if rows[i].GroupRaw != nil {
			g := Group(*rows[i].GroupRaw)
			rec.Group = &g
		}
		rec.Labels = splitLabels(rows[i].LabelsRaw)
		out[i] = &rec
	}
	return out, nil
}

func joinLabels(labels []Label) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = string(l)
	}
	return strings.Join(parts, ",")
}

func splitLabels(raw string) []Label {
	if raw == "" {
		return []Label{}
	}
	parts := strings.Split(raw, ",")
	out := make([]Label, len(parts))
	for i, p := range parts {
		out[i] = Label(p)
	}
	return out
}

// translateDup maps MySQL duplicate-entry errors onto the domain type.  The
// only unique index on either table is email.
func translateDup(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == mysqlDupEntry {
		return &apperr.DuplicateError{Field: "email"}
	}
	return err
}
