// internal/content/repository.go
//
// SQL access for posts.
//
// Context
// -------
// Helpers are free functions over *sqlx.DB so call sites (handlers, the
// search reindexer, tests) can pass whatever handle they hold.  The caller
// supplies a context so every query respects request deadlines.
//
// Error translation happens here and nowhere else: sql.ErrNoRows becomes
// apperr.NotFoundError, and MySQL error 1062 on the unique slug index
// becomes apperr.DuplicateError.  Callers never see driver errors for
// those two cases.
package content

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/apperr"
)

const itemColumns = `id, slug, title, excerpt, body, status,
       created_at, updated_at, published_at`

// mysqlDupEntry is the server error number for a unique-key violation.
const mysqlDupEntry = 1062

// Insert stores a draft post and its tags in one transaction, returning the
// assigned id.  The slug must be unique across every status.
func Insert(ctx context.Context, db *sqlx.DB, it *Item) (uint64, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
        INSERT INTO post (slug, title, excerpt, body, status, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, NOW(), NOW())`,
		it.Slug, it.Title, it.Excerpt, it.Body, it.Status)
	if err != nil {
		return 0, translateDup(err, "slug")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, tag := range it.Tags {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO post_tag (post_id, tag) VALUES (?, ?)`, id, tag); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetBySlug fetches one post regardless of status.  Missing slugs surface
// as apperr.NotFoundError, never as a tag-less zero Item.
func GetBySlug(ctx context.Context, db *sqlx.DB, slug string) (*Item, error) {
	var it Item
	err := db.GetContext(ctx, &it, `
        SELECT `+itemColumns+`
        FROM   post
        WHERE  slug = ?
        LIMIT  1`, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &apperr.NotFoundError{Key: slug}
	}
	if err != nil {
		return nil, err
	}
	if err := loadTags(ctx, db, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

// GetByID fetches one post by primary key.
func GetByID(ctx context.Context, db *sqlx.DB, id uint64) (*Item, error) {
	var it Item
	err := db.GetContext(ctx, &it, `
        SELECT `+itemColumns+`
        FROM   post
        WHERE  id = ?
        LIMIT  1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &apperr.NotFoundError{Key: "post"}
	}
	if err != nil {
		return nil, err
	}
	if err := loadTags(ctx, db, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

// ListPublished returns published posts, newest first.  This is the pool the
// public listing, relevance, and search index all draw from.
func ListPublished(ctx context.Context, db *sqlx.DB) ([]*Item, error) {
	return list(ctx, db, `
        SELECT `+itemColumns+`
        FROM   post
        WHERE  status = 'published'
        ORDER  BY published_at DESC`)
}

// ListAll returns every post in creation order, for the admin surface.
func ListAll(ctx context.Context, db *sqlx.DB) ([]*Item, error) {
	return list(ctx, db, `
        SELECT `+itemColumns+`
        FROM   post
        ORDER  BY created_at DESC`)
}

// Update rewrites the mutable fields of a post and replaces its tag set.
// UpdatedAt is bumped server-side.  Slug, status, and timestamps are managed
// by their dedicated operations.
func Update(ctx context.Context, db *sqlx.DB, it *Item) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
        UPDATE post
        SET    title = ?, excerpt = ?, body = ?, updated_at = NOW()
        WHERE  id = ?`,
		it.Title, it.Excerpt, it.Body, it.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &apperr.NotFoundError{Key: "post"}
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM post_tag WHERE post_id = ?`, it.ID); err != nil {
		return err
	}
	for _, tag := range it.Tags {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO post_tag (post_id, tag) VALUES (?, ?)`, it.ID, tag); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Publish moves a post to published and stamps published_at exactly once.
// Illegal transitions (already published, archived) fail with a field error
// so the admin surface can report them as user mistakes, not 500s.
func Publish(ctx context.Context, db *sqlx.DB, id uint64, now time.Time) error {
	return transition(ctx, db, id, StatusPublished, &now)
}

// Archive moves a post to archived.  PublishedAt, if set, is kept.
func Archive(ctx context.Context, db *sqlx.DB, id uint64) error {
	return transition(ctx, db, id, StatusArchived, nil)
}

// transition locks the row so two racing requests cannot both pass the
// lifecycle check (and, say, re-stamp published_at).  The loser of the race
// re-reads the winner's status and fails the check like any other illegal
// move.
func transition(ctx context.Context, db *sqlx.DB, id uint64, next Status, publishedAt *time.Time) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var cur Status
	err = tx.GetContext(ctx, &cur, `
        SELECT status
        FROM   post
        WHERE  id = ?
        FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return &apperr.NotFoundError{Key: "post"}
	}
	if err != nil {
		return err
	}

	if !cur.CanTransition(next) {
		ve := &apperr.ValidationError{}
		ve.Add("status", "cannot move from "+string(cur)+" to "+string(next))
		return ve
	}

	if next == StatusPublished {
		_, err = tx.ExecContext(ctx, `
            UPDATE post
            SET    status = ?, published_at = ?, updated_at = NOW()
            WHERE  id = ?`, next, publishedAt, id)
	} else {
		_, err = tx.ExecContext(ctx, `
            UPDATE post
            SET    status = ?, updated_at = NOW()
            WHERE  id = ?`, next, id)
	}
	if err != nil {
		return err
	}
	return tx.Commit()
}

func list(ctx context.Context, db *sqlx.DB, query string) ([]*Item, error) {
	var items []*Item
	if err := db.SelectContext(ctx, &items, query); err != nil {
		return nil, err
	}
	for _, it := range items {
		if err := loadTags(ctx, db, it); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// loadTags fills it.Tags in insertion order.
func loadTags(ctx context.Context, db *sqlx.DB, it *Item) error {
	return db.SelectContext(ctx, &it.Tags, `
        SELECT tag
        FROM   post_tag
        WHERE  post_id = ?
        ORDER  BY id`, it.ID)
}

// translateDup maps MySQL duplicate-entry errors onto the domain type.
func translateDup(err error, field string) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == mysqlDupEntry {
		return &apperr.DuplicateError{Field: field}
	}
	return err
}
