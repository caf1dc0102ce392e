package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"

	"socialmedia/internal/snapshot"
)

// link relations stored in post_links
const (
	relationAccount     = "account"
	relationComment     = "comment"
	relationEndorsement = "endorsement"
)

type snapshotRepository struct {
	db *sqlx.DB
}

func NewSnapshotRepository(db *sqlx.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

type metaRow struct {
	Version       int       `db:"version"`
	LastAccountID int       `db:"last_account_id"`
	LastPostID    int       `db:"last_post_id"`
	TakenAt       time.Time `db:"taken_at"`
}

type linkRow struct {
	OwnerID  int    `db:"owner_id"`
	Relation string `db:"relation"`
	ChildID  int    `db:"child_id"`
}

// Save replaces the stored snapshot inside one transaction.
func (r *snapshotRepository) Save(ctx context.Context, s *snapshot.Snapshot) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := clearTables(ctx, tx); err != nil {
		return err
	}

	for i, a := range s.Accounts {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO accounts (id, handle, description, position)
			VALUES ($1, $2, $3, $4)
		`, a.ID, a.Handle, a.Description, i)
		if err != nil {
			return fmt.Errorf("insert account %d: %w", a.ID, err)
		}
		if err := insertLinks(ctx, tx, a.ID, relationAccount, a.PostIDs); err != nil {
			return err
		}
	}

	for i, p := range s.Posts {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO posts (id, kind, author_id, message, parent_id, position)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, p.ID, p.Kind, p.AuthorID, p.Message, p.Parent, i)
		if err != nil {
			return fmt.Errorf("insert post %d: %w", p.ID, err)
		}
		if err := insertLinks(ctx, tx, p.ID, relationComment, p.CommentIDs); err != nil {
			return err
		}
		if err := insertLinks(ctx, tx, p.ID, relationEndorsement, p.EndorsementIDs); err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO platform_meta (id, version, last_account_id, last_post_id, taken_at)
		VALUES (1, $1, $2, $3, $4)
	`, s.Version, s.LastAccountID, s.LastPostID, s.TakenAt)
	if err != nil {
		return fmt.Errorf("insert meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	log.Printf("[SnapshotRepo] Save OK: accounts=%d posts=%d", len(s.Accounts), len(s.Posts))
	return nil
}

func insertLinks(ctx context.Context, tx *sqlx.Tx, ownerID int, relation string, ids []int) error {
	for pos, id := range ids {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO post_links (owner_id, relation, child_id, position)
			VALUES ($1, $2, $3, $4)
		`, ownerID, relation, id, pos)
		if err != nil {
			return fmt.Errorf("insert %s link %d->%d: %w", relation, ownerID, id, err)
		}
	}
	return nil
}

func clearTables(ctx context.Context, tx *sqlx.Tx) error {
	// posts reference accounts, so delete children first
	for _, table := range []string{"platform_meta", "post_links", "posts", "accounts"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// Load reads the stored snapshot. The meta row marks a complete save; without
// it the repository reports snapshot.ErrNotFound.
func (r *snapshotRepository) Load(ctx context.Context) (*snapshot.Snapshot, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{ReadOnly: true, Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var meta metaRow
	err = tx.GetContext(ctx, &meta, `
		SELECT version, last_account_id, last_post_id, taken_at FROM platform_meta WHERE id = 1
	`)
	if err == sql.ErrNoRows {
		return nil, snapshot.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get meta: %w", err)
	}

	var accounts []snapshot.Account
	err = tx.SelectContext(ctx, &accounts, `
		SELECT id, handle, description FROM accounts ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("select accounts: %w", err)
	}

	var posts []snapshot.Post
	err = tx.SelectContext(ctx, &posts, `
		SELECT kind, id, author_id, message, parent_id FROM posts ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("select posts: %w", err)
	}

	var links []linkRow
	err = tx.SelectContext(ctx, &links, `
		SELECT owner_id, relation, child_id FROM post_links ORDER BY owner_id, relation, position
	`)
	if err != nil {
		return nil, fmt.Errorf("select links: %w", err)
	}

	attachLinks(accounts, posts, links)

	log.Printf("[SnapshotRepo] Load OK: accounts=%d posts=%d", len(accounts), len(posts))
	return &snapshot.Snapshot{
		Version:       meta.Version,
		TakenAt:       meta.TakenAt,
		LastAccountID: meta.LastAccountID,
		LastPostID:    meta.LastPostID,
		Accounts:      accounts,
		Posts:         posts,
	}, nil
}

// attachLinks distributes ordered link rows onto their owners.
func attachLinks(accounts []snapshot.Account, posts []snapshot.Post, links []linkRow) {
	accountIdx := make(map[int]int, len(accounts))
	for i, a := range accounts {
		accountIdx[a.ID] = i
	}
	postIdx := make(map[int]int, len(posts))
	for i, p := range posts {
		postIdx[p.ID] = i
	}

	for _, l := range links {
		switch l.Relation {
		case relationAccount:
			if i, ok := accountIdx[l.OwnerID]; ok {
				accounts[i].PostIDs = append(accounts[i].PostIDs, l.ChildID)
			}
		case relationComment:
			if i, ok := postIdx[l.OwnerID]; ok {
				posts[i].CommentIDs = append(posts[i].CommentIDs, l.ChildID)
			}
		case relationEndorsement:
			if i, ok := postIdx[l.OwnerID]; ok {
				posts[i].EndorsementIDs = append(posts[i].EndorsementIDs, l.ChildID)
			}
		}
	}
}

func (r *snapshotRepository) Clear(ctx context.Context) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := clearTables(ctx, tx); err != nil {
		return err
	}
	return tx.Commit()
}
