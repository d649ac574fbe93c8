package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/samber/lo"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/repository"
)

const postColumns = `p.id, p.author_id, p.content, p.emotion, p.visibility, p.created_at, p.updated_at`

// feedVisibility selects the posts a viewer ($1) may read.
const feedVisibility = `(p.author_id = $1
	OR p.visibility = 'public'
	OR (p.visibility = 'friends' AND EXISTS (
		SELECT 1 FROM friend_requests f
		WHERE f.status = 'accepted'
		  AND ((f.sender_id = $1 AND f.receiver_id = p.author_id) OR (f.receiver_id = $1 AND f.sender_id = p.author_id))
	)))`

type postRepository struct {
	db *DB
}

// NewPostRepository returns a Postgres-backed PostRepository.
func NewPostRepository(db *DB) repository.PostRepository {
	return &postRepository{db: db}
}

type postRow struct {
	id, authorID, content string
	emotion               *string
	visibility            string
	createdAt, updatedAt  time.Time
}

func (r *postRepository) Create(ctx context.Context, p *domain.Post) error {
	if p == nil {
		return domain.ErrInvalidPayload
	}
	err := r.db.write(ctx, "post.create", func(ctx context.Context, q Querier) error {
		const query = `
		INSERT INTO posts (id, author_id, content, emotion, visibility, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		if _, err := q.Exec(ctx, query, p.ID(), p.AuthorID(), p.Content(), emotionArg(p.Emotion()), string(p.Visibility()), p.CreatedAt(), p.UpdatedAt()); err != nil {
			return err
		}
		return postReactions.writeDiff(ctx, q, p.ID(), p.Reactions())
	})
	if err != nil {
		return err
	}
	p.Reactions().Commit()
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	q := r.db.conn(ctx)
	row, err := scanPostRow(q.QueryRow(ctx, `SELECT `+postColumns+` FROM posts p WHERE p.id = $1`, id))
	if err != nil {
		return nil, notFound("post.get", err, domain.ErrPostNotFound)
	}
	items, err := r.hydrate(ctx, q, []postRow{row})
	if err != nil {
		return nil, mapError("post.get", err)
	}
	return items[0], nil
}

func (r *postRepository) ListFeed(ctx context.Context, viewerID string, page domain.PageRequest) (domain.Page[*domain.Post], error) {
	req, limit, offset := pageArgs(page)
	q := r.db.conn(ctx)

	total, err := count(ctx, q, `SELECT COUNT(*) FROM posts p WHERE `+feedVisibility, viewerID)
	if err != nil {
		return domain.Page[*domain.Post]{}, mapError("post.feed", err)
	}
	query := `SELECT ` + postColumns + ` FROM posts p WHERE ` + feedVisibility + `
	ORDER BY p.created_at DESC
	LIMIT $2 OFFSET $3`
	rows, err := q.Query(ctx, query, viewerID, limit, offset)
	if err != nil {
		return domain.Page[*domain.Post]{}, mapError("post.feed", err)
	}
	roots, err := collect(rows, func(rows pgx.Rows) (postRow, error) { return scanPostRow(rows) })
	if err != nil {
		return domain.Page[*domain.Post]{}, mapError("post.feed", err)
	}
	items, err := r.hydrate(ctx, q, roots)
	if err != nil {
		return domain.Page[*domain.Post]{}, mapError("post.feed", err)
	}
	return domain.Page[*domain.Post]{Items: items, Total: total, Request: req}, nil
}

// Update rewrites the root and applies the reaction diff.
func (r *postRepository) Update(ctx context.Context, p *domain.Post) error {
	if p == nil {
		return domain.ErrInvalidPayload
	}
	err := r.db.write(ctx, "post.update", func(ctx context.Context, q Querier) error {
		const query = `
		UPDATE posts
		SET content = $2,
			emotion = $3,
			visibility = $4,
			updated_at = $5
		WHERE id = $1
		`
		tag, err := q.Exec(ctx, query, p.ID(), p.Content(), emotionArg(p.Emotion()), string(p.Visibility()), p.UpdatedAt())
		if err != nil {
			return err
		}
		if err := expectOne(tag, domain.ErrPostNotFound); err != nil {
			return err
		}
		return postReactions.writeDiff(ctx, q, p.ID(), p.Reactions())
	})
	if err != nil {
		return err
	}
	p.Reactions().Commit()
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	return r.db.write(ctx, "post.delete", func(ctx context.Context, q Querier) error {
		tag, err := q.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
		if err != nil {
			return err
		}
		return expectOne(tag, domain.ErrPostNotFound)
	})
}

func (r *postRepository) hydrate(ctx context.Context, q Querier, roots []postRow) ([]*domain.Post, error) {
	ids := lo.Map(roots, func(row postRow, _ int) string { return row.id })
	reactions, err := postReactions.load(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Post, 0, len(roots))
	for _, row := range roots {
		out = append(out, domain.ReconstitutePost(
			row.id, row.authorID, row.content, emotionPtr(row.emotion), domain.Visibility(row.visibility),
			reactionsOf(reactions[row.id]), row.createdAt, row.updatedAt,
		))
	}
	return out, nil
}

func scanPostRow(row scanner) (postRow, error) {
	var p postRow
	err := row.Scan(&p.id, &p.authorID, &p.content, &p.emotion, &p.visibility, &p.createdAt, &p.updatedAt)
	return p, err
}

type commentRepository struct {
	db *DB
}

// NewCommentRepository returns a Postgres-backed CommentRepository.
func NewCommentRepository(db *DB) repository.CommentRepository {
	return &commentRepository{db: db}
}

const commentColumns = `id, post_id, author_id, content, created_at`

func (r *commentRepository) Create(ctx context.Context, c *domain.Comment) error {
	if c == nil {
		return domain.ErrInvalidPayload
	}
	return r.db.write(ctx, "comment.create", func(ctx context.Context, q Querier) error {
		query := `INSERT INTO comments (` + commentColumns + `) VALUES ($1, $2, $3, $4, $5)`
		_, err := q.Exec(ctx, query, c.ID(), c.PostID(), c.AuthorID(), c.Content(), c.CreatedAt())
		return err
	})
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	c, err := scanComment(r.db.conn(ctx).QueryRow(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, id))
	if err != nil {
		return nil, notFound("comment.get", err, domain.ErrCommentNotFound)
	}
	return c, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID string, page domain.PageRequest) (domain.Page[*domain.Comment], error) {
	req, limit, offset := pageArgs(page)
	q := r.db.conn(ctx)

	total, err := count(ctx, q, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID)
	if err != nil {
		return domain.Page[*domain.Comment]{}, mapError("comment.list", err)
	}
	query := `SELECT ` + commentColumns + ` FROM comments WHERE post_id = $1
	ORDER BY created_at
	LIMIT $2 OFFSET $3`
	rows, err := q.Query(ctx, query, postID, limit, offset)
	if err != nil {
		return domain.Page[*domain.Comment]{}, mapError("comment.list", err)
	}
	items, err := collect(rows, func(rows pgx.Rows) (*domain.Comment, error) { return scanComment(rows) })
	if err != nil {
		return domain.Page[*domain.Comment]{}, mapError("comment.list", err)
	}
	return domain.Page[*domain.Comment]{Items: items, Total: total, Request: req}, nil
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	return r.db.write(ctx, "comment.delete", func(ctx context.Context, q Querier) error {
		tag, err := q.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
		if err != nil {
			return err
		}
		return expectOne(tag, domain.ErrCommentNotFound)
	})
}

// CountByPosts returns the comment count of every post id. Posts without comments map to zero.
func (r *commentRepository) CountByPosts(ctx context.Context, postIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}
	rows, err := r.db.conn(ctx).Query(ctx, `SELECT post_id, COUNT(*) FROM comments WHERE post_id = ANY($1) GROUP BY post_id`, postIDs)
	if err != nil {
		return nil, mapError("comment.count", err)
	}
	type postCount struct {
		postID string
		total  int
	}
	items, err := collect(rows, func(rows pgx.Rows) (postCount, error) {
		var c postCount
		err := rows.Scan(&c.postID, &c.total)
		return c, err
	})
	if err != nil {
		return nil, mapError("comment.count", err)
	}
	for _, id := range postIDs {
		counts[id] = 0
	}
	for _, c := range items {
		counts[c.postID] = c.total
	}
	return counts, nil
}

func scanComment(row scanner) (*domain.Comment, error) {
	var (
		id, postID, authorID, content string
		createdAt                     time.Time
	)
	if err := row.Scan(&id, &postID, &authorID, &content, &createdAt); err != nil {
		return nil, err
	}
	return domain.ReconstituteComment(id, postID, authorID, content, createdAt), nil
}
