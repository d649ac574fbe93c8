package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/repository"
)

const friendRequestColumns = `id, sender_id, receiver_id, status, created_at, responded_at`

type friendRequestRepository struct {
	db *DB
}

// NewFriendRequestRepository returns a Postgres-backed FriendRequestRepository.
func NewFriendRequestRepository(db *DB) repository.FriendRequestRepository {
	return &friendRequestRepository{db: db}
}

func (r *friendRequestRepository) Create(ctx context.Context, f *domain.FriendRequest) error {
	if f == nil {
		return domain.ErrInvalidPayload
	}
	err := r.db.write(ctx, "friend_request.create", func(ctx context.Context, q Querier) error {
		query := `INSERT INTO friend_requests (` + friendRequestColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
		_, err := q.Exec(ctx, query, f.ID(), f.SenderID(), f.ReceiverID(), string(f.Status()), f.CreatedAt(), nullTime(f.RespondedAt()))
		return err
	})
	if domain.IsDomainError(err, domain.ErrCodeConflict) {
		return domain.ErrFriendRequestDuplicate
	}
	return err
}

func (r *friendRequestRepository) GetByID(ctx context.Context, id string) (*domain.FriendRequest, error) {
	row := r.db.conn(ctx).QueryRow(ctx, `SELECT `+friendRequestColumns+` FROM friend_requests WHERE id = $1`, id)
	f, err := scanFriendRequest(row)
	if err != nil {
		return nil, notFound("friend_request.get", err, domain.ErrFriendRequestNotFound)
	}
	return f, nil
}

func (r *friendRequestRepository) FindBetween(ctx context.Context, a, b string) (*domain.FriendRequest, bool, error) {
	query := `SELECT ` + friendRequestColumns + `
	FROM friend_requests
	WHERE ((sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1))
	  AND status IN ('pending', 'accepted')
	ORDER BY created_at DESC
	LIMIT 1`
	f, err := scanFriendRequest(r.db.conn(ctx).QueryRow(ctx, query, a, b))
	if err != nil {
		if isNoRows(err) {
			return nil, false, nil
		}
		return nil, false, mapError("friend_request.find_between", err)
	}
	return f, true, nil
}

func (r *friendRequestRepository) List(ctx context.Context, filter repository.FriendRequestFilter, page domain.PageRequest) (domain.Page[*domain.FriendRequest], error) {
	const where = `(sender_id = $1 OR receiver_id = $1) AND ($2 = '' OR status = $2)`
	req, limit, offset := pageArgs(page)
	q := r.db.conn(ctx)
	status := string(filter.Status)

	total, err := count(ctx, q, `SELECT COUNT(*) FROM friend_requests WHERE `+where, filter.UserID, status)
	if err != nil {
		return domain.Page[*domain.FriendRequest]{}, mapError("friend_request.list", err)
	}
	query := `SELECT ` + friendRequestColumns + ` FROM friend_requests WHERE ` + where + `
	ORDER BY created_at DESC
	LIMIT $3 OFFSET $4`
	rows, err := q.Query(ctx, query, filter.UserID, status, limit, offset)
	if err != nil {
		return domain.Page[*domain.FriendRequest]{}, mapError("friend_request.list", err)
	}
	items, err := collect(rows, func(rows pgx.Rows) (*domain.FriendRequest, error) { return scanFriendRequest(rows) })
	if err != nil {
		return domain.Page[*domain.FriendRequest]{}, mapError("friend_request.list", err)
	}
	return domain.Page[*domain.FriendRequest]{Items: items, Total: total, Request: req}, nil
}

func (r *friendRequestRepository) Update(ctx context.Context, f *domain.FriendRequest) error {
	if f == nil {
		return domain.ErrInvalidPayload
	}
	return r.db.write(ctx, "friend_request.update", func(ctx context.Context, q Querier) error {
		tag, err := q.Exec(ctx, `UPDATE friend_requests SET status = $2, responded_at = $3 WHERE id = $1`,
			f.ID(), string(f.Status()), nullTime(f.RespondedAt()))
		if err != nil {
			return err
		}
		return expectOne(tag, domain.ErrFriendRequestNotFound)
	})
}

func (r *friendRequestRepository) Delete(ctx context.Context, id string) error {
	return r.db.write(ctx, "friend_request.delete", func(ctx context.Context, q Querier) error {
		tag, err := q.Exec(ctx, `DELETE FROM friend_requests WHERE id = $1`, id)
		if err != nil {
			return err
		}
		return expectOne(tag, domain.ErrFriendRequestNotFound)
	})
}

func scanFriendRequest(row scanner) (*domain.FriendRequest, error) {
	var (
		id, sender, receiver, status string
		createdAt                    time.Time
		respondedAt                  *time.Time
	)
	if err := row.Scan(&id, &sender, &receiver, &status, &createdAt, &respondedAt); err != nil {
		return nil, err
	}
	return domain.ReconstituteFriendRequest(id, sender, receiver, domain.FriendRequestStatus(status), createdAt, respondedAt), nil
}
