package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/samber/lo"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/repository"
)

const userColumns = `id, email, name, image, status, created_at, updated_at`

type userRepository struct {
	db *DB
}

// NewUserRepository instantiates a Postgres-backed user repository.
func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := scanUser(r.db.conn(ctx).QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, notFound("user.get", err, domain.ErrUserNotFound)
	}
	return &user, nil
}

// GetByIDs loads every known user of ids in one query. Unknown ids are absent from the map.
func (r *userRepository) GetByIDs(ctx context.Context, ids []string) (map[string]domain.User, error) {
	ids = lo.Uniq(ids)
	if len(ids) == 0 {
		return map[string]domain.User{}, nil
	}
	rows, err := r.db.conn(ctx).Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, mapError("user.get_many", err)
	}
	users, err := collect(rows, func(rows pgx.Rows) (domain.User, error) { return scanUser(rows) })
	if err != nil {
		return nil, mapError("user.get_many", err)
	}
	return lo.KeyBy(users, func(u domain.User) string { return u.ID }), nil
}

func scanUser(row scanner) (domain.User, error) {
	var (
		u            domain.User
		email, image *string
	)
	if err := row.Scan(&u.ID, &email, &u.Name, &image, &u.Status, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return u, err
	}
	u.Email = derefString(email)
	u.Image = derefString(image)
	return u, nil
}
