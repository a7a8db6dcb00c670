package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"stayhub/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// isDuplicate reports MySQL error 1062 (unique key violation). The unique
// keys on reviews.booking_id and users.email surface as ErrConflict.
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

// ---- users ----

func (r *Repo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, insertUserSQL,
		u.ID, u.Name, u.Email, u.PasswordHash, string(u.Role), u.CreatedAt)
	if isDuplicate(err) {
		return domain.E(domain.ErrConflict, "email already registered")
	}
	return err
}

func (r *Repo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, getUserByEmailSQL, email))
}

func (r *Repo) GetUser(ctx context.Context, id string) (domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, getUserSQL, id))
}

func (r *Repo) scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	var role string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return domain.User{}, domain.E(domain.ErrNotFound, "user not found")
		}
		return domain.User{}, err
	}
	u.Role = domain.Role(role)
	return u, nil
}

// ---- properties ----

func (r *Repo) CreateProperty(ctx context.Context, p domain.Property) error {
	_, err := r.db.ExecContext(ctx, insertPropertySQL,
		p.ID, p.OwnerID, p.Name, p.City, p.BaseRate, p.TotalRooms, p.Active, p.CreatedAt)
	return err
}

func (r *Repo) GetProperty(ctx context.Context, id string) (domain.Property, error) {
	var p domain.Property
	err := r.db.QueryRowContext(ctx, getPropertySQL, id).Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.City, &p.BaseRate, &p.TotalRooms,
		&p.Active, &p.AverageRating, &p.TotalReviews, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return domain.Property{}, domain.E(domain.ErrNotFound, "property not found")
	}
	if err != nil {
		return domain.Property{}, err
	}
	return p, nil
}

func (r *Repo) RecomputeRating(ctx context.Context, propertyID string) error {
	_, err := r.db.ExecContext(ctx, recomputeRatingSQL, propertyID, propertyID, propertyID)
	return err
}
