package user

import (
	"context"
	"database/sql"
	"errors"
	c "passreset/internal/core/domain/common"
	e "passreset/internal/core/domain/errors"
	"passreset/internal/core/domain/user"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
const EMAIL_CONSTRAINT_NAME = "user_email_idx"

const userColumns = `id, email, password_hash, created_at, password_reset_token, password_reset_token_expires_at`

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type PgxUserRepository struct {
	db DBTX
}

func NewPgxRepository(db DBTX) *PgxUserRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxUserRepository{db: db}
}

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO "user" (email, password_hash, created_at) VALUES ($1, $2, $3)
		 RETURNING `+userColumns,
		string(input.Email),
		string(input.PasswordHash),
		input.CreatedAt,
	)
	u, err = scanUser(row)

	var errUniqueConstraint *pgconn.PgError
	if errors.As(err, &errUniqueConstraint) {
		if errUniqueConstraint.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE &&
			errUniqueConstraint.ConstraintName == EMAIL_CONSTRAINT_NAME {
			return u, user.ErrEmailAlreadyExists
		}
	}
	return u, err
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM "user" WHERE email = $1`,
		string(email),
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	return u, err
}

func (r *PgxUserRepository) GetByPasswordResetToken(
	ctx context.Context,
	token user.PasswordResetToken,
	now time.Time,
) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM "user"
		 WHERE password_reset_token = $1 AND password_reset_token_expires_at > $2`,
		string(token),
		now,
	)
	u, err = scanUser(row)
	// Unknown and expired tokens are indistinguishable on purpose.
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrInvalidPasswordResetToken
	}
	return u, err
}

func (r *PgxUserRepository) SetPasswordResetToken(
	ctx context.Context,
	input user.SetPasswordResetTokenInput,
) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE "user"
		 SET password_reset_token = $2, password_reset_token_expires_at = $3
		 WHERE id = $1`,
		int64(input.UserID),
		string(input.Token),
		input.ExpiresAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *PgxUserRepository) ResetPassword(
	ctx context.Context,
	input user.ResetPasswordInput,
) (u user.User, err error) {
	// Conditional single-row update: the row qualifies only while it still
	// holds the presented, unexpired token, so of any number of concurrent
	// attempts exactly one observes an affected row.
	row := r.db.QueryRow(
		ctx,
		`UPDATE "user"
		 SET password_hash = $2, password_reset_token = NULL, password_reset_token_expires_at = NULL
		 WHERE password_reset_token = $1 AND password_reset_token_expires_at > $3
		 RETURNING `+userColumns,
		string(input.Token),
		string(input.NewPasswordHash),
		input.Now,
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrInvalidPasswordResetToken
	}
	return u, err
}

func scanUser(row pgx.Row) (u user.User, err error) {
	var (
		id           int64
		email        string
		passwordHash string
		createdAt    time.Time
		resetToken   sql.NullString
		resetExpiry  sql.NullTime
	)
	err = row.Scan(&id, &email, &passwordHash, &createdAt, &resetToken, &resetExpiry)
	if err != nil {
		return u, err
	}
	u = user.User{
		ID:           user.ID(id),
		Email:        c.Email(email),
		PasswordHash: user.PasswordHash(passwordHash),
		CreatedAt:    createdAt,
		PasswordResetToken: c.NewOptional(
			user.PasswordResetToken(resetToken.String),
			resetToken.Valid,
		),
		PasswordResetTokenExpiresAt: c.NewOptional(resetExpiry.Time, resetExpiry.Valid),
	}
	err = u.Validate()
	if err != nil {
		return u, err
	}
	return u, nil
}
