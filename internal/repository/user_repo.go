package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"jaggery_shop/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type postgresUserRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresUserRepository(db *sql.DB, logger *logrus.Logger) domain.UserRepository {
	return &postgresUserRepository{db: db, log: logger}
}

const userColumns = "id, name, email, password_hash, COALESCE(phone, ''), role, created_at, updated_at"

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Phone,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *postgresUserRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = domain.RoleCustomer
	}

	query := `
        INSERT INTO users (id, name, email, password_hash, phone, role)
        VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
        RETURNING created_at, updated_at
    `
	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Phone, user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			r.log.Warnf("Repo: duplicate email on user create: %s", user.Email)
			return nil, ErrDuplicateEmail
		}
		r.log.Errorf("Repo: failed to create user %s: %v", user.Email, err)
		return nil, fmt.Errorf("could not create user: %w", err)
	}

	r.log.Infof("Repo: user created with ID %s (%s)", user.ID, user.Email)
	return user, nil
}

func (r *postgresUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE email = $1", userColumns)

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.log.Errorf("Repo: failed to get user by email %s: %v", email, err)
		return nil, fmt.Errorf("could not retrieve user: %w", err)
	}
	return user, nil
}

func (r *postgresUserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns)

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.log.Errorf("Repo: failed to get user by ID %s: %v", id, err)
		return nil, fmt.Errorf("could not retrieve user: %w", err)
	}
	return user, nil
}

func (r *postgresUserRepository) UpdateProfile(ctx context.Context, id, name, phone string) (*domain.User, error) {
	query := fmt.Sprintf(`
        UPDATE users
        SET name = $1, phone = NULLIF($2, ''), updated_at = NOW()
        WHERE id = $3
        RETURNING %s
    `, userColumns)

	user, err := scanUser(r.db.QueryRowContext(ctx, query, name, phone, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repo: user %s not found for profile update", id)
			return nil, ErrNotFound
		}
		r.log.Errorf("Repo: failed to update profile for user %s: %v", id, err)
		return nil, fmt.Errorf("could not update profile: %w", err)
	}

	r.log.Infof("Repo: profile updated for user %s", id)
	return user, nil
}

func (r *postgresUserRepository) UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	query := fmt.Sprintf(`
        UPDATE users
        SET role = $1, updated_at = NOW()
        WHERE id = $2
        RETURNING %s
    `, userColumns)

	user, err := scanUser(r.db.QueryRowContext(ctx, query, role, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.log.Errorf("Repo: failed to update role for user %s: %v", id, err)
		return nil, fmt.Errorf("could not update role: %w", err)
	}

	r.log.Infof("Repo: role for user %s set to %s", id, role)
	return user, nil
}

func (r *postgresUserRepository) DeleteUser(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		r.log.Errorf("Repo: failed to delete user %s: %v", id, err)
		return fmt.Errorf("could not delete user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	r.log.Infof("Repo: user %s deleted", id)
	return nil
}

func (r *postgresUserRepository) ListUsers(ctx context.Context, filter domain.ListUsersFilter) ([]domain.User, int, error) {
	page, limit := normalizePage(filter.Page, filter.Limit)

	conds := []string{}
	args := []any{}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d)", len(args), len(args)))
	}
	if filter.Role != "" {
		args = append(args, filter.Role)
		conds = append(conds, fmt.Sprintf("role = $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users"+where, args...).Scan(&total); err != nil {
		r.log.Errorf("Repo: failed to count users: %v", err)
		return nil, 0, fmt.Errorf("could not count users: %w", err)
	}

	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf(
		"SELECT %s FROM users%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		userColumns, where, len(args)-1, len(args),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.log.Errorf("Repo: failed to list users: %v", err)
		return nil, 0, fmt.Errorf("could not retrieve users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, *user)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating users: %w", err)
	}

	return users, total, nil
}

func (r *postgresUserRepository) CountUsers(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&total); err != nil {
		return 0, fmt.Errorf("could not count users: %w", err)
	}
	return total, nil
}

// normalizePage clamps paging parameters to sane values, defaulting to the
// first page of ten.
func normalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
