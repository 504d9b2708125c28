package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"job_backend/internal/feature/auth/domain/entity"
	"job_backend/internal/feature/auth/usecase"
	"job_backend/internal/platform/db"
)

// userGorm is the SQL implementation of usecase.UserRepository.
// It works on PostgreSQL, MySQL and SQLite; the connection must be opened with
// TranslateError so duplicate keys surface as gorm.ErrDuplicatedKey.
type userGorm struct {
	db  *gorm.DB
	now func() time.Time
}

var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm creates a GORM-backed credential store.
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db, now: time.Now}
}

// Create inserts the user. The unique index on email decides concurrent races.
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = r.now().UTC()
	}
	m := fromEntity(u)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	*u = *m.toEntity()
	return nil
}

// FindByEmail returns the user whose email matches exactly.
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var m UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	// MySQL's default collation ignores case
	if m.Email != email {
		return nil, usecase.ErrUserNotFound
	}
	return m.toEntity(), nil
}

// Ping checks the connection pool.
func (r *userGorm) Ping(ctx context.Context) error {
	return db.Ping(ctx, r.db)
}
