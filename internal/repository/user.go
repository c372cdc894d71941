package repository

import (
	"context"

	"github.com/deppfellow/crm/internal/entity"
	"gorm.io/gorm"
)

const searchCondition = "first_name LIKE ? OR last_name LIKE ? OR email LIKE ? OR birth_date LIKE ?"

type UserRepository interface {
	// Create inserts user and sets its ID.
	Create(ctx context.Context, user *entity.User) error

	// Search returns the users whose first name, last name, email or birth
	// date contains term, in storage order. An empty term matches every row.
	Search(ctx context.Context, term string) ([]entity.User, error)

	// UpdateByID overwrites the four business fields of row id and reports
	// how many rows matched.
	UpdateByID(ctx context.Context, id int64, user *entity.User) (int64, error)

	// DeleteByID removes row id and reports how many rows went away.
	DeleteByID(ctx context.Context, id int64) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Search(ctx context.Context, term string) ([]entity.User, error) {
	pattern := "%" + term + "%"

	users := []entity.User{}
	err := r.db.WithContext(ctx).
		Where(searchCondition, pattern, pattern, pattern, pattern).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	if users == nil {
		users = []entity.User{}
	}

	return users, nil
}

func (r *userRepository) UpdateByID(ctx context.Context, id int64, user *entity.User) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"email":      user.Email,
			"birth_date": user.BirthDate,
		})

	return result.RowsAffected, result.Error
}

func (r *userRepository) DeleteByID(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entity.User{})

	return result.RowsAffected, result.Error
}
