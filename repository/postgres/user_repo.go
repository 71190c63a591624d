package postgres

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/saqibam92/BlashBerry-nextjs/models"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := conn(ctx, r.db).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err, "find user")
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := conn(ctx, r.db).First(&u, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		return nil, translate(err, "find user by email")
	}
	return &u, nil
}

func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	var list []models.User
	if err := conn(ctx, r.db).Order("created_at desc").Find(&list).Error; err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	return list, nil
}

func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return translate(conn(ctx, r.db).Create(u).Error, "create user")
}

func (r *UserRepo) Update(ctx context.Context, u *models.User) error {
	return translate(conn(ctx, r.db).Save(u).Error, "update user")
}

func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := conn(ctx, r.db).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "delete user")
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *UserRepo) CountByRole(ctx context.Context, role models.Role) (int64, error) {
	var n int64
	err := conn(ctx, r.db).Model(&models.User{}).Where("role = ?", role).Count(&n).Error
	return n, errors.Wrap(err, "count users")
}
