package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/saqibam92/BlashBerry-nextjs/models"
)

type UserRepo struct{ s *Store }

func (r *UserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	var out *models.User
	r.s.read(func() {
		if u, ok := r.s.users[id]; ok {
			out = &u
		}
	})
	if out == nil {
		return nil, models.ErrNotFound
	}
	return out, nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var out *models.User
	r.s.read(func() {
		for _, u := range r.s.users {
			if u.Email == email {
				out = &u
				return
			}
		}
	})
	if out == nil {
		return nil, models.ErrNotFound
	}
	return out, nil
}

func (r *UserRepo) List(_ context.Context) ([]models.User, error) {
	var list []models.User
	r.s.read(func() {
		for _, u := range r.s.users {
			list = append(list, u)
		}
	})
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *UserRepo) emailTaken(u *models.User) bool {
	for id, other := range r.s.users {
		if id != u.ID && other.Email == u.Email {
			return true
		}
	}
	return false
}

func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	return r.s.write(ctx, func() error {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		if _, ok := r.s.users[u.ID]; ok || r.emailTaken(u) {
			return models.ErrConflict
		}
		u.CreatedAt, u.UpdatedAt = time.Now(), time.Now()
		r.s.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) Update(ctx context.Context, u *models.User) error {
	return r.s.write(ctx, func() error {
		if _, ok := r.s.users[u.ID]; !ok {
			return models.ErrNotFound
		}
		if r.emailTaken(u) {
			return models.ErrConflict
		}
		u.UpdatedAt = time.Now()
		r.s.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func() error {
		if _, ok := r.s.users[id]; !ok {
			return models.ErrNotFound
		}
		delete(r.s.users, id)
		return nil
	})
}

func (r *UserRepo) CountByRole(_ context.Context, role models.Role) (int64, error) {
	var n int64
	r.s.read(func() {
		for _, u := range r.s.users {
			if u.Role == role {
				n++
			}
		}
	})
	return n, nil
}
