package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

type ListQuery struct {
	Offset int
	Limit  int
	// Filters are column equality conditions, e.g. {"plant_id": 3}.
	Filters map[string]interface{}
}

// Repository is single-table CRUD for one gorm model. Every call runs as
// its own statement on a session bound to ctx.
type Repository[M any] struct {
	db *gorm.DB
}

func New[M any](db *gorm.DB) *Repository[M] {
	return &Repository[M]{db: db}
}

func (r *Repository[M]) session(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *Repository[M]) Create(ctx context.Context, m *M) error {
	if err := r.session(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return fmt.Errorf("create: %w", classify(err))
	}
	return nil
}

func (r *Repository[M]) FindByID(ctx context.Context, id int64) (*M, error) {
	var m M
	if err := r.session(ctx).First(&m, id).Error; err != nil {
		return nil, classify(err)
	}
	return &m, nil
}

func (r *Repository[M]) List(ctx context.Context, q ListQuery) ([]M, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows := make([]M, 0)
	if err := r.filtered(ctx, q.Filters).
		Order("id").
		Offset(q.Offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list: %w", classify(err))
	}
	return rows, nil
}

func (r *Repository[M]) Count(ctx context.Context, filters map[string]interface{}) (int64, error) {
	var total int64
	if err := r.filtered(ctx, filters).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count: %w", classify(err))
	}
	return total, nil
}

func (r *Repository[M]) filtered(ctx context.Context, filters map[string]interface{}) *gorm.DB {
	query := r.session(ctx).Model(new(M))
	if len(filters) > 0 {
		query = query.Where(filters)
	}
	return query
}

// Update overwrites every column of row id except id and created_at with
// the values in m. Nil optionals become NULL.
func (r *Repository[M]) Update(ctx context.Context, id int64, m *M) (*M, error) {
	result := r.session(ctx).
		Model(new(M)).
		Where("id = ?", id).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(m)
	if err := result.Error; err != nil {
		return nil, fmt.Errorf("update: %w", classify(err))
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *Repository[M]) Delete(ctx context.Context, id int64) error {
	result := r.session(ctx).Delete(new(M), id)
	if err := result.Error; err != nil {
		return fmt.Errorf("delete: %w", classify(err))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
