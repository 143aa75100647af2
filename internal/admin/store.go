// Package admin implements the back-office CRUD over the domain entities.
// Each entity is exposed as a Resource with an explicit list of filters;
// anything not listed there is ignored.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Domenick1991/flightshop/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type FilterKind int

const (
	IntFilter FilterKind = iota
	FloatFilter
	BoolFilter
	TextFilter
	ExactFilter
)

// Filter maps a query parameter to a column. Values are parsed to the
// column's type before they reach SQL.
type Filter struct {
	Column string
	Kind   FilterKind
}

func (f Filter) parse(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	switch f.Kind {
	case IntFilter:
		return strconv.ParseInt(raw, 10, 64)
	case FloatFilter:
		return strconv.ParseFloat(raw, 64)
	case BoolFilter:
		return strconv.ParseBool(raw)
	case ExactFilter:
		return strings.ToUpper(raw), nil
	default:
		return "%" + raw + "%", nil
	}
}

func (f Filter) clause() string {
	if f.Kind == TextFilter {
		return f.Column + " ILIKE ?"
	}
	return f.Column + " = ?"
}

type Resource[T any] struct {
	Name    string
	Filters map[string]Filter
	// ID exposes the primary key so handlers can clear or set it.
	ID func(*T) *int64
}

type ListQuery struct {
	Page     int
	PageSize int
	Filters  map[string]string
}

func (q *ListQuery) normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = defaultPageSize
	}
	if q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}
}

type ListResult[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

type Store[T any] struct {
	db  *gorm.DB
	res Resource[T]
}

func NewStore[T any](db *gorm.DB, res Resource[T]) *Store[T] {
	return &Store[T]{db: db, res: res}
}

func (s *Store[T]) Resource() Resource[T] {
	return s.res
}

func (s *Store[T]) List(ctx context.Context, q ListQuery) (*ListResult[T], error) {
	q.normalize()

	type condition struct {
		query string
		value any
	}
	var conds []condition
	for param, raw := range q.Filters {
		f, ok := s.res.Filters[param]
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		v, err := f.parse(raw)
		if err != nil {
			return nil, domain.Invalid(fmt.Sprintf("invalid value for filter %s", param))
		}
		conds = append(conds, condition{query: f.clause(), value: v})
	}
	filtered := func(db *gorm.DB) *gorm.DB {
		for _, c := range conds {
			db = db.Where(c.query, c.value)
		}
		return db
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(new(T)).Scopes(filtered).Count(&total).Error; err != nil {
		return nil, translate(err)
	}

	items := make([]T, 0, q.PageSize)
	err := s.db.WithContext(ctx).Scopes(filtered).
		Order("id DESC").Offset((q.Page - 1) * q.PageSize).Limit(q.PageSize).
		Find(&items).Error
	if err != nil {
		return nil, translate(err)
	}
	return &ListResult[T]{Items: items, Total: total, Page: q.Page, PageSize: q.PageSize}, nil
}

func (s *Store[T]) Get(ctx context.Context, id int64) (*T, error) {
	item := new(T)
	if err := s.db.WithContext(ctx).First(item, id).Error; err != nil {
		return nil, translate(err)
	}
	return item, nil
}

func (s *Store[T]) Create(ctx context.Context, item *T) error {
	*s.res.ID(item) = 0
	if err := validate(item); err != nil {
		return err
	}
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error)
}

// Update overwrites every column of the row with item's values.
func (s *Store[T]) Update(ctx context.Context, id int64, item *T) error {
	if err := validate(item); err != nil {
		return err
	}
	*s.res.ID(item) = id

	res := s.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).
		Select("*").Omit("id", "created_at", clause.Associations).Updates(item)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store[T]) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func validate(item any) error {
	if v, ok := item.(interface{ Validate() error }); ok {
		return v.Validate()
	}
	return nil
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%s: %w", pgErr.ConstraintName, domain.ErrConflict)
		case "23503":
			return domain.Invalid("referenced record does not exist or is still referenced")
		case "23514", "22P02":
			return domain.Invalid(pgErr.Message)
		}
	}
	return err
}
