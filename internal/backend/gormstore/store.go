// Package gormstore implements backend.TableStore on top of gorm.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"consultancy/internal/backend"
	"consultancy/internal/database"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Insert(ctx context.Context, table string, record any) error {
	if err := s.db.WithContext(ctx).Table(table).Create(record).Error; err != nil {
		return translate(table, "insert", err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, table, id string, patch map[string]any) error {
	if len(patch) == 0 {
		return nil
	}
	res := s.db.WithContext(ctx).Table(table).
		Where(clause.Eq{Column: clause.Column{Name: "id"}, Value: id}).
		Updates(patch)
	if res.Error != nil {
		return translate(table, "update", res.Error)
	}
	if res.RowsAffected == 0 {
		return backend.ErrNotFound
	}
	return nil
}

func (s *Store) Select(ctx context.Context, table string, f backend.Filter, dest any) error {
	q := apply(s.db.WithContext(ctx).Table(table), f)
	if err := q.Find(dest).Error; err != nil {
		return translate(table, "select", err)
	}
	return nil
}

func (s *Store) Count(ctx context.Context, table string, f backend.Filter) (int64, error) {
	f.Order, f.Limit = "", 0
	var n int64
	if err := apply(s.db.WithContext(ctx).Table(table), f).Count(&n).Error; err != nil {
		return 0, translate(table, "count", err)
	}
	return n, nil
}

func (s *Store) Delete(ctx context.Context, table, id string) error {
	res := s.db.WithContext(ctx).Exec("DELETE FROM ? WHERE id = ?", clause.Table{Name: table}, id)
	if res.Error != nil {
		return translate(table, "delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return backend.ErrNotFound
	}
	return nil
}

func apply(q *gorm.DB, f backend.Filter) *gorm.DB {
	for _, col := range sortedKeys(f.Eq) {
		q = q.Where(clause.Eq{Column: clause.Column{Name: col}, Value: f.Eq[col]})
	}
	for _, col := range sortedKeys(f.Neq) {
		q = q.Where(clause.Neq{Column: clause.Column{Name: col}, Value: f.Neq[col]})
	}
	if f.Order != "" {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: f.Order}, Desc: f.Desc})
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	return q
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func translate(table, op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return backend.ErrNotFound
	case database.IsUniqueViolation(err):
		return fmt.Errorf("%s %s: %w", op, table, backend.ErrDuplicate)
	default:
		return fmt.Errorf("%w: %s %s: %v", backend.ErrUnavailable, op, table, err)
	}
}
