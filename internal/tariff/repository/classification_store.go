package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/opentariff/tariff/internal/tariff/model"
	"github.com/opentariff/tariff/utils"
)

// ErrClassificationNotFound is returned when a classification code does
// not exist in the tariff.
var ErrClassificationNotFound = errors.New("classification code not found")

// ClassificationStore provides read access to the tariff classification
// hierarchy.
type ClassificationStore struct {
	db *gorm.DB
}

func NewClassificationStore(db *gorm.DB) *ClassificationStore {
	return &ClassificationStore{db: db}
}

// GetByCode returns the classification entry for an exact code.
func (s *ClassificationStore) GetByCode(ctx context.Context, code string) (*model.ClassificationCode, error) {
	var entry model.ClassificationCode
	err := s.db.WithContext(ctx).Where("code = ?", code).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrClassificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query classification code %s: %w", code, err)
	}
	return &entry, nil
}

// Children returns the direct children of a code in the hierarchy,
// ordered by code.
func (s *ClassificationStore) Children(ctx context.Context, parentCode string) ([]model.ClassificationCode, error) {
	codes := []model.ClassificationCode{}
	if err := s.db.WithContext(ctx).
		Where("parent_code = ?", parentCode).
		Order("code").
		Find(&codes).Error; err != nil {
		return nil, fmt.Errorf("failed to query children of %s: %w", parentCode, err)
	}
	return codes, nil
}

// List returns codes matching the filter with pagination. Prefix
// matches against the code itself; Query is a free-text match against
// the description.
func (s *ClassificationStore) List(ctx context.Context, filter model.ClassificationFilter) (*model.ClassificationListResult, error) {
	offset, limit := utils.GetPaginationParams(filter.Offset, filter.Limit)

	query := s.db.WithContext(ctx).Model(&model.ClassificationCode{})
	if filter.Prefix != nil && *filter.Prefix != "" {
		query = query.Where("code LIKE ?", *filter.Prefix+"%")
	}
	if filter.Query != nil && *filter.Query != "" {
		query = query.Where("description ILIKE ?", "%"+*filter.Query+"%")
	}
	if filter.Level != nil {
		query = query.Where("level = ?", *filter.Level)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count classification codes: %w", err)
	}

	codes := []model.ClassificationCode{}
	if err := query.Order("code").Offset(offset).Limit(limit).Find(&codes).Error; err != nil {
		return nil, fmt.Errorf("failed to query classification codes: %w", err)
	}

	return &model.ClassificationListResult{
		TotalCount: total,
		Codes:      codes,
		Offset:     offset,
		Limit:      limit,
	}, nil
}
