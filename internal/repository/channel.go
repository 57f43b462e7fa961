package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/talkincode/channelhub/internal/domain"
)

// ErrNotFound is returned when no channel matches the requested id
var ErrNotFound = errors.New("channel not found")

// ChannelUpdate carries the fields of a partial update; nil fields are left untouched
type ChannelUpdate struct {
	Name   *string
	Number *int64
}

// Empty reports whether the update carries no field at all
func (u ChannelUpdate) Empty() bool {
	return u.Name == nil && u.Number == nil
}

// ChannelRepository handles database operations for channel records
type ChannelRepository interface {
	// List returns every channel in insertion order
	List(ctx context.Context) ([]domain.Channel, error)

	// GetByID retrieves a channel by ID, ErrNotFound when absent
	GetByID(ctx context.Context, id int64) (*domain.Channel, error)

	// Create inserts a new channel, the store assigns id and timestamps
	Create(ctx context.Context, ch *domain.Channel) error

	// Update applies the non-nil fields and returns the stored record
	Update(ctx context.Context, id int64, upd ChannelUpdate) (*domain.Channel, error)

	// Delete removes a channel, ErrNotFound when absent
	Delete(ctx context.Context, id int64) error

	// DeleteMany removes all matching channels and returns the number removed
	DeleteMany(ctx context.Context, ids []int64) (int64, error)

	// Count returns the number of stored channels
	Count(ctx context.Context) (int64, error)
}

// GormChannelRepository is the GORM implementation of ChannelRepository
type GormChannelRepository struct {
	db *gorm.DB
}

// NewGormChannelRepository creates a new GORM-based repository
func NewGormChannelRepository(db *gorm.DB) *GormChannelRepository {
	return &GormChannelRepository{db: db}
}

func (r *GormChannelRepository) List(ctx context.Context) ([]domain.Channel, error) {
	channels := make([]domain.Channel, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&channels).Error; err != nil {
		return nil, errors.Wrap(err, "list channels")
	}
	return channels, nil
}

func (r *GormChannelRepository) GetByID(ctx context.Context, id int64) (*domain.Channel, error) {
	var ch domain.Channel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&ch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, errors.Wrapf(err, "get channel %d", id)
	}
	return &ch, nil
}

func (r *GormChannelRepository) Create(ctx context.Context, ch *domain.Channel) error {
	if err := r.db.WithContext(ctx).Create(ch).Error; err != nil {
		return errors.Wrap(err, "create channel")
	}
	return nil
}

func (r *GormChannelRepository) Update(ctx context.Context, id int64, upd ChannelUpdate) (*domain.Channel, error) {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if upd.Name != nil {
		updates["name"] = *upd.Name
	}
	if upd.Number != nil {
		updates["number"] = *upd.Number
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ch domain.Channel
		if err := tx.Where("id = ?", id).First(&ch).Error; err != nil {
			return err
		}
		return tx.Model(&ch).Updates(updates).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, errors.Wrapf(err, "update channel %d", id)
	}
	return r.GetByID(ctx, id)
}

func (r *GormChannelRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Channel{})
	if tx.Error != nil {
		return errors.Wrapf(tx.Error, "delete channel %d", id)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormChannelRepository) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tx := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&domain.Channel{})
	if tx.Error != nil {
		return 0, errors.Wrap(tx.Error, "delete channels")
	}
	return tx.RowsAffected, nil
}

func (r *GormChannelRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Channel{}).Count(&total).Error; err != nil {
		return 0, errors.Wrap(err, "count channels")
	}
	return total, nil
}
