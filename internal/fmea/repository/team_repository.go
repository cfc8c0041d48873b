package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/numancr7/fmea-sub001/internal/fmea/entity"
)

// TeamRepository 团队仓库
type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// FindAll 团队列表
func (r *TeamRepository) FindAll(ctx context.Context) ([]entity.Team, error) {
	var items []entity.Team
	err := r.db.WithContext(ctx).Order("name ASC").Find(&items).Error
	return items, err
}

// FindByID 根据ID查找团队
func (r *TeamRepository) FindByID(ctx context.Context, id string) (*entity.Team, error) {
	var team entity.Team
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&team).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &team, nil
}

// ExistsByName 团队名是否已存在（创建前存在性检查；并发竞态由唯一索引兜底）
func (r *TeamRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Team{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

// Create 创建团队
func (r *TeamRepository) Create(ctx context.Context, team *entity.Team) error {
	return translateErr(r.db.WithContext(ctx).Create(team).Error)
}

// Update 更新团队
func (r *TeamRepository) Update(ctx context.Context, team *entity.Team) error {
	return translateErr(r.db.WithContext(ctx).Save(team).Error)
}

// Delete 删除团队
func (r *TeamRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Team{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
