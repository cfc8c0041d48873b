package service

import (
	"context"

	"github.com/numancr7/fmea-sub001/internal/fmea/entity"
	"github.com/numancr7/fmea-sub001/internal/fmea/repository"
)

// TeamService 团队服务
type TeamService struct {
	repo *repository.TeamRepository
}

// NewTeamService 创建团队服务
func NewTeamService(repo *repository.TeamRepository) *TeamService {
	return &TeamService{repo: repo}
}

// CreateTeamRequest 创建团队请求
type CreateTeamRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	LeaderID    string `json:"leader_id"`
}

// UpdateTeamRequest 更新团队请求
type UpdateTeamRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	LeaderID    *string `json:"leader_id"`
}

// List 团队列表
func (s *TeamService) List(ctx context.Context) ([]entity.Team, error) {
	return s.repo.FindAll(ctx)
}

// Get 团队详情
func (s *TeamService) Get(ctx context.Context, id string) (*entity.Team, error) {
	return s.repo.FindByID(ctx, id)
}

// Create 创建团队
func (s *TeamService) Create(ctx context.Context, req *CreateTeamRequest) (*entity.Team, error) {
	team := &entity.Team{
		ID:          generateID(),
		Name:        req.Name,
		Description: req.Description,
		LeaderID:    req.LeaderID,
	}
	if err := s.repo.Create(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// Update 更新团队
func (s *TeamService) Update(ctx context.Context, id string, req *UpdateTeamRequest) (*entity.Team, error) {
	team, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		team.Name = *req.Name
	}
	if req.Description != nil {
		team.Description = *req.Description
	}
	if req.LeaderID != nil {
		team.LeaderID = *req.LeaderID
	}

	if err := s.repo.Update(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// Delete 删除团队
func (s *TeamService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
