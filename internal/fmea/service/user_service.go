package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/numancr7/fmea-sub001/internal/fmea/authz"
	"github.com/numancr7/fmea-sub001/internal/fmea/entity"
	"github.com/numancr7/fmea-sub001/internal/fmea/repository"
)

// UserService 用户服务
type UserService struct {
	repo     *repository.UserRepository
	teamRepo *repository.TeamRepository
}

// NewUserService 创建用户服务
func NewUserService(repo *repository.UserRepository, teamRepo *repository.TeamRepository) *UserService {
	return &UserService{repo: repo, teamRepo: teamRepo}
}

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role"`
	TeamID   string `json:"team_id"`
}

// UpdateUserRequest 更新用户请求，指针字段区分"未提供"和"清空"
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	TeamID   *string `json:"team_id"`
	Status   *string `json:"status"`
}

// List 用户列表
func (s *UserService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.User, int64, error) {
	return s.repo.FindAll(ctx, page, pageSize, filters)
}

// Get 用户详情
func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	return s.repo.FindByID(ctx, id)
}

// Create 创建用户。role/team 为受保护字段：
// 只有管理员指定的值生效，匿名注册和普通用户创建一律落为普通角色
func (s *UserService) Create(ctx context.Context, p *authz.Principal, req *CreateUserRequest) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := entity.RoleUser
	teamID := ""
	if authz.CanAssignRole(p) {
		if req.Role != "" {
			role = req.Role
		}
		teamID = req.TeamID
	}

	user := &entity.User{
		ID:           generateID(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         role,
		TeamID:       teamID,
		Status:       "active",
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Update 更新用户。非管理员只能更新本人资料，
// 且提交的 role/team_id 被静默丢弃而非报错
func (s *UserService) Update(ctx context.Context, p *authz.Principal, id string, req *UpdateUserRequest) (*entity.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if authz.CanAssignRole(p) {
		if req.Role != nil {
			user.Role = *req.Role
		}
		if req.TeamID != nil {
			user.TeamID = *req.TeamID
		}
		if req.Status != nil {
			user.Status = *req.Status
		}
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Delete 删除用户
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
