package service

import (
	"context"
	"fmt"
	"time"

	"github.com/numancr7/fmea-sub001/internal/fmea/authz"
	"github.com/numancr7/fmea-sub001/internal/fmea/entity"
	"github.com/numancr7/fmea-sub001/internal/fmea/repository"
)

// TaskService 维护任务服务
type TaskService struct {
	repo          *repository.TaskRepository
	equipmentRepo *repository.EquipmentRepository
}

// NewTaskService 创建维护任务服务
func NewTaskService(repo *repository.TaskRepository, equipmentRepo *repository.EquipmentRepository) *TaskService {
	return &TaskService{repo: repo, equipmentRepo: equipmentRepo}
}

// CreateTaskRequest 创建任务请求
type CreateTaskRequest struct {
	EquipmentID  string     `json:"equipment_id" binding:"required"`
	FMEARecordID string     `json:"fmea_record_id"`
	Title        string     `json:"title" binding:"required"`
	Description  string     `json:"description"`
	TaskType     string     `json:"task_type" binding:"omitempty,oneof=preventive corrective predictive"`
	IntervalDays int        `json:"interval_days"`
	AssignedTo   string     `json:"assigned_to"`
	DueDate      *time.Time `json:"due_date"`
}

// UpdateTaskRequest 更新任务请求
type UpdateTaskRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	TaskType     *string    `json:"task_type" binding:"omitempty,oneof=preventive corrective predictive"`
	IntervalDays *int       `json:"interval_days"`
	Status       *string    `json:"status" binding:"omitempty,oneof=planned in_progress done"`
	AssignedTo   *string    `json:"assigned_to"`
	DueDate      *time.Time `json:"due_date"`
}

// List 任务列表
func (s *TaskService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.MaintenanceTask, int64, error) {
	return s.repo.FindAll(ctx, page, pageSize, filters)
}

// Get 任务详情
func (s *TaskService) Get(ctx context.Context, id string) (*entity.MaintenanceTask, error) {
	return s.repo.FindByID(ctx, id)
}

// Create 创建任务
func (s *TaskService) Create(ctx context.Context, p *authz.Principal, req *CreateTaskRequest) (*entity.MaintenanceTask, error) {
	if _, err := s.equipmentRepo.FindByID(ctx, req.EquipmentID); err != nil {
		return nil, fmt.Errorf("equipment: %w", err)
	}

	taskType := req.TaskType
	if taskType == "" {
		taskType = entity.TaskTypePreventive
	}

	task := &entity.MaintenanceTask{
		ID:           generateID(),
		EquipmentID:  req.EquipmentID,
		FMEARecordID: req.FMEARecordID,
		Title:        req.Title,
		Description:  req.Description,
		TaskType:     taskType,
		IntervalDays: req.IntervalDays,
		Status:       entity.TaskStatusPlanned,
		AssignedTo:   req.AssignedTo,
		DueDate:      req.DueDate,
		CreatedBy:    p.ID,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Update 更新任务。状态流转到done时记录完成时间
func (s *TaskService) Update(ctx context.Context, id string, req *UpdateTaskRequest) (*entity.MaintenanceTask, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.TaskType != nil {
		task.TaskType = *req.TaskType
	}
	if req.IntervalDays != nil {
		task.IntervalDays = *req.IntervalDays
	}
	if req.AssignedTo != nil {
		task.AssignedTo = *req.AssignedTo
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Status != nil {
		if *req.Status == entity.TaskStatusDone && task.Status != entity.TaskStatusDone {
			now := time.Now()
			task.CompletedAt = &now
		}
		task.Status = *req.Status
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete 删除任务
func (s *TaskService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
