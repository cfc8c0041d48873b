package service

import (
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/numancr7/fmea-sub001/internal/config"
	"github.com/numancr7/fmea-sub001/internal/fmea/repository"
)

// Services 服务集合
type Services struct {
	Auth       *AuthService
	User       *UserService
	Team       *TeamService
	Equipment  *EquipmentService
	Reference  *ReferenceService
	FMEA       *FMEAService
	Task       *TaskService
	SparePart  *SparePartService
	RiskMatrix *RiskMatrixService
	Dashboard  *DashboardService
	Export     *ExportService
}

// NewServices 创建服务集合
func NewServices(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config) *Services {
	matrixSvc := NewRiskMatrixService(repos.RiskMatrix)
	fmeaSvc := NewFMEAService(repos.FMEA, repos.Equipment, matrixSvc)

	return &Services{
		Auth:       NewAuthService(repos.User, rdb, cfg),
		User:       NewUserService(repos.User, repos.Team),
		Team:       NewTeamService(repos.Team),
		Equipment:  NewEquipmentService(repos.Equipment, repos.Component, repos.FMEA, matrixSvc),
		Reference:  NewReferenceService(repos.Reference),
		FMEA:       fmeaSvc,
		Task:       NewTaskService(repos.Task, repos.Equipment),
		SparePart:  NewSparePartService(repos.SparePart, repos.Equipment),
		RiskMatrix: matrixSvc,
		Dashboard:  NewDashboardService(repos.FMEA, repos.SparePart, matrixSvc),
		Export:     NewExportService(repos.FMEA, matrixSvc),
	}
}

func generateID() string {
	return uuid.New().String()[:32]
}
