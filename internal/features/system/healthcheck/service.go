package system_healthcheck

import (
	"context"
	"time"

	"hittags/internal/cache"
	"hittags/internal/storage"
)

type HealthcheckService struct{}

type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

func (s *HealthcheckService) GetHealthStatus() *HealthStatus {
	status := &HealthStatus{
		Status:   "ok",
		Database: "ok",
		Cache:    "ok",
	}

	sqlDb, err := storage.GetDb().DB()
	if err != nil || sqlDb.Ping() != nil {
		status.Status = "degraded"
		status.Database = "unreachable"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client := cache.GetCache()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		status.Status = "degraded"
		status.Cache = "unreachable"
	}

	return status
}
