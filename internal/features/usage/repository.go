package usage

import (
	"time"

	"hittags/internal/storage"

	"github.com/google/uuid"
)

type UsageRepository struct{}

func (r *UsageRepository) Create(record *UsageRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(record).Error
}

func (r *UsageRepository) GetByApiKey(
	apiKeyID uuid.UUID,
	limit, offset int,
) ([]*UsageRecord, int64, error) {
	var records = make([]*UsageRecord, 0)
	var total int64

	if err := storage.GetDb().Model(&UsageRecord{}).
		Where("api_key_id = ?", apiKeyID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := storage.GetDb().
		Where("api_key_id = ?", apiKeyID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error

	return records, total, err
}

func (r *UsageRepository) GetKeyUsageStats(apiKeyID uuid.UUID) (*KeyUsageStatsDTO, error) {
	var stats KeyUsageStatsDTO

	now := time.Now().UTC()

	sql := `
		SELECT
			COUNT(*) as total_requests,
			COUNT(*) FILTER (WHERE created_at > ?) as requests_last_hour,
			COUNT(*) FILTER (WHERE created_at > ?) as requests_last_day,
			COUNT(*) FILTER (WHERE created_at > ? AND http_status >= 400) as errors_last_day,
			COALESCE(AVG(latency_ms), 0)::bigint as avg_latency_ms
		FROM usage_records
		WHERE api_key_id = ?`

	err := storage.GetDb().Raw(
		sql,
		now.Add(-time.Hour),
		now.Add(-24*time.Hour),
		now.Add(-24*time.Hour),
		apiKeyID,
	).Scan(&stats).Error

	if err != nil {
		return nil, err
	}

	return &stats, nil
}
