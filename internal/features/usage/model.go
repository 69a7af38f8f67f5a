package usage

import (
	"time"

	"github.com/google/uuid"
)

// UsageRecord is one append-only row per completed request attempt,
// rejected attempts included. Never mutated after insert.
type UsageRecord struct {
	ID         uuid.UUID `json:"id"         gorm:"column:id"`
	ApiKeyID   uuid.UUID `json:"apiKeyId"   gorm:"column:api_key_id"`
	Method     string    `json:"method"     gorm:"column:method"`
	Route      string    `json:"route"      gorm:"column:route"`
	HttpStatus int       `json:"httpStatus" gorm:"column:http_status"`
	LatencyMs  int64     `json:"latencyMs"  gorm:"column:latency_ms"`
	CreatedAt  time.Time `json:"createdAt"  gorm:"column:created_at"`
}

func (UsageRecord) TableName() string {
	return "usage_records"
}
