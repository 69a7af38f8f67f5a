package audit_logs

import "time"

type GetAuditLogsRequest struct {
	Limit      int        `form:"limit"`
	Offset     int        `form:"offset"`
	BeforeDate *time.Time `form:"beforeDate" time_format:"2006-01-02T15:04:05Z07:00"`
}

type GetAuditLogsResponse struct {
	AuditLogs []*AuditLog `json:"auditLogs"`
	Total     int64       `json:"total"`
	Limit     int         `json:"limit"`
	Offset    int         `json:"offset"`
}
