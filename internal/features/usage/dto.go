package usage

type KeyUsageStatsDTO struct {
	TotalRequests    int64 `json:"totalRequests"`
	RequestsLastHour int64 `json:"requestsLastHour"`
	RequestsLastDay  int64 `json:"requestsLastDay"`
	ErrorsLastDay    int64 `json:"errorsLastDay"`
	AvgLatencyMs     int64 `json:"avgLatencyMs"`
}

type GetUsageRecordsResponseDTO struct {
	UsageRecords []*UsageRecord `json:"usageRecords"`
	Total        int64          `json:"total"`
	Limit        int            `json:"limit"`
	Offset       int            `json:"offset"`
}
