package usage

import (
	"fmt"
	"log/slog"
	"time"

	api_keys "hittags/internal/features/api_keys"
	users_models "hittags/internal/features/users/models"
	rate_limit "hittags/internal/util/rate_limit"

	"github.com/google/uuid"
)

type UsageService struct {
	usageRepository *UsageRepository
	apiKeyService   *api_keys.ApiKeyService
	rateLimiter     *rate_limit.RateLimiter
	logger          *slog.Logger
}

// CheckAdmission decides whether one more request under this key fits the
// trailing-hour and trailing-day quotas. Admission and usage persistence
// are deliberately two separate steps; two concurrent requests may both be
// admitted at the boundary and that bounded over-admission is accepted.
func (s *UsageService) CheckAdmission(apiKey *api_keys.ApiKey) (*rate_limit.RateLimitResult, error) {
	result, err := s.rateLimiter.CheckWindows(
		apiKey.ID,
		apiKey.RateLimitPerHour,
		apiKey.RateLimitPerDay,
	)
	if err != nil {
		// An admission check that cannot complete is a deny, never an allow
		return nil, fmt.Errorf("admission check failed: %w", err)
	}

	return result, nil
}

// RecordUsage appends one usage row after a request resolves. Failures are
// logged and swallowed so accounting problems never turn a finished
// response into a failure.
func (s *UsageService) RecordUsage(
	apiKeyID uuid.UUID,
	method, route string,
	httpStatus int,
	startTime time.Time,
) {
	record := &UsageRecord{
		ID:         uuid.New(),
		ApiKeyID:   apiKeyID,
		Method:     method,
		Route:      route,
		HttpStatus: httpStatus,
		LatencyMs:  time.Since(startTime).Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.usageRepository.Create(record); err != nil {
		s.logger.Error("failed to record API key usage",
			slog.String("apiKeyId", apiKeyID.String()),
			slog.String("route", route),
			slog.String("error", err.Error()))
	}
}

// RemainingQuota reads the current window counts without consuming an
// attempt, for decorating responses with rate-limit headers.
func (s *UsageService) RemainingQuota(apiKey *api_keys.ApiKey) (*rate_limit.RateLimitResult, error) {
	return s.rateLimiter.GetWindowCounts(
		apiKey.ID,
		apiKey.RateLimitPerHour,
		apiKey.RateLimitPerDay,
	)
}

func (s *UsageService) GetKeyUsageStats(
	apiKeyID uuid.UUID,
	owner *users_models.User,
) (*KeyUsageStatsDTO, error) {
	if _, err := s.apiKeyService.GetOwnedApiKey(apiKeyID, owner); err != nil {
		return nil, err
	}

	stats, err := s.usageRepository.GetKeyUsageStats(apiKeyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get usage stats: %w", err)
	}

	return stats, nil
}

func (s *UsageService) GetKeyUsageRecords(
	apiKeyID uuid.UUID,
	owner *users_models.User,
	limit, offset int,
) (*GetUsageRecordsResponseDTO, error) {
	if _, err := s.apiKeyService.GetOwnedApiKey(apiKeyID, owner); err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	offset = max(offset, 0)

	records, total, err := s.usageRepository.GetByApiKey(apiKeyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get usage records: %w", err)
	}

	return &GetUsageRecordsResponseDTO{
		UsageRecords: records,
		Total:        total,
		Limit:        limit,
		Offset:       offset,
	}, nil
}
