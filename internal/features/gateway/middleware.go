package gateway

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	api_keys "hittags/internal/features/api_keys"
	"hittags/internal/features/usage"

	"github.com/gin-gonic/gin"
)

const (
	HeaderRemainingHour = "X-RateLimit-Remaining-Hour"
	HeaderRemainingDay  = "X-RateLimit-Remaining-Day"
	HeaderRetryAfter    = "Retry-After"
)

// AuthMiddleware is the single entry point for every public API request:
// extract credentials, validate the key, enforce origin/IP allow-lists,
// check admission, attach the authorization context, and after the handler
// finishes record usage with the final status and elapsed time.
//
// The pipeline is a straight line. No retries, no branching loops, and no
// shared mutable state beyond the persisted key store and usage windows.
func AuthMiddleware(
	apiKeyService *api_keys.ApiKeyService,
	usageService *usage.UsageService,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		startTime := time.Now()

		keyID, secret, ok := extractCredentials(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing API key"})
			ctx.Abort()
			return
		}

		apiKey, err := apiKeyService.ValidateApiKey(keyID, secret)
		if err != nil {
			// A 401 still produces a usage record when the presented id
			// maps to a stored key (revoked, expired, wrong secret)
			if accountingID := apiKeyService.LookupKeyIDForAccounting(keyID); accountingID != nil {
				usageService.RecordUsage(
					*accountingID,
					ctx.Request.Method,
					requestRoute(ctx),
					http.StatusUnauthorized,
					startTime,
				)
			}

			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired API key"})
			ctx.Abort()
			return
		}

		if err := checkOrigin(apiKey, ctx.GetHeader("Origin")); err != nil {
			usageService.RecordUsage(
				apiKey.ID, ctx.Request.Method, requestRoute(ctx), http.StatusForbidden, startTime)

			setRemainingQuotaHeaders(ctx, usageService, apiKey)
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			ctx.Abort()
			return
		}

		if err := checkIP(apiKey, ctx.ClientIP()); err != nil {
			usageService.RecordUsage(
				apiKey.ID, ctx.Request.Method, requestRoute(ctx), http.StatusForbidden, startTime)

			setRemainingQuotaHeaders(ctx, usageService, apiKey)
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			ctx.Abort()
			return
		}

		result, err := usageService.CheckAdmission(apiKey)
		if err != nil {
			// Fail closed: an admission check that cannot complete is a deny
			logger.Error("admission check unavailable",
				slog.String("keyId", apiKey.KeyID),
				slog.String("error", err.Error()))

			usageService.RecordUsage(
				apiKey.ID, ctx.Request.Method, requestRoute(ctx), http.StatusTooManyRequests, startTime)

			ctx.Header(HeaderRetryAfter, "1")
			ctx.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit check unavailable, retry later"})
			ctx.Abort()
			return
		}

		if !result.Allowed {
			usageService.RecordUsage(
				apiKey.ID, ctx.Request.Method, requestRoute(ctx), http.StatusTooManyRequests, startTime)

			setRateLimitHeaders(ctx, result.RemainingHour, result.RemainingDay)
			ctx.Header(HeaderRetryAfter, strconv.Itoa(result.RetryAfterSec))
			ctx.JSON(http.StatusTooManyRequests, gin.H{
				"error":         fmt.Sprintf("rate limit exceeded, retry after %d seconds", result.RetryAfterSec),
				"retryAfterSec": result.RetryAfterSec,
			})
			ctx.Abort()
			return
		}

		// Headers must be written before the handler starts the response
		setRateLimitHeaders(ctx, result.RemainingHour, result.RemainingDay)

		ctx.Set(authContextKey, &AuthContext{
			UserID: apiKey.OwnerUserID,
			ApiKey: apiKey,
			Scopes: apiKey.Scopes,
		})

		ctx.Next()

		usageService.RecordUsage(
			apiKey.ID,
			ctx.Request.Method,
			requestRoute(ctx),
			ctx.Writer.Status(),
			startTime,
		)
	}
}

// RequireScope guards one route with one capability. The deny names the
// missing scope: the caller already proved key ownership, so that is not
// an information leak.
func RequireScope(requiredScope api_keys.Scope) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authContext, ok := GetAuthContext(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing API key"})
			ctx.Abort()
			return
		}

		if err := api_keys.RequireScope(authContext.ApiKey, requiredScope); err != nil {
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}

// extractCredentials reads "Authorization: Bearer <id>.<secret>" or
// "X-Api-Key: <id>.<secret>". The secret travels only in headers, never
// in URLs.
func extractCredentials(ctx *gin.Context) (keyID, secret string, ok bool) {
	credential := ctx.GetHeader("Authorization")
	if strings.HasPrefix(credential, "Bearer ") {
		credential = credential[7:]
	} else {
		credential = ctx.GetHeader("X-Api-Key")
	}

	if credential == "" {
		return "", "", false
	}

	parts := strings.SplitN(credential, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}

	return parts[0], parts[1], true
}

func checkOrigin(apiKey *api_keys.ApiKey, origin string) error {
	if len(apiKey.AllowedOrigins) == 0 {
		return nil
	}

	if origin == "" {
		return fmt.Errorf("origin header required for this API key")
	}

	for _, allowedOrigin := range apiKey.AllowedOrigins {
		if matchesOrigin(origin, allowedOrigin) {
			return nil
		}
	}

	return fmt.Errorf("origin not allowed")
}

func checkIP(apiKey *api_keys.ApiKey, clientIP string) error {
	if len(apiKey.IPWhitelist) == 0 {
		return nil
	}

	ip := net.ParseIP(clientIP)
	if ip == nil {
		return fmt.Errorf("client IP required for this API key")
	}

	for _, allowedIP := range apiKey.IPWhitelist {
		if matchesIPOrCIDR(ip, allowedIP) {
			return nil
		}
	}

	return fmt.Errorf("IP address not allowed")
}

func matchesOrigin(origin, allowedOrigin string) bool {
	origin = strings.ToLower(stripOriginScheme(origin))
	allowedOrigin = strings.ToLower(allowedOrigin)

	if strings.HasPrefix(allowedOrigin, "*.") {
		domain := allowedOrigin[2:]
		return strings.HasSuffix(origin, "."+domain) || origin == domain
	}

	return origin == allowedOrigin
}

func stripOriginScheme(origin string) string {
	if idx := strings.Index(origin, "://"); idx >= 0 {
		return origin[idx+3:]
	}

	return origin
}

func matchesIPOrCIDR(ip net.IP, allowedIP string) bool {
	_, cidr, err := net.ParseCIDR(allowedIP)
	if err == nil {
		return cidr.Contains(ip)
	}

	allowed := net.ParseIP(allowedIP)
	if allowed != nil {
		return ip.Equal(allowed)
	}

	return false
}

// setRemainingQuotaHeaders decorates denials that did not consume an
// attempt. Missing headers are preferable to failing the deny, so a
// window read error is swallowed.
func setRemainingQuotaHeaders(
	ctx *gin.Context,
	usageService *usage.UsageService,
	apiKey *api_keys.ApiKey,
) {
	result, err := usageService.RemainingQuota(apiKey)
	if err != nil {
		return
	}

	setRateLimitHeaders(ctx, result.RemainingHour, result.RemainingDay)
}

func setRateLimitHeaders(ctx *gin.Context, remainingHour, remainingDay int) {
	if remainingHour >= 0 {
		ctx.Header(HeaderRemainingHour, strconv.Itoa(remainingHour))
	}

	if remainingDay >= 0 {
		ctx.Header(HeaderRemainingDay, strconv.Itoa(remainingDay))
	}
}

func requestRoute(ctx *gin.Context) string {
	if route := ctx.FullPath(); route != "" {
		return route
	}

	return ctx.Request.URL.Path
}
