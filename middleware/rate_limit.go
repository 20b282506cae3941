package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/epsilon_api/dto"
	"github.com/lac-hong-legacy/epsilon_api/shared"
	log "github.com/sirupsen/logrus"
)

// WindowCounter counts hits in a fixed window and reports the time left in
// it.
type WindowCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

type RateLimitRule struct {
	Name        string
	MaxRequests int
	Window      time.Duration
}

var (
	ProfileUpdateRule = RateLimitRule{Name: "profile_update", MaxRequests: 10, Window: time.Hour}
	DownloadRule      = RateLimitRule{Name: "resource_download", MaxRequests: 60, Window: time.Hour}
	APIGeneralRule    = RateLimitRule{Name: "api_general", MaxRequests: 1000, Window: time.Hour}
)

// RateLimit allows rule.MaxRequests per window per user, falling back to
// the client IP for anonymous requests. When the counter store is down the
// request is let through.
func RateLimit(counter WindowCounter, rule RateLimitRule, onReject func(rule string)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier := c.IP()
		if id, ok := c.Locals(shared.UserID).(string); ok && id != "" {
			identifier = "user:" + id
		}
		key := "rate_limit:" + rule.Name + ":" + identifier

		count, ttl, err := counter.Hit(c.UserContext(), key, rule.Window)
		if err != nil {
			log.WithFields(log.Fields{
				"rule":  rule.Name,
				"error": err,
			}).Warn("Rate limit check failed, allowing request")
			return c.Next()
		}

		info := dto.RateLimitInfo{
			Allowed:   count <= int64(rule.MaxRequests),
			Limit:     rule.MaxRequests,
			Remaining: rule.MaxRequests - int(count),
			ResetTime: time.Now().Add(ttl),
		}
		if info.Remaining < 0 {
			info.Remaining = 0
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))

		if !info.Allowed {
			if onReject != nil {
				onReject(rule.Name)
			}
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(ttl.Seconds())))
			appErr := shared.NewTooManyRequestsError(nil, "Too many requests")
			appErr.Data = info
			return appErr
		}

		return c.Next()
	}
}
