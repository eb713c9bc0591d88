package rdx

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"planora/models"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

const planCacheTTL = 5 * time.Minute

// Initialize Redis connection. The cache is optional: when REDIS_URL is
// unset or the server is unreachable, every helper degrades to a no-op and
// reads fall through to MongoDB.
func init() {
	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		addr = "localhost:6379"
	}

	Conn = redis.NewClient(&redis.Options{Addr: addr})
	if err := Conn.Ping(context.Background()).Err(); err != nil {
		log.Printf("Redis unavailable (%v), plan cache disabled", err)
		Conn = nil
	}
}

func planKey(planID string) string {
	return "plan:" + planID
}

// GetCachedPlan returns the cached plan document, or nil on miss.
func GetCachedPlan(ctx context.Context, planID string) *models.Plan {
	if Conn == nil {
		return nil
	}
	data, err := Conn.Get(ctx, planKey(planID)).Bytes()
	if err != nil {
		return nil
	}
	var plan models.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil
	}
	return &plan
}

func CachePlan(ctx context.Context, plan *models.Plan) {
	if Conn == nil || plan == nil {
		return
	}
	data, err := json.Marshal(plan)
	if err != nil {
		return
	}
	Conn.Set(ctx, planKey(plan.PlanID), data, planCacheTTL)
}

// InvalidatePlan drops the cached copy after any plan mutation.
func InvalidatePlan(ctx context.Context, planID string) {
	if Conn == nil {
		return
	}
	Conn.Del(ctx, planKey(planID))
}

// IncrShareHit counts share-link opens; purely informational.
func IncrShareHit(ctx context.Context, shareLink string) {
	if Conn == nil {
		return
	}
	Conn.Incr(ctx, "share:hits:"+shareLink)
}
