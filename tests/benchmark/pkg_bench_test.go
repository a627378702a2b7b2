package benchmark

import (
	"context"
	"fmt"
	"testing"
	"time"

	"evacsim/pkg/cache"
	"evacsim/pkg/ratelimit"
)

func BenchmarkMemoryCache_Set(b *testing.B) {
	c := cache.NewMemoryCache(cache.DefaultOptions())
	defer c.Close()

	ctx := context.Background()
	value := []byte(`{"max_throughput_vph":5400,"clearance_time_hours":185.19}`)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Set(ctx, fmt.Sprintf("sim:%d", i), value, time.Minute)
	}
}

func BenchmarkMemoryCache_Get(b *testing.B) {
	c := cache.NewMemoryCache(cache.DefaultOptions())
	defer c.Close()

	ctx := context.Background()
	c.Set(ctx, "sim:contraflow:tampa", []byte(`{"max_throughput_vph":5400}`), time.Minute)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(ctx, "sim:contraflow:tampa")
	}
}

func BenchmarkMemoryLimiter_Allow(b *testing.B) {
	limiter := ratelimit.NewMemoryLimiter(&ratelimit.Config{
		Requests:        1 << 30,
		Window:          time.Minute,
		Strategy:        "token_bucket",
		BurstSize:       1 << 20,
		CleanupInterval: time.Minute,
	})
	defer limiter.Close()

	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		limiter.Allow(ctx, "10.0.0.1")
	}
}

func BenchmarkMemoryLimiter_Allow_Parallel(b *testing.B) {
	limiter := ratelimit.NewMemoryLimiter(&ratelimit.Config{
		Requests:        1 << 30,
		Window:          time.Minute,
		Strategy:        "token_bucket",
		BurstSize:       1 << 20,
		CleanupInterval: time.Minute,
	})
	defer limiter.Close()

	ctx := context.Background()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			limiter.Allow(ctx, "10.0.0.1")
		}
	})
}
