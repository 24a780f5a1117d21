package bucket

import (
	"context"
	"strconv"
	"testing"
	"time"
)

func BenchmarkInMemoryAllowN(b *testing.B) {
	ctx := context.Background()
	scenarios := []struct {
		name   string
		keys   int
		limit  int
		window time.Duration
	}{
		{"hs_lookup_single_session", 1, 10, 10 * time.Second},
		{"hs_lookup_many_sessions", 50_000, 10, 10 * time.Second},
		{"start_per_ip", 5_000, 20, time.Minute},
	}
	for _, sc := range scenarios {
		keys := make([]string, sc.keys)
		for i := range keys {
			keys[i] = "bench:" + strconv.Itoa(i)
		}
		b.Run(sc.name, func(b *testing.B) {
			store := NewInMemoryBucketStore()
			for i := 0; b.Loop(); i++ {
				_, _ = store.AllowN(ctx, keys[i%len(keys)], 1, sc.limit, sc.window)
			}
		})
		b.Run(sc.name+"_parallel", func(b *testing.B) {
			store := NewInMemoryBucketStore()
			b.RunParallel(func(pb *testing.PB) {
				i := 0
				for pb.Next() {
					_, _ = store.AllowN(ctx, keys[i%len(keys)], 1, sc.limit, sc.window)
					i++
				}
			})
		})
	}
}
