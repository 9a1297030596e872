package middleware

import (
	"fmt"
	"testing"
)

func TestTokenBucketExhaustion(t *testing.T) {
	bucket := NewTokenBucket(3, 0.0001) // effectively no refill within the test

	for i := 0; i < 3; i++ {
		if !bucket.Allow() {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if bucket.Allow() {
		t.Error("request beyond capacity should be denied")
	}
}

func TestRateLimiterIsolatesClients(t *testing.T) {
	limiter := NewRateLimiter(2, 600)

	if !limiter.Allow("10.0.0.1") || !limiter.Allow("10.0.0.1") {
		t.Fatal("first client should get its full budget")
	}
	if limiter.Allow("10.0.0.1") {
		t.Error("first client should be exhausted")
	}
	if !limiter.Allow("10.0.0.2") {
		t.Error("second client must have an independent bucket")
	}
}

func TestRateLimiterManyClients(t *testing.T) {
	limiter := NewRateLimiter(1, 600)

	for i := 0; i < 100; i++ {
		key := fmt.Sprintf("10.0.1.%d", i)
		if !limiter.Allow(key) {
			t.Fatalf("fresh client %s should be allowed", key)
		}
	}
}
