package ratelimit

import "testing"

func TestGetRateLimitType(t *testing.T) {
	cases := []struct {
		path string
		want RateLimitType
	}{
		{"/health", RateLimitTypeHealth},
		{"/ping", RateLimitTypeHealth},
		{"/status", RateLimitTypeHealth},
		{"/api/v1/admin/computers/:id/status", RateLimitTypeAdmin},
		{"/api/v1/auth/login", RateLimitTypeAuth},
		{"/api/v1/bookings", RateLimitTypeBooking},
		{"/api/v1/bookings/:id/pay", RateLimitTypeBooking},
		{"/api/v1/computers/hall-scheme", RateLimitTypeDefault},
		{"/api/v1/tournaments", RateLimitTypeDefault},
	}

	for _, tc := range cases {
		if got := getRateLimitType(tc.path); got != tc.want {
			t.Errorf("getRateLimitType(%q) = %s, want %s", tc.path, got, tc.want)
		}
	}
}
