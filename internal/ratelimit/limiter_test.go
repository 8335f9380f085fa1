package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathKey(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/flight-offers/", "flight-offers"},
		{"/book-flight/", "book-flight"},
		{"/auth/jwt/refresh/", "auth"},
		{"bookings", "bookings"},
		{"/", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PathKey(tt.path), tt.path)
	}
}

func TestOverrideAppliesToEndpoint(t *testing.T) {
	l := New(Limit{RequestsPerSecond: 1000, Burst: 1000}, map[string]Limit{
		"book-flight": {RequestsPerSecond: 1, Burst: 1},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	// the burst of one is consumed, the second call must not get through
	require.NoError(t, l.WaitPath(ctx, "/book-flight/"))
	assert.Error(t, l.WaitPath(ctx, "/book-flight/"))

	// other endpoints ride the generous default
	assert.NoError(t, l.WaitPath(ctx, "/flight-offers/"))
}

func TestUnknownEndpointUsesDefault(t *testing.T) {
	l := New(Limit{RequestsPerSecond: 1, Burst: 1}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	require.NoError(t, l.WaitPath(ctx, "/bookings"))
	assert.Error(t, l.WaitPath(ctx, "/bookings"))
}
