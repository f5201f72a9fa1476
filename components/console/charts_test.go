package console

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartCacheStoresEntry(t *testing.T) {
	cache := NewChartCache(10 * time.Millisecond)
	calls := 0
	render := func() (string, error) {
		calls++
		return "html", nil
	}

	val1, err := cache.GetOrRender("key", render)
	require.NoError(t, err)
	val2, err := cache.GetOrRender("key", render)
	require.NoError(t, err)

	assert.Equal(t, "html", val1)
	assert.Equal(t, val1, val2)
	assert.Equal(t, 1, calls)
}

func TestChartCacheExpires(t *testing.T) {
	cache := NewChartCache(2 * time.Millisecond)
	calls := 0
	render := func() (string, error) {
		calls++
		return "fresh", nil
	}

	_, err := cache.GetOrRender("key", render)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = cache.GetOrRender("key", render)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestChartCacheBoundsEntries(t *testing.T) {
	cache := NewChartCache(time.Minute)
	cache.max = 2
	render := func(html string) func() (string, error) {
		return func() (string, error) { return html, nil }
	}

	for _, key := range []string{"a", "b", "c"} {
		_, err := cache.GetOrRender(key, render(key))
		require.NoError(t, err)
	}

	assert.LessOrEqual(t, len(cache.snippets), 2)
	_, ok := cache.snippets["c"]
	assert.True(t, ok, "newest snippet should survive eviction")
}

func TestChartCacheDoesNotStoreFailures(t *testing.T) {
	cache := NewChartCache(time.Minute)
	calls := 0
	_, err := cache.GetOrRender("key", func() (string, error) {
		calls++
		return "", errors.New("render failed")
	})
	require.Error(t, err)

	html, err := cache.GetOrRender("key", func() (string, error) {
		calls++
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", html)
	assert.Equal(t, 2, calls)
}

func TestLeadsByStatusChart(t *testing.T) {
	renderer := NewChartRenderer(WithChartCache(nil))
	leads := []Lead{
		{ID: 1, Status: "Nuevo"},
		{ID: 2, Status: "Nuevo"},
		{ID: 3, Status: "Cerrado"},
		{ID: 4},
	}
	html, err := renderer.LeadsByStatus(leads)
	require.NoError(t, err)
	assert.Contains(t, html, "Solicitudes por estado")
	assert.Contains(t, html, "Nuevo")
	assert.Contains(t, html, "Sin estado")
}

func TestRatingsDistributionChart(t *testing.T) {
	renderer := NewChartRenderer(WithChartCache(nil))
	comments := []Comment{
		{ID: "c1", Rating: 5},
		{ID: "c2", Rating: 5},
		{ID: "c3", Rating: 1},
		{ID: "c4", Rating: 9}, // clamps to 5
	}
	html, err := renderer.RatingsDistribution(comments)
	require.NoError(t, err)
	assert.Contains(t, html, "Calificaciones")
	assert.Contains(t, html, "★★★★★")
}

func TestRegistrationsByMonthChart(t *testing.T) {
	renderer := NewChartRenderer(WithChartCache(nil))
	users := []User{
		{ID: 1, RegisteredAt: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)},
		{ID: 2, RegisteredAt: time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)},
		{ID: 3, RegisteredAt: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)},
		{ID: 4}, // zero registration date is skipped
	}
	html, err := renderer.RegistrationsByMonth(users)
	require.NoError(t, err)
	assert.Contains(t, html, "2025-01")
	assert.Contains(t, html, "2025-03")
	assert.False(t, strings.Contains(html, "0001-01"))
}

func TestChartRendererUsesCache(t *testing.T) {
	cache := NewChartCache(time.Minute)
	renderer := NewChartRenderer(WithChartCache(cache))
	leads := []Lead{{ID: 1, Status: "Nuevo"}}

	first, err := renderer.LeadsByStatus(leads)
	require.NoError(t, err)
	second, err := renderer.LeadsByStatus(leads)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
