package ssdp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withFakeSearchOnce(t *testing.T, fn func(ctx context.Context, opts Options) ([]*SearchResponse, error)) {
	t.Helper()
	prev := searchOnceFn
	searchOnceFn = fn
	t.Cleanup(func() { searchOnceFn = prev })
}

// TestResponseCacheSearchSeeds covers spec.md scenario E4's initial seed:
// Search populates the cache with whatever SearchOnce returns.
func TestResponseCacheSearchSeeds(t *testing.T) {
	withFakeSearchOnce(t, func(ctx context.Context, opts Options) ([]*SearchResponse, error) {
		return []*SearchResponse{
			{ServiceName: "uuid:a::upnp:rootdevice", MaxAge: 30 * time.Second, Location: "http://10.0.0.1/a.xml"},
			{ServiceName: "uuid:b::upnp:rootdevice", MaxAge: 30 * time.Second, Location: "http://10.0.0.2/b.xml"},
		}, nil
	})

	rc, err := Search(context.Background(), DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, rc.Responses(), 2)
	assert.False(t, rc.LastUpdated().IsZero())
}

// TestResponseCacheRefreshMergesByServiceName covers scenario E4: a refresh
// whose response shares a ServiceName with an existing entry replaces it
// rather than duplicating it, while a response with a new ServiceName is
// added.
func TestResponseCacheRefreshMergesByServiceName(t *testing.T) {
	call := 0
	withFakeSearchOnce(t, func(ctx context.Context, opts Options) ([]*SearchResponse, error) {
		call++
		if call == 1 {
			return []*SearchResponse{
				{ServiceName: "uuid:a::upnp:rootdevice", MaxAge: 30 * time.Second, Location: "http://10.0.0.1/old.xml"},
			}, nil
		}
		return []*SearchResponse{
			{ServiceName: "uuid:a::upnp:rootdevice", MaxAge: 30 * time.Second, Location: "http://10.0.0.1/new.xml"},
			{ServiceName: "uuid:c::upnp:rootdevice", MaxAge: 30 * time.Second, Location: "http://10.0.0.3/c.xml"},
		}, nil
	})

	rc, err := Search(context.Background(), DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, rc.Refresh(context.Background()))

	responses := rc.Responses()
	assert.Len(t, responses, 2)

	byName := map[string]*SearchResponse{}
	for _, r := range responses {
		byName[r.ServiceName] = r
	}
	require.Contains(t, byName, "uuid:a::upnp:rootdevice")
	assert.Equal(t, "http://10.0.0.1/new.xml", byName["uuid:a::upnp:rootdevice"].Location)
	require.Contains(t, byName, "uuid:c::upnp:rootdevice")
}

func TestResponseCachePropagatesSearchError(t *testing.T) {
	withFakeSearchOnce(t, func(ctx context.Context, opts Options) ([]*SearchResponse, error) {
		return nil, assert.AnError
	})

	_, err := Search(context.Background(), DefaultOptions())
	assert.Error(t, err)
}
