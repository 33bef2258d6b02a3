package channel

type Channel string

const (
	// CacheEvents carries invalidation events between instances.
	CacheEvents Channel = "bottracker:cache_events"
	// TrafficEvents carries newly stored traffic logs for the live feed.
	TrafficEvents Channel = "bottracker:traffic_events"
)
