package channel

type Channel string

const (
	// CacheEventsChannel carries invalidations of the per-instance memory caches.
	CacheEventsChannel Channel = "safechat_cache_events"
	// OperatorAlertsChannel carries crisis alerts for connected operator dashboards.
	OperatorAlertsChannel Channel = "operator-notifications"
)
