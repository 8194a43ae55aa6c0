package config

import "time"

// Transport limits and endpoints
const (
	// QueryPageSize is the maximum page size the Bitable list endpoint accepts.
	QueryPageSize = 500

	// HTTPTimeout bounds every round trip to the open platform.
	HTTPTimeout = 30 * time.Second

	// TokenExpiryMargin renews the tenant access token this long before the
	// server-reported expiry, so in-flight requests never carry a stale token.
	TokenExpiryMargin = 2 * time.Minute

	// BaseURL is the Feishu open platform API root.
	BaseURL = "https://open.feishu.cn/open-apis"
)
