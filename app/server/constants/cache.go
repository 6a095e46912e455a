package constants

import "time"

const (
	CacheKeySession = "library:session:%s" // %s -> session id
	QueueKeyResize  = "library:queue:resize"
)

const (
	CacheExpireSession = 14 * 24 * time.Hour
)

const (
	SessionCookieName = "sessionid"
	TokenCookieName   = "token"
	AuthTokenDuration = 24 * time.Hour
)
