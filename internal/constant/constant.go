package constant

import "time"

const (
	QUERY_TIMEOUT_DURATION = 10 * time.Second

	REQUEST_SUCCESSFUL   = "Request successful"
	REQUEST_UNSUCCESSFUL = "Request unsuccessful"

	JWT_TYPE_ACCESS  = "access"
	JWT_TYPE_REFRESH = "refresh"

	OAUTH_PROVIDER_GOOGLE = "google"

	DefaultPageSize uint = 10
	MaxPageSize     uint = 50
)
