// utils/http.go
package utils

import (
	"net/http"
	"time"
)

// HTTPClient is shared by all platform lookups. The timeout bounds every external
// call so a hung platform cannot stall a dashboard request indefinitely.
var HTTPClient = &http.Client{
	Timeout: 8 * time.Second,
}
