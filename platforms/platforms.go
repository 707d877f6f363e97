// platforms/platforms.go
package platforms

import (
	"errors"
	"time"
)

// ErrNotFound marks a lookup for a username the platform does not know,
// as opposed to a transport or parse failure.
var ErrNotFound = errors.New("platform user not found")

// Platform name constants as stored in upcoming_contests and used in logs.
const (
	PlatformLeetCode   = "leetcode"
	PlatformCodeforces = "codeforces"
	PlatformCodechef   = "codechef"
)

// ContestInfo is a platform-announced contest that has not started yet.
type ContestInfo struct {
	Platform string        `json:"platform"`
	Key      string        `json:"key"`
	Name     string        `json:"name"`
	URL      string        `json:"url"`
	StartsAt time.Time     `json:"starts_at"`
	Duration time.Duration `json:"duration"`
}
