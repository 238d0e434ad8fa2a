// Package lifecycle holds shared startup/shutdown constants.
package lifecycle

import "time"

// DefaultTimeout bounds lifecycle hooks such as database pings and server
// shutdown drains.
const DefaultTimeout = 30 * time.Second
