// Package lifecycle holds shared start/stop constants for fx hooks.
package lifecycle

import "time"

// DefaultTimeout bounds a single lifecycle hook such as a DB ping or HTTP shutdown.
const DefaultTimeout = 15 * time.Second
