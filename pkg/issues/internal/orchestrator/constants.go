package orchestrator

import "time"

// RunTimeout bounds a whole run.
const RunTimeout = 30 * time.Minute
