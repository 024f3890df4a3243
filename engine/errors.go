package engine

import "cosmossdk.io/errors"

const codespace = "engine"

// ErrSystemNotRunning rejects every operation against a stopped engine.
var ErrSystemNotRunning = errors.Register(codespace, 2, "system not running")
