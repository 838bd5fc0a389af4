package version

import (
	"runtime"
	"time"
)

var (
	Version   = "dev"                           // ex: v0.3.0
	Commit    = "none"                          // ex: abcd123
	BuildDate = time.Now().Format(time.RFC3339) // ex: 2026-02-10T18:42:00Z
	GoVersion = runtime.Version()               // go version
)
