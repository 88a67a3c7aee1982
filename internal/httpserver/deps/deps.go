package deps

import (
	"context"
	"time"

	"github.com/seojun-dev/danwatch/internal/logger"
	"github.com/seojun-dev/danwatch/internal/watch"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	// BaseCtx is the process lifetime context. Monitors spawned from a
	// request must derive from it, not from the request context, or
	// they would die with the request.
	BaseCtx context.Context

	Epoch          time.Time       // server epoch (see watch.Options)
	Registry       *watch.Registry // active watch monitors
	Scanner        *watch.Scanner  // one-shot scan
	Notifier       watch.Notifier  // notification transport
	LedgerBackend  string          // "sqlite" | "redis", surfaced by /infra
	DefaultChatIDs []string
}
