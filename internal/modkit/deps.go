package modkit

import (
	"braindump/internal/modkit/repokit"
	"braindump/internal/platform/config"
	"braindump/internal/platform/logger"
	"braindump/internal/platform/store"
)

// Deps holds core dependencies passed to modules.
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}
