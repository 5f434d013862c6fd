// Package modkit carries the shared dependencies handed to every service module
package modkit

import (
	"pulsetrack/internal/platform/config"
	"pulsetrack/internal/platform/store"

	"github.com/rs/zerolog"
)

// Deps is the dependency bundle passed down when constructing modules
type Deps struct {
	Log zerolog.Logger
	Cfg config.Conf
	PG  store.TxRunner
}
