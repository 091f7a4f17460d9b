package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/geombridge/internal/binding"
	"github.com/zeusync/geombridge/internal/bridge"
	"github.com/zeusync/geombridge/internal/config"
	"github.com/zeusync/geombridge/internal/core/observability/log"
	"github.com/zeusync/geombridge/internal/server"
)

// ServerSet provides a Server from a Config.
var ServerSet = wire.NewSet(
	ProvideLogger,
	ProvideRegistry,
	server.NewServer,
)

func ProvideLogger(cfg config.Config) log.Log {
	return log.NewWithOptions(log.Options{
		Level:    cfg.Log.Level,
		Encoding: cfg.Log.Encoding,
	})
}

// ProvideRegistry returns a registry with every geometry class exported.
func ProvideRegistry() (*bridge.Registry, error) {
	return binding.NewRegistry()
}
