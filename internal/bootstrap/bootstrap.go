package bootstrap

import (
	"github.com/quantlabs/quant-analytics/pkg/logger"
	"github.com/quantlabs/quant-analytics/pkg/redis"
	"github.com/quantlabs/quant-analytics/pkg/timescale"
)

// Bootstrap wires the storage clients into repositories and usecases.
type Bootstrap struct {
	Usecase    Usecase
	Repository Repository
	Logger     logger.Interface

	Timescale timescale.Client
	Redis     redis.Client
}

// BootstrapConfig is the config for the bootstrap.
type BootstrapConfig struct {
	Timescale timescale.Client
	Redis     redis.Client
	Logger    logger.Interface
}

// Init initializes the bootstrap.
func (b *Bootstrap) Init(config BootstrapConfig) Bootstrap {
	b.Timescale = config.Timescale
	b.Redis = config.Redis
	b.Logger = config.Logger

	b.registerRepository()
	b.registerUsecase()

	return *b
}
