//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"stationd/internal"
	"stationd/internal/catalog"
	"stationd/internal/controllers"
	"stationd/internal/providers"
	"stationd/internal/services"
	"stationd/internal/starred"
	"stationd/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewHttpClientProvider,

		catalog.NewResolverProvider,
		catalog.NewServerRegistry,
		catalog.NewClient,

		starred.NewZstdCompressor,
		starred.NewFileManager,
		starred.NewStore,
		starred.NewScheduler,

		services.NewSourceFactory,
		services.NewSourceRegistry,
		services.NewLiveSearches,

		controllers.NewApiController,
		controllers.NewStarredController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
