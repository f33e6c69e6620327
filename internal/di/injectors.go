//go:build wireinject
// +build wireinject

package di

import (
	"github.com/StormKing969/movie-review-app/internal"
	"github.com/StormKing969/movie-review-app/internal/console"
	"github.com/StormKing969/movie-review-app/internal/controllers"
	"github.com/StormKing969/movie-review-app/internal/metadata"
	"github.com/StormKing969/movie-review-app/internal/persistence"
	"github.com/StormKing969/movie-review-app/internal/popularity"
	"github.com/StormKing969/movie-review-app/internal/providers"
	"github.com/StormKing969/movie-review-app/internal/services"
	"github.com/StormKing969/movie-review-app/internal/session"
	"github.com/StormKing969/movie-review-app/internal/structures"
	wire "github.com/google/wire"
)

var coreSet = wire.NewSet(
	providers.NewConfigProvider,
	providers.NewLogProvider,
	providers.NewMetricsProvider,

	popularity.NewDocumentStore,
	popularity.NewStore,
	metadata.NewTmdbClient,
	metadata.NewConfiguredTrailerPolicy,
	services.NewMovieService,

	persistence.NewZstdCompressor,
	persistence.NewFileManager,
	persistence.NewScheduler,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		coreSet,
		providers.NewInstrumentedCacheProvider,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil, nil
}

func InitConsole(cfg *structures.CliFlags) (*internal.ConsoleApp, func(), error) {

	wire.Build(
		coreSet,
		session.NewSession,
		console.NewConsole,
		internal.NewConsoleApp,
	)

	return nil, nil, nil
}
