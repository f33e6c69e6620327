package internal

import (
	"net/http"

	"github.com/StormKing969/movie-review-app/internal/controllers"
	"github.com/StormKing969/movie-review-app/internal/providers"
	"github.com/StormKing969/movie-review-app/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/movies", http.HandlerFunc(apiController.SearchMovies))
	routers.Get("/trending", http.HandlerFunc(apiController.Trending))
	routers.Get("/movie/{id}", http.HandlerFunc(apiController.MovieDetail))
	routers.Post("/movie/{id}", http.HandlerFunc(apiController.OpenMovie))
	routers.Get("/movie/{id}/{slug}", http.HandlerFunc(apiController.MovieDetail))
	routers.Post("/movie/{id}/{slug}", http.HandlerFunc(apiController.OpenMovie))
	routers.Get("/views/{id}", http.HandlerFunc(apiController.ViewCount))
	routers.Post("/views/{id}", http.HandlerFunc(apiController.RecordView))
	return routers
}
