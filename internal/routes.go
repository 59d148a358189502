package internal

import (
	"net/http"
	"stationd/internal/controllers"
	"stationd/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController, starredController *controllers.StarredController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/sources", http.HandlerFunc(apiController.OpenSource))
	routers.Get("/sources/next", http.HandlerFunc(apiController.NextPage))
	routers.Post("/sources/close", http.HandlerFunc(apiController.CloseSource))
	routers.Get("/stations", http.HandlerFunc(apiController.GetStations))
	routers.Get("/tags", http.HandlerFunc(apiController.GetTags))
	routers.Post("/vote", http.HandlerFunc(apiController.Vote))
	routers.Post("/click", http.HandlerFunc(apiController.Click))
	routers.Post("/live/update", http.HandlerFunc(apiController.LiveUpdate))
	routers.Get("/live", http.HandlerFunc(apiController.LiveResult))

	routers.Get("/starred", http.HandlerFunc(starredController.List))
	routers.Post("/starred/toggle", http.HandlerFunc(starredController.Toggle))
	routers.Get("/starred/export", http.HandlerFunc(starredController.Export))
	routers.Get("/searches", http.HandlerFunc(starredController.Searches))
	routers.Post("/searches", http.HandlerFunc(starredController.AddSearch))
	routers.Post("/searches/remove", http.HandlerFunc(starredController.RemoveSearch))
	return routers
}
