package handler

import (
	"net/http"

	"github.com/wbarros/stock-control-api/internal/api/handler/router"
	"github.com/wbarros/stock-control-api/internal/usecases/authenticating"
	"github.com/wbarros/stock-control-api/internal/usecases/insighting"
	"github.com/wbarros/stock-control-api/internal/usecases/stocking"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/me",
			Method:  http.MethodGet,
			Handler: GetMe(service),
		},
		{
			Path:    "/v1/me/change-password",
			Method:  http.MethodPost,
			Handler: ChangePassword(service),
		},
	}
}

func Items(service stocking.StockService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/items",
			Method:  http.MethodGet,
			Handler: ListItems(service),
		},
		{
			Path:    "/v1/items",
			Method:  http.MethodPost,
			Handler: CreateItem(service),
		},
		{
			Path:    "/v1/items/:id",
			Method:  http.MethodGet,
			Handler: GetItem(service),
		},
		{
			Path:    "/v1/items/:id",
			Method:  http.MethodPut,
			Handler: UpdateItem(service),
		},
		{
			Path:    "/v1/items/:id",
			Method:  http.MethodDelete,
			Handler: DeleteItem(service),
		},
	}
}

func Transactions(service stocking.StockService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sales",
			Method:  http.MethodPost,
			Handler: RegisterSale(service),
		},
		{
			Path:    "/v1/sales",
			Method:  http.MethodGet,
			Handler: ListSales(service),
		},
		{
			Path:    "/v1/purchases",
			Method:  http.MethodPost,
			Handler: RegisterPurchase(service),
		},
		{
			Path:    "/v1/purchases",
			Method:  http.MethodGet,
			Handler: ListPurchases(service),
		},
		{
			Path:    "/v1/transactions",
			Method:  http.MethodGet,
			Handler: ListTransactions(service),
		},
	}
}

func Insights(service insighting.Insighter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/insights",
			Method:  http.MethodGet,
			Handler: GetInsights(service),
		},
		{
			Path:    "/v1/insights/summary",
			Method:  http.MethodGet,
			Handler: GetInsightsSummary(service),
		},
		{
			Path:    "/v1/insights/chart",
			Method:  http.MethodGet,
			Handler: GetSalesChart(service),
		},
		{
			Path:    "/v1/insights/snapshot",
			Method:  http.MethodGet,
			Handler: GetLatestSnapshot(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
