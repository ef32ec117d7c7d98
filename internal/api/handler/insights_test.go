package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbarros/stock-control-api/internal/api/handler"
	"github.com/wbarros/stock-control-api/internal/api/handler/router"
	"github.com/wbarros/stock-control-api/internal/domain"
	"github.com/wbarros/stock-control-api/internal/usecases/insighting"
	"github.com/wbarros/stock-control-api/internal/usecases/insighting/mocks"
	"go.uber.org/mock/gomock"
)

func newInsightsRouter(service insighting.Insighter) http.Handler {
	return router.New(router.WithRoutes(handler.Insights(service)...))
}

func TestGetInsights(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockInsighter(ctrl)
	service.EXPECT().Dashboard().Return(&domain.DashboardInsights{
		TopProducts: []*domain.TopProduct{
			{Name: "Escudo", Quantity: 12, TotalRevenue: 540},
		},
		TopWeekdays:       []*domain.TopWeekday{},
		TopMarginProducts: []*domain.TopMarginProduct{},
	}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/insights", nil)
	newInsightsRouter(service).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var insights domain.DashboardInsights
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &insights))
	require.Len(t, insights.TopProducts, 1)
	assert.Equal(t, "Escudo", insights.TopProducts[0].Name)
}

func TestGetInsightsSummary(t *testing.T) {
	t.Run("retorna os três totais", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockInsighter(ctrl)
		service.EXPECT().Summary().Return(&domain.SalesSummary{
			TotalSold:   500,
			TotalBought: 300,
			Profit:      500,
		}, nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/insights/summary", nil)
		newInsightsRouter(service).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var summary domain.SalesSummary
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
		assert.Equal(t, 500.0, summary.TotalSold)
		assert.Equal(t, 500.0, summary.Profit)
	})

	t.Run("responde 500 quando o serviço falha", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockInsighter(ctrl)
		service.EXPECT().Summary().Return(nil, errors.New("banco indisponível"))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/insights/summary", nil)
		newInsightsRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestGetSalesChart(t *testing.T) {
	t.Run("usa 7days quando o período não é informado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockInsighter(ctrl)
		service.EXPECT().SalesChart(domain.Period7Days).Return(&domain.SalesChart{
			Period:   domain.Period7Days,
			Points:   make([]*domain.ChartPoint, 7),
			MaxValue: 1,
		}, nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/insights/chart", nil)
		newInsightsRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("repassa o período informado na query", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockInsighter(ctrl)
		service.EXPECT().SalesChart(domain.Period365Days).Return(&domain.SalesChart{
			Period:   domain.Period365Days,
			Points:   make([]*domain.ChartPoint, 12),
			MaxValue: 1,
		}, nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/insights/chart?period=365days", nil)
		newInsightsRouter(service).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var chart domain.SalesChart
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &chart))
		assert.Equal(t, domain.Period365Days, chart.Period)
		assert.Len(t, chart.Points, 12)
	})

	t.Run("rejeita período desconhecido", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockInsighter(ctrl)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/insights/chart?period=90days", nil)
		newInsightsRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetLatestSnapshot(t *testing.T) {
	t.Run("retorna o snapshot mais recente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockInsighter(ctrl)
		service.EXPECT().LatestSnapshot().Return(&domain.InsightSnapshot{
			ID:   "a1B2c3",
			Date: time.Date(2025, 8, 25, 0, 0, 0, 0, time.Local),
			Insights: &domain.DashboardInsights{
				TopProducts:       []*domain.TopProduct{},
				TopWeekdays:       []*domain.TopWeekday{},
				TopMarginProducts: []*domain.TopMarginProduct{},
			},
			Summary: &domain.SalesSummary{TotalSold: 100, Profit: 100},
		}, nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/insights/snapshot", nil)
		newInsightsRouter(service).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var snapshot domain.InsightSnapshot
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
		assert.Equal(t, "a1B2c3", snapshot.ID)
	})

	t.Run("responde 404 quando nenhum snapshot foi gravado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockInsighter(ctrl)
		service.EXPECT().LatestSnapshot().Return(nil, nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/insights/snapshot", nil)
		newInsightsRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
