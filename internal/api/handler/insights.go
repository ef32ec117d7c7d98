package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/wbarros/stock-control-api/internal/domain"
	"github.com/wbarros/stock-control-api/internal/usecases/insighting"
	"github.com/wbarros/stock-control-api/pkg/apiErrors"
)

// GetInsights retorna as três visões do painel calculadas a partir do log
// de movimentações
func GetInsights(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		insights, err := service.Dashboard()
		if err != nil {
			logrus.Error("Erro ao calcular os indicadores do painel:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao calcular os indicadores", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(insights)
	})
}

func GetInsightsSummary(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		summary, err := service.Summary()
		if err != nil {
			logrus.Error("Erro ao calcular o resumo de vendas:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao calcular o resumo", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summary)
	})
}

// GetSalesChart retorna o gráfico de vendas no período informado em
// ?period=7days|30days|365days (padrão: 7days)
func GetSalesChart(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		period := domain.ChartPeriod(r.URL.Query().Get("period"))
		if period == "" {
			period = domain.Period7Days
		}

		if !period.Valid() {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Período inválido: use 7days, 30days ou 365days", nil)
			return
		}

		chart, err := service.SalesChart(period)
		if err != nil {
			logrus.Error("Erro ao montar o gráfico de vendas:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao montar o gráfico", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chart)
	})
}

// GetLatestSnapshot retorna a fotografia diária mais recente dos indicadores
func GetLatestSnapshot(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := service.LatestSnapshot()
		if err != nil {
			logrus.Error("Erro ao buscar o snapshot de indicadores:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao buscar o snapshot", nil)
			return
		}

		if snapshot == nil {
			apiErrors.WriteErrorWithStatus(w, http.StatusNotFound, apiErrors.ErrInvalidRequest, "Nenhum snapshot gravado ainda", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(snapshot)
	})
}
