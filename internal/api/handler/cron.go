package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/wbarros/stock-control-api/internal/scheduler"
	"github.com/wbarros/stock-control-api/pkg/apiErrors"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeInsights = "insights"
	CronJobTypeAll      = "all"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	InsightSnapshotService *scheduler.InsightSnapshotService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeInsights:
			if services.InsightSnapshotService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de snapshot de indicadores não disponível", nil)
				return
			}
			services.InsightSnapshotService.TriggerManualSync()

		case CronJobTypeAll:
			if services.InsightSnapshotService != nil {
				services.InsightSnapshotService.TriggerManualSync()
			}

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: insights, all", nil)
			return
		}

		response := map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		status := map[string]any{
			"insights": services.InsightSnapshotService.GetStatus(),
		}

		json.NewEncoder(w).Encode(status)
	}
}
