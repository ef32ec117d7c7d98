package utils

import "time"

// LogDateLayout é o formato de data usado nas linhas do log de transações
const LogDateLayout = "02/01/2006"

// FormatLogDate formata uma data para o fragmento dd/mm/yyyy das linhas do log
func FormatLogDate(t time.Time) string {
	return t.Format(LogDateLayout)
}
