package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/wbarros/stock-control-api/infrastructure/database/postgres"
	"github.com/wbarros/stock-control-api/internal/domain"
	"github.com/wbarros/stock-control-api/pkg/utils"
)

const (
	insightSnapshotsTable = "insight_snapshots"
)

type InsightSnapshotRepository interface {
	SaveOrUpdateSnapshot(snapshot *domain.InsightSnapshot) error
	GetLatestSnapshot() (*domain.InsightSnapshot, error)
}

type insightSnapshotRepository struct {
	conn *postgres.Connection
}

func NewInsightSnapshotRepository(conn *postgres.Connection) InsightSnapshotRepository {
	return &insightSnapshotRepository{
		conn: conn,
	}
}

// SaveOrUpdateSnapshot grava a fotografia diária dos indicadores. Existe no
// máximo uma linha por data, então um novo cálculo no mesmo dia sobrescreve o
// anterior.
func (r *insightSnapshotRepository) SaveOrUpdateSnapshot(snapshot *domain.InsightSnapshot) error {
	insightsJSON, err := json.Marshal(snapshot.Insights)
	if err != nil {
		return fmt.Errorf("erro ao serializar indicadores: %w", err)
	}

	summaryJSON, err := json.Marshal(snapshot.Summary)
	if err != nil {
		return fmt.Errorf("erro ao serializar resumo: %w", err)
	}

	if snapshot.ID == "" {
		snapshot.ID, err = utils.GenerateID()
		if err != nil {
			return fmt.Errorf("erro ao gerar id do snapshot: %w", err)
		}
	}

	query, args, err := squirrel.
		Insert(insightSnapshotsTable).
		Columns("id", "date", "insights", "summary").
		Values(snapshot.ID, snapshot.Date.Format("2006-01-02"), insightsJSON, summaryJSON).
		Suffix("ON CONFLICT (date) DO UPDATE SET insights = EXCLUDED.insights, summary = EXCLUDED.summary, updated_at = NOW()").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.DB.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao salvar snapshot: %w", err)
	}

	return nil
}

func (r *insightSnapshotRepository) GetLatestSnapshot() (*domain.InsightSnapshot, error) {
	query, args, err := squirrel.
		Select("id, date, insights, summary, created_at, updated_at").
		From(insightSnapshotsTable).
		OrderBy("date DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	snapshot := &domain.InsightSnapshot{}
	var (
		date         time.Time
		insightsJSON []byte
		summaryJSON  []byte
	)

	err = r.conn.DB.QueryRow(query, args...).Scan(
		&snapshot.ID,
		&date,
		&insightsJSON,
		&summaryJSON,
		&snapshot.CreatedAt,
		&snapshot.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear snapshot: %w", err)
	}

	snapshot.Date = date

	if err := json.Unmarshal(insightsJSON, &snapshot.Insights); err != nil {
		return nil, fmt.Errorf("erro ao desserializar indicadores: %w", err)
	}

	if err := json.Unmarshal(summaryJSON, &snapshot.Summary); err != nil {
		return nil, fmt.Errorf("erro ao desserializar resumo: %w", err)
	}

	return snapshot, nil
}
