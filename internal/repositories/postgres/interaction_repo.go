package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/compassionai/compassion/internal/models"
	"github.com/compassionai/compassion/internal/utils"
	"gorm.io/gorm"
)

type InteractionRepo interface {
	Insert(ctx context.Context, row *models.Interaction) error
	// InsertIfSessionEmpty inserts row only when the session has no records
	// yet, as a single atomic statement. Returns whether the row was written.
	InsertIfSessionEmpty(ctx context.Context, row *models.Interaction) (bool, error)
	ListBySession(ctx context.Context, sessionID string) ([]models.Interaction, error)
	LastByRole(ctx context.Context, sessionID, role string) (*models.Interaction, error)
}

type interactionRepo struct {
	db *gorm.DB
}

func NewInteractionRepo(db *gorm.DB) InteractionRepo {
	return &interactionRepo{db: db}
}

func (r *interactionRepo) Insert(ctx context.Context, row *models.Interaction) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *interactionRepo) InsertIfSessionEmpty(ctx context.Context, row *models.Interaction) (bool, error) {
	metricsJSON, err := json.Marshal(row.Metrics.Data())
	if err != nil {
		return false, err
	}

	// INSERT ... SELECT ... WHERE NOT EXISTS keeps the existence check and the
	// write in one statement, so two racing bootstraps cannot both insert.
	res := r.db.WithContext(ctx).Exec(
		`INSERT INTO interactions (session_id, role, content, metrics, timestamp)
		 SELECT ?, ?, ?, ?, ?
		 WHERE NOT EXISTS (SELECT 1 FROM interactions WHERE session_id = ?)`,
		row.SessionID, row.Role, row.Content, string(metricsJSON), row.Timestamp,
		row.SessionID,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *interactionRepo) ListBySession(ctx context.Context, sessionID string) ([]models.Interaction, error) {
	rows := []models.Interaction{}
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("timestamp ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *interactionRepo) LastByRole(ctx context.Context, sessionID, role string) (*models.Interaction, error) {
	var row models.Interaction
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND role = ?", sessionID, role).
		Order("timestamp DESC, id DESC").
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
