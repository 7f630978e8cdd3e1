package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/DiegoRubas/SCC-Solver/pkg/core/model"
)

// ListParticipants loads and parses the participant table without solving
func ListParticipants(ctx context.Context, source ParticipantSource, logger *zap.Logger) (*model.ParticipantTable, error) {
	logger.Debug("Fetching participants", zap.String("source", source.Describe()))

	table, err := source.LoadParticipants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load participants: %w", err)
	}

	logger.Debug("Found participants", zap.Int("count", len(table.Participants)))
	return table, nil
}
