package command

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ripcamargo/daily-check-maromba/internal/domain/attendance"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/season"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CREATE SEASON COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// CreateSeasonCommand creates a new season with its classification policy.
type CreateSeasonCommand struct {
	Title     string
	StartDate attendance.Date
	EndDate   attendance.Date
	Policy    attendance.Policy

	// Participants are the athlete IDs enrolled from day one.
	Participants []string

	// Activate makes this the active season, deactivating the current one.
	Activate bool
}

// CreateSeasonHandler handles the CreateSeasonCommand.
type CreateSeasonHandler struct {
	seasonRepo season.Repository
}

// NewCreateSeasonHandler creates a new CreateSeasonHandler.
func NewCreateSeasonHandler(seasonRepo season.Repository) *CreateSeasonHandler {
	return &CreateSeasonHandler{seasonRepo: seasonRepo}
}

// Handle executes the create season command.
func (h *CreateSeasonHandler) Handle(ctx context.Context, cmd CreateSeasonCommand) (*season.Season, error) {
	s, err := season.New(uuid.NewString(), cmd.Title, cmd.StartDate, cmd.EndDate, cmd.Policy)
	if err != nil {
		return nil, fmt.Errorf("create_season: %w", err)
	}
	s.Participants = cmd.Participants

	if cmd.Activate {
		if err := deactivateCurrent(ctx, h.seasonRepo); err != nil {
			return nil, fmt.Errorf("create_season: %w", err)
		}
		s.Active = true
	}

	if err := h.seasonRepo.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("create_season: failed to save: %w", err)
	}
	return s, nil
}

// deactivateCurrent clears the active flag of the current season, if any.
func deactivateCurrent(ctx context.Context, repo season.Repository) error {
	current, err := repo.GetActive(ctx)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil
		}
		return err
	}
	current.Active = false
	return repo.Update(ctx, current)
}

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE SEASON POLICY COMMAND
// Mudanca de politica invalida o historico classificado. Por padrao o
// reprocessamento roda na sequencia, na mesma chamada.
// ══════════════════════════════════════════════════════════════════════════════

// UpdateSeasonPolicyCommand replaces the classification policy of a season.
type UpdateSeasonPolicyCommand struct {
	// SeasonID is the target season. If empty, the active season is used.
	SeasonID string

	// Policy is the new, complete policy.
	Policy attendance.Policy

	// SkipReprocess leaves the stored history as is. The caller becomes
	// responsible for reprocessing later.
	SkipReprocess bool
}

// UpdateSeasonPolicyResult contains the updated season and, when run, the
// reprocessing summary.
type UpdateSeasonPolicyResult struct {
	Season    *season.Season
	Reprocess *ReprocessSeasonResult
}

// UpdateSeasonPolicyHandler handles the UpdateSeasonPolicyCommand.
type UpdateSeasonPolicyHandler struct {
	seasonRepo  season.Repository
	reprocessor *ReprocessSeasonHandler
}

// NewUpdateSeasonPolicyHandler creates a new UpdateSeasonPolicyHandler.
func NewUpdateSeasonPolicyHandler(
	seasonRepo season.Repository,
	reprocessor *ReprocessSeasonHandler,
) *UpdateSeasonPolicyHandler {
	return &UpdateSeasonPolicyHandler{
		seasonRepo:  seasonRepo,
		reprocessor: reprocessor,
	}
}

// Handle executes the policy update.
func (h *UpdateSeasonPolicyHandler) Handle(ctx context.Context, cmd UpdateSeasonPolicyCommand) (*UpdateSeasonPolicyResult, error) {
	if err := cmd.Policy.Validate(); err != nil {
		return nil, fmt.Errorf("update_season: %w", err)
	}

	s, err := resolveSeason(ctx, h.seasonRepo, cmd.SeasonID)
	if err != nil {
		return nil, fmt.Errorf("update_season: %w", err)
	}

	s.Policy = cmd.Policy
	if err := h.seasonRepo.Update(ctx, s); err != nil {
		return nil, fmt.Errorf("update_season: failed to save: %w", err)
	}

	result := &UpdateSeasonPolicyResult{Season: s}
	if !cmd.SkipReprocess {
		rep, err := h.reprocessor.Handle(ctx, ReprocessSeasonCommand{SeasonID: s.ID})
		if err != nil {
			return result, fmt.Errorf("update_season: policy saved but history is stale: %w", err)
		}
		result.Reprocess = rep
	}
	return result, nil
}
