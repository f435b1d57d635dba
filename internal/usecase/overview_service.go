package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"

	"github.com/openforecast/arena/internal/domain/access"
	"github.com/openforecast/arena/internal/domain/competition"
	"github.com/openforecast/arena/internal/domain/forecast"
	"github.com/openforecast/arena/internal/domain/prop"
	"github.com/openforecast/arena/internal/domain/resolution"
	"github.com/openforecast/arena/internal/domain/user"
	"github.com/openforecast/arena/internal/platform/logging"
)

// MemberOverview counts one member's participation in a competition.
type MemberOverview struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
	Forecasted  int    `json:"forecasted"`
	Resolved    int    `json:"resolved"`
	Pending     int    `json:"pending"`
}

// Overview is the member-by-member participation report for a competition.
// Partial is set when some members could not be loaded; those members appear
// with zero counts rather than sinking the whole report.
type Overview struct {
	CompetitionID string           `json:"competitionId"`
	PropCount     int              `json:"propCount"`
	Members       []MemberOverview `json:"members"`
	Partial       bool             `json:"partial"`
}

type OverviewService struct {
	userRepo       user.Repository
	compRepo       competition.Repository
	propRepo       prop.Repository
	forecastRepo   forecast.Repository
	resolutionRepo resolution.Repository
	logger         *logging.Logger
	maxWorkers     int
}

func NewOverviewService(
	userRepo user.Repository,
	compRepo competition.Repository,
	propRepo prop.Repository,
	forecastRepo forecast.Repository,
	resolutionRepo resolution.Repository,
	logger *logging.Logger,
	maxWorkers int,
) *OverviewService {
	if maxWorkers <= 0 {
		maxWorkers = 8
	}
	return &OverviewService{
		userRepo:       userRepo,
		compRepo:       compRepo,
		propRepo:       propRepo,
		forecastRepo:   forecastRepo,
		resolutionRepo: resolutionRepo,
		logger:         logger,
		maxWorkers:     maxWorkers,
	}
}

// CompetitionOverview reports, per member, how many of the competition's
// props they forecast and how many of those are resolved versus still open.
// Member rows load concurrently; a failed member degrades to zero counts.
func (s *OverviewService) CompetitionOverview(ctx context.Context, competitionID, viewerID string) (Overview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OverviewService.CompetitionOverview")
	defer span.End()

	viewer, err := loadViewer(ctx, s.userRepo, viewerID)
	if err != nil {
		return Overview{}, err
	}
	comp, err := loadCompetition(ctx, s.compRepo, competitionID)
	if err != nil {
		return Overview{}, err
	}
	viewerMembership, err := lookupMembership(ctx, s.compRepo, comp.ID, viewer.ID)
	if err != nil {
		return Overview{}, err
	}
	if !access.CanViewCompetition(viewer, comp, viewerMembership) {
		return Overview{}, fmt.Errorf("%w: competition=%s user=%s", ErrUnauthorized, comp.ID, viewer.ID)
	}

	props, err := s.propRepo.ListByCompetition(ctx, comp.ID)
	if err != nil {
		return Overview{}, fmt.Errorf("list competition props: %w", err)
	}
	propIDs := make([]string, 0, len(props))
	for _, p := range props {
		propIDs = append(propIDs, p.ID)
	}

	resolutionRows, err := s.resolutionRepo.ListByProps(ctx, propIDs)
	if err != nil {
		return Overview{}, fmt.Errorf("list resolutions: %w", err)
	}
	resolved := make(map[string]struct{}, len(resolutionRows))
	for _, r := range resolutionRows {
		resolved[r.PropID] = struct{}{}
	}

	memberships, err := s.compRepo.ListMemberships(ctx, comp.ID)
	if err != nil {
		return Overview{}, fmt.Errorf("list memberships: %w", err)
	}

	members := make([]MemberOverview, len(memberships))
	var partial atomic.Bool

	workers := pool.New().WithMaxGoroutines(s.maxWorkers)
	for i, m := range memberships {
		workers.Go(func() {
			row, err := s.memberOverview(ctx, m, propIDs, resolved)
			if err != nil {
				partial.Store(true)
				s.logger.WarnContext(ctx, "member overview failed",
					"competition_id", comp.ID,
					"user_id", m.UserID,
					"error", err,
				)
				row = MemberOverview{UserID: m.UserID, Role: string(m.Role)}
			}
			members[i] = row
		})
	}
	workers.Wait()

	sort.SliceStable(members, func(i, j int) bool {
		return members[i].UserID < members[j].UserID
	})

	return Overview{
		CompetitionID: comp.ID,
		PropCount:     len(props),
		Members:       members,
		Partial:       partial.Load(),
	}, nil
}

func (s *OverviewService) memberOverview(ctx context.Context, m competition.Membership, propIDs []string, resolved map[string]struct{}) (MemberOverview, error) {
	member, exists, err := s.userRepo.GetByID(ctx, m.UserID)
	if err != nil {
		return MemberOverview{}, fmt.Errorf("get member: %w", err)
	}
	if !exists {
		return MemberOverview{}, fmt.Errorf("%w: user=%s", ErrNotFound, m.UserID)
	}

	forecasts, err := s.forecastRepo.ListByUserAndProps(ctx, m.UserID, propIDs)
	if err != nil {
		return MemberOverview{}, fmt.Errorf("list member forecasts: %w", err)
	}

	row := MemberOverview{
		UserID:      member.ID,
		DisplayName: member.DisplayName,
		Role:        string(m.Role),
		Forecasted:  len(forecasts),
	}
	for _, f := range forecasts {
		if _, ok := resolved[f.PropID]; ok {
			row.Resolved++
		} else {
			row.Pending++
		}
	}
	return row, nil
}
