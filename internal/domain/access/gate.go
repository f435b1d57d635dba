package access

import (
	"github.com/openforecast/arena/internal/domain/competition"
	"github.com/openforecast/arena/internal/domain/forecast"
	"github.com/openforecast/arena/internal/domain/prop"
	"github.com/openforecast/arena/internal/domain/user"
)

// The gate makes row visibility and mutation rules explicit allow/deny
// predicates instead of leaving them to database policies. Every predicate
// is pure: callers fetch the viewer, the entity, and (for private
// competitions) the viewer's membership, then ask.
//
// Ground rules:
//   - deactivated users are denied everything;
//   - site admins see and administer everything;
//   - public competitions are visible to every active user;
//   - private competitions require membership, mutation requires the admin
//     role;
//   - personal props (and their forecasts/resolutions) are private to their
//     owner.

func CanViewCompetition(viewer user.User, comp competition.Competition, membership *competition.Membership) bool {
	if !viewer.IsActive {
		return false
	}
	if viewer.IsAdmin {
		return true
	}
	if !comp.IsPrivate() {
		return true
	}
	return membership != nil && membership.UserID == viewer.ID
}

func CanManageCompetition(viewer user.User, comp competition.Competition, membership *competition.Membership) bool {
	if !viewer.IsActive {
		return false
	}
	if viewer.IsAdmin {
		return true
	}
	return membership != nil && membership.UserID == viewer.ID && membership.IsAdmin()
}

func CanManageMembers(viewer user.User, comp competition.Competition, membership *competition.Membership) bool {
	return CanManageCompetition(viewer, comp, membership)
}

// CanViewProp covers the three prop shapes: personal props are owner-only,
// competition props follow competition visibility, and shared props with
// neither owner nor competition are open to active users.
func CanViewProp(viewer user.User, p prop.Prop, comp *competition.Competition, membership *competition.Membership) bool {
	if !viewer.IsActive {
		return false
	}
	if viewer.IsAdmin {
		return true
	}
	if p.IsPersonal() {
		return *p.OwnerID == viewer.ID
	}
	if p.CompetitionID != nil {
		if comp == nil {
			return false
		}
		return CanViewCompetition(viewer, *comp, membership)
	}
	return true
}

func CanEditProp(viewer user.User, p prop.Prop, comp *competition.Competition, membership *competition.Membership) bool {
	if !viewer.IsActive {
		return false
	}
	if viewer.IsAdmin {
		return true
	}
	if p.IsPersonal() {
		return *p.OwnerID == viewer.ID
	}
	if p.CompetitionID != nil {
		if comp == nil {
			return false
		}
		return CanManageCompetition(viewer, *comp, membership)
	}
	return false
}

// CanResolveProp allows competition admins for shared props and the owner
// for personal props.
func CanResolveProp(viewer user.User, p prop.Prop, comp *competition.Competition, membership *competition.Membership) bool {
	return CanEditProp(viewer, p, comp, membership)
}

// CanEditForecast restricts probability updates to the forecast's own user.
// Site admins may clear forecasts but not rewrite someone else's estimate.
func CanEditForecast(viewer user.User, f forecast.Forecast) bool {
	return viewer.IsActive && viewer.ID == f.UserID
}

func CanClearForecast(viewer user.User, f forecast.Forecast, comp *competition.Competition, membership *competition.Membership) bool {
	if !viewer.IsActive {
		return false
	}
	if viewer.ID == f.UserID || viewer.IsAdmin {
		return true
	}
	if comp != nil {
		return CanManageCompetition(viewer, *comp, membership)
	}
	return false
}

// CanViewForecast lets a viewer see another user's forecast whenever the
// underlying prop is visible to them; leaderboards and distribution charts
// depend on that.
func CanViewForecast(viewer user.User, f forecast.Forecast, p prop.Prop, comp *competition.Competition, membership *competition.Membership) bool {
	if !viewer.IsActive {
		return false
	}
	if viewer.ID == f.UserID {
		return true
	}
	return CanViewProp(viewer, p, comp, membership)
}
