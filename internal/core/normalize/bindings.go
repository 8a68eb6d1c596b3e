package normalize

import (
	"github.com/weljim73-spec/soccertrainerocr/internal/core/domain"
)

// The binding tables are the single source of truth for the structured
// extraction schema: the instruction templates and the lenient schema
// check both derive their key lists from FlatKeys, so a field added here
// is automatically requested from the model and validated.

func matchBindings(r *domain.MatchRecord) []binding {
	return []binding{
		{keys: []string{"session_name"}, str: &r.Session.SessionName},
		{keys: []string{"date", "session_date"}, date: &r.Session.Date},
		{keys: []string{"duration_minutes", "duration"}, num: &r.Session.DurationMinutes},

		{keys: []string{"position"}, str: &r.Overview.Position},
		{keys: []string{"goals"}, num: &r.Overview.Goals},
		{keys: []string{"assists"}, num: &r.Overview.Assists},
		{keys: []string{"athlete_team_score", "team_score"}, num: &r.Overview.AthleteTeamScore},
		{keys: []string{"opposing_team_score", "opponent_score"}, num: &r.Overview.OpposingTeamScore},
		{keys: []string{"opposing_team_name", "opponent", "opponent_name"}, str: &r.Overview.OpposingTeamName},

		{keys: []string{"two_footed_score"}, num: &r.Skills.TwoFootedScore},
		{keys: []string{"dribbling_score"}, num: &r.Skills.DribblingScore},
		{keys: []string{"first_touch_score"}, num: &r.Skills.FirstTouchScore},
		{keys: []string{"agility_score"}, num: &r.Skills.AgilityScore},
		{keys: []string{"speed_score"}, num: &r.Skills.SpeedScore},
		{keys: []string{"power_score"}, num: &r.Skills.PowerScore},

		{keys: []string{"work_rate_yd_per_min", "work_rate"}, num: &r.Highlights.WorkRateYdPerMin},
		{keys: []string{"ball_possessions"}, num: &r.Highlights.BallPossessions},
		{keys: []string{"total_distance_mi", "total_distance_miles", "total_distance"}, num: &r.Highlights.TotalDistanceMi},
		{keys: []string{"sprint_distance_yd", "sprint_distance_yards", "sprint_distance"}, num: &r.Highlights.SprintDistanceYd},
		{keys: []string{"top_speed_mph", "top_speed"}, num: &r.Highlights.TopSpeedMPH},
		{keys: []string{"kicking_power_mph", "kicking_power"}, num: &r.Highlights.KickingPowerMPH},

		{keys: []string{"left_foot_touches"}, num: &r.TwoFooted.LeftFootTouches},
		{keys: []string{"left_foot_touches_pct", "left_foot_touches_percentage"}, num: &r.TwoFooted.LeftFootTouchesPct},
		{keys: []string{"right_foot_touches"}, num: &r.TwoFooted.RightFootTouches},
		{keys: []string{"right_foot_touches_pct", "right_foot_touches_percentage"}, num: &r.TwoFooted.RightFootTouchesPct},
		{keys: []string{"left_foot_releases"}, num: &r.TwoFooted.LeftFootReleases},
		{keys: []string{"left_foot_releases_pct", "left_foot_releases_percentage"}, num: &r.TwoFooted.LeftFootReleasesPct},
		{keys: []string{"right_foot_releases"}, num: &r.TwoFooted.RightFootReleases},
		{keys: []string{"right_foot_releases_pct", "right_foot_releases_percentage"}, num: &r.TwoFooted.RightFootReleasesPct},
		{keys: []string{"left_foot_receives"}, num: &r.TwoFooted.LeftFootReceives},
		{keys: []string{"left_foot_receives_pct", "left_foot_receives_percentage"}, num: &r.TwoFooted.LeftFootReceivesPct},
		{keys: []string{"right_foot_receives"}, num: &r.TwoFooted.RightFootReceives},
		{keys: []string{"right_foot_receives_pct", "right_foot_receives_percentage"}, num: &r.TwoFooted.RightFootReceivesPct},
		{keys: []string{"left_foot_kicking_power_mph", "left_kicking_power"}, num: &r.TwoFooted.LeftFootKickingPowerMPH},
		{keys: []string{"right_foot_kicking_power_mph", "right_kicking_power"}, num: &r.TwoFooted.RightFootKickingPowerMPH},

		{keys: []string{"distance_with_ball_yd", "distance_with_ball"}, num: &r.Dribbling.DistanceWithBallYd},
		{keys: []string{"top_speed_with_ball_mph", "top_speed_with_ball"}, num: &r.Dribbling.TopSpeedWithBallMPH},
		{keys: []string{"intense_turns_with_ball"}, num: &r.Dribbling.IntenseTurnsWithBall},

		{keys: []string{"ball_possessions"}, num: &r.FirstTouch.BallPossessions.Total},
		{keys: []string{"one_touch_possessions", "one_touch"}, num: &r.FirstTouch.BallPossessions.OneTouch},
		{keys: []string{"multiple_touch_possessions", "multiple_touch"}, num: &r.FirstTouch.BallPossessions.MultipleTouch},
		{keys: []string{"possession_duration_sec", "total_duration_sec"}, num: &r.FirstTouch.BallPossessions.TotalDurationSec},
		{keys: []string{"footzone_laces", "laces"}, num: &r.FirstTouch.BallReleaseFootzone.Laces},
		{keys: []string{"footzone_inside", "inside"}, num: &r.FirstTouch.BallReleaseFootzone.Inside},
		{keys: []string{"footzone_other", "other"}, num: &r.FirstTouch.BallReleaseFootzone.Other},

		{keys: []string{"left_turns"}, num: &r.Agility.LeftTurns},
		{keys: []string{"back_turns"}, num: &r.Agility.BackTurns},
		{keys: []string{"right_turns"}, num: &r.Agility.RightTurns},
		{keys: []string{"intense_turns"}, num: &r.Agility.IntenseTurns},
		{keys: []string{"avg_turn_entry_speed_mph", "average_turn_entry_speed_mph", "turn_entry_speed"}, num: &r.Agility.AvgTurnEntrySpeedMPH},
		{keys: []string{"avg_turn_exit_speed_mph", "average_turn_exit_speed_mph", "turn_exit_speed"}, num: &r.Agility.AvgTurnExitSpeedMPH},

		{keys: []string{"top_speed_mph", "top_speed"}, num: &r.Speed.TopSpeedMPH},
		{keys: []string{"sprints", "number_of_sprints"}, num: &r.Speed.Sprints},

		{keys: []string{"first_step_accelerations", "first_step"}, num: &r.Power.FirstStepAccelerations},
		{keys: []string{"intense_accelerations"}, num: &r.Power.IntenseAccelerations},
	}
}

func ballWorkBindings(r *domain.BallWorkRecord) []binding {
	return []binding{
		{keys: []string{"session_name"}, str: &r.Session.SessionName},
		{keys: []string{"date", "session_date"}, date: &r.Session.Date},
		{keys: []string{"duration_minutes", "duration"}, num: &r.Session.DurationMinutes},
		{keys: []string{"training_type"}, str: &r.Session.TrainingType},
		{keys: []string{"intensity"}, str: &r.Session.Intensity},

		{keys: []string{"ball_touches"}, num: &r.Highlights.BallTouches},
		{keys: []string{"total_distance_miles", "total_distance_mi", "total_distance"}, num: &r.Highlights.TotalDistanceMiles},
		{keys: []string{"sprint_distance_yards", "sprint_distance_yd", "sprint_distance"}, num: &r.Highlights.SprintDistanceYds},
		{keys: []string{"accl_decl", "accel_decel"}, num: &r.Highlights.AcclDecl},
		{keys: []string{"kicking_power_mph", "kicking_power"}, num: &r.Highlights.KickingPowerMPH},

		{keys: []string{"left_foot_touches"}, num: &r.TwoFooted.LeftFootTouches},
		{keys: []string{"left_foot_touches_percentage", "left_foot_touches_pct"}, num: &r.TwoFooted.LeftFootTouchesPct},
		{keys: []string{"right_foot_touches"}, num: &r.TwoFooted.RightFootTouches},
		{keys: []string{"right_foot_touches_percentage", "right_foot_touches_pct"}, num: &r.TwoFooted.RightFootTouchesPct},
		{keys: []string{"left_foot_releases"}, num: &r.TwoFooted.LeftFootReleases},
		{keys: []string{"left_foot_releases_percentage", "left_foot_releases_pct"}, num: &r.TwoFooted.LeftFootReleasesPct},
		{keys: []string{"right_foot_releases"}, num: &r.TwoFooted.RightFootReleases},
		{keys: []string{"right_foot_releases_percentage", "right_foot_releases_pct"}, num: &r.TwoFooted.RightFootReleasesPct},
		{keys: []string{"left_foot_kicking_power_mph", "left_kicking_power"}, num: &r.TwoFooted.LeftFootKickingPowerMPH},
		{keys: []string{"right_foot_kicking_power_mph", "right_kicking_power"}, num: &r.TwoFooted.RightFootKickingPowerMPH},

		{keys: []string{"top_speed_mph", "top_speed"}, num: &r.Speed.TopSpeedMPH},
		{keys: []string{"sprints", "number_of_sprints"}, num: &r.Speed.Sprints},

		{keys: []string{"left_turns"}, num: &r.Agility.LeftTurns},
		{keys: []string{"back_turns"}, num: &r.Agility.BackTurns},
		{keys: []string{"right_turns"}, num: &r.Agility.RightTurns},
		{keys: []string{"intense_turns"}, num: &r.Agility.IntenseTurns},
		{keys: []string{"average_turn_entry_speed_mph", "avg_turn_entry_speed_mph", "turn_entry_speed"}, num: &r.Agility.AverageTurnEntrySpeedMPH},
		{keys: []string{"average_turn_exit_speed_mph", "avg_turn_exit_speed_mph", "turn_exit_speed"}, num: &r.Agility.AverageTurnExitSpeedMPH},
	}
}

func speedAgilityBindings(r *domain.SpeedAgilityRecord) []binding {
	return []binding{
		{keys: []string{"session_name"}, str: &r.Session.SessionName},
		{keys: []string{"date", "session_date"}, date: &r.Session.Date},
		{keys: []string{"duration_minutes", "duration"}, num: &r.Session.DurationMinutes},
		{keys: []string{"training_type"}, str: &r.Session.TrainingType},
		{keys: []string{"intensity"}, str: &r.Session.Intensity},

		{keys: []string{"total_distance_miles", "total_distance_mi", "total_distance"}, num: &r.Highlights.TotalDistanceMiles},
		{keys: []string{"sprint_distance_yards", "sprint_distance_yd", "sprint_distance"}, num: &r.Highlights.SprintDistanceYds},
		{keys: []string{"accl_decl", "accel_decel"}, num: &r.Highlights.AcclDecl},

		{keys: []string{"top_speed_mph", "top_speed"}, num: &r.Speed.TopSpeedMPH},
		{keys: []string{"sprints", "number_of_sprints"}, num: &r.Speed.Sprints},

		{keys: []string{"left_turns"}, num: &r.Agility.LeftTurns},
		{keys: []string{"back_turns"}, num: &r.Agility.BackTurns},
		{keys: []string{"right_turns"}, num: &r.Agility.RightTurns},
		{keys: []string{"intense_turns"}, num: &r.Agility.IntenseTurns},
		{keys: []string{"average_turn_entry_speed_mph", "avg_turn_entry_speed_mph", "turn_entry_speed"}, num: &r.Agility.AverageTurnEntrySpeedMPH},
		{keys: []string{"average_turn_exit_speed_mph", "avg_turn_exit_speed_mph", "turn_exit_speed"}, num: &r.Agility.AverageTurnExitSpeedMPH},
	}
}

// FlatKeys returns the canonical (first-listed) external key of every
// binding for the session type, deduplicated in declaration order. The
// instruction templates enumerate exactly these keys.
func FlatKeys(sessionType domain.SessionType) []string {
	var bs []binding
	switch sessionType {
	case domain.SessionBallWork:
		bs = ballWorkBindings(&domain.BallWorkRecord{})
	case domain.SessionSpeedAgility:
		bs = speedAgilityBindings(&domain.SpeedAgilityRecord{})
	default:
		bs = matchBindings(&domain.MatchRecord{})
	}
	seen := make(map[string]struct{}, len(bs))
	keys := make([]string, 0, len(bs))
	for _, b := range bs {
		k := b.keys[0]
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}
