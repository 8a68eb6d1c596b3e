package domain

// SessionRecord is one of the three canonical record shapes. Every leaf is
// a pointer and serializes without omitempty, so fields the screenshots did
// not show come out as explicit nulls rather than missing keys.
type SessionRecord interface {
	Type() SessionType
}

// TrainingSession is the shared session header for ball-work and
// speed & agility sessions.
type TrainingSession struct {
	SessionName     *string  `json:"session_name"`
	Date            *string  `json:"date"`
	DurationMinutes *float64 `json:"duration_minutes"`
	TrainingType    *string  `json:"training_type"`
	Intensity       *string  `json:"intensity"`
}

type Speed struct {
	TopSpeedMPH *float64 `json:"top_speed_mph"`
	Sprints     *float64 `json:"sprints"`
}

// TurnAgility is the agility section shared by ball-work and
// speed & agility records.
type TurnAgility struct {
	LeftTurns                *float64 `json:"left_turns"`
	BackTurns                *float64 `json:"back_turns"`
	RightTurns               *float64 `json:"right_turns"`
	IntenseTurns             *float64 `json:"intense_turns"`
	AverageTurnEntrySpeedMPH *float64 `json:"average_turn_entry_speed_mph"`
	AverageTurnExitSpeedMPH  *float64 `json:"average_turn_exit_speed_mph"`
}

type MatchRecord struct {
	Session    MatchSession    `json:"session"`
	Overview   MatchOverview   `json:"overview"`
	Skills     MatchSkills     `json:"skills"`
	Highlights MatchHighlights `json:"highlights"`
	TwoFooted  MatchTwoFooted  `json:"two_footed"`
	Dribbling  Dribbling       `json:"dribbling"`
	FirstTouch FirstTouch      `json:"first_touch"`
	Agility    MatchAgility    `json:"agility"`
	Speed      Speed           `json:"speed"`
	Power      Power           `json:"power"`
}

func (*MatchRecord) Type() SessionType { return SessionMatch }

type MatchSession struct {
	SessionName     *string  `json:"session_name"`
	Date            *string  `json:"date"`
	DurationMinutes *float64 `json:"duration_minutes"`
	TrainingType    *string  `json:"training_type"`
}

type MatchOverview struct {
	Position          *string  `json:"position"`
	Goals             *float64 `json:"goals"`
	Assists           *float64 `json:"assists"`
	AthleteTeamScore  *float64 `json:"athlete_team_score"`
	OpposingTeamScore *float64 `json:"opposing_team_score"`
	OpposingTeamName  *string  `json:"opposing_team_name"`
}

type MatchSkills struct {
	TwoFootedScore  *float64 `json:"two_footed_score"`
	DribblingScore  *float64 `json:"dribbling_score"`
	FirstTouchScore *float64 `json:"first_touch_score"`
	AgilityScore    *float64 `json:"agility_score"`
	SpeedScore      *float64 `json:"speed_score"`
	PowerScore      *float64 `json:"power_score"`
}

type MatchHighlights struct {
	WorkRateYdPerMin *float64 `json:"work_rate_yd_per_min"`
	BallPossessions  *float64 `json:"ball_possessions"`
	TotalDistanceMi  *float64 `json:"total_distance_mi"`
	SprintDistanceYd *float64 `json:"sprint_distance_yd"`
	TopSpeedMPH      *float64 `json:"top_speed_mph"`
	KickingPowerMPH  *float64 `json:"kicking_power_mph"`
}

type MatchTwoFooted struct {
	LeftFootTouches          *float64 `json:"left_foot_touches"`
	LeftFootTouchesPct       *float64 `json:"left_foot_touches_pct"`
	RightFootTouches         *float64 `json:"right_foot_touches"`
	RightFootTouchesPct      *float64 `json:"right_foot_touches_pct"`
	LeftFootReleases         *float64 `json:"left_foot_releases"`
	LeftFootReleasesPct      *float64 `json:"left_foot_releases_pct"`
	RightFootReleases        *float64 `json:"right_foot_releases"`
	RightFootReleasesPct     *float64 `json:"right_foot_releases_pct"`
	LeftFootReceives         *float64 `json:"left_foot_receives"`
	LeftFootReceivesPct      *float64 `json:"left_foot_receives_pct"`
	RightFootReceives        *float64 `json:"right_foot_receives"`
	RightFootReceivesPct     *float64 `json:"right_foot_receives_pct"`
	LeftFootKickingPowerMPH  *float64 `json:"left_foot_kicking_power_mph"`
	RightFootKickingPowerMPH *float64 `json:"right_foot_kicking_power_mph"`
}

type Dribbling struct {
	DistanceWithBallYd   *float64 `json:"distance_with_ball_yd"`
	TopSpeedWithBallMPH  *float64 `json:"top_speed_with_ball_mph"`
	IntenseTurnsWithBall *float64 `json:"intense_turns_with_ball"`
}

type FirstTouch struct {
	BallPossessions     FirstTouchPossessions `json:"ball_possessions"`
	BallReleaseFootzone BallReleaseFootzone   `json:"ball_release_footzone"`
}

type FirstTouchPossessions struct {
	Total            *float64 `json:"total"`
	OneTouch         *float64 `json:"one_touch"`
	MultipleTouch    *float64 `json:"multiple_touch"`
	TotalDurationSec *float64 `json:"total_duration_sec"`
}

type BallReleaseFootzone struct {
	Laces  *float64 `json:"laces"`
	Inside *float64 `json:"inside"`
	Other  *float64 `json:"other"`
}

// MatchAgility differs from TurnAgility only in its speed key names, which
// the match screenshots abbreviate.
type MatchAgility struct {
	LeftTurns            *float64 `json:"left_turns"`
	BackTurns            *float64 `json:"back_turns"`
	RightTurns           *float64 `json:"right_turns"`
	IntenseTurns         *float64 `json:"intense_turns"`
	AvgTurnEntrySpeedMPH *float64 `json:"avg_turn_entry_speed_mph"`
	AvgTurnExitSpeedMPH  *float64 `json:"avg_turn_exit_speed_mph"`
}

type Power struct {
	FirstStepAccelerations *float64 `json:"first_step_accelerations"`
	IntenseAccelerations   *float64 `json:"intense_accelerations"`
}

type BallWorkRecord struct {
	Session    TrainingSession    `json:"session"`
	Highlights BallWorkHighlights `json:"highlights"`
	TwoFooted  BallWorkTwoFooted  `json:"two_footed"`
	Speed      Speed              `json:"speed"`
	Agility    TurnAgility        `json:"agility"`
}

func (*BallWorkRecord) Type() SessionType { return SessionBallWork }

type BallWorkHighlights struct {
	BallTouches        *float64 `json:"ball_touches"`
	TotalDistanceMiles *float64 `json:"total_distance_miles"`
	SprintDistanceYds  *float64 `json:"sprint_distance_yards"`
	AcclDecl           *float64 `json:"accl_decl"`
	KickingPowerMPH    *float64 `json:"kicking_power_mph"`
}

type BallWorkTwoFooted struct {
	LeftFootTouches          *float64 `json:"left_foot_touches"`
	LeftFootTouchesPct       *float64 `json:"left_foot_touches_percentage"`
	RightFootTouches         *float64 `json:"right_foot_touches"`
	RightFootTouchesPct      *float64 `json:"right_foot_touches_percentage"`
	LeftFootReleases         *float64 `json:"left_foot_releases"`
	LeftFootReleasesPct      *float64 `json:"left_foot_releases_percentage"`
	RightFootReleases        *float64 `json:"right_foot_releases"`
	RightFootReleasesPct     *float64 `json:"right_foot_releases_percentage"`
	LeftFootKickingPowerMPH  *float64 `json:"left_foot_kicking_power_mph"`
	RightFootKickingPowerMPH *float64 `json:"right_foot_kicking_power_mph"`
}

type SpeedAgilityRecord struct {
	Session    TrainingSession        `json:"session"`
	Highlights SpeedAgilityHighlights `json:"highlights"`
	Speed      Speed                  `json:"speed"`
	Agility    TurnAgility            `json:"agility"`
}

func (*SpeedAgilityRecord) Type() SessionType { return SessionSpeedAgility }

type SpeedAgilityHighlights struct {
	TotalDistanceMiles *float64 `json:"total_distance_miles"`
	SprintDistanceYds  *float64 `json:"sprint_distance_yards"`
	AcclDecl           *float64 `json:"accl_decl"`
}
