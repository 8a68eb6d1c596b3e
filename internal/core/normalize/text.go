package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/weljim73-spec/soccertrainerocr/internal/core/domain"
)

// Shared label:value patterns. The OCR text is lower-cased before matching,
// but every pattern stays case-insensitive so the helpers are safe to call
// on raw text too.
var (
	reDurationMin    = regexp.MustCompile(`(?i)(\d+)\s*min`)
	reTrainingType   = regexp.MustCompile(`(?i)(technical|physical|tactical)`)
	reIntensity      = regexp.MustCompile(`(?i)(low|moderate|high)`)
	reTotalDistance  = regexp.MustCompile(`(?i)total\s*distance[:\s]*([\d.]+)`)
	reSprintDistance = regexp.MustCompile(`(?i)sprint\s*distance[:\s]*([\d.]+)`)
	reAcclDecl       = regexp.MustCompile(`(?i)accl\s*/\s*decl[:\s]*(\d+)`)
	reKickingPower   = regexp.MustCompile(`(?i)kicking\s*power[:\s]*([\d.]+)`)
	reTopSpeed       = regexp.MustCompile(`(?i)top\s*speed[:\s]*([\d.]+)`)
	reSprints        = regexp.MustCompile(`(?i)sprints[:\s]*(\d+)`)

	reLeftTurns    = regexp.MustCompile(`(?i)left\s*turns[:\s]*(\d+)`)
	reBackTurns    = regexp.MustCompile(`(?i)back\s*turns[:\s]*(\d+)`)
	reRightTurns   = regexp.MustCompile(`(?i)right\s*turns[:\s]*(\d+)`)
	reIntenseTurns = regexp.MustCompile(`(?i)intense\s*turns[:\s]*(\d+)`)
	reEntrySpeed   = regexp.MustCompile(`(?i)(?:average\s*)?turn\s*entry\s*speed[:\s]*([\d.]+)`)
	reExitSpeed    = regexp.MustCompile(`(?i)(?:average\s*)?turn\s*exit\s*speed[:\s]*([\d.]+)`)
)

// Two-footed side/action patterns. The count pattern deliberately tolerates
// anything between the action word and the value; the percentage pattern
// requires the parenthesized form and is always tried first, with a loose
// "<n>% ... side ... action" fallback for screenshots that split the label
// across lines.
func footCount(side, action string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + side + `\s*foot[^:]*` + action + `[^:]*[:\s]*(\d+)`)
}

func footPct(side, action string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + side + `\s*foot[^:]*` + action + `[^:]*\((\d+)%\)`)
}

func footPctLoose(side, action string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(\d+)%.*?` + side + `.*?` + action)
}

var (
	reLeftTouches      = footCount("left", "touch")
	reLeftTouchesPct   = footPct("left", "touch")
	reLeftTouchesPctF  = footPctLoose("left", "touch")
	reRightTouches     = footCount("right", "touch")
	reRightTouchesPct  = footPct("right", "touch")
	reRightTouchesPctF = footPctLoose("right", "touch")

	reLeftReleases      = footCount("left", "release")
	reLeftReleasesPct   = footPct("left", "release")
	reLeftReleasesPctF  = footPctLoose("left", "release")
	reRightReleases     = footCount("right", "release")
	reRightReleasesPct  = footPct("right", "release")
	reRightReleasesPctF = footPctLoose("right", "release")

	reLeftReceives      = footCount("left", "receive")
	reLeftReceivesPct   = footPct("left", "receive")
	reLeftReceivesPctF  = footPctLoose("left", "receive")
	reRightReceives     = footCount("right", "receive")
	reRightReceivesPct  = footPct("right", "receive")
	reRightReceivesPctF = footPctLoose("right", "receive")

	reLeftFootKicking  = regexp.MustCompile(`(?i)left\s*foot\s*kicking\s*power[:\s]*([\d.]+)`)
	reRightFootKicking = regexp.MustCompile(`(?i)right\s*foot\s*kicking\s*power[:\s]*([\d.]+)`)
)

// Match-only patterns. The screenshots show most overview stats as
// "label value" without a colon, and the agility turn counts as a bare
// number triplet above the three labels, hence the positional captures.
var (
	rePosition      = regexp.MustCompile(`(?i)([a-z]{1,3})\s+position`)
	reGoals         = regexp.MustCompile(`(?i)goals\s+(\d+)`)
	reAssists       = regexp.MustCompile(`(?i)assists\s+(\d+)`)
	reScorePair     = regexp.MustCompile(`(\d+)\s*:\s*(\d+)`)
	reOpponentName  = regexp.MustCompile(`\d+\s*:\s*\d+\s+(.+?)(?:\n|$)`)
	reBallTouches   = regexp.MustCompile(`(?i)ball\s*touches[:\s]*(\d+)`)
	reTwoFootedSkl  = regexp.MustCompile(`(?i)two-?footed\s+(\d+)`)
	reDribblingSkl  = regexp.MustCompile(`(?i)dribbling\s+(\d+)`)
	reFirstTouchSkl = regexp.MustCompile(`(?i)first\s+touch\s+(\d+)`)
	reAgilitySkl    = regexp.MustCompile(`(?i)agility\s+(\d+)`)
	reSpeedSkl      = regexp.MustCompile(`(?i)speed\s+(\d+)`)
	rePowerSkl      = regexp.MustCompile(`(?i)power\s+(\d+)`)

	reWorkRate        = regexp.MustCompile(`(?i)work\s+rate\s+([\d.]+)`)
	reBallPossessions = regexp.MustCompile(`(?i)ball\s+possessions\s+(\d+)`)
	reTotalDistanceM  = regexp.MustCompile(`(?i)total\s+distance\s+([\d.]+)`)
	reSprintDistanceM = regexp.MustCompile(`(?i)sprint\s+distance\s+([\d.]+)`)
	reTopSpeedM       = regexp.MustCompile(`(?i)top\s+speed\s+([\d.]+)`)
	reKickingPowerM   = regexp.MustCompile(`(?i)kicking\s+power\s+([\d.]+)`)

	reDistanceWithBall = regexp.MustCompile(`(?i)distance\s+with\s+ball[:\s]*(\d+\.?\d*)\s*yd`)
	reTopSpeedWithBall = regexp.MustCompile(`(?i)top\s+speed\s+with\s+ball[:\s]*(\d+\.?\d*)\s*mph`)
	reIntenseWithBall  = regexp.MustCompile(`(?i)intense\s+turns\s+with\s+ball[:\s]*(\d+)`)

	reOneTouch      = regexp.MustCompile(`(?i)one[- ]touch[:\s]*(\d+)`)
	reMultipleTouch = regexp.MustCompile(`(?i)multiple[- ]touch[:\s]*(\d+)`)
	reTotalDuration = regexp.MustCompile(`(?i)total\s+duration[:\s]*(\d+\.?\d*)\s*s`)
	reLaces         = regexp.MustCompile(`(?i)laces[:\s]*(\d+)`)
	reInside        = regexp.MustCompile(`(?i)inside[:\s]*(\d+)`)
	reOtherFootzone = regexp.MustCompile(`(?i)other[:\s]*(\d+)`)

	// Turn counts appear as "12 4 9" stacked above "left turns back turns
	// right turns"; each positional pattern captures one of the triplet.
	reLeftTurnsM  = regexp.MustCompile(`(?i)(\d+)[^\d]*\d+[^\d]*\d+[^\d]*left\s+turns?[^\d]*back\s+turns?[^\d]*right\s+turns?`)
	reBackTurnsM  = regexp.MustCompile(`(?i)\d+[^\d]*(\d+)[^\d]*\d+[^\d]*left\s+turns?[^\d]*back\s+turns?[^\d]*right\s+turns?`)
	reRightTurnsM = regexp.MustCompile(`(?i)\d+[^\d]*\d+[^\d]*(\d+)[^\d]*left\s+turns?[^\d]*back\s+turns?[^\d]*right\s+turns?`)

	// The value must follow the label directly, which keeps "intense turns
	// with ball" from satisfying this pattern (RE2 has no lookahead).
	reIntenseTurnsM = regexp.MustCompile(`(?i)intense\s+turns?\s*[:\s#]*(\d+)`)
	// "tum" alternation covers a recurring OCR misread of "turn".
	reEntrySpeedM = regexp.MustCompile(`(?i)(?:average\s*)?(?:turn|tum)\s+entry\s+speed[:\s]*(\d+\.?\d*)`)
	reExitSpeedM  = regexp.MustCompile(`(?i)(?:average\s*)?(?:turn|tum)\s+exit\s+speed[:\s]*(\d+\.?\d*)`)
	reSprintsM    = regexp.MustCompile(`(?i)sprints?\s*[:\s#]*(\d+)`)

	reFirstStepAccel = regexp.MustCompile(`(?i)first[- ]step[:\s]*(\d+)`)
	reIntenseAccel   = regexp.MustCompile(`(?i)intense\s+(?:accel|acceleration)[:\s]*(\d+)`)
)

// MatchFromText extracts a match record from free OCR text.
func MatchFromText(text string) *domain.MatchRecord {
	t := strings.ToLower(text)
	r := &domain.MatchRecord{}

	r.Session.SessionName = extractMatchSessionName(t)
	r.Session.Date = ParseLongDate(t)
	r.Session.TrainingType = strPtr("Match")

	r.Overview.Position = ExtractValue(t, rePosition, nil)
	r.Overview.OpposingTeamName = extractOpponentName(t)
	r.Overview.AthleteTeamScore, r.Overview.OpposingTeamScore = extractScorePair(t)

	applyNumberRules(t, []numberRule{
		{&r.Session.DurationMinutes, []*regexp.Regexp{reDurationMin}},
		{&r.Overview.Goals, []*regexp.Regexp{reGoals}},
		{&r.Overview.Assists, []*regexp.Regexp{reAssists}},

		{&r.Skills.TwoFootedScore, []*regexp.Regexp{reTwoFootedSkl}},
		{&r.Skills.DribblingScore, []*regexp.Regexp{reDribblingSkl}},
		{&r.Skills.FirstTouchScore, []*regexp.Regexp{reFirstTouchSkl}},
		{&r.Skills.AgilityScore, []*regexp.Regexp{reAgilitySkl}},
		{&r.Skills.SpeedScore, []*regexp.Regexp{reSpeedSkl}},
		{&r.Skills.PowerScore, []*regexp.Regexp{rePowerSkl}},

		{&r.Highlights.WorkRateYdPerMin, []*regexp.Regexp{reWorkRate}},
		{&r.Highlights.BallPossessions, []*regexp.Regexp{reBallPossessions}},
		{&r.Highlights.TotalDistanceMi, []*regexp.Regexp{reTotalDistanceM, reTotalDistance}},
		{&r.Highlights.SprintDistanceYd, []*regexp.Regexp{reSprintDistanceM, reSprintDistance}},
		{&r.Highlights.TopSpeedMPH, []*regexp.Regexp{reTopSpeedM, reTopSpeed}},
		{&r.Highlights.KickingPowerMPH, []*regexp.Regexp{reKickingPowerM, reKickingPower}},

		{&r.TwoFooted.LeftFootTouchesPct, []*regexp.Regexp{reLeftTouchesPct, reLeftTouchesPctF}},
		{&r.TwoFooted.LeftFootTouches, []*regexp.Regexp{reLeftTouches}},
		{&r.TwoFooted.RightFootTouchesPct, []*regexp.Regexp{reRightTouchesPct, reRightTouchesPctF}},
		{&r.TwoFooted.RightFootTouches, []*regexp.Regexp{reRightTouches}},
		{&r.TwoFooted.LeftFootReleasesPct, []*regexp.Regexp{reLeftReleasesPct, reLeftReleasesPctF}},
		{&r.TwoFooted.LeftFootReleases, []*regexp.Regexp{reLeftReleases}},
		{&r.TwoFooted.RightFootReleasesPct, []*regexp.Regexp{reRightReleasesPct, reRightReleasesPctF}},
		{&r.TwoFooted.RightFootReleases, []*regexp.Regexp{reRightReleases}},
		{&r.TwoFooted.LeftFootReceivesPct, []*regexp.Regexp{reLeftReceivesPct, reLeftReceivesPctF}},
		{&r.TwoFooted.LeftFootReceives, []*regexp.Regexp{reLeftReceives}},
		{&r.TwoFooted.RightFootReceivesPct, []*regexp.Regexp{reRightReceivesPct, reRightReceivesPctF}},
		{&r.TwoFooted.RightFootReceives, []*regexp.Regexp{reRightReceives}},
		{&r.TwoFooted.LeftFootKickingPowerMPH, []*regexp.Regexp{reLeftFootKicking}},
		{&r.TwoFooted.RightFootKickingPowerMPH, []*regexp.Regexp{reRightFootKicking}},

		{&r.Dribbling.DistanceWithBallYd, []*regexp.Regexp{reDistanceWithBall}},
		{&r.Dribbling.TopSpeedWithBallMPH, []*regexp.Regexp{reTopSpeedWithBall}},
		{&r.Dribbling.IntenseTurnsWithBall, []*regexp.Regexp{reIntenseWithBall}},

		{&r.FirstTouch.BallPossessions.Total, []*regexp.Regexp{reBallPossessions}},
		{&r.FirstTouch.BallPossessions.OneTouch, []*regexp.Regexp{reOneTouch}},
		{&r.FirstTouch.BallPossessions.MultipleTouch, []*regexp.Regexp{reMultipleTouch}},
		{&r.FirstTouch.BallPossessions.TotalDurationSec, []*regexp.Regexp{reTotalDuration}},
		{&r.FirstTouch.BallReleaseFootzone.Laces, []*regexp.Regexp{reLaces}},
		{&r.FirstTouch.BallReleaseFootzone.Inside, []*regexp.Regexp{reInside}},
		{&r.FirstTouch.BallReleaseFootzone.Other, []*regexp.Regexp{reOtherFootzone}},

		{&r.Agility.LeftTurns, []*regexp.Regexp{reLeftTurnsM, reLeftTurns}},
		{&r.Agility.BackTurns, []*regexp.Regexp{reBackTurnsM, reBackTurns}},
		{&r.Agility.RightTurns, []*regexp.Regexp{reRightTurnsM, reRightTurns}},
		{&r.Agility.IntenseTurns, []*regexp.Regexp{reIntenseTurnsM}},
		{&r.Agility.AvgTurnEntrySpeedMPH, []*regexp.Regexp{reEntrySpeedM}},
		{&r.Agility.AvgTurnExitSpeedMPH, []*regexp.Regexp{reExitSpeedM}},

		{&r.Speed.TopSpeedMPH, []*regexp.Regexp{reTopSpeedM, reTopSpeed}},
		{&r.Speed.Sprints, []*regexp.Regexp{reSprintsM}},

		{&r.Power.FirstStepAccelerations, []*regexp.Regexp{reFirstStepAccel}},
		{&r.Power.IntenseAccelerations, []*regexp.Regexp{reIntenseAccel}},
	})

	return r
}

// BallWorkFromText extracts a ball-work record from free OCR text.
func BallWorkFromText(text string) *domain.BallWorkRecord {
	t := strings.ToLower(text)
	r := &domain.BallWorkRecord{}

	r.Session.SessionName = extractSessionName(t)
	r.Session.Date = ParseLongDate(t)
	r.Session.TrainingType = ExtractValue(t, reTrainingType, strPtr("Technical"))
	r.Session.Intensity = ExtractValue(t, reIntensity, strPtr("Moderate"))

	applyNumberRules(t, []numberRule{
		{&r.Session.DurationMinutes, []*regexp.Regexp{reDurationMin}},

		{&r.Highlights.BallTouches, []*regexp.Regexp{reBallTouches}},
		{&r.Highlights.TotalDistanceMiles, []*regexp.Regexp{reTotalDistance}},
		{&r.Highlights.SprintDistanceYds, []*regexp.Regexp{reSprintDistance}},
		{&r.Highlights.AcclDecl, []*regexp.Regexp{reAcclDecl}},
		{&r.Highlights.KickingPowerMPH, []*regexp.Regexp{reKickingPower}},

		{&r.TwoFooted.LeftFootTouchesPct, []*regexp.Regexp{reLeftTouchesPct, reLeftTouchesPctF}},
		{&r.TwoFooted.LeftFootTouches, []*regexp.Regexp{reLeftTouches}},
		{&r.TwoFooted.RightFootTouchesPct, []*regexp.Regexp{reRightTouchesPct, reRightTouchesPctF}},
		{&r.TwoFooted.RightFootTouches, []*regexp.Regexp{reRightTouches}},
		{&r.TwoFooted.LeftFootReleasesPct, []*regexp.Regexp{reLeftReleasesPct, reLeftReleasesPctF}},
		{&r.TwoFooted.LeftFootReleases, []*regexp.Regexp{reLeftReleases}},
		{&r.TwoFooted.RightFootReleasesPct, []*regexp.Regexp{reRightReleasesPct, reRightReleasesPctF}},
		{&r.TwoFooted.RightFootReleases, []*regexp.Regexp{reRightReleases}},
		{&r.TwoFooted.LeftFootKickingPowerMPH, []*regexp.Regexp{reLeftFootKicking}},
		{&r.TwoFooted.RightFootKickingPowerMPH, []*regexp.Regexp{reRightFootKicking}},

		{&r.Speed.TopSpeedMPH, []*regexp.Regexp{reTopSpeed}},
		{&r.Speed.Sprints, []*regexp.Regexp{reSprints}},

		{&r.Agility.LeftTurns, []*regexp.Regexp{reLeftTurns}},
		{&r.Agility.BackTurns, []*regexp.Regexp{reBackTurns}},
		{&r.Agility.RightTurns, []*regexp.Regexp{reRightTurns}},
		{&r.Agility.IntenseTurns, []*regexp.Regexp{reIntenseTurns}},
		{&r.Agility.AverageTurnEntrySpeedMPH, []*regexp.Regexp{reEntrySpeed}},
		{&r.Agility.AverageTurnExitSpeedMPH, []*regexp.Regexp{reExitSpeed}},
	})

	return r
}

// SpeedAgilityFromText extracts a speed & agility record from free OCR text.
func SpeedAgilityFromText(text string) *domain.SpeedAgilityRecord {
	t := strings.ToLower(text)
	r := &domain.SpeedAgilityRecord{}

	r.Session.SessionName = extractSessionName(t)
	r.Session.Date = ParseLongDate(t)
	r.Session.TrainingType = ExtractValue(t, reTrainingType, strPtr("Physical"))
	r.Session.Intensity = ExtractValue(t, reIntensity, strPtr("Moderate"))

	applyNumberRules(t, []numberRule{
		{&r.Session.DurationMinutes, []*regexp.Regexp{reDurationMin}},

		{&r.Highlights.TotalDistanceMiles, []*regexp.Regexp{reTotalDistance}},
		{&r.Highlights.SprintDistanceYds, []*regexp.Regexp{reSprintDistance}},
		{&r.Highlights.AcclDecl, []*regexp.Regexp{reAcclDecl}},

		{&r.Speed.TopSpeedMPH, []*regexp.Regexp{reTopSpeed}},
		{&r.Speed.Sprints, []*regexp.Regexp{reSprints}},

		{&r.Agility.LeftTurns, []*regexp.Regexp{reLeftTurns}},
		{&r.Agility.BackTurns, []*regexp.Regexp{reBackTurns}},
		{&r.Agility.RightTurns, []*regexp.Regexp{reRightTurns}},
		{&r.Agility.IntenseTurns, []*regexp.Regexp{reIntenseTurns}},
		{&r.Agility.AverageTurnEntrySpeedMPH, []*regexp.Regexp{reEntrySpeed}},
		{&r.Agility.AverageTurnExitSpeedMPH, []*regexp.Regexp{reExitSpeed}},
	})

	return r
}

// RecordFromText dispatches on session type; text mode is the legacy path
// used when the extraction call is configured for free-text responses.
func RecordFromText(sessionType domain.SessionType, text string) domain.SessionRecord {
	switch sessionType {
	case domain.SessionBallWork:
		return BallWorkFromText(text)
	case domain.SessionSpeedAgility:
		return SpeedAgilityFromText(text)
	default:
		return MatchFromText(text)
	}
}

// extractScorePair reads the athlete's and opponent's goals from the first
// "<int> : <int>" occurrence, the scoreboard layout of the match screen.
func extractScorePair(text string) (*float64, *float64) {
	m := reScorePair.FindStringSubmatch(text)
	if m == nil {
		return nil, nil
	}
	athlete, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil, nil
	}
	opposing, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return nil, nil
	}
	return &athlete, &opposing
}

// extractOpponentName returns the text following the score pair up to the
// end of the line.
func extractOpponentName(text string) *string {
	m := reOpponentName.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	s := strings.TrimSpace(m[1])
	return &s
}
