package usecase

import (
	"strings"

	"github.com/weljim73-spec/soccertrainerocr/internal/core/domain"
	"github.com/weljim73-spec/soccertrainerocr/internal/core/normalize"
)

const classifyPrompt = `Look at this soccer training app screenshot and classify the session type.
Answer with exactly one of these labels:
- match
- ball work
- speed and agility

If you are not sure, prefix your answer with "uncertain:".
Answer with the label only, nothing else.`

const matchTextPrompt = `Extract all data from this soccer training/match session screenshot. Include ALL fields you can find:

Session: date, time of day, duration, opponent team name
Overview: position played, goals, assists, team scores
Skills: two-footed score, dribbling score, first touch score, agility score, speed score, power score
Highlights: work rate (yd/min), ball possessions, total distance (mi), sprint distance (yd), top speed (mph), kicking power (mph)
Two-Footed: left foot touches (#, %), right foot touches (#, %), left foot releases (#, %), right foot releases (#, %), left foot receives (#, %), right foot receives (#, %), left kicking power (mph), right kicking power (mph)
Dribbling: distance with ball (yd), top speed with ball (mph), intense turns with ball
First Touch: one-touch possessions, multiple-touch possessions, total duration (sec), ball release footzone (laces, inside, other)
Agility: left turns, back turns, right turns, intense turns, average turn entry speed (mph), average turn exit speed (mph)
Speed: top speed (mph), number of sprints
Power: first step accelerations, intense accelerations

Extract ALL text, labels, numbers, and values exactly as shown.`

const ballWorkTextPrompt = `Extract all data from this soccer ball work session screenshot. Include ALL fields:

Session: date, time, duration, training type, intensity
Highlights: ball touches, total distance (mi), sprint distance (yd), accl/decl, kicking power (mph)
Two-Footed: left/right touches (#, %), left/right releases (#, %), left/right kicking power (mph)
Speed: top speed (mph), sprints
Agility: left/back/right/intense turns, avg turn entry/exit speeds (mph)

Extract ALL text exactly as shown.`

const speedAgilityTextPrompt = `Extract all data from this speed & agility session screenshot. Include ALL fields:

Session: date, time, duration, training type, intensity
Highlights: total distance (mi), sprint distance (yd), accl/decl
Speed: top speed (mph), number of sprints
Agility: left/back/right/intense turns, avg turn entry/exit speeds (mph)

Extract ALL text exactly as shown.`

// textPrompt is the legacy free-text instruction. The downstream regex
// battery parses whatever the model transcribes.
func textPrompt(sessionType domain.SessionType) string {
	switch sessionType {
	case domain.SessionBallWork:
		return ballWorkTextPrompt
	case domain.SessionSpeedAgility:
		return speedAgilityTextPrompt
	default:
		return matchTextPrompt
	}
}

// jsonPrompt enumerates the exact flat keys the normalizer binds, so the
// instruction and the binding tables cannot drift apart.
func jsonPrompt(sessionType domain.SessionType) string {
	var b strings.Builder
	b.WriteString("Extract all data from these ")
	b.WriteString(sessionLabel(sessionType))
	b.WriteString(" screenshots.\n")
	b.WriteString("Respond with a single JSON object and nothing else. Use exactly these keys:\n\n")
	for _, key := range normalize.FlatKeys(sessionType) {
		b.WriteString("- ")
		b.WriteString(key)
		b.WriteString("\n")
	}
	b.WriteString("\nUse numbers for numeric values, strings for names and labels, ")
	b.WriteString("and null for anything the screenshots do not show. ")
	b.WriteString("Dates as \"Month D, YYYY\" or YYYY-MM-DD.")
	return b.String()
}

func sessionLabel(sessionType domain.SessionType) string {
	switch sessionType {
	case domain.SessionBallWork:
		return "soccer ball work session"
	case domain.SessionSpeedAgility:
		return "speed & agility session"
	default:
		return "soccer match session"
	}
}
