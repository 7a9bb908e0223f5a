package crypto

import "unicode/utf16"

// Level is a qualitative strength band.
type Level string

const (
	LevelNone       Level = "None"
	LevelWeak       Level = "Weak"
	LevelFair       Level = "Fair"
	LevelGood       Level = "Good"
	LevelStrong     Level = "Strong"
	LevelVeryStrong Level = "Very Strong"

	// MaxScore caps every strength score.
	MaxScore = 100
)

// Strength is the heuristic strength report for a single password.
// Color is an opaque display token for renderers.
type Strength struct {
	Score    int
	Level    Level
	Color    string
	Feedback string
}

// band maps the lower score bound of a level to its display attributes.
type band struct {
	min      int
	level    Level
	color    string
	feedback string
}

// bands are ordered from the highest lower bound down.
var bands = []band{
	{85, LevelVeryStrong, "#18181b", "Excellent password!"},
	{65, LevelStrong, "#3f3f46", "Nice and strong!"},
	{45, LevelGood, "#52525b", "Getting stronger!"},
	{25, LevelFair, "#71717a", "Add more length or character types"},
	{0, LevelWeak, "#a1a1aa", "Too short or limited variety"},
}

var emptyStrength = Strength{
	Score:    0,
	Level:    LevelNone,
	Color:    "#a1a1aa",
	Feedback: "Choose options and generate",
}

// varietyPoints is indexed by the number of character classes present.
// Tiers are not cumulative.
var varietyPoints = [5]int{0, 5, 15, 25, 40}

// EvaluateStrength scores password from its length and character variety.
// It is a heuristic, not an entropy estimate.
func EvaluateStrength(password string) Strength {
	if password == "" {
		return emptyStrength
	}

	n := CharLength(password)
	score := lengthPoints(n) + varietyPoints[classCount(password)] + extraLengthPoints(n)
	score = min(score, MaxScore)

	for _, b := range bands {
		if score >= b.min {
			return Strength{Score: score, Level: b.level, Color: b.color, Feedback: b.feedback}
		}
	}
	// unreachable: the last band starts at 0
	return emptyStrength
}

// CharLength counts s in UTF-16 code units, the unit browsers report as a
// string's length. Characters outside the Basic Multilingual Plane count twice.
func CharLength(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

func lengthPoints(n int) int {
	points := 0
	if n >= 8 {
		points += 15
	}
	if n >= 12 {
		points += 10
	}
	if n >= 16 {
		points += 10
	}
	if n >= 20 {
		points += 8
	}
	if n >= 24 {
		points += 7
	}
	return points
}

func extraLengthPoints(n int) int {
	points := 0
	if n >= 28 {
		points += 5
	}
	if n >= 32 {
		points += 5
	}
	return points
}

// classCount counts which of lowercase, uppercase, digit and other
// characters appear in s. Anything outside [a-zA-Z0-9] counts as other.
func classCount(s string) int {
	var hasLower, hasUpper, hasDigit, hasOther bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasOther = true
		}
	}

	count := 0
	for _, ok := range []bool{hasLower, hasUpper, hasDigit, hasOther} {
		if ok {
			count++
		}
	}
	return count
}
