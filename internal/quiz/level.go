package quiz

// Level is a question difficulty level. Levels are totally ordered:
// Beginner < Intermediate < Advanced.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// Levels lists all levels in ascending order of difficulty.
var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	return l == LevelBeginner || l == LevelIntermediate || l == LevelAdvanced
}

// index returns the position of l in the difficulty order, or -1.
func (l Level) index() int {
	for i, lvl := range Levels {
		if l == lvl {
			return i
		}
	}
	return -1
}

// Next returns the level one step harder, clamped at Advanced.
func (l Level) Next() Level {
	i := l.index()
	if i < 0 || i >= len(Levels)-1 {
		return l
	}
	return Levels[i+1]
}

// Prev returns the level one step easier, clamped at Beginner.
func (l Level) Prev() Level {
	i := l.index()
	if i <= 0 {
		return l
	}
	return Levels[i-1]
}
