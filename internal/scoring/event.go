package scoring

type EventKind string

const (
	EventRename     EventKind = "rename"
	EventIncrement  EventKind = "increment"
	EventDecrement  EventKind = "decrement"
	EventScoreLimit EventKind = "score_limit"
	EventReset      EventKind = "reset"
)

// Event is one user intent forwarded by the presentation layer.
type Event struct {
	Kind   EventKind  `json:"kind"`
	Player PlayerID   `json:"player,omitempty"`
	Name   string     `json:"name,omitempty"`
	Limit  ScoreLimit `json:"limit,omitempty"`
}

func Rename(id PlayerID, name string) Event {
	return Event{Kind: EventRename, Player: id, Name: name}
}

func Increment(id PlayerID) Event {
	return Event{Kind: EventIncrement, Player: id}
}

func Decrement(id PlayerID) Event {
	return Event{Kind: EventDecrement, Player: id}
}

func ChangeScoreLimit(limit ScoreLimit) Event {
	return Event{Kind: EventScoreLimit, Limit: limit}
}

func ResetMatch() Event {
	return Event{Kind: EventReset}
}

// Apply mutates m in place. Unknown kinds are ignored.
func (m *Match) Apply(e Event) {
	switch e.Kind {
	case EventRename:
		m.RenamePlayer(e.Player, e.Name)
	case EventIncrement:
		m.IncrementScore(e.Player)
	case EventDecrement:
		m.DecrementScore(e.Player)
	case EventScoreLimit:
		m.SetScoreLimit(e.Limit)
	case EventReset:
		m.Reset()
	}
}

// Next is the pure form of Apply: m is left untouched.
func Next(m Match, e Event) Match {
	next := m.Clone()
	next.Apply(e)
	return next
}
