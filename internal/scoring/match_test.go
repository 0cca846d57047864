package scoring

import (
	"math/rand"
	"reflect"
	"testing"
)

func scorePoints(m *Match, id PlayerID, n int) {
	for range n {
		m.IncrementScore(id)
	}
}

func checkInvariants(t *testing.T, m Match) {
	t.Helper()
	if m.CurrentSet != len(m.History)+1 {
		t.Fatalf("current set %d does not follow history of %d sets", m.CurrentSet, len(m.History))
	}
	if m.Player1.Score < 0 || m.Player2.Score < 0 {
		t.Fatalf("negative score %d-%d", m.Player1.Score, m.Player2.Score)
	}
	decided := m.Player1.SetsWon >= SetsToWin || m.Player2.SetsWon >= SetsToWin
	if m.Over != decided {
		t.Fatalf("match over is %v with sets %d-%d", m.Over, m.Player1.SetsWon, m.Player2.SetsWon)
	}
	if !m.ScoreLimit.Valid() {
		t.Fatalf("invalid score limit %d", m.ScoreLimit)
	}
}

func TestNewMatch(t *testing.T) {
	m := NewMatch()
	if m.Player1.Name != "Player 1" || m.Player2.Name != "Player 2" {
		t.Fatal("default player names are wrong")
	}
	if m.ScoreLimit != 21 || m.CurrentSet != 1 || m.Over || len(m.History) != 0 {
		t.Fatal("new match is not in its initial state")
	}
	checkInvariants(t, m)
}

func TestStraightSet(t *testing.T) {
	m := NewMatch()
	scorePoints(&m, Player1, 20)
	if len(m.History) != 0 || m.Player1.Score != 20 {
		t.Fatal("set completed below the score limit")
	}
	m.IncrementScore(Player1)

	if m.Player1.SetsWon != 1 || m.Player2.SetsWon != 0 {
		t.Fatalf("sets won are %d-%d, want 1-0", m.Player1.SetsWon, m.Player2.SetsWon)
	}
	want := []CompletedSet{{Player1Score: 21, Player2Score: 0, Winner: Player1}}
	if !reflect.DeepEqual(m.History, want) {
		t.Fatalf("history is %+v, want %+v", m.History, want)
	}
	if m.Player1.Score != 0 || m.Player2.Score != 0 {
		t.Fatal("scores were not reset after the set")
	}
	if m.CurrentSet != 2 {
		t.Fatalf("current set is %d, want 2", m.CurrentSet)
	}
	checkInvariants(t, m)
}

func TestDeuce(t *testing.T) {
	m := NewMatch()
	for range 20 {
		m.IncrementScore(Player1)
		m.IncrementScore(Player2)
	}
	if m.Player1.Score != 20 || m.Player2.Score != 20 {
		t.Fatal("scores did not reach 20-20")
	}

	m.IncrementScore(Player1)
	if len(m.History) != 0 {
		t.Fatal("set completed at 21-20 with a one point margin")
	}
	m.IncrementScore(Player1)

	want := []CompletedSet{{Player1Score: 22, Player2Score: 20, Winner: Player1}}
	if !reflect.DeepEqual(m.History, want) {
		t.Fatalf("history is %+v, want %+v", m.History, want)
	}
	checkInvariants(t, m)
}

func TestNoScoreCap(t *testing.T) {
	m := NewMatch()
	for range 35 {
		m.IncrementScore(Player1)
		m.IncrementScore(Player2)
	}
	if len(m.History) != 0 || m.Player1.Score != 35 {
		t.Fatal("a tie above the limit resolved without a two point lead")
	}
	m.IncrementScore(Player2)
	m.IncrementScore(Player2)
	want := []CompletedSet{{Player1Score: 35, Player2Score: 37, Winner: Player2}}
	if !reflect.DeepEqual(m.History, want) {
		t.Fatalf("history is %+v, want %+v", m.History, want)
	}
}

func TestMatchWin(t *testing.T) {
	m := NewMatch()
	scorePoints(&m, Player1, 21)
	scorePoints(&m, Player2, 21)
	if m.Over {
		t.Fatal("match over after one set each")
	}
	if m.CurrentSet != 3 {
		t.Fatalf("current set is %d, want 3", m.CurrentSet)
	}
	scorePoints(&m, Player2, 5)
	scorePoints(&m, Player1, 21)

	if !m.Over {
		t.Fatal("match not over after two sets won")
	}
	winner, ok := m.Winner()
	if !ok || winner != Player1 {
		t.Fatalf("winner is %v, want player 1", winner)
	}
	if len(m.History) != 3 {
		t.Fatalf("deciding set missing from history: %+v", m.History)
	}
	last := m.History[2]
	if last.Player1Score != 21 || last.Player2Score != 5 || last.Winner != Player1 {
		t.Fatalf("deciding set recorded as %+v", last)
	}
	checkInvariants(t, m)
}

func TestTwoStraightSetsEndMatch(t *testing.T) {
	m := NewMatch()
	m.SetScoreLimit(Limit15)
	scorePoints(&m, Player2, 15)
	scorePoints(&m, Player2, 15)
	if !m.Over || m.CurrentSet != 3 {
		t.Fatal("match did not end after two straight sets")
	}
	if winner, _ := m.Winner(); winner != Player2 {
		t.Fatal("wrong winner after two straight sets")
	}
}

func TestNoOpsAfterMatchOver(t *testing.T) {
	m := NewMatch()
	scorePoints(&m, Player1, 42)
	if !m.Over {
		t.Fatal("match not over")
	}
	before := m.Clone()

	m.IncrementScore(Player1)
	m.IncrementScore(Player2)
	m.DecrementScore(Player1)
	if !reflect.DeepEqual(m, before) {
		t.Fatal("score events changed a finished match")
	}

	m.RenamePlayer(Player2, "Lin")
	if m.Player2.Name != "Lin" {
		t.Fatal("rename was refused after match over")
	}
}

func TestDecrement(t *testing.T) {
	m := NewMatch()
	before := m.Clone()
	m.DecrementScore(Player1)
	if !reflect.DeepEqual(m, before) {
		t.Fatal("decrement at zero changed state")
	}

	scorePoints(&m, Player2, 3)
	m.DecrementScore(Player2)
	if m.Player2.Score != 2 {
		t.Fatalf("score is %d after decrement, want 2", m.Player2.Score)
	}
}

func TestDecrementKeepsHistory(t *testing.T) {
	m := NewMatch()
	scorePoints(&m, Player1, 21)
	m.DecrementScore(Player1)
	if len(m.History) != 1 || m.Player1.SetsWon != 1 || m.Player1.Score != 0 {
		t.Fatal("decrement undid a recorded set")
	}
}

func TestDecrementDoesNotCompleteSet(t *testing.T) {
	m := NewMatch()
	for range 20 {
		m.IncrementScore(Player1)
		m.IncrementScore(Player2)
	}
	m.IncrementScore(Player1)
	m.DecrementScore(Player2)
	if len(m.History) != 0 {
		t.Fatal("decrement completed a set")
	}
	if m.Player1.Score != 21 || m.Player2.Score != 19 {
		t.Fatalf("scores are %d-%d, want 21-19", m.Player1.Score, m.Player2.Score)
	}
	m.IncrementScore(Player1)
	if len(m.History) != 1 || m.History[0].Player1Score != 22 || m.History[0].Player2Score != 19 {
		t.Fatalf("history is %+v after the next point", m.History)
	}
}

func TestScoreLimitChange(t *testing.T) {
	m := NewMatch()
	scorePoints(&m, Player1, 21)
	scorePoints(&m, Player1, 10)
	scorePoints(&m, Player2, 8)

	m.SetScoreLimit(Limit15)
	if m.ScoreLimit != 15 {
		t.Fatal("score limit was not updated")
	}
	if m.Player1.Score != 0 || m.Player2.Score != 0 {
		t.Fatal("scores were not reset by the limit change")
	}
	if m.Player1.SetsWon != 1 || len(m.History) != 1 || m.CurrentSet != 2 {
		t.Fatal("limit change touched sets won or history")
	}

	scorePoints(&m, Player2, 15)
	if m.Player2.SetsWon != 1 {
		t.Fatal("set did not complete at the new limit")
	}
	checkInvariants(t, m)
}

func TestInvalidInputsAreIgnored(t *testing.T) {
	m := NewMatch()
	scorePoints(&m, Player1, 4)
	before := m.Clone()

	m.SetScoreLimit(11)
	m.IncrementScore(3)
	m.DecrementScore(0)
	m.RenamePlayer(7, "nobody")
	if !reflect.DeepEqual(m, before) {
		t.Fatal("out of range input changed state")
	}
}

func TestRename(t *testing.T) {
	m := NewMatch()
	m.RenamePlayer(Player1, "")
	m.RenamePlayer(Player2, "Axelsen")
	if m.Player1.Name != "" || m.Player2.Name != "Axelsen" {
		t.Fatal("names were not updated")
	}
}

func TestReset(t *testing.T) {
	m := NewMatch()
	m.RenamePlayer(Player1, "Momota")
	m.SetScoreLimit(Limit15)
	scorePoints(&m, Player1, 15)
	scorePoints(&m, Player2, 15)
	scorePoints(&m, Player2, 7)

	m.Reset()
	if !reflect.DeepEqual(m, NewMatch()) {
		t.Fatalf("reset left %+v", m)
	}

	scorePoints(&m, Player1, 42)
	m.Reset()
	if m.Over {
		t.Fatal("reset did not reopen a finished match")
	}
}

func TestRandomPlay(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	m := NewMatch()
	increments := map[PlayerID]int{}
	for i := 0; i < 5000; i++ {
		id := PlayerID(1 + rng.Intn(2))
		switch rng.Intn(10) {
		case 0:
			m.DecrementScore(id)
		case 1:
			if rng.Intn(20) == 0 {
				m.SetScoreLimit(ScoreLimits()[rng.Intn(2)])
				increments = map[PlayerID]int{}
			}
		case 2:
			if rng.Intn(50) == 0 {
				m.Reset()
				increments = map[PlayerID]int{}
			}
		default:
			wasOver := m.Over
			sets := len(m.History)
			m.IncrementScore(id)
			if !wasOver {
				increments[id]++
			}
			if len(m.History) != sets {
				increments = map[PlayerID]int{}
			}
		}
		checkInvariants(t, m)
		if m.Player1.Score > increments[Player1] || m.Player2.Score > increments[Player2] {
			t.Fatalf("score %d-%d exceeds points scored", m.Player1.Score, m.Player2.Score)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    PlayerID
		wantErr bool
	}{
		{"1", Player1, false},
		{" 2 ", Player2, false},
		{"0", 0, true},
		{"3", 0, true},
		{"one", 0, true},
	}
	for _, tt := range tests {
		got, err := ParsePlayerID(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Fatalf("ParsePlayerID(%q) = %v, %v", tt.in, got, err)
		}
	}

	if limit, err := ParseScoreLimit("15"); err != nil || limit != Limit15 {
		t.Fatal("15 did not parse")
	}
	if _, err := ParseScoreLimit("11"); err != ErrInvalidScoreLimit {
		t.Fatal("11 parsed as a score limit")
	}
}
