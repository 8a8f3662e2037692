package game

import (
	"strings"

	"chaingang-server/pkg/deck"
	"chaingang-server/pkg/playable"
)

const (
	maxLogSize = 30
	logShown   = 15
)

// logf records a message at the top of the room log
func (r *Room) logf(kind playable.LogKind, seat *Seat, format string, a ...interface{}) {
	playerID := ""
	if seat != nil {
		playerID = seat.ID
	}

	msg := playable.NewLogMessage(kind, playerID, format, a...)
	msg.Time = r.clock.Now()

	r.log = append([]*playable.LogMessage{msg}, r.log...)
	if len(r.log) > maxLogSize {
		r.log = r.log[:maxLogSize]
	}
}

// Log returns the room log, most recent first
func (r *Room) Log() []*playable.LogMessage {
	return r.log
}

func (r *Room) visibleLog() []*playable.LogMessage {
	if len(r.log) > logShown {
		return r.log[:logShown]
	}

	return r.log
}

// cardsLabel renders cards for log messages, i.e., "A♠ 5♢ 4♣"
func cardsLabel(cards []*deck.Card) string {
	labels := make([]string, 0, len(cards))
	for _, c := range cards {
		if c != nil {
			labels = append(labels, c.String())
		}
	}

	return strings.Join(labels, " ")
}
