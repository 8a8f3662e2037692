package game

import (
	"fmt"
	"time"

	"chaingang-server/pkg/deck"
	"chaingang-server/pkg/playable"
	"chaingang-server/pkg/poker"
)

// SeatState is the public view of a seat
type SeatState struct {
	Profile

	Chips       int          `json:"chips"`
	Bet         int          `json:"bet"`
	Folded      bool         `json:"folded"`
	Acted       bool         `json:"acted"`
	Ready       bool         `json:"ready"`
	DrewCards   bool         `json:"drewCards"`
	Stayed      bool         `json:"stayed"`
	Busted      bool         `json:"busted"`
	SittingOut  bool         `json:"sittingOut"`
	Connected   bool         `json:"connected"`
	Declaration Declaration  `json:"declaration,omitempty"`
	CardCount   int          `json:"cardCount"`
	UpCards     []*deck.Card `json:"upCards,omitempty"`
	IsMe        bool         `json:"isMe"`
	IsDealer    bool         `json:"isDealer"`
}

// BestHand is the preview of the best hands the seat can make with the visible board
type BestHand struct {
	HighName  string       `json:"highName"`
	HighCards []*deck.Card `json:"highCards"`
	LowCards  []*deck.Card `json:"lowCards"`
	HasLow    bool         `json:"hasLow"`
}

type cachedBestHand struct {
	key  string
	hand *BestHand
}

// PlayerState is the snapshot sent to a single seat
type PlayerState struct {
	RoomID       string                 `json:"roomId"`
	IsPrivate    bool                   `json:"isPrivate"`
	Variant      string                 `json:"variant"`
	VariantName  string                 `json:"variantName"`
	Phase        Phase                  `json:"phase"`
	HandNumber   int                    `json:"handNumber"`
	Pot          int                    `json:"pot"`
	CurrentBet   int                    `json:"currentBet"`
	Ante         int                    `json:"ante"`
	ToCall       int                    `json:"toCall"`
	RaiseCap     int                    `json:"raiseCap"`
	DrawLimit    int                    `json:"drawLimit"`
	Declarations []Declaration          `json:"declarations,omitempty"`
	Deadline     *time.Time             `json:"deadline,omitempty"`
	Columns      []poker.Column         `json:"cols,omitempty"`
	Log          []*playable.LogMessage `json:"log"`

	MyHand         deck.Hand         `json:"myHand,omitempty"`
	MyBet          int               `json:"myBet"`
	MyDeclaration  Declaration       `json:"myDecl,omitempty"`
	MyFolded       bool              `json:"myFolded"`
	MySelectedDraw []int             `json:"mySelectedDraw,omitempty"`
	MyBestHand     *BestHand         `json:"myBestHand,omitempty"`
	MyPoints       *poker.PointTotal `json:"myPoints,omitempty"`
	MyPointsLabel  string            `json:"myPointsLabel,omitempty"`
	MyBadugi       string            `json:"myBadugi,omitempty"`

	Seats       []*SeatState `json:"players"`
	CurrentTurn string       `json:"currentTurn,omitempty"`
	Dealer      string       `json:"dealer,omitempty"`
	Result      *Result      `json:"result,omitempty"`
}

// State returns the snapshot for the player
// An unknown player ID returns the spectator view.
func (r *Room) State(playerID string) *PlayerState {
	ps := &PlayerState{
		RoomID:       r.ID,
		IsPrivate:    r.Private,
		Variant:      r.variant.Tag(),
		VariantName:  r.variant.Name(),
		Phase:        r.phase,
		HandNumber:   r.hand,
		Pot:          r.pot,
		CurrentBet:   r.currentBet,
		Ante:         r.opts.Ante,
		DrawLimit:    r.variant.drawLimit(r.phase),
		Declarations: r.variant.declarations(),
		Columns:      r.visibleColumns(),
		Log:          r.visibleLog(),
		Seats:        make([]*SeatState, len(r.seats)),
		Result:       r.result,
	}

	if r.phase.IsBet() {
		ps.RaiseCap = r.raiseCap()
	}

	if !r.deadlineAt.IsZero() {
		deadline := r.deadlineAt
		ps.Deadline = &deadline
	}

	if t := r.Turn(); t != nil {
		ps.CurrentTurn = t.ID
	}

	if r.dealer >= 0 && r.dealer < len(r.seats) {
		ps.Dealer = r.seats[r.dealer].ID
	}

	for i, s := range r.seats {
		ps.Seats[i] = &SeatState{
			Profile:     s.Profile,
			Chips:       s.Chips,
			Bet:         s.Bet,
			Folded:      s.Folded,
			Acted:       s.Acted,
			Ready:       s.Ready,
			DrewCards:   s.DrewCards,
			Stayed:      s.Stayed,
			Busted:      s.Busted,
			SittingOut:  s.SittingOut,
			Connected:   !s.Left,
			Declaration: s.Declaration,
			CardCount:   len(s.Hand),
			IsMe:        s.ID == playerID,
			IsDealer:    i == r.dealer,
			UpCards:     r.variant.upCards(s),
		}
	}

	s, _ := r.seatByID(playerID)
	if s == nil {
		return ps
	}

	ps.MyHand = s.Hand
	ps.MyBet = s.Bet
	ps.MyDeclaration = s.Declaration
	ps.MyFolded = s.Folded
	ps.MySelectedDraw = s.SelectedDraw
	if r.phase.IsBet() {
		ps.ToCall = r.toCall(s)
	}

	if len(s.Hand) == 0 {
		return ps
	}

	r.variant.preview(r, s, ps)
	return ps
}

// bestHand previews the seat's best hands against the columns whose single is showing
func (r *Room) bestHand(s *Seat) *BestHand {
	cols := make([]poker.Column, 0, columnCount)
	for _, col := range r.visibleColumns() {
		if col.Pair[0] != nil && col.Single != nil {
			cols = append(cols, col)
		}
	}

	if len(cols) == 0 {
		return nil
	}

	key := fmt.Sprintf("%d|%d|%s", r.hand, len(cols), deck.CardsToString(s.Hand))
	if cached, ok := r.bestHands[s.ID]; ok && cached.key == key {
		return cached.hand
	}

	res := poker.BestColumnHand(s.Hand, cols)
	var bh *BestHand
	if res.High.Valid {
		bh = &BestHand{
			HighName:  res.High.Name(),
			HighCards: res.HighCards,
			LowCards:  res.LowCards,
			HasLow:    res.HasLow(),
		}
	}

	r.bestHands[s.ID] = cachedBestHand{key: key, hand: bh}
	return bh
}

// SpectatorState returns the reduced view for someone without a seat
func (r *Room) SpectatorState() *PlayerState {
	return r.State("")
}

// Response wraps the player's snapshot for the wire
func (r *Room) Response(playerID string) *playable.Response {
	return &playable.Response{
		Key:  "gameState",
		Data: r.State(playerID),
	}
}
