package game

import "strings"

// Phase is the current phase of a hand
// Phases are scoped by variant, not every variant passes through every phase.
type Phase string

// Phase constants
const (
	PhaseWaiting  Phase = "waiting"
	PhaseAnte     Phase = "ante"
	PhasePairs    Phase = "pairs"
	PhaseDraw     Phase = "draw"
	PhaseDraw2    Phase = "draw2"
	PhaseDraw3    Phase = "draw3"
	PhaseBet1     Phase = "bet1"
	PhaseBet2     Phase = "bet2"
	PhaseBet3     Phase = "bet3"
	PhaseBet4     Phase = "bet4"
	PhaseBet      Phase = "bet"
	PhaseDecl     Phase = "decl"
	PhaseHit      Phase = "hit"
	PhaseShowdown Phase = "showdown"
)

// IsBet returns true for betting rounds
func (p Phase) IsBet() bool {
	switch p {
	case PhaseBet, PhaseBet1, PhaseBet2, PhaseBet3, PhaseBet4:
		return true
	}

	return false
}

// IsDraw returns true for draw rounds
func (p Phase) IsDraw() bool {
	switch p {
	case PhaseDraw, PhaseDraw2, PhaseDraw3:
		return true
	}

	return false
}

// Declaration is what a contender plays for at showdown
type Declaration string

// Declaration constants
const (
	DeclareNone  Declaration = ""
	DeclareHigh  Declaration = "high"
	DeclareLow   Declaration = "low"
	DeclareSwing Declaration = "swing"
)

// DeclarationFromString parses a declaration
func DeclarationFromString(s string) (Declaration, error) {
	switch d := Declaration(strings.ToLower(s)); d {
	case DeclareHigh, DeclareLow, DeclareSwing:
		return d, nil
	}

	return DeclareNone, ErrInvalidDeclaration
}

func (d Declaration) playsHigh() bool {
	return d == DeclareHigh || d == DeclareSwing
}

func (d Declaration) playsLow() bool {
	return d == DeclareLow || d == DeclareSwing
}

// BetKind is a betting action
type BetKind string

// BetKind constants
const (
	Fold  BetKind = "fold"
	Check BetKind = "check"
	Call  BetKind = "call"
	Raise BetKind = "raise"
)

// BetKindFromString parses a bet kind
func BetKindFromString(s string) (BetKind, error) {
	switch k := BetKind(strings.ToLower(s)); k {
	case Fold, Check, Call, Raise:
		return k, nil
	}

	return "", ErrUnknownAction
}
