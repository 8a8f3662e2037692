package ledger

import (
	"context"
	"sync"
)

// Memory is a Ledger that lives for the lifetime of the process
type Memory struct {
	startingChips int

	mu       sync.Mutex
	accounts map[string]*Account
}

// NewMemory returns an empty in-memory ledger
func NewMemory(startingChips int) *Memory {
	return &Memory{
		startingChips: startingChips,
		accounts:      make(map[string]*Account),
	}
}

func (m *Memory) account(playerID string) *Account {
	acct, ok := m.accounts[playerID]
	if !ok {
		acct = &Account{PlayerID: playerID, Balance: m.startingChips}
		m.accounts[playerID] = acct
	}

	return acct
}

// GetBalance returns the player's balance
func (m *Memory) GetBalance(_ context.Context, playerID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.account(playerID).Balance, nil
}

// Credit adds amount to the balance, amount may be negative
func (m *Memory) Credit(_ context.Context, playerID string, amount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.account(playerID).Balance += amount
	return nil
}

// RecordWin increments the win counter
func (m *Memory) RecordWin(_ context.Context, playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.account(playerID).Wins++
	return nil
}

// RecordLoss increments the loss counter
func (m *Memory) RecordLoss(_ context.Context, playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.account(playerID).Losses++
	return nil
}

// GetAccount returns a copy of the player's record
func (m *Memory) GetAccount(_ context.Context, playerID string) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acct, ok := m.accounts[playerID]
	if !ok {
		return nil, ErrAccountNotFound
	}

	cp := *acct
	return &cp, nil
}
