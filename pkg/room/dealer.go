package room

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"chaingang-server/pkg/game"
	"chaingang-server/pkg/playable"
)

// summary is what the pit boss needs to know about a room for matchmaking
type summary struct {
	Variant string
	Private bool
	Phase   game.Phase
	Seats   int
	Humans  int
}

// Dealer owns a single room
// Every call into the room, including its timers and bots, runs on the dealer's run loop
type Dealer struct {
	ID string

	pitBoss *PitBoss
	room    *game.Room
	logger  logrus.FieldLogger

	lock       sync.RWMutex
	clients    map[string]*Client
	spectators map[*Client]bool
	summary    summary

	execInRunLoop chan func()
	stateChanged  chan struct{}
	close         chan struct{}
	closeOnce     sync.Once
}

// NewDealer creates a new dealer object for a fresh room
func NewDealer(pitBoss *PitBoss, id string, private bool, variant game.Variant) *Dealer {
	d := &Dealer{
		ID:            id,
		pitBoss:       pitBoss,
		logger:        pitBoss.logger.WithField("room", id),
		clients:       make(map[string]*Client),
		spectators:    make(map[*Client]bool),
		execInRunLoop: make(chan func(), 256),
		stateChanged:  make(chan struct{}, 1),
		close:         make(chan struct{}),
	}

	d.room = game.NewRoom(id, private, variant, pitBoss.opts, game.Dependencies{
		Logger: d.logger,
		Clock:  pitBoss.clock,
		Exec:   func(fn func()) { d.exec(fn) },
		Ledger: pitBoss.ledger,
		Notify: d.notify,
	})

	d.refreshSummary()
	return d
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

// EndShift stops the run loop and every timer of the room
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		close(d.close)
	})
}

func (d *Dealer) runLoop() {
	d.logger.Debug("creating dealer run loop")
	for {
		select {
		case <-d.stateChanged:
			d.refreshSummary()
			d.sendGameState()
		case fn := <-d.execInRunLoop:
			fn()
			d.refreshSummary()
		case <-d.close:
			d.room.Close()
			d.dropSpectators()
			d.logger.Debug("terminating dealer run loop")
			return
		}
	}
}

// exec queues fn on the run loop, it returns false once the dealer has ended its shift
func (d *Dealer) exec(fn func()) bool {
	select {
	case d.execInRunLoop <- fn:
		return true
	case <-d.close:
		return false
	}
}

// execAndWait queues fn and waits for the run loop to finish it
func (d *Dealer) execAndWait(fn func()) bool {
	done := make(chan struct{})
	if !d.exec(func() {
		fn()
		close(done)
	}) {
		return false
	}

	select {
	case <-done:
		return true
	case <-d.close:
		return false
	}
}

// notify is called by the room after every state change
// NOTE: must not block, it's called from the run loop
func (d *Dealer) notify() {
	select {
	case d.stateChanged <- struct{}{}:
	default:
	}
}

func (d *Dealer) refreshSummary() {
	s := summary{
		Variant: d.room.Variant().Tag(),
		Private: d.room.Private,
		Phase:   d.room.Phase(),
		Seats:   len(d.room.Seats()),
		Humans:  d.room.HumanCount(),
	}

	d.lock.Lock()
	d.summary = s
	d.lock.Unlock()
}

// Summary returns the room details as of the last run loop iteration
func (d *Dealer) Summary() summary {
	d.lock.RLock()
	defer d.lock.RUnlock()

	return d.summary
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for _, client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// Spectators returns the clients watching without a seat
func (d *Dealer) Spectators() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.spectators))
	for client := range d.spectators {
		clients = append(clients, client)
	}

	return clients
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendGameState() {
	for _, client := range d.Clients() {
		if !client.Send(d.room.Response(client.ID())) {
			d.logger.WithField("client", client.String()).Warn("send buffer full, dropping state")
		}
	}

	spectators := d.Spectators()
	if len(spectators) == 0 {
		return
	}

	res := &playable.Response{
		Key:  "gameState",
		Data: d.room.SpectatorState(),
	}

	for _, client := range spectators {
		if !client.Send(res) {
			d.logger.WithField("client", client.String()).Warn("send buffer full, dropping spectator state")
		}
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) dropSpectators() {
	d.lock.Lock()
	spectators := d.spectators
	d.spectators = make(map[*Client]bool)
	d.lock.Unlock()

	for client := range spectators {
		if client.Dealer() == d {
			client.setDealer(nil)
		}
	}
}

// AddClient seats the client in the room
// This blocks until the run loop has seated the player
func (d *Dealer) AddClient(client *Client, chips int) error {
	var err error
	if !d.execAndWait(func() {
		if _, err = d.room.Join(client.profile, chips); err != nil {
			return
		}

		d.lock.Lock()
		d.clients[client.ID()] = client
		d.lock.Unlock()

		client.setDealer(d)
		client.Send(&playable.Response{
			Key: "joinedRoom",
			Data: joinedRoom{
				RoomID:    d.ID,
				IsPrivate: d.room.Private,
				Variant:   d.room.Variant().Tag(),
			},
		})
	}) {
		return ErrRoomNotFound
	}

	return err
}

// AddSpectator sends the client the reduced view of the room after every change
func (d *Dealer) AddSpectator(client *Client) error {
	if !d.execAndWait(func() {
		d.lock.Lock()
		d.spectators[client] = true
		d.lock.Unlock()

		client.setDealer(d)
		client.Send(&playable.Response{
			Key: "joinedRoom",
			Data: joinedRoom{
				RoomID:     d.ID,
				IsPrivate:  d.room.Private,
				Variant:    d.room.Variant().Tag(),
				Spectating: true,
			},
		})
		client.Send(&playable.Response{
			Key:  "gameState",
			Data: d.room.SpectatorState(),
		})
	}) {
		return ErrRoomNotFound
	}

	return nil
}

// RemoveClient folds the client's seat and detaches the client
// The pit boss is asked to tear the room down when no human is left.
func (d *Dealer) RemoveClient(client *Client) {
	client.setDealer(nil)

	d.exec(func() {
		d.lock.Lock()
		if d.spectators[client] {
			delete(d.spectators, client)
			d.lock.Unlock()
			return
		}

		current, ok := d.clients[client.ID()]
		if ok && current == client {
			delete(d.clients, client.ID())
		}
		d.lock.Unlock()

		if !ok || current != client {
			return
		}

		if err := d.room.Leave(client.ID()); err != nil {
			d.logger.WithError(err).WithField("client", client.String()).Debug("could not leave room")
		}

		if d.room.HumanCount() == 0 {
			go d.pitBoss.closeIfEmpty(d)
		}
	})
}

// holdsSeat returns true if the player has a seat they have not left
// This blocks until the run loop answers
func (d *Dealer) holdsSeat(id string) bool {
	held := false
	d.execAndWait(func() {
		s, ok := d.room.Seat(id)
		held = ok && !s.Left
	})

	return held
}

// isEmpty returns true if no human is seated
// This blocks until the run loop answers, a dealer that has ended its shift is empty
func (d *Dealer) isEmpty() bool {
	empty := true
	d.execAndWait(func() {
		empty = d.room.HumanCount() == 0
	})

	return empty
}

// ReceivedMessage is called when a seated client sends a game action
func (d *Dealer) ReceivedMessage(c *Client, msg *playable.PayloadIn) {
	d.exec(func() {
		d.lock.RLock()
		watching := d.spectators[c]
		d.lock.RUnlock()

		if watching {
			c.Send(playable.ErrorResponse(msg.Context, ErrSpectating))
			return
		}

		if err := d.room.Action(c.ID(), msg); err != nil {
			d.logger.WithError(err).WithFields(logrus.Fields{
				"client": c.String(),
				"action": msg.Action,
			}).Debug("rejected action")

			var userErr playable.UserError
			if errors.As(err, &userErr) {
				c.Send(playable.ErrorResponse(msg.Context, err))
			}
		}
	})
}
