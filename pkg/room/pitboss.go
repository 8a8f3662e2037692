package room

import (
	"strings"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"chaingang-server/pkg/game"
	"chaingang-server/pkg/ledger"
	"chaingang-server/pkg/token"
)

const privateCodeLength = 6

// PitBoss is responsible for dispatching players to rooms
type PitBoss struct {
	opts   game.Options
	ledger ledger.Ledger
	logger logrus.FieldLogger
	clock  quartz.Clock

	dealers  map[string]*Dealer
	requests chan func()
	close    chan struct{}
}

// NewPitBoss returns a new dispatch object
// Rooms mirror chip movements to l
func NewPitBoss(opts game.Options, l ledger.Ledger, logger logrus.FieldLogger) *PitBoss {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &PitBoss{
		opts:     opts,
		ledger:   l,
		logger:   logger,
		clock:    quartz.NewReal(),
		dealers:  make(map[string]*Dealer),
		requests: make(chan func(), 256),
		close:    make(chan struct{}),
	}
}

// StartShift starts the PitBoss run loop
func (p *PitBoss) StartShift() {
	go p.runLoop()
}

// EndShift closes every room and stops the run loop
func (p *PitBoss) EndShift() {
	p.do(func() {
		for id, dealer := range p.dealers {
			dealer.EndShift()
			delete(p.dealers, id)
		}
	})

	close(p.close)
}

func (p *PitBoss) runLoop() {
	for {
		select {
		case fn := <-p.requests:
			fn()
		case <-p.close:
			return
		}
	}
}

// do runs fn on the run loop and waits for it
func (p *PitBoss) do(fn func()) {
	done := make(chan struct{})
	select {
	case p.requests <- func() {
		fn()
		close(done)
	}:
	case <-p.close:
		return
	}

	select {
	case <-done:
	case <-p.close:
	}
}

// Balance returns the chips a player sits down with
func (p *PitBoss) Balance(c *Client) (int, error) {
	ctx, cancel := c.context()
	defer cancel()

	return p.ledger.GetBalance(ctx, c.ID())
}

// NOTE: must only be called from the run loop
func (p *PitBoss) newDealer(private bool, variant game.Variant) (*Dealer, error) {
	id := uuid.New().String()
	for private {
		code, err := token.Generate(privateCodeLength)
		if err != nil {
			return nil, err
		}

		if _, taken := p.dealers[code]; !taken {
			id = code
			break
		}
	}

	dealer := NewDealer(p, id, private, variant)
	dealer.StartShift()
	p.dealers[id] = dealer

	p.logger.WithFields(logrus.Fields{
		"room":    id,
		"private": private,
		"variant": variant.Tag(),
	}).Info("opened room")

	return dealer, nil
}

// NOTE: must only be called from the run loop
func (p *PitBoss) findPublic(tag string) *Dealer {
	for _, dealer := range p.dealers {
		s := dealer.Summary()
		if !s.Private && s.Variant == tag && s.Phase == game.PhaseWaiting && s.Seats < p.opts.MaxSeats {
			return dealer
		}
	}

	return nil
}

// seatedElsewhere returns true if the player holds a seat through another connection
// The client's own room and target are not checked.
// NOTE: must only be called from the run loop
func (p *PitBoss) seatedElsewhere(c *Client, target *Dealer) bool {
	current := c.Dealer()
	for _, dealer := range p.dealers {
		if dealer == current || dealer == target {
			continue
		}

		if dealer.holdsSeat(c.ID()) {
			return true
		}
	}

	return false
}

// NOTE: must only be called from the run loop
func (p *PitBoss) seat(c *Client, dealer *Dealer, chips int) error {
	if p.seatedElsewhere(c, dealer) {
		return ErrAlreadySeated
	}

	if current := c.Dealer(); current != nil {
		current.RemoveClient(c)
	}

	return dealer.AddClient(c, chips)
}

// JoinPublic seats the client at an open public room of the variant, or opens one
func (p *PitBoss) JoinPublic(c *Client, tag string, chips int) error {
	variant, err := game.NewVariant(tag)
	if err != nil {
		return err
	}

	p.do(func() {
		dealer := p.findPublic(variant.Tag())
		if dealer == nil {
			if p.seatedElsewhere(c, nil) {
				err = ErrAlreadySeated
				return
			}

			dealer, _ = p.newDealer(false, variant)
		}

		err = p.seat(c, dealer, chips)
	})

	return err
}

// CreatePrivate opens a private room, seats the client and returns the join code
func (p *PitBoss) CreatePrivate(c *Client, tag string, chips int) (string, error) {
	variant, err := game.NewVariant(tag)
	if err != nil {
		return "", err
	}

	var code string
	p.do(func() {
		if p.seatedElsewhere(c, nil) {
			err = ErrAlreadySeated
			return
		}

		var dealer *Dealer
		if dealer, err = p.newDealer(true, variant); err != nil {
			return
		}

		code = dealer.ID
		err = p.seat(c, dealer, chips)
	})

	return code, err
}

// JoinPrivate seats the client at the private room with the code, codes are case-insensitive
func (p *PitBoss) JoinPrivate(c *Client, code string, chips int) error {
	var err error = ErrRoomNotFound
	p.do(func() {
		dealer, found := p.dealers[strings.ToUpper(strings.TrimSpace(code))]
		if !found || !dealer.Summary().Private {
			return
		}

		if dealer.Summary().Seats >= p.opts.MaxSeats && dealer != c.Dealer() {
			err = game.ErrRoomFull
			return
		}

		err = p.seat(c, dealer, chips)
	})

	return err
}

// Spectate attaches the client to a room without a seat
// Public rooms are found by ID, private rooms by their code.
func (p *PitBoss) Spectate(c *Client, roomID string) error {
	var err error = ErrRoomNotFound
	p.do(func() {
		id := strings.TrimSpace(roomID)
		dealer, found := p.dealers[id]
		if !found {
			dealer, found = p.dealers[strings.ToUpper(id)]
		}

		if !found {
			return
		}

		if current := c.Dealer(); current != nil {
			current.RemoveClient(c)
		}

		err = dealer.AddSpectator(c)
	})

	return err
}

// Leave removes the client from its room
func (p *PitBoss) Leave(c *Client) {
	if dealer := c.Dealer(); dealer != nil {
		dealer.RemoveClient(c)
	}
}

// closeIfEmpty tears the room down if no human is seated
func (p *PitBoss) closeIfEmpty(dealer *Dealer) {
	p.do(func() {
		if p.dealers[dealer.ID] != dealer || !dealer.isEmpty() {
			return
		}

		dealer.EndShift()
		delete(p.dealers, dealer.ID)
		p.logger.WithField("room", dealer.ID).Info("closed room")
	})
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	p.logger.WithField("client", client.String()).Debug("client connected")
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.logger.WithField("client", client.String()).Debug("client disconnected")
	p.Leave(client)
}

// RoomCount returns the number of open rooms
func (p *PitBoss) RoomCount() int {
	n := 0
	p.do(func() {
		n = len(p.dealers)
	})

	return n
}
