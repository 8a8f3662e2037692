package room

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"chaingang-server/pkg/game"
	"chaingang-server/pkg/playable"
)

const lobbyTimeout = 5 * time.Second

// Client is a client connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	pitBoss *PitBoss
	profile game.Profile

	lock   sync.Mutex
	dealer *Dealer
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, pitBoss *PitBoss, profile game.Profile) *Client {
	return &Client{
		send:    make(chan interface{}, 256),
		Close:   make(chan string),
		Conn:    conn,
		pitBoss: pitBoss,
		profile: profile,
	}
}

// ID returns the player's ID
func (c *Client) ID() string {
	return c.profile.ID
}

// Send send a message to the web client
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// String returns a traceable identifier for the player and room
func (c *Client) String() string {
	if d := c.Dealer(); d != nil {
		return fmt.Sprintf("%s:%s", c.profile.ID, d.ID)
	}

	return c.profile.ID
}

// Dealer returns the dealer of the room the client is seated in
func (c *Client) Dealer() *Dealer {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.dealer
}

func (c *Client) setDealer(d *Dealer) {
	c.lock.Lock()
	c.dealer = d
	c.lock.Unlock()
}

func (c *Client) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), lobbyTimeout)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *playable.PayloadIn) {
	switch msg.Action {
	case "joinPublic", "createPrivate", "joinPrivate":
		c.lobby(msg)
	case "spectate":
		roomID, _ := msg.AdditionalData.GetString("roomId")
		if err := c.pitBoss.Spectate(c, roomID); err != nil {
			c.Send(playable.ErrorResponse(msg.Context, err))
		}
	case "leave":
		c.pitBoss.Leave(c)
		c.Send(playable.OK(msg.Context))
	default:
		dealer := c.Dealer()
		if dealer == nil {
			logrus.WithField("msg", msg).Debug("received message, but dealer not found")
			c.Send(playable.ErrorResponse(msg.Context, ErrNotInRoom))
			return
		}

		dealer.ReceivedMessage(c, msg)
	}
}

func (c *Client) lobby(msg *playable.PayloadIn) {
	chips, err := c.pitBoss.Balance(c)
	if err != nil {
		logrus.WithError(err).WithField("client", c.String()).Error("could not get balance")
		c.Send(playable.ErrorResponse(msg.Context, ErrBalanceUnavailable))
		return
	}

	variant, _ := msg.AdditionalData.GetString("variant")
	switch msg.Action {
	case "joinPublic":
		err = c.pitBoss.JoinPublic(c, variant, chips)
	case "createPrivate":
		var code string
		if code, err = c.pitBoss.CreatePrivate(c, variant, chips); err == nil {
			c.Send(privateCodeResponse(msg.Context, code))
		}
	case "joinPrivate":
		code, _ := msg.AdditionalData.GetString("code")
		err = c.pitBoss.JoinPrivate(c, code, chips)
	}

	if err != nil {
		logrus.WithError(err).WithField("client", c.String()).Debug("lobby request failed")
		c.Send(playable.ErrorResponse(msg.Context, err))
	}
}
