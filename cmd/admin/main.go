package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"golang.org/x/term"

	"chaingang-server/internal/config"
	"chaingang-server/internal/jwt"
	"chaingang-server/pkg/ledger"
)

// CLI lists the admin commands
type CLI struct {
	Balance BalanceCmd `cmd:"" help:"Show a player's ledger account"`
	Credit  CreditCmd  `cmd:"" help:"Add chips to a player's balance, use -- before a negative amount"`
	Token   TokenCmd   `cmd:"" help:"Sign an identity token for a player"`
}

// BalanceCmd prints the account
type BalanceCmd struct {
	PlayerID string `arg:"" help:"Player ID"`
}

// CreditCmd changes the balance
type CreditCmd struct {
	PlayerID string `arg:"" help:"Player ID"`
	Amount   int    `arg:"" help:"Chips to add, negative amounts remove chips"`
	Yes      bool   `short:"y" help:"Do not ask for confirmation"`
}

// TokenCmd prints a signed token
type TokenCmd struct {
	PlayerID string        `arg:"" help:"Player ID"`
	Name     string        `help:"Display name"`
	Avatar   string        `help:"Avatar"`
	TTL      time.Duration `default:"24h" help:"Token lifetime, zero never expires"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("admin"),
		kong.Description("Chain Gang Poker administration"),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

func openLedger() (ledger.Ledger, error) {
	return ledger.New(config.Instance())
}

func printAccount(w io.Writer, l ledger.Ledger, playerID string) error {
	getter, ok := l.(ledger.AccountGetter)
	if !ok {
		return errors.New("ledger does not keep accounts")
	}

	acct, err := getter.GetAccount(context.Background(), playerID)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%s: balance %d, %d wins, %d losses\n", acct.PlayerID, acct.Balance, acct.Wins, acct.Losses)
	return err
}

// Run prints the account
func (c *BalanceCmd) Run() error {
	l, err := openLedger()
	if err != nil {
		return err
	}

	return printAccount(os.Stdout, l, c.PlayerID)
}

// Run credits the account after confirming
func (c *CreditCmd) Run() error {
	if !c.Yes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New("stdin is not a terminal, pass --yes to credit without confirmation")
		}

		prompt := fmt.Sprintf("Credit %d chips to %s? (y/N) ", c.Amount, c.PlayerID)
		if !confirm(os.Stdin, os.Stdout, prompt) {
			return errors.New("aborted")
		}
	}

	l, err := openLedger()
	if err != nil {
		return err
	}

	if err := l.Credit(context.Background(), c.PlayerID, c.Amount); err != nil {
		return err
	}

	return printAccount(os.Stdout, l, c.PlayerID)
}

// Run signs the token
func (c *TokenCmd) Run() error {
	jwt.LoadKeys()

	token, err := jwt.Sign(jwt.Identity{
		ID:          c.PlayerID,
		DisplayName: c.Name,
		Avatar:      c.Avatar,
	}, c.TTL)
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}

// confirm asks a yes/no question, anything but y or yes is a no
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	_, _ = fmt.Fprint(out, prompt)

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}

	return false
}
