package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/happyshop/happyshop/internal/domain"
)

// Commands handled by the REPL itself rather than the session.
const (
	localNone = ""
	localView = "view"
	localHelp = "help"
	localQuit = "quit"
)

type command struct {
	intent domain.Intent
	local  string
}

// parseLine turns one REPL line into a session intent or a local command.
// A blank line yields a zero command with no intent kind.
func parseLine(line string) (command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return command{}, nil
	}

	word := strings.ToLower(fields[0])
	switch word {
	case "view", "show":
		return command{local: localView}, nil
	case "help", "?":
		return command{local: localHelp}, nil
	case "quit", "exit":
		return command{local: localQuit}, nil
	}

	kind, err := domain.ParseIntentKind(word)
	if err != nil {
		return command{}, err
	}
	args := fields[1:]

	switch kind {
	case domain.IntentSearch:
		return command{intent: domain.Search(strings.Join(args, " "))}, nil
	case domain.IntentAddToTrolley:
		return parseAdd(args)
	case domain.IntentCheckout:
		return command{intent: domain.Checkout()}, nil
	case domain.IntentCancel:
		return command{intent: domain.Cancel()}, nil
	case domain.IntentCloseReceipt:
		return command{intent: domain.CloseReceipt()}, nil
	}
	return command{}, fmt.Errorf("%w %q", domain.ErrUnknownIntent, word)
}

func parseAdd(args []string) (command, error) {
	if len(args) > 2 {
		return command{}, fmt.Errorf("usage: add [id] [qty]")
	}
	id := ""
	qty := 1
	if len(args) > 0 {
		id = args[0]
	}
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return command{}, fmt.Errorf("quantity must be a positive number, got %q", args[1])
		}
		qty = n
	}
	return command{intent: domain.AddToTrolley(id, qty)}, nil
}
