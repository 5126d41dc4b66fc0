package transport

import (
	"context"
	"errors"
)

// ErrRecipientNotFound is the classification for sends that fail because the
// recipient no longer resolves to a deliverable account (deleted, deactivated,
// or the bot was blocked). Callers prune such recipients; any other send error
// is treated as transient.
var ErrRecipientNotFound = errors.New("recipient not found")

type Update struct {
	Message *Message
}

type Message struct {
	ID           int
	ChatID       int64
	FromID       int64
	FromUsername string
	Text         string
}

// Adapter is the messaging platform boundary. The bot only ever needs to
// receive text messages and send text back, either as a reply in the chat a
// message came from or as a direct message to a user.
type Adapter interface {
	Start(ctx context.Context, out chan<- Update) error
	Stop(ctx context.Context) error

	// SendDirect delivers text to a user's private chat. A failure that
	// matches ErrRecipientNotFound (via errors.Is) means the account is gone.
	SendDirect(ctx context.Context, userID int64, text string) error

	// Reply sends text into the chat the given message arrived in.
	Reply(ctx context.Context, to *Message, text string) error
}
