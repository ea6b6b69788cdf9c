// Package session generates the client-side identity for one connection:
// a numeric token the server echoes back in NEW_PLAYER events, and a
// display name used when the player configured none.
package session

import (
	"crypto/rand"
	"fmt"
	"net/url"
	"strings"
	"time"

	bip39 "github.com/cosmos/go-bip39"

	"github.com/cardroom/tableview/pkg/protocol"
)

// Identity is one session's client-chosen identity. The ID is fixed for the
// session and lets the client recognize which NEW_PLAYER event is its own.
type Identity struct {
	ID   protocol.PlayerID
	Name string
}

// New derives a session identity. The token is the millisecond clock, which
// is unique enough per table and matches what the server expects as a
// player id. An empty name gets a generated one.
func New(name string) Identity {
	if strings.TrimSpace(name) == "" {
		name = RandomName()
	}
	return Identity{
		ID:   protocol.PlayerID(time.Now().UnixMilli()),
		Name: name,
	}
}

// RandomName draws two BIP-39 words for a memorable default display name,
// e.g. "velvet-tiger". Falls back to a numeric suffix if entropy fails.
func RandomName() string {
	entropy := make([]byte, 16)
	if _, err := rand.Read(entropy); err != nil {
		return fmt.Sprintf("player-%d", time.Now().UnixMilli()%100000)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return fmt.Sprintf("player-%d", time.Now().UnixMilli()%100000)
	}
	words := strings.Fields(mnemonic)
	if len(words) < 2 {
		return fmt.Sprintf("player-%d", time.Now().UnixMilli()%100000)
	}
	return words[0] + "-" + words[1]
}

// DialURL builds the event channel URL for this identity from the server
// base, e.g. ws://host:8000/ws/{id}?name={name}.
func (id Identity) DialURL(serverURL string) (string, error) {
	base, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("parse server url: %w", err)
	}
	base.Path = strings.TrimRight(base.Path, "/") + fmt.Sprintf("/%d", id.ID)
	q := base.Query()
	q.Set("name", id.Name)
	base.RawQuery = q.Encode()
	return base.String(), nil
}
