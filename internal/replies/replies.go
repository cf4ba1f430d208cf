// Package replies captures a single qualifying text reply for an open work
// challenge. The Discord layer feeds every incoming message into the hub;
// a waiting command handler receives the first message matching its channel
// and user, or an error when its context expires.
package replies

import (
	"context"
	"sync"
)

type waiterKey struct {
	ChannelID string
	UserID    string
}

type Hub struct {
	mu      sync.Mutex
	waiters map[waiterKey]chan string
}

func NewHub() *Hub {
	return &Hub{waiters: make(map[waiterKey]chan string)}
}

// WaitForReply blocks until a message from userID in channelID arrives or
// ctx is done. At most one wait per (channel, user) pair can be open; a new
// wait replaces a stale one.
func (h *Hub) WaitForReply(ctx context.Context, channelID, userID string) (string, error) {
	key := waiterKey{ChannelID: channelID, UserID: userID}
	ch := make(chan string, 1)

	h.mu.Lock()
	h.waiters[key] = ch
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		if h.waiters[key] == ch {
			delete(h.waiters, key)
		}
		h.mu.Unlock()
	}()

	select {
	case content := <-ch:
		return content, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Deliver hands an incoming message to a matching waiter, if any. It reports
// whether the message was consumed; non-matching messages are ignored and
// should flow on to normal handling.
func (h *Hub) Deliver(channelID, userID, content string) bool {
	key := waiterKey{ChannelID: channelID, UserID: userID}

	h.mu.Lock()
	ch, ok := h.waiters[key]
	if ok {
		delete(h.waiters, key)
	}
	h.mu.Unlock()

	if !ok {
		return false
	}
	ch <- content
	return true
}
