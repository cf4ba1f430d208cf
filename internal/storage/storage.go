// Package storage persists ledger accounts and command history on top of the
// JSON datastore. It is the only place that mutates rows; the read-check-write
// of every operation runs inside a single datastore Update, which is what
// makes the engines race-free.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"server-banker/datastore"
)

const (
	accountKeyPrefix   = "account:"
	commandHistoryKey  = "commands_history"
	commandHistoryKeep = 50
)

type Storage struct {
	ds *datastore.DataStore
}

// CommandHistoryRecord is one logged command invocation.
type CommandHistoryRecord struct {
	ChannelID   string    `json:"channel_id"`
	ChannelName string    `json:"channel_name"`
	GuildName   string    `json:"guild_name"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	Command     string    `json:"command"`
	Datetime    time.Time `json:"datetime"`
}

func New(filePath string) (*Storage, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

func (s *Storage) Close() error {
	return s.ds.Close()
}

// decodeInto converts a raw datastore value (map[string]any after a reload,
// or a typed struct while still in memory) into out via a JSON round-trip.
func decodeInto(raw any, out any) error {
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("error marshalling data: %w", err)
	}
	if err := json.Unmarshal(jsonData, out); err != nil {
		return fmt.Errorf("error unmarshalling record: %w", err)
	}
	return nil
}

// AppendCommandToHistory appends a command history record, keeping only the
// most recent entries.
func (s *Storage) AppendCommandToHistory(record CommandHistoryRecord) error {
	return s.ds.Update(commandHistoryKey, func(current any, exists bool) (any, error) {
		var history []CommandHistoryRecord
		if exists {
			if err := decodeInto(current, &history); err != nil {
				return nil, err
			}
		}

		history = append(history, record)
		if len(history) > commandHistoryKeep {
			history = history[len(history)-commandHistoryKeep:]
		}
		return history, nil
	})
}

// FetchCommandHistory returns the logged command invocations, oldest first.
func (s *Storage) FetchCommandHistory() ([]CommandHistoryRecord, error) {
	raw, exists := s.ds.Get(commandHistoryKey)
	if !exists {
		return nil, nil
	}

	var history []CommandHistoryRecord
	if err := decodeInto(raw, &history); err != nil {
		return nil, err
	}
	return history, nil
}
