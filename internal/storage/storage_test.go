package storage

import (
	"path/filepath"
	"testing"
	"time"

	"server-banker/internal/economy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) (*Storage, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ledger.json")
	store, err := New(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

func TestUpdateAccount_ImplicitCreation(t *testing.T) {
	store, _ := newTestStorage(t)

	_, ok, err := store.GetAccount("alice")
	require.NoError(t, err)
	assert.False(t, ok)

	acc, err := store.UpdateAccount("alice", func(acc economy.Account) (economy.Account, error) {
		assert.Zero(t, acc.Points)
		assert.Zero(t, acc.Streak)
		acc.Points = 42
		return acc, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", acc.UserID)
	assert.Equal(t, int64(42), acc.Points)

	got, ok, err := store.GetAccount("alice")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(42), got.Points)
}

func TestUpdateAccount_ErrorAbortsWrite(t *testing.T) {
	store, _ := newTestStorage(t)

	_, err := store.UpdateAccount("alice", func(acc economy.Account) (economy.Account, error) {
		acc.Points = 100
		return acc, nil
	})
	require.NoError(t, err)

	wantErr := &economy.InsufficientFundsError{Required: 500, Available: 100}
	_, err = store.UpdateAccount("alice", func(acc economy.Account) (economy.Account, error) {
		acc.Points = 0
		return acc, wantErr
	})
	assert.ErrorAs(t, err, &wantErr)

	got, _, err := store.GetAccount("alice")
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.Points, "failed update must leave the row untouched")
}

func TestTransferPoints_MovesAllThreeRows(t *testing.T) {
	store, _ := newTestStorage(t)

	_, err := store.UpdateAccount("alice", func(acc economy.Account) (economy.Account, error) {
		acc.Points = 500
		return acc, nil
	})
	require.NoError(t, err)

	require.NoError(t, store.TransferPoints("alice", "bob", "vault", 100, 10))

	alice, _, _ := store.GetAccount("alice")
	bob, _, _ := store.GetAccount("bob")
	vault, _, _ := store.GetAccount("vault")

	assert.Equal(t, int64(390), alice.Points)
	assert.Equal(t, int64(100), bob.Points)
	assert.Equal(t, int64(10), vault.Points)
}

func TestTransferPoints_InsufficientFundsNoPartialEffect(t *testing.T) {
	store, _ := newTestStorage(t)

	_, err := store.UpdateAccount("alice", func(acc economy.Account) (economy.Account, error) {
		acc.Points = 105
		return acc, nil
	})
	require.NoError(t, err)

	err = store.TransferPoints("alice", "bob", "vault", 100, 10)
	var funds *economy.InsufficientFundsError
	require.ErrorAs(t, err, &funds)
	assert.Equal(t, int64(110), funds.Required)
	assert.Equal(t, int64(105), funds.Available)

	alice, _, _ := store.GetAccount("alice")
	assert.Equal(t, int64(105), alice.Points)

	_, ok, _ := store.GetAccount("bob")
	assert.False(t, ok, "recipient row must not be created by a failed transfer")
	_, ok, _ = store.GetAccount("vault")
	assert.False(t, ok, "fee row must not be created by a failed transfer")
}

func TestTopAccounts_OrderAndTies(t *testing.T) {
	store, _ := newTestStorage(t)

	for id, points := range map[string]int64{
		"carol": 300,
		"alice": 100,
		"bob":   300,
		"dave":  50,
	} {
		_, err := store.UpdateAccount(id, func(acc economy.Account) (economy.Account, error) {
			acc.Points = points
			return acc, nil
		})
		require.NoError(t, err)
	}

	top, err := store.TopAccounts(3)
	require.NoError(t, err)
	require.Len(t, top, 3)

	// Ties broken by ascending id: bob before carol.
	assert.Equal(t, "bob", top[0].UserID)
	assert.Equal(t, "carol", top[1].UserID)
	assert.Equal(t, "alice", top[2].UserID)
}

func TestTopAccounts_SkipsNonAccountKeys(t *testing.T) {
	store, _ := newTestStorage(t)

	require.NoError(t, store.AppendCommandToHistory(CommandHistoryRecord{
		UserID:   "alice",
		Command:  "daily",
		Datetime: time.Now(),
	}))
	_, err := store.UpdateAccount("alice", func(acc economy.Account) (economy.Account, error) {
		acc.Points = 10
		return acc, nil
	})
	require.NoError(t, err)

	top, err := store.TopAccounts(10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "alice", top[0].UserID)
}

func TestStorage_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")

	store, err := New(path)
	require.NoError(t, err)

	_, err = store.UpdateAccount("alice", func(acc economy.Account) (economy.Account, error) {
		acc.Points = 777
		acc.Streak = 3
		acc.LastCollected = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		return acc, nil
	})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()

	acc, ok, err := reopened.GetAccount("alice")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(777), acc.Points)
	assert.Equal(t, 3, acc.Streak)
	assert.True(t, acc.LastCollected.Equal(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)))
}

func TestCommandHistory_RingLimit(t *testing.T) {
	store, _ := newTestStorage(t)

	for n := 0; n < commandHistoryKeep+20; n++ {
		require.NoError(t, store.AppendCommandToHistory(CommandHistoryRecord{
			UserID:   "alice",
			Command:  "ping",
			Datetime: time.Now(),
		}))
	}

	history, err := store.FetchCommandHistory()
	require.NoError(t, err)
	assert.Len(t, history, commandHistoryKeep)
}
