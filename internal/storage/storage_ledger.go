package storage

import (
	"sort"
	"strings"

	"server-banker/internal/economy"
)

func accountKey(id string) string {
	return accountKeyPrefix + id
}

// GetAccount returns the ledger row for id, reporting whether it exists.
func (s *Storage) GetAccount(id string) (economy.Account, bool, error) {
	raw, exists := s.ds.Get(accountKey(id))
	if !exists {
		return economy.Account{}, false, nil
	}

	var acc economy.Account
	if err := decodeInto(raw, &acc); err != nil {
		return economy.Account{}, false, err
	}
	return acc, true, nil
}

// UpdateAccount applies fn to the current row (or a zero-value default for
// ids never written) and persists the result as one atomic unit. An error
// from fn aborts the update with no mutation.
func (s *Storage) UpdateAccount(id string, fn func(economy.Account) (economy.Account, error)) (economy.Account, error) {
	var updated economy.Account

	err := s.ds.Update(accountKey(id), func(current any, exists bool) (any, error) {
		acc := economy.Account{UserID: id}
		if exists {
			if err := decodeInto(current, &acc); err != nil {
				return nil, err
			}
		}

		next, err := fn(acc)
		if err != nil {
			return nil, err
		}
		next.UserID = id

		updated = next
		return next, nil
	})
	if err != nil {
		return economy.Account{}, err
	}
	return updated, nil
}

// TransferPoints debits fromID by amount+fee, credits toID by amount and
// feeID by fee across up to three rows in one indivisible unit. If the debit
// would overdraw the sender nothing moves and InsufficientFundsError is
// returned.
func (s *Storage) TransferPoints(fromID, toID, feeID string, amount, fee int64) error {
	keys := []string{accountKey(fromID), accountKey(toID), accountKey(feeID)}

	return s.ds.UpdateMulti(keys, func(current map[string]any) (map[string]any, error) {
		accounts := make(map[string]economy.Account, 3)
		for _, id := range []string{fromID, toID, feeID} {
			acc := economy.Account{UserID: id}
			if raw, ok := current[accountKey(id)]; ok {
				if err := decodeInto(raw, &acc); err != nil {
					return nil, err
				}
			}
			accounts[id] = acc
		}

		total := amount + fee
		sender := accounts[fromID]
		if sender.Points < total {
			return nil, &economy.InsufficientFundsError{
				Required:  total,
				Available: sender.Points,
			}
		}

		// The three ids may alias (self-transfer, sender is fee collector);
		// applying deltas through the map keeps aliased rows consistent.
		sender.Points -= total
		accounts[fromID] = sender

		recipient := accounts[toID]
		recipient.Points += amount
		accounts[toID] = recipient

		collector := accounts[feeID]
		collector.Points += fee
		accounts[feeID] = collector

		next := make(map[string]any, len(accounts))
		for id, acc := range accounts {
			next[accountKey(id)] = acc
		}
		return next, nil
	})
}

// TopAccounts returns up to n accounts ordered by points descending, ties
// broken by ascending user id.
func (s *Storage) TopAccounts(n int) ([]economy.Account, error) {
	var accounts []economy.Account

	for _, key := range s.ds.Keys() {
		if !strings.HasPrefix(key, accountKeyPrefix) {
			continue
		}
		raw, exists := s.ds.Get(key)
		if !exists {
			continue
		}

		var acc economy.Account
		if err := decodeInto(raw, &acc); err != nil {
			return nil, err
		}
		if acc.UserID == "" {
			acc.UserID = strings.TrimPrefix(key, accountKeyPrefix)
		}
		accounts = append(accounts, acc)
	}

	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].Points != accounts[j].Points {
			return accounts[i].Points > accounts[j].Points
		}
		return accounts[i].UserID < accounts[j].UserID
	})

	if n > 0 && len(accounts) > n {
		accounts = accounts[:n]
	}
	return accounts, nil
}
