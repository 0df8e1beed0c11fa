/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tiebreak

import "sync"

const (
	scoreTable = iota
	adjustedTable
	numTables
)

// memoKey always carries the query round: a player's score as of round 3
// and as of round 5 are different values.
type memoKey struct {
	player PlayerID
	round  int
}

// memo caches Score and AdjustedScore per (player, round). A nil memo
// computes every value from scratch.
type memo struct {
	mu     sync.Mutex
	tables [numTables]map[memoKey]float64
}

func newMemo() *memo {
	m := &memo{}
	for i := range m.tables {
		m.tables[i] = make(map[memoKey]float64)
	}
	return m
}

// cached returns the stored value for key or computes and stores it. The
// lock is not held while computing since compute recurses into the memo.
func (m *memo) cached(table int, key memoKey, compute func() float64) float64 {
	if m == nil {
		return compute()
	}

	m.mu.Lock()
	v, ok := m.tables[table][key]
	m.mu.Unlock()
	if ok {
		return v
	}

	v = compute()

	m.mu.Lock()
	m.tables[table][key] = v
	m.mu.Unlock()

	return v
}
