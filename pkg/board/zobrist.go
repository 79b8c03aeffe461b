package board

import (
	"sync"

	"github.com/aretw0/goban/pkg/domain"
)

// zobristTable holds one random key per (intersection, color).
// Tables are deterministic per size so hashes are stable across processes.
type zobristTable struct {
	keys []uint64
}

func (z *zobristTable) of(i int, p domain.Point) uint64 {
	switch p {
	case domain.BlackStone:
		return z.keys[2*i]
	case domain.WhiteStone:
		return z.keys[2*i+1]
	}
	return 0
}

var zobristTables = struct {
	mu     sync.Mutex
	tables map[int]*zobristTable
}{tables: make(map[int]*zobristTable)}

func zobristKeys(size int) *zobristTable {
	zobristTables.mu.Lock()
	defer zobristTables.mu.Unlock()
	if t, ok := zobristTables.tables[size]; ok {
		return t
	}
	rng := splitmix64{state: uint64(0x9e3779b97f4a7c15) ^ uint64(size)}
	t := &zobristTable{keys: make([]uint64, size*size*2)}
	for i := range t.keys {
		t.keys[i] = rng.next()
	}
	zobristTables.tables[size] = t
	return t
}

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
