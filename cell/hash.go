package cell

import (
	"crypto/sha256"
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// Hash returns the cell's representation hash, computing and memoizing it on
// first access. Two cells with identical content always return the same
// hash, by construction of the recursive digest below.
//
// The digest itself follows TON's actual on-chain scheme (SHA-256 over a
// descriptor + packed bits + child hashes); see DESIGN.md for why SHA-256
// rather than the teacher's Keccak is used here. Keccak/SHA3 is still
// exercised, in RandSeedMix below, for the c7 randomness-derivation path the
// teacher's opSha3 opcode demonstrates.
func (c *Cell) Hash() [32]byte {
	if c.hash != nil {
		return *c.hash
	}
	h := sha256.New()
	h.Write([]byte{byte(c.kind), c.level})
	var lenBuf [2]byte
	binary.BigEndian.PutUint16(lenBuf[:], uint16(c.bits))
	h.Write(lenBuf[:])
	h.Write(c.data)
	var refCountBuf [1]byte
	refCountBuf[0] = byte(len(c.refs))
	h.Write(refCountBuf[:])
	for _, r := range c.refs {
		rh := r.Hash()
		h.Write(rh[:])
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	c.hash = &out
	return out
}

// RandSeedMix derives a fresh pseudo-random seed for the c7 context tuple's
// rand_seed slot (spec.md §6, index 7) by absorbing the previous seed and a
// domain-separation label through Keccak-256. This is the randomness-mixing
// role the teacher's SHA3 opcode plays inside the interpreter, lifted to the
// host-context boundary where TVM's rand_seed is actually produced.
func RandSeedMix(prevSeed [32]byte, label string) [32]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(prevSeed[:])
	h.Write([]byte(label))
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
