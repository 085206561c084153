package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// String возвращает первые 8 байт в hex.
func (d Digest) String() string {
	return hex.EncodeToString(d[:8])
}

// Combine строит итоговый хеш: H( content || dep1 || dep2 ... ).
// Порядок deps должен быть детерминированным.
func Combine(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// DigestStrings хеширует список строк; каждая строка завершается нулевым
// байтом, чтобы ["ab"] и ["a","b"] различались.
func DigestStrings(ss ...string) Digest {
	h := sha256.New()
	for _, s := range ss {
		_, _ = h.Write([]byte(s))
		_, _ = h.Write([]byte{0})
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
