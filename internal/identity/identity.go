// Package identity assigns stable surrogate identifiers to member
// records. Members have no natural identifier in the source data;
// they are keyed by the combination of name, sex, birth year and, for
// local guides only, normalized residence.
package identity

import (
	"crypto/sha1"
	"errors"
	"math"
	"math/big"
	"math/rand"
	"strings"
)

// ErrCollision is returned when two distinct natural keys truncate to
// the same identifier. The caller retries the whole batch with the
// next pseudorandom draw so a successful run is a bijection.
var ErrCollision = errors.New("identity: duplicate identifier after truncation")

// idDigits is the identifier width. Ten decimal digits keep the IDs
// human-legible downstream. With tens of thousands of unique keys the
// birthday-collision probability per attempt stays far below 1%;
// should the source ever grow toward millions of members this width
// has to be revisited, which is why the retry loop is bounded by the
// caller rather than spinning freely.
const idDigits = 10

// NormalizeResidence strips everything but letters and digits and
// lowercases, so spelling variants of the same village compare equal.
func NormalizeResidence(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}

// Key builds the composite natural key for one member row. Residence
// participates only for local guides: for everyone else it is too
// inconsistently recorded to identify anyone, while guides sharing a
// name, sex and birth year are usually distinguished by their home
// village.
func Key(firstName, lastName, sex, yearOfBirth, residence string, localGuide bool) string {
	res := ""
	if localGuide {
		res = NormalizeResidence(residence)
	}
	return firstName + lastName + sex + yearOfBirth + res
}

var maxInt64 = big.NewInt(math.MaxInt64)

// Generate assigns every distinct key in keys a fixed-width decimal
// identifier. Keys are processed in first-appearance order and each
// unique key consumes exactly one draw from rng, so an unrelated key
// change cannot shift any other key's identifier. On a truncation
// collision Generate returns ErrCollision with a nil map; the caller
// retries with the same rng, whose advanced state yields fresh draws.
func Generate(keys []string, rng *rand.Rand) (map[string]string, error) {
	ids := make(map[string]string, len(keys))
	seen := make(map[string]string, len(keys)) // id -> key
	for _, key := range keys {
		if _, done := ids[key]; done {
			continue
		}
		id := candidate(key, rng.Int63n(999999)+1)
		if _, dup := seen[id]; dup {
			return nil, ErrCollision
		}
		seen[id] = key
		ids[key] = id
	}
	return ids, nil
}

// candidate hashes the key, perturbs the wide hash with the seeded
// draw, and truncates to the leading digits.
func candidate(key string, draw int64) string {
	sum := sha1.Sum([]byte(key))
	n := new(big.Int).SetBytes(sum[:])
	perturb := new(big.Int).Mul(maxInt64, big.NewInt(draw))
	n.Add(n, perturb)
	s := n.String()
	if len(s) > idDigits {
		s = s[:idDigits]
	}
	return s
}
