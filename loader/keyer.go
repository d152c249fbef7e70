package loader

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
)

// Keyer derives deterministic cache keys from an operation name and its
// input.
//
// Contract:
// - Determinism: same inputs must produce the same key, regardless of map
//   iteration order.
// - Concurrency: implementations must be safe for concurrent use.
type Keyer interface {
	// Key derives a cache key for the named operation and input.
	Key(op string, input any) (string, error)
}

// DefaultKeyer derives SHA-256 based keys over a canonical JSON encoding of
// the input.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a new default keyer.
func NewDefaultKeyer() *DefaultKeyer {
	return &DefaultKeyer{}
}

// Key derives a deterministic key of the form load:<op>:<hash>, where hash
// is the first 8 bytes of SHA-256(canonical JSON(input)) in hex.
func (k *DefaultKeyer) Key(op string, input any) (string, error) {
	canonical, err := canonicalJSON(input)
	if err != nil {
		return "", fmt.Errorf("loader: failed to canonicalize input: %w", err)
	}

	sum := sha256.Sum256(canonical)
	return fmt.Sprintf("load:%s:%s", op, hex.EncodeToString(sum[:8])), nil
}

// canonicalJSON encodes v as JSON with object keys in sorted order, so that
// two equal maps always serialize identically.
func canonicalJSON(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return []byte("null"), nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out := []byte{'{'}
		for i, k := range keys {
			if i > 0 {
				out = append(out, ',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			out = append(out, kb...)
			out = append(out, ':')

			vb, err := canonicalJSON(val[k])
			if err != nil {
				return nil, err
			}
			out = append(out, vb...)
		}
		return append(out, '}'), nil
	case []any:
		out := []byte{'['}
		for i, item := range val {
			if i > 0 {
				out = append(out, ',')
			}
			vb, err := canonicalJSON(item)
			if err != nil {
				return nil, err
			}
			out = append(out, vb...)
		}
		return append(out, ']'), nil
	default:
		// Scalars and structs already encode deterministically.
		return json.Marshal(v)
	}
}

// Ensure DefaultKeyer implements Keyer
var _ Keyer = (*DefaultKeyer)(nil)
