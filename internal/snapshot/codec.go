package snapshot

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// envelope wraps the encoded snapshot with a checksum of its exact bytes.
type envelope struct {
	Checksum string          `json:"checksum"`
	Snapshot json.RawMessage `json:"snapshot"`
}

// Encode serializes s together with its BLAKE2b-256 checksum.
func Encode(s *Snapshot) ([]byte, error) {
	body, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	sum := blake2b.Sum256(body)

	data, err := json.Marshal(envelope{
		Checksum: hex.EncodeToString(sum[:]),
		Snapshot: body,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}
	return data, nil
}

// Decode verifies the checksum and parses the snapshot.
func Decode(data []byte) (*Snapshot, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %v: %w", err, ErrCorrupt)
	}

	sum := blake2b.Sum256(env.Snapshot)
	if hex.EncodeToString(sum[:]) != env.Checksum {
		return nil, fmt.Errorf("checksum mismatch: %w", ErrCorrupt)
	}

	var s Snapshot
	if err := json.Unmarshal(env.Snapshot, &s); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %v: %w", err, ErrCorrupt)
	}
	return &s, nil
}
