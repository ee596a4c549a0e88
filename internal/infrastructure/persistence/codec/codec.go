// Package codec turns the entity tree and profile into checksummed blobs.
// Every storage backend keeps the JSON payload next to its BLAKE2b-256
// checksum and verifies it on load.
package codec

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/hobbylab/hobbylab-core/internal/domain/gamification"
	"github.com/hobbylab/hobbylab-core/internal/domain/hobby"
	"github.com/hobbylab/hobbylab-core/internal/domain/shared"
)

// Kind names a stored document.
type Kind string

const (
	KindEntities Kind = "entities"
	KindProfile  Kind = "profile"
)

// Kinds lists every document kind.
func Kinds() []Kind {
	return []Kind{KindEntities, KindProfile}
}

// Codec errors.
var (
	ErrChecksumMismatch = fmt.Errorf("%w: checksum mismatch", shared.ErrCorruptedSnapshot)
	ErrMalformedBlob    = fmt.Errorf("%w: malformed blob", shared.ErrCorruptedSnapshot)
	ErrUnsupported      = errors.New("unsupported document version")
)

// Envelope is a payload with its checksum.
type Envelope struct {
	Payload  []byte
	Checksum string // hex BLAKE2b-256 of Payload
}

// Checksum returns the hex BLAKE2b-256 digest of payload.
func Checksum(payload []byte) string {
	sum := blake2b.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// Seal marshals v to JSON and checksums it.
func Seal(v any) (Envelope, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal: %w", err)
	}
	return Envelope{Payload: payload, Checksum: Checksum(payload)}, nil
}

// Verify checks the payload against its checksum.
func (e Envelope) Verify() error {
	if Checksum(e.Payload) != e.Checksum {
		return ErrChecksumMismatch
	}
	return nil
}

// Open verifies the envelope and unmarshals it into v.
func Open(e Envelope, v any) error {
	if err := e.Verify(); err != nil {
		return err
	}
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrCorruptedSnapshot, err)
	}
	return nil
}

// Bytes renders the envelope as one blob: the checksum, a newline, then the
// payload. Used by backends without a separate checksum column.
func (e Envelope) Bytes() []byte {
	out := make([]byte, 0, len(e.Checksum)+1+len(e.Payload))
	out = append(out, e.Checksum...)
	out = append(out, '\n')
	return append(out, e.Payload...)
}

// Parse splits a blob produced by Bytes.
func Parse(blob []byte) (Envelope, error) {
	sum, payload, ok := bytes.Cut(blob, []byte{'\n'})
	if !ok || len(sum) != hex.EncodedLen(blake2b.Size256) {
		return Envelope{}, ErrMalformedBlob
	}
	return Envelope{Payload: payload, Checksum: string(sum)}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Typed helpers
// ─────────────────────────────────────────────────────────────────────────────

// SealTree seals the entity tree.
func SealTree(tree hobby.Tree) (Envelope, error) {
	if tree.Version == 0 {
		tree.Version = hobby.TreeVersion
	}
	return Seal(tree)
}

// OpenTree verifies and decodes an entity tree.
func OpenTree(e Envelope) (hobby.Tree, error) {
	var tree hobby.Tree
	if err := Open(e, &tree); err != nil {
		return hobby.Tree{}, err
	}
	if tree.Version > hobby.TreeVersion {
		return hobby.Tree{}, fmt.Errorf("%w: %d", ErrUnsupported, tree.Version)
	}
	return tree, nil
}

// SealProfile seals the user profile.
func SealProfile(p gamification.UserProfile) (Envelope, error) {
	return Seal(p)
}

// OpenProfile verifies and decodes a user profile.
func OpenProfile(e Envelope) (*gamification.UserProfile, error) {
	var p gamification.UserProfile
	if err := Open(e, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
