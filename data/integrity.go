package data

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
)

// CheckLengthAtMost verifies content is no longer than max, when max is
// declared (> 0). A zero max means "no length was declared" and this
// check is skipped — length is then enforced only by the bounded fetch
// ceiling (spec.md §4.2: "Verify bytes length <= meta_info.length (if
// declared)").
func CheckLengthAtMost(content []byte, max int64) error {
	if max > 0 && int64(len(content)) > max {
		return ErrLengthOrHashMismatch{Msg: fmt.Sprintf("content length %d exceeds declared length %d", len(content), max)}
	}
	return nil
}

// CheckHashes verifies content against every declared hash. An empty
// Hashes map means no hashes were declared and this check is skipped.
func CheckHashes(content []byte, hashes Hashes) error {
	for algo, want := range hashes {
		h, err := newHasher(algo)
		if err != nil {
			return err
		}
		h.Write(content)
		got := h.Sum(nil)
		if hexEncode(got) != hexEncode(want) {
			return ErrLengthOrHashMismatch{Msg: fmt.Sprintf("%s hash mismatch", algo)}
		}
	}
	return nil
}

func newHasher(algo string) (hash.Hash, error) {
	switch algo {
	case "sha256":
		return sha256.New(), nil
	case "sha512":
		return sha512.New(), nil
	default:
		return nil, ErrLengthOrHashMismatch{Msg: fmt.Sprintf("unsupported hash algorithm %q", algo)}
	}
}

// VerifyLengthHashes checks content against this MetaFiles descriptor's
// declared length and hashes (both optional for MetaFiles): length is an
// upper bound, not an exact match (spec.md §4.2: "Verify bytes length <=
// meta_info.length (if declared)").
func (m MetaFiles) VerifyLengthHashes(content []byte) error {
	if err := CheckLengthAtMost(content, m.Length); err != nil {
		return err
	}
	return CheckHashes(content, m.Hashes)
}

// VerifyLengthHashes checks content against this TargetFiles descriptor's
// declared length and hashes, both of which are required for target
// files.
func (t TargetFiles) VerifyLengthHashes(content []byte) error {
	if int64(len(content)) != t.Length {
		return ErrLengthOrHashMismatch{Msg: fmt.Sprintf("content length %d does not match declared length %d", len(content), t.Length)}
	}
	return CheckHashes(content, t.Hashes)
}
