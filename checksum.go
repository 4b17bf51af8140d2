package intakekit

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
)

// ContentDigest returns the hex-encoded xxHash64 of data. Preview handles
// carry it so a view can tell whether two selections hold the same bytes.
func ContentDigest(data []byte) string {
	h := xxhash.New()
	_, _ = h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// CalculateDigest reads r to the end and returns its hex-encoded xxHash64
func CalculateDigest(r io.Reader) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("failed to calculate digest: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
