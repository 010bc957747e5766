package export

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/roach88/metnet/internal/model"
)

// Domain prefixes for content hashes.
// Version suffix enables future algorithm migration.
const (
	DomainModel = "metnet/model/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ModelHash is the content hash of a model's canonical document.
// Equal models hash equal regardless of map iteration order.
func ModelHash(m *model.Model) (string, error) {
	canonical, err := MarshalCanonical(Document(m))
	if err != nil {
		return "", fmt.Errorf("ModelHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainModel, canonical), nil
}
