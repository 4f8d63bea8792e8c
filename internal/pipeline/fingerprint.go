package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"

	"github.com/jonesrussell/tourcrawl/internal/domain"
)

// fingerprintSeparator joins the fingerprint parts. It is not expected to
// appear inside a name, address or date.
const fingerprintSeparator = "|"

// Fingerprint computes the content digest used for duplicate detection:
// a SHA-256 over the normalized name, address and start date. Records with
// the same normalized triple always hash identically.
func Fingerprint(activity *domain.Activity) string {
	parts := make([]string, 0, 3)

	parts = append(parts, strings.ToLower(strings.TrimSpace(activity.Name)))

	address := ""
	if activity.Location != nil {
		address = activity.Location.Address
	}
	parts = append(parts, strings.ToLower(strings.TrimSpace(address)))

	startDate := ""
	if activity.Time != nil && activity.Time.StartDate != nil {
		startDate = *activity.Time.StartDate
	}
	parts = append(parts, strings.TrimSpace(startDate))

	sum := sha256.Sum256([]byte(strings.Join(parts, fingerprintSeparator)))
	return hex.EncodeToString(sum[:])
}

// Registry is the run-scoped set of fingerprints seen so far. It is not
// persisted; cross-run deduplication relies on the store's upsert-by-id
// semantics.
type Registry struct {
	mu   sync.Mutex
	seen map[string]struct{}

	unique     int64
	duplicates int64
}

// NewRegistry creates an empty fingerprint registry.
func NewRegistry() *Registry {
	return &Registry{seen: make(map[string]struct{})}
}

// CheckAndRegister records a fingerprint. The first occurrence registers
// it and returns true; later identical fingerprints return false.
func (r *Registry) CheckAndRegister(fingerprint string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.seen[fingerprint]; dup {
		r.duplicates++
		return false
	}

	r.seen[fingerprint] = struct{}{}
	r.unique++
	return true
}

// RegistryStats summarizes dedup activity for the run report.
type RegistryStats struct {
	UniqueItems     int64 `json:"unique_items"`
	DuplicatesFound int64 `json:"duplicates_found"`
}

// Stats returns a snapshot of registry counters.
func (r *Registry) Stats() RegistryStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RegistryStats{
		UniqueItems:     r.unique,
		DuplicatesFound: r.duplicates,
	}
}
