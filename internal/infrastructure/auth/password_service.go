package auth

import (
	"log"
	"strings"
	"sync/atomic"

	"golang.org/x/crypto/bcrypt"

	"github.com/samarthnaik-lab/expert-claims-backend-sub001/domain"
)

// PasswordServiceImpl implements domain.PasswordService
type PasswordServiceImpl struct {
	cost int

	// counters for the legacy comparison modes, kept visible so the
	// migration away from them can be tracked and the modes retired
	legacyHashCompares atomic.Int64
	plaintextCompares  atomic.Int64
}

// NewPasswordService creates a new password service
func NewPasswordService() *PasswordServiceImpl {
	return &PasswordServiceImpl{cost: bcrypt.DefaultCost}
}

// Hash implements domain.PasswordService
func (p *PasswordServiceImpl) Hash(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// looksHashed reports whether a value carries a bcrypt format marker.
func looksHashed(v string) bool {
	return strings.HasPrefix(v, "$2a$") ||
		strings.HasPrefix(v, "$2b$") ||
		strings.HasPrefix(v, "$2y$")
}

// Verify implements domain.PasswordService. The comparison mode is
// selected purely by inspecting value shape:
//
//   - stored value is a bcrypt hash, supplied value is not: canonical
//     bcrypt verification
//   - stored and supplied values both look like bcrypt output: direct
//     equality (transitional mode for records migrated hash-to-hash)
//   - stored value has no hash marker: raw equality (deprecated)
func (p *PasswordServiceImpl) Verify(storedCredential, password string) (bool, domain.PasswordCompareMode) {
	if looksHashed(storedCredential) {
		if looksHashed(password) {
			p.legacyHashCompares.Add(1)
			log.Printf("password: legacy hash-to-hash comparison used (total %d)", p.legacyHashCompares.Load())
			return storedCredential == password, domain.CompareLegacyHash
		}
		err := bcrypt.CompareHashAndPassword([]byte(storedCredential), []byte(password))
		return err == nil, domain.CompareBcrypt
	}

	p.plaintextCompares.Add(1)
	log.Printf("password: WARNING plaintext comparison used for unhashed stored credential (total %d)", p.plaintextCompares.Load())
	return storedCredential == password, domain.ComparePlaintext
}

// LegacyCompareCounts reports how many times each legacy mode was hit
// since process start.
func (p *PasswordServiceImpl) LegacyCompareCounts() (hashToHash, plaintext int64) {
	return p.legacyHashCompares.Load(), p.plaintextCompares.Load()
}

var _ domain.PasswordService = (*PasswordServiceImpl)(nil)
