package ejson

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	kerrors "github.com/PolarWolf314/totara/internal/errors"
)

// Prefix tags a string value as an encrypted token. The walker uses this
// cheap check to decide whether to parse the full grammar, so ordinary
// strings are never grammar-checked.
const Prefix = "EJ["

// tokenPattern is the token grammar, anchored at both ends. The public
// key and nonce lengths are fixed because they encode fixed-size raw
// values (32 and 24 bytes) in base64. The ciphertext is captured greedily
// up to the final bracket and only decoded when the box is opened.
var tokenPattern = regexp.MustCompile(`^EJ\[(\d):([A-Za-z0-9+/=]{44}):([A-Za-z0-9+/=]{32}):(.+)\]$`)

// Token is the structured form of an encrypted value string. It is a
// transient decoding of a value found in a document tree; construct one
// only via ParseToken and treat it as immutable.
type Token struct {
	// SchemaVersion is the single-digit schema number. Encryption
	// currently produces version 1; ParseToken does not reject other
	// digits, version checking is the caller's concern.
	SchemaVersion int

	// PublicKey is the encrypter's public key as 44 characters of base64.
	PublicKey string

	// Nonce is the 24-byte box nonce as 32 characters of base64.
	Nonce string

	// Ciphertext is the sealed box as base64 of variable length.
	Ciphertext string
}

// IsEncrypted reports whether a string value carries the encrypted-token
// prefix.
func IsEncrypted(s string) bool {
	return strings.HasPrefix(s, Prefix)
}

// ParseToken parses a tagged encrypted-value string into its fields.
// Any deviation from the grammar, wrong delimiters, wrong field lengths,
// or a missing closing bracket, returns ErrInvalidTokenFormat carrying
// the offending literal.
func ParseToken(s string) (*Token, error) {
	match := tokenPattern.FindStringSubmatch(s)
	if match == nil {
		return nil, fmt.Errorf("%w: %q", kerrors.ErrInvalidTokenFormat, s)
	}

	version, err := strconv.Atoi(match[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %q", kerrors.ErrInvalidTokenFormat, s)
	}

	return &Token{
		SchemaVersion: version,
		PublicKey:     match[2],
		Nonce:         match[3],
		Ciphertext:    match[4],
	}, nil
}

// String re-encodes the token in wire form.
func (t *Token) String() string {
	return fmt.Sprintf("EJ[%d:%s:%s:%s]", t.SchemaVersion, t.PublicKey, t.Nonce, t.Ciphertext)
}
