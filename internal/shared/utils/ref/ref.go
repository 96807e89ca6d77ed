package ref

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// New generates a short prefixed reference like "USR-3F2A9C1B": the
// first eight hex characters of a fresh UUID, uppercased. References
// identify accounts and tickets minted through the portal; uniqueness
// is checked again at registration against the live collections.
func New(prefix string) string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(id))
}
