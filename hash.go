package docdb

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// HashContent computes the xxHash of content and returns it as 16 hex digits.
func HashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}
