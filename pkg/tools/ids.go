package tools

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// deterministicID derives a stable record ID from the identifying fields of
// the record being created. Equal inputs always produce equal IDs, which
// keeps independently replayed sessions byte-comparable.
func deterministicID(prefix string, parts ...string) string {
	sum := md5.Sum([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("%s_%s", prefix, hex.EncodeToString(sum[:])[:8])
}
