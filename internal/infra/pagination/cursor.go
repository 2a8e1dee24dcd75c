// Package pagination encodes opaque cursors for paging through a cart's
// event history.
package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/repository"
)

// Encode returns a cursor positioned after the given version of a cart.
func Encode(cartID int64, version int) string {
	raw := fmt.Sprintf("%d|%d", cartID, version)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// Decode reverses Encode. An empty cursor starts from the beginning.
func Decode(cursor string) (int64, int, error) {
	if cursor == "" {
		return 0, 0, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return 0, 0, repository.ErrInvalidCursor
	}
	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 {
		return 0, 0, repository.ErrInvalidCursor
	}
	cartID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || cartID <= 0 {
		return 0, 0, repository.ErrInvalidCursor
	}
	version, err := strconv.Atoi(parts[1])
	if err != nil || version < 0 {
		return 0, 0, repository.ErrInvalidCursor
	}
	return cartID, version, nil
}
