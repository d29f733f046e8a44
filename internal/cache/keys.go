package cache

import (
	"fmt"
	"strings"
)

// Key layout for cached read models. Item views are invalidated explicitly
// on writes; search results only age out by TTL.

func ItemViewKey(itemID int64) string {
	return fmt.Sprintf("item_view:%d", itemID)
}

func SearchKey(text string) string {
	return "search:" + strings.ToLower(strings.TrimSpace(text))
}
