package request

import (
	"fmt"
	"strings"
)

// labels validates a list of short free-form strings such as tags or skills.
func labels(maxItems, maxLen int) func(value interface{}) error {
	return func(value interface{}) error {
		items, _ := value.([]string)
		if len(items) > maxItems {
			return fmt.Errorf("at most %d entries are allowed", maxItems)
		}
		for _, item := range items {
			item = strings.TrimSpace(item)
			if item == "" {
				return fmt.Errorf("entries cannot be blank")
			}
			if len(item) > maxLen {
				return fmt.Errorf("entries must be at most %d characters", maxLen)
			}
		}

		return nil
	}
}
