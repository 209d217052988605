package contents

import (
	"strings"

	"github.com/google/uuid"
)

// ParseIDs splits a comma separated id list. Blank and malformed tokens are
// skipped and repeated ids keep their first position.
func ParseIDs(raw string) []uuid.UUID {
	ids := []uuid.UUID{}
	seen := make(map[uuid.UUID]bool)
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		id, err := uuid.Parse(token)
		if err != nil || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// filterIDs keeps the ids present in allowed, in their original order.
func filterIDs(ids []uuid.UUID, allowed map[uuid.UUID]bool) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if allowed[id] {
			out = append(out, id)
		}
	}
	return out
}
