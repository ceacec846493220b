package orthology

import "strconv"

// parseEntrez extracts the numeric Entrez ID from a batch hit, preferring
// the echoed query over the _id field.
func parseEntrez(query, id string) int64 {
	if v, err := strconv.ParseInt(query, 10, 64); err == nil {
		return v
	}

	if v, err := strconv.ParseInt(id, 10, 64); err == nil {
		return v
	}

	return 0
}
