package history

// Dedupe removes every entry whose Key was already seen earlier in the
// slice. The first occurrence wins and the order of survivors is unchanged.
// Timestamps and durations play no part in the comparison.
func Dedupe(entries []Entry) []Entry {
	result := make([]Entry, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))

	for _, e := range entries {
		key := e.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, e)
	}

	return result
}

// RemoveBetween drops structured entries whose timestamp falls inside r,
// both ends inclusive. Opaque entries carry no timestamp and are always kept.
func RemoveBetween(entries []Entry, r DateRange) []Entry {
	result := make([]Entry, 0, len(entries))

	for _, e := range entries {
		if e.Structured && r.Contains(e.Timestamp) {
			continue
		}
		result = append(result, e)
	}

	return result
}

// RemoveConsecutiveDuplicates removes entries whose Key equals the Key of
// the entry right before them.
func RemoveConsecutiveDuplicates(entries []Entry) []Entry {
	if len(entries) == 0 {
		return entries
	}

	result := []Entry{entries[0]}
	for i := 1; i < len(entries); i++ {
		if entries[i].Key() != entries[i-1].Key() {
			result = append(result, entries[i])
		}
	}
	return result
}

// CountDuplicates returns how many entries Dedupe would drop.
func CountDuplicates(entries []Entry) int {
	seen := make(map[string]struct{}, len(entries))
	dups := 0
	for _, e := range entries {
		key := e.Key()
		if _, ok := seen[key]; ok {
			dups++
			continue
		}
		seen[key] = struct{}{}
	}
	return dups
}
