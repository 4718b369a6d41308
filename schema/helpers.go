package schema

import (
	"fmt"
	"slices"
	"strings"
)

// Filenames returns the keys of the map in lexical order.
func (m SizeMap) Filenames() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Total returns the sum of all sizes in the map.
func (m SizeMap) Total() int64 {
	var total int64
	for _, size := range m {
		total += size
	}
	return total
}

// ParseSortSpec parses a "Column:direction" string such as "Size:desc".
// The column is matched case-insensitively; a missing direction means ascending.
func ParseSortSpec(raw string) (SortSpec, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DefaultSortSpec, nil
	}

	colStr, dirStr, _ := strings.Cut(trimmed, ":")
	spec := SortSpec{Direction: AscDirection}

	found := false
	for col := range ValidSortColumns {
		if strings.EqualFold(string(col), strings.TrimSpace(colStr)) {
			spec.Column = col
			found = true
			break
		}
	}
	if !found {
		return DefaultSortSpec, fmt.Errorf("invalid sort column '%s'. must be Filename, Size, Change", colStr)
	}

	if dirStr != "" {
		dir := SortDirection(strings.ToLower(strings.TrimSpace(dirStr)))
		if _, ok := ValidSortDirections[dir]; !ok {
			return DefaultSortSpec, fmt.Errorf("invalid sort direction '%s'. must be asc, desc", dirStr)
		}
		spec.Direction = dir
	}
	return spec, nil
}
