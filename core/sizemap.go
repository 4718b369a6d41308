package core

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/huangsam/sizewatch/internal/contract"
	"github.com/huangsam/sizewatch/schema"
)

// NormalizeSizes rewrites every key of sizes with normalize. Keys that collapse
// onto the same name have their sizes summed and a warning is printed.
// A nil normalizer returns sizes unchanged.
func NormalizeSizes(sizes schema.SizeMap, normalize Normalizer) schema.SizeMap {
	if normalize == nil {
		return sizes
	}
	out := make(schema.SizeMap, len(sizes))
	for _, name := range sizes.Filenames() {
		key := normalize(name)
		if _, exists := out[key]; exists {
			contract.LogWarn("strip-hash collision", fmt.Errorf("%s maps to %s which already exists, sizes are summed", name, key))
		}
		out[key] += sizes[name]
	}
	return out
}

// LoadSizeMap reads a JSON object of filename to byte size.
func LoadSizeMap(path string) (schema.SizeMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read size map: %w", err)
	}
	var sizes schema.SizeMap
	if err := json.Unmarshal(data, &sizes); err != nil {
		return nil, fmt.Errorf("failed to parse size map %s: %w", path, err)
	}
	if sizes == nil {
		sizes = schema.SizeMap{}
	}
	for name, size := range sizes {
		if size < 0 {
			return nil, fmt.Errorf("invalid size map %s: %s has negative size %d", path, name, size)
		}
	}
	return sizes, nil
}
