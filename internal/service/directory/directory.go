package directory

import (
	"VendorChat/entity"
	"VendorChat/internal/lib/validate"
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Load reads the vendor directory file and validates every entry.
func Load(path string) (entity.VendorDirectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vendors file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (entity.VendorDirectory, error) {
	var directory entity.VendorDirectory
	if err := json.Unmarshal(data, &directory); err != nil {
		return nil, fmt.Errorf("decode vendors: %w", err)
	}
	if directory == nil {
		return nil, fmt.Errorf("vendors file is empty")
	}

	for id, v := range directory {
		if id == "" {
			return nil, fmt.Errorf("vendor with empty id")
		}
		if err := validate.Struct(v); err != nil {
			return nil, fmt.Errorf("vendor %s: %w", id, err)
		}
	}

	return directory, nil
}

// Entry is an id and display name pair.
type Entry [2]string

// List returns id/name pairs ordered by id.
func List(directory entity.VendorDirectory) []Entry {
	list := make([]Entry, 0, len(directory))
	for id, v := range directory {
		list = append(list, Entry{id, v.Name})
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i][0] < list[j][0]
	})
	return list
}
