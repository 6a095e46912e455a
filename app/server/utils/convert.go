package utils

import (
	"strconv"
)

func P[T any](v T) *T {
	return &v
}

func ParseUint(s string) (uint, error) {
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(u), nil
}

// UniqueUints 去重并保持原有顺序
func UniqueUints(arr []uint) []uint {
	seen := make(map[uint]struct{}, len(arr))
	ids := []uint{}
	for _, id := range arr {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
