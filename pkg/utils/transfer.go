package utils

import (
	"strconv"
	"strings"

	"BlogSphere.com/pkg/constants"
)

func ConvertStringToInt64(v string) (int64, error) {
	if res, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err != nil {
		return -1, err
	} else {
		return res, nil
	}
}

// ParseOptionalID returns nil for an empty or zero value.
func ParseOptionalID(v string) (*int64, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}
	id, err := ConvertStringToInt64(v)
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, nil
	}
	return &id, nil
}

// NormalizePage clamps page number and size to sane values.
func NormalizePage(pageNum, pageSize int64) (int64, int64) {
	if pageNum <= 0 {
		pageNum = 1
	}
	if pageSize <= 0 {
		pageSize = constants.DefaultLimit
	}
	if pageSize > constants.MaxLimit {
		pageSize = constants.MaxLimit
	}
	return pageNum, pageSize
}

func Offset(pageNum, pageSize int64) int {
	return int((pageNum - 1) * pageSize)
}
