package util

import (
	"strconv"
)

// ParseIntParam 解析路径参数，失败时返回 ok=false
func ParseIntParam(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
