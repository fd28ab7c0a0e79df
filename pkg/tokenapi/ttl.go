package tokenapi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTTL はTTL文字列が解釈できない場合のエラー。
var ErrInvalidTTL = errors.New("TTLの形式が不正です")

// ParseTTL はトークン発行APIのTTL表記を期間に変換する。
// 数値のみの場合は時間単位、末尾が"m"の場合は分単位として扱う。
func ParseTTL(s string) (time.Duration, error) {
	unit := time.Hour
	value := strings.TrimSpace(s)
	if v, ok := strings.CutSuffix(value, "m"); ok {
		unit = time.Minute
		value = v
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTTL, s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTTL, s)
	}
	return time.Duration(n) * unit, nil
}
