// internal/domain/common/coerce.go
package common

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ToNumber は入力値を数値に寄せます。
// 数値として解釈できない値（nil / 空文字 / 不正文字列 / NaN / ±Inf）は 0。
func ToNumber(v any) float64 {
	var f float64
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int8:
		f = float64(t)
	case int16:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint:
		f = float64(t)
	case uint8:
		f = float64(t)
	case uint16:
		f = float64(t)
	case uint32:
		f = float64(t)
	case uint64:
		f = float64(t)
	case bool:
		if t {
			f = 1
		}
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return 0
		}
		f = n
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = n
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// NonNegativeNumber は ToNumber の結果が負なら 0 を返します（価格用）。
func NonNegativeNumber(v any) float64 {
	f := ToNumber(v)
	if f < 0 {
		return 0
	}
	return f
}

// NonNegativeInt は小数部を切り捨てた非負整数を返します（在庫数用）。
func NonNegativeInt(v any) int {
	f := math.Trunc(ToNumber(v))
	if f <= 0 {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

// StringOr は空文字なら def を返します。値そのものは加工しない。
func StringOr(s, def string) string {
	if s != "" {
		return s
	}
	return def
}
