package firestore

import (
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"storefront/internal/domain/common"
)

func asString(v any) string {
	if v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	default:
		return fmt.Sprint(v)
	}
}

// asFloat は数値/数値文字列を float64 に寄せる（不正値は 0）。
func asFloat(v any) float64 {
	return common.ToNumber(v)
}

// asInt は小数を切り捨てる。
func asInt(v any) int {
	n := common.ToNumber(v)
	if n >= float64(maxInt32) {
		return maxInt32
	}
	if n <= -float64(maxInt32) {
		return -maxInt32
	}
	return int(n)
}

const maxInt32 = 1<<31 - 1

// asTime returns (time, ok)
func asTime(v any) (time.Time, bool) {
	if v == nil {
		return time.Time{}, false
	}
	switch t := v.(type) {
	case time.Time:
		return t, true
	default:
		return time.Time{}, false
	}
}

// collectDocs はイテレータを最後まで読み、decode した結果を返す。
func collectDocs[T any](it *firestore.DocumentIterator, decode func(*firestore.DocumentSnapshot) T) ([]T, error) {
	defer it.Stop()

	out := []T{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, decode(doc))
	}
	return out, nil
}
