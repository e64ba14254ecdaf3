package web

import (
	"math"
	"strconv"
	"strings"
)

// FormatInt 数字展示格式化：四舍五入取整后按千位用 "." 分组（固定写法，
// 不跟随系统 locale）。非数字/空值一律按 0 展示，页面渲染不允许因此出错
func FormatInt(v interface{}) string {
	f := toFloat(v)
	// NaN/±Inf 同样按 0 处理，否则取整结果不在 int64 值域内
	if math.IsNaN(f) || math.IsInf(f, 0) {
		f = 0
	}
	return groupThousands(int64(math.Round(f)))
}

// toFloat 尽力把模板里可能出现的值转成 float64，转不了就按 0 处理
func toFloat(v interface{}) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint:
		return float64(x)
	case uint64:
		return float64(x)
	case *float64:
		if x == nil {
			return 0
		}
		return *x
	case *int64:
		if x == nil {
			return 0
		}
		return float64(*x)
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// groupThousands 从低位起每三位插入一个 "."
func groupThousands(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
