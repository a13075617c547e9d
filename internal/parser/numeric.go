package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reNonDigit    = regexp.MustCompile(`[^\d]`)
	reNonNumeric  = regexp.MustCompile(`[^\d.]`)
	stockSentinel = map[string]bool{"X": true, "N/A": true, "-": true, "": true}
)

// SafeInt 防御式整数解析，用于库存单元格
// 空值与占位符（X / N/A / -，不区分大小写）记 0；
// 其余情况剥掉非数字字符后解析，失败同样记 0，绝不报错。
func SafeInt(val string) int {
	val = strings.ToUpper(strings.TrimSpace(val))
	if stockSentinel[val] {
		return 0
	}

	digits := reNonDigit.ReplaceAllString(val, "")
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// SafePrice 防御式价格解析，用于价格单元格
// 空值返回 nil（当晚无挂牌价，区别于 0 元）；
// 小数逗号归一为点，剥掉货币符号等非数字字符后解析，失败返回 nil。
func SafePrice(val string) *float64 {
	val = strings.TrimSpace(val)
	if val == "" {
		return nil
	}

	val = strings.ReplaceAll(val, ",", ".")
	val = reNonNumeric.ReplaceAllString(val, "")
	if val == "" {
		return nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil
	}
	return &f
}
