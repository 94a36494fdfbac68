package usecase

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"history_loader/internal/feature/history/domain/entity"
)

const (
	// systemMarker はシステムメッセージ行の先頭文字です。
	systemMarker = "!"
	// fieldSeparator はフィールド区切り文字です。
	fieldSeparator = ","
	// NoDataMarker はデータが存在しない場合にフィードが返す文字列です。
	NoDataMarker = "E,!NO_DATA!,"
	// barTimeLayout はレスポンス行のタイムスタンプ形式です。
	barTimeLayout = "2006-01-02 15:04:05"
)

// SplitLines はテキストを行境界文字（\r\n, \n, \r, \v, \f, \x1c, \x1d, \x1e,
// U+0085, U+2028, U+2029）で行に分割します。
// 末尾の改行は空行を生成しません。
func SplitLines(text string) []string {
	var lines []string
	for len(text) > 0 {
		i := strings.IndexFunc(text, isLineBoundary)
		if i < 0 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:i])
		_, size := utf8.DecodeRuneInString(text[i:])
		if text[i] == '\r' && i+1 < len(text) && text[i+1] == '\n' {
			size++
		}
		text = text[i+size:]
	}
	return lines
}

// isLineBoundary は r が行境界文字かを判定します。
func isLineBoundary(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// Clean はレスポンスからシステム行（"!" で始まる行）を取り除き、
// 各行末尾の "," を削除し、行の順序を反転（古い順）して "\n" で連結します。
func Clean(raw string) string {
	lines := SplitLines(raw)
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(line, systemMarker) {
			continue
		}
		cleaned = append(cleaned, strings.TrimRight(line, fieldSeparator))
	}
	reverse(cleaned)
	return strings.Join(cleaned, "\n")
}

// HasNoData はレスポンスにデータなしのエラーが含まれるかを判定します。
func HasNoData(raw string) bool {
	return strings.Contains(raw, NoDataMarker)
}

func reverse(lines []string) {
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
}

// ParseBars はクリーニング済みテキストを Bar のスライスに変換します。
// 形式: "YYYY-MM-DD HH:MM:SS,high,low,open,close,totalVolume,periodVolume[,trades]"
// 解析できない行はスキップし、エラーとして返します。
func ParseBars(symbol, interval, cleaned string) ([]entity.Bar, []error) {
	var (
		bars []entity.Bar
		errs []error
	)
	for i, line := range SplitLines(cleaned) {
		if line == "" {
			continue
		}
		b, err := parseBar(line)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", i+1, err))
			continue
		}
		b.Symbol = symbol
		b.Interval = interval
		bars = append(bars, b)
	}
	return bars, errs
}

func parseBar(line string) (entity.Bar, error) {
	f := strings.Split(line, fieldSeparator)
	if len(f) < 7 {
		return entity.Bar{}, fmt.Errorf("expected at least 7 fields, got %d: %q", len(f), line)
	}

	tm, err := time.Parse(barTimeLayout, f[0])
	if err != nil {
		return entity.Bar{}, fmt.Errorf("parse time %q: %w", f[0], err)
	}

	var prices [4]float64
	for i := range prices {
		p, err := strconv.ParseFloat(f[i+1], 64)
		if err != nil {
			return entity.Bar{}, fmt.Errorf("parse price %q: %w", f[i+1], err)
		}
		prices[i] = p
	}

	var volumes [3]int64
	for i := range volumes {
		if 5+i >= len(f) {
			break
		}
		v, err := strconv.ParseInt(f[5+i], 10, 64)
		if err != nil {
			return entity.Bar{}, fmt.Errorf("parse volume %q: %w", f[5+i], err)
		}
		volumes[i] = v
	}

	return entity.Bar{
		Time:         tm,
		High:         prices[0],
		Low:          prices[1],
		Open:         prices[2],
		Close:        prices[3],
		TotalVolume:  volumes[0],
		PeriodVolume: volumes[1],
		Trades:       volumes[2],
	}, nil
}
