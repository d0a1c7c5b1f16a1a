package service

import (
	"strings"
	"unicode"
)

// Tokenize 把关键词拆成检索 token：先按空白切词；词内的 CJK 连续段取
// 单字加相邻双字，拉丁段超过 2 个字符时取整段加去掉末位字符的前缀。
// 结果去重并保持出现顺序
func Tokenize(keyword string) []string {
	seen := make(map[string]bool)
	var tokens []string
	add := func(t string) {
		if t != "" && !seen[t] {
			seen[t] = true
			tokens = append(tokens, t)
		}
	}

	for _, word := range strings.Fields(keyword) {
		for _, run := range splitRuns(word) {
			chars := []rune(run.text)
			if run.cjk {
				for _, ch := range chars {
					add(string(ch))
				}
				for i := 0; i+1 < len(chars); i++ {
					add(string(chars[i : i+2]))
				}
				continue
			}
			add(run.text)
			if len(chars) > 2 {
				add(string(chars[:len(chars)-1]))
			}
		}
	}
	return tokens
}

type keywordRun struct {
	text string
	cjk  bool
}

// splitRuns 把一个词按 CJK / 非 CJK 切成连续段
func splitRuns(word string) []keywordRun {
	var runs []keywordRun
	var current []rune
	currentCJK := false

	flush := func() {
		if len(current) > 0 {
			runs = append(runs, keywordRun{text: string(current), cjk: currentCJK})
			current = nil
		}
	}

	for _, r := range word {
		cjk := isCJK(r)
		if len(current) > 0 && cjk != currentCJK {
			flush()
		}
		currentCJK = cjk
		current = append(current, r)
	}
	flush()
	return runs
}

func isCJK(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		unicode.Is(unicode.Hangul, r)
}

// CleanKeyword 去掉空白、标点和符号并转小写。口径必须与模糊档 SQL 对
// 字段做的 [[:space:][:punct:]] 清洗一致，POSIX punct 类含 + = < 这类符号
func CleanKeyword(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// InterleavedPattern 逐字符穿插 % 的 LIKE 模式："abc" → "%a%b%c%"，
// 字符按序出现即可命中。清洗后的关键词不含 LIKE 元字符（均属标点）
func InterleavedPattern(cleaned string) string {
	if cleaned == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString("%")
	for _, r := range cleaned {
		b.WriteRune(r)
		b.WriteString("%")
	}
	return b.String()
}
