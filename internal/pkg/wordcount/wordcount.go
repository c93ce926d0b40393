package wordcount

import (
	"fmt"
	"strings"
)

// Count 统计正文字数
// 按空白分词计数，空内容或纯空白返回 0
func Count(content string) int {
	return len(strings.Fields(content))
}

// Total 汇总多段正文的字数
func Total(contents ...string) int {
	total := 0
	for _, c := range contents {
		total += Count(c)
	}
	return total
}

// DefaultChapterTitle 生成默认章节标题
func DefaultChapterTitle(number int) string {
	return fmt.Sprintf("Chapter %d", number)
}
