package util

import (
	"io"
	"net/http"
	"regexp"
	"strings"
)

var (
	htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

	// 富文本编辑器常见的占位标记，剥离后再判断是否为空
	markerReplacer = strings.NewReplacer(
		"&nbsp;", " ",
		"\u200B", "",
		"\u200C", "",
		"\u200D", "",
		"\uFEFF", "",
	)
)

// IsBlank 判断内容在剥离格式标记与空白后是否为语义空
func IsBlank(content string) bool {
	stripped := htmlTagRegex.ReplaceAllString(content, "")
	stripped = markerReplacer.Replace(stripped)
	return strings.TrimSpace(stripped) == ""
}

// GetSafeContentType 嗅探文件真实 MIME 类型，不信任客户端申报值
func GetSafeContentType(reader io.ReadSeeker) (string, error) {
	buf := make([]byte, 512)
	n, err := reader.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err = reader.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(buf[:n]), nil
}
