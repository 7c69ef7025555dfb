package util

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBlank(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    bool
	}{
		{"空串", "", true},
		{"纯空白", "  \t\n ", true},
		{"空段落", "<p></p>", true},
		{"换行占位", "<p><br></p>", true},
		{"nbsp 占位", "<p>&nbsp;&nbsp;</p>", true},
		{"零宽字符", "\u200B\u200C\uFEFF", true},
		{"嵌套空标签", "<div><span> </span></div>", true},
		{"普通文本", "hello", false},
		{"标签包裹文本", "<p>你好</p>", false},
		{"空白夹文本", "  <p> a </p>  ", false},
		{"尖括号前的文本保留", "1 < 2", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsBlank(tc.content))
		})
	}
}

func TestGetSafeContentType(t *testing.T) {
	pngHeader := []byte("\x89PNG\r\n\x1a\n")
	reader := bytes.NewReader(pngHeader)

	ct, err := GetSafeContentType(reader)
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)

	// 嗅探完成后读取位置必须回到起点
	pos, err := reader.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	assert.Zero(t, pos)
}

func TestGetSafeContentType_TextFallback(t *testing.T) {
	reader := strings.NewReader("just plain text")

	ct, err := GetSafeContentType(reader)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ct, "text/plain"))
}
