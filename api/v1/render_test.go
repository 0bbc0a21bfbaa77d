package v1

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt32(t *testing.T) {
	cases := []struct {
		name string
		in   string
		def  int32
		want int32
	}{
		{"valid value", "3", 20, 3},
		{"empty falls back to default", "", 20, 20},
		{"garbage falls back to default", "abc", 20, 20},
		{"trailing garbage falls back to default", "12abc", 20, 20},
		{"zero falls back to default", "0", 7, 7},
		{"negative falls back to default", "-5", 1, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, toInt32(tc.in, tc.def))
		})
	}
}

func TestToInt64(t *testing.T) {
	assert.Equal(t, int64(42), toInt64("42"))
	// 非法路径参数归零，由后续查询以记录不存在收场
	assert.Equal(t, int64(0), toInt64("abc"))
	assert.Equal(t, int64(0), toInt64(""))
}
