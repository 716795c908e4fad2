package style_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marlowe/lintel/pkg/rule"
	"github.com/marlowe/lintel/pkg/rule/ruletest"
	"github.com/marlowe/lintel/pkg/rules/style"
)

var importDeps = []ruletest.Dep{
	{Path: "bytes", Src: "package bytes\n"},
	{Path: "strings", Src: "package strings\n"},
	{Path: "example.com/dep", Src: "package dep\n"},
	{Path: "example.com/other", Src: "package other\n"},
}

func runImportOrder(t *testing.T, src string) []rule.Diagnostic {
	t.Helper()
	ctx := ruletest.Load(t, src, importDeps...)
	return ruletest.Run(t, ctx, style.ImportOrder{})
}

func TestImportOrder(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want int
		msg  string
	}{
		{
			name: "reports stdlib import after third-party",
			src: `package p

import (
	_ "strings"
	_ "example.com/dep"
	_ "bytes"
)`,
			want: 1,
			msg:  `import "bytes" is out of order`,
		},
		{
			name: "reports every out-of-order import",
			src: `package p

import (
	_ "example.com/dep"
	_ "bytes"
	_ "strings"
)`,
			want: 2,
		},
		{
			name: "accepts grouped imports",
			src: `package p

import (
	_ "bytes"
	_ "strings"
	_ "example.com/dep"
	_ "example.com/other"
)`,
			want: 0,
		},
		{
			name: "accepts a single import",
			src: `package p

import _ "example.com/dep"`,
			want: 0,
		},
		{
			name: "accepts files without imports",
			src: `package p

func f() {}`,
			want: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			diags := runImportOrder(t, tc.src)
			require.Len(t, diags, tc.want)
			if tc.want > 0 {
				assert.Equal(t, "import-order", diags[0].Rule)
				if tc.msg != "" {
					assert.Contains(t, diags[0].Message, tc.msg)
				}
			}
		})
	}
}
