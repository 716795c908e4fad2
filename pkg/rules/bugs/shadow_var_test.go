package bugs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marlowe/lintel/pkg/rule"
	"github.com/marlowe/lintel/pkg/rule/ruletest"
	"github.com/marlowe/lintel/pkg/rules/bugs"
)

func runShadowVar(t *testing.T, src string) []rule.Diagnostic {
	t.Helper()
	ctx := ruletest.Load(t, src)
	return ruletest.Run(t, ctx, bugs.ShadowVar{})
}

func TestShadowVar(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want int
		msg  string
	}{
		{
			name: "reports shadowing in an inner block",
			src: `package p
func f() int {
	x := 1
	{
		x := 2
		_ = x
	}
	return x
}`,
			want: 1,
			msg:  "x shadows the declaration at",
		},
		{
			name: "reports shadowed error variable",
			src: `package p
func g() error { return nil }
func f() error {
	err := g()
	if err == nil {
		err := g()
		_ = err
	}
	return err
}`,
			want: 1,
			msg:  "err shadows the declaration at",
		},
		{
			name: "reports shadowed parameter",
			src: `package p
func f(x int) int {
	if x > 0 {
		x := 2
		_ = x
	}
	return x
}`,
			want: 1,
		},
		{
			name: "reports shadowed package declaration",
			src: `package p
var global = 1
func f() int {
	global := 2
	return global
}`,
			want: 1,
		},
		{
			name: "reports shadowed builtin",
			src: `package p
func f() int {
	len := 3
	return len
}`,
			want: 1,
			msg:  "len shadows a builtin",
		},
		{
			name: "ignores reuse of a variable in the same scope",
			src: `package p
func g() error { return nil }
func f() (int, error) {
	x, err := 1, g()
	y, err := 2, g()
	_ = err
	return x + y, nil
}`,
			want: 0,
		},
		{
			name: "ignores fresh names",
			src: `package p
func f() int {
	x := 1
	{
		y := 2
		_ = y
	}
	return x
}`,
			want: 0,
		},
		{
			name: "ignores type switch variables",
			src: `package p
func f(v any) int {
	switch y := v.(type) {
	case int:
		return y
	default:
		_ = y
		return 0
	}
}`,
			want: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			diags := runShadowVar(t, tc.src)
			require.Len(t, diags, tc.want)
			if tc.want > 0 {
				assert.Equal(t, "shadow-var", diags[0].Rule)
				if tc.msg != "" {
					assert.Contains(t, diags[0].Message, tc.msg)
				}
			}
		})
	}
}
