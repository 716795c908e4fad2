package perf_test

import (
	"go/ast"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marlowe/lintel/pkg/rule"
	"github.com/marlowe/lintel/pkg/rule/ruletest"
	"github.com/marlowe/lintel/pkg/rules/perf"
)

func runPrealloc(t *testing.T, src string) []rule.Diagnostic {
	t.Helper()
	ctx := ruletest.Load(t, src)
	return ruletest.Run(t, ctx, perf.PreallocSlice{})
}

func TestPreallocSlice(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want int
	}{
		{
			name: "reports growth in a range loop",
			src: `package p
func f(xs []int) []int {
	var out []int
	for _, x := range xs {
		out = append(out, x)
	}
	return out
}`,
			want: 1,
		},
		{
			name: "reports growth in a for loop",
			src: `package p
func f(n int) []int {
	var out []int
	for i := 0; i < n; i++ {
		out = append(out, i)
	}
	return out
}`,
			want: 1,
		},
		{
			name: "reports spread append",
			src: `package p
func f(parts [][]int) []int {
	var out []int
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}`,
			want: 1,
		},
		{
			name: "ignores append into a different slice",
			src: `package p
func f(xs []int) []int {
	var out []int
	for _, x := range xs {
		out = append(xs, x)
	}
	return out
}`,
			want: 0,
		},
		{
			name: "ignores short declaration inside the loop",
			src: `package p
func f(xs []int) int {
	var out []int
	n := 0
	for _, x := range xs {
		out := append(out, x)
		n += len(out)
	}
	_ = out
	return n
}`,
			want: 0,
		},
		{
			name: "ignores shadowed append",
			src: `package p
func f(xs []int, append func([]int, int) []int) []int {
	var out []int
	for _, x := range xs {
		out = append(out, x)
	}
	return out
}`,
			want: 0,
		},
		{
			name: "ignores append without new elements",
			src: `package p
func f(xs []int) []int {
	var out []int
	for range xs {
		out = append(out)
	}
	return out
}`,
			want: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			diags := runPrealloc(t, tc.src)
			require.Len(t, diags, tc.want)
			if tc.want > 0 {
				assert.Equal(t, "prealloc-slice", diags[0].Rule)
				assert.Contains(t, diags[0].Message, "out")
			}
		})
	}
}

func TestPreallocSliceProperties(t *testing.T) {
	r := perf.PreallocSlice{}
	assert.Equal(t, "prealloc-slice", r.Name())
	assert.Equal(t, rule.CategoryPerf, r.Category())
	assert.Equal(t, rule.SeverityInfo, r.Severity())
	assert.True(t, r.NeedsTypeInfo())
	require.Len(t, r.NodeTypes(), 2)
	_, ok := r.NodeTypes()[0].(*ast.RangeStmt)
	assert.True(t, ok)
}
