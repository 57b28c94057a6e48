package richtext

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTruthy(t *testing.T) {
	require.False(t, Truthy(nil))
	require.False(t, Truthy(false))
	require.False(t, Truthy(""))
	require.True(t, Truthy(true))
	require.True(t, Truthy("red"))
	require.True(t, Truthy(1))
}

func TestAnnotations_Equal(t *testing.T) {
	require.True(t, Annotations{}.Equal(Annotations{}))
	require.True(t, Annotations(nil).Equal(Annotations{}))
	require.True(t, Annotations{"bold": true}.Equal(Annotations{"bold": true}))
	require.False(t, Annotations{"bold": true}.Equal(Annotations{"bold": false}))
	require.False(t, Annotations{"bold": true}.Equal(Annotations{"italic": true}))
	require.False(t, Annotations{"bold": true}.Equal(Annotations{"bold": true, "italic": true}))
}

func TestAnnotations_CloneIsIndependent(t *testing.T) {
	a := Annotations{"bold": true}
	b := a.Clone()
	b["bold"] = false
	require.Equal(t, true, a["bold"])
}

func TestReconcile_TruthyDeltaToggles(t *testing.T) {
	// Off -> on.
	got := reconcile(Annotations{}, Annotations{"bold": true})
	require.Equal(t, true, got["bold"])

	// On -> off.
	got = reconcile(Annotations{"bold": true}, Annotations{"bold": true})
	require.Equal(t, false, got["bold"])
}

func TestReconcile_FalsyDeltaAssigns(t *testing.T) {
	got := reconcile(Annotations{"bold": true}, Annotations{"bold": false})
	require.Equal(t, false, got["bold"])
}

func TestReconcile_KeepsUnrelatedKeys(t *testing.T) {
	got := reconcile(Annotations{"italic": true}, Annotations{"bold": true})
	require.Equal(t, true, got["italic"])
	require.Equal(t, true, got["bold"])
}

func TestRuns_PlainText(t *testing.T) {
	rs := Runs{
		{Text: "Hello ", Annotations: Annotations{}},
		{Text: "world", Annotations: Annotations{"bold": true}},
	}
	require.Equal(t, "Hello world", rs.PlainText())
}

func TestFilterEmpty_DropsEmptyRuns(t *testing.T) {
	rs := Runs{
		{Text: "", Annotations: Annotations{}},
		{Text: "a", Annotations: Annotations{}},
		{Text: "", Annotations: Annotations{"bold": true}},
	}
	got := filterEmpty(rs)
	require.Len(t, got, 1)
	require.Equal(t, "a", got[0].Text)
}

func TestFilterEmpty_ResetsToEmptyDocument(t *testing.T) {
	got := filterEmpty(Runs{{Text: "", Annotations: Annotations{"bold": true}}})
	require.Len(t, got, 1)
	require.Equal(t, "", got[0].Text)
	require.True(t, got[0].Annotations.Equal(Annotations{}))
}

func TestMergeAdjacent_ConcatenatesEqualAnnotations(t *testing.T) {
	rs := Runs{
		{Text: "Hel", Annotations: Annotations{"bold": true}},
		{Text: "lo", Annotations: Annotations{"bold": true}},
		{Text: " world", Annotations: Annotations{}},
	}
	got := mergeAdjacent(rs)
	require.Len(t, got, 2)
	require.Equal(t, "Hello", got[0].Text)
	require.Equal(t, " world", got[1].Text)
}

func TestMergeAdjacent_EmptyAnnotationSetsMerge(t *testing.T) {
	rs := Runs{
		{Text: "a", Annotations: Annotations{}},
		{Text: "b", Annotations: Annotations{}},
	}
	got := mergeAdjacent(rs)
	require.Len(t, got, 1)
	require.Equal(t, "ab", got[0].Text)
}

func TestMergeAdjacent_DistinctAnnotationsStaySplit(t *testing.T) {
	rs := Runs{
		{Text: "a", Annotations: Annotations{"bold": true}},
		{Text: "b", Annotations: Annotations{"bold": false}},
	}
	got := mergeAdjacent(rs)
	require.Len(t, got, 2)
}

func TestRuns_CloneIsDeep(t *testing.T) {
	rs := Runs{{Text: "a", Annotations: Annotations{"bold": true}}}
	cp := rs.Clone()
	cp[0].Annotations["bold"] = false
	require.Equal(t, true, rs[0].Annotations["bold"])
}
