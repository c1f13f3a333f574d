package treeq_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/treeq-dev/treeq"
	"github.com/treeq-dev/treeq/ir"
)

func TestCoalesceDefault(t *testing.T) {
	doc := mustDoc(t, map[string]any{"foo": map[string]any{"bar": "not a number"}})

	got, err := treeq.GetStrict[int](treeq.MustCompile(".foo.missing -> int ?? default"), doc)
	if err != nil || got != 0 {
		t.Errorf("default coalesce = %d, %v; want 0, nil", got, err)
	}

	// default also absorbs cast failures
	got, err = treeq.GetStrict[int](treeq.MustCompile(".foo.bar -> int ?? default"), doc)
	if err != nil || got != 0 {
		t.Errorf("default coalesce over cast failure = %d, %v; want 0, nil", got, err)
	}

	node, err := treeq.MustCompile(".foo.missing ?? default").LookupStrict(doc)
	if err != nil || node != nil {
		t.Errorf("node-level default coalesce = %v, %v; want nil, nil", node, err)
	}
	if v, ok := treeq.MustCompile(".foo.missing ?? default").Lookup(doc); !ok || v != nil {
		t.Errorf("Lookup with default coalesce = %v, %v; want nil, true", v, ok)
	}
}

func TestCoalesceExpr(t *testing.T) {
	doc := mustDoc(t, map[string]any{"foo": map[string]any{"bar": "not a number"}})

	got, err := treeq.GetStrict[int](treeq.MustCompile(".foo.bar -> number ?? 42"), doc)
	if err != nil || got != 42 {
		t.Errorf("expr coalesce over cast failure = %d, %v; want 42, nil", got, err)
	}

	s, err := treeq.GetStrict[string](treeq.MustCompile(`.foo.missing ?? "n/a"`), doc)
	if err != nil || s != "n/a" {
		t.Errorf("expr coalesce = %q, %v; want n/a, nil", s, err)
	}
}

func TestCoalesceLazy(t *testing.T) {
	doc := mustDoc(t, map[string]any{"name": "pkg"})
	calls := 0
	env := treeq.Env{"fallback": func() string { calls++; return "zzz" }}

	got, err := treeq.GetStrict[string](treeq.MustCompile(".name -> str ?? fallback()"), doc, treeq.WithEnv(env))
	if err != nil || got != "pkg" {
		t.Fatalf("successful query = %q, %v", got, err)
	}
	if calls != 0 {
		t.Errorf("fallback ran %d times on the success path", calls)
	}

	got, err = treeq.GetStrict[string](treeq.MustCompile(".missing -> str ?? fallback()"), doc, treeq.WithEnv(env))
	if err != nil || got != "zzz" {
		t.Fatalf("failing query = %q, %v; want zzz", got, err)
	}
	if calls != 1 {
		t.Errorf("fallback ran %d times, want 1", calls)
	}
}

func TestCoalesceNodeFallback(t *testing.T) {
	doc := mustDoc(t, map[string]any{})
	alt := ir.FromString("alt")
	env := treeq.Env{"alt": alt}

	node, err := treeq.MustCompile(".missing ?? alt").LookupStrict(doc, treeq.WithEnv(env))
	if err != nil {
		t.Fatal(err)
	}
	if node != treeq.Value(alt) {
		t.Errorf("node fallback = %v, want the env node", node)
	}

	// a non-node fallback cannot stand in for a node result
	_, err = treeq.MustCompile(".missing ?? 42").LookupStrict(doc)
	if err == nil {
		t.Error("scalar fallback for a node-shaped lookup succeeded")
	}
	if _, ok := treeq.MustCompile(".missing ?? 42").Lookup(doc); ok {
		t.Error("Lookup with scalar fallback reported found")
	}

	// but typed adapters convert it
	got, err := treeq.GetStrict[int](treeq.MustCompile(".missing ?? 42"), doc)
	if err != nil || got != 42 {
		t.Errorf("typed adapter fallback = %d, %v; want 42", got, err)
	}
}

type manifest struct {
	Name    string   `treeq:"name"`
	Edition int      `treeq:"edition"`
	Authors []string `treeq:"authors"`
}

func TestDecodeFinisher(t *testing.T) {
	doc := mustDoc(t, map[string]any{
		"package": map[string]any{
			"name":    "left-pad",
			"edition": 2021,
			"authors": []any{"a", "b"},
		},
	})
	want := manifest{Name: "left-pad", Edition: 2021, Authors: []string{"a", "b"}}

	got, err := treeq.Decode[manifest](treeq.MustCompile(".package >> (manifest)"), doc)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("decode mismatch (-want +got):\n%s", diff)
	}

	// GetStrict routes >> plans through the decoder
	got, err = treeq.GetStrict[manifest](treeq.MustCompile(".package >> manifest"), doc)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetStrict decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeFailed(t *testing.T) {
	doc := mustDoc(t, map[string]any{
		"package": map[string]any{"edition": "not a number"},
	})
	_, err := treeq.Decode[manifest](treeq.MustCompile(".package >> (manifest)"), doc)
	if !errors.Is(err, treeq.ErrDecode) {
		t.Fatalf("decode = %v, want ErrDecode", err)
	}
	var de *treeq.DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("error %v is not a DecodeError", err)
	}
	if de.Type != "manifest" {
		t.Errorf("DecodeError.Type = %q, want manifest", de.Type)
	}

	// decode failures coalesce like any other
	got, err := treeq.GetStrict[manifest](treeq.MustCompile(".package >> manifest ?? default"), doc)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(manifest{}, got); diff != "" {
		t.Errorf("coalesced decode failure (-want +got):\n%s", diff)
	}
}

func TestDecodeRejectsCastPlans(t *testing.T) {
	doc := mustDoc(t, map[string]any{"x": 1})
	_, err := treeq.Decode[int](treeq.MustCompile(".x -> int"), doc)
	if !errors.Is(err, treeq.ErrUnsupported) {
		t.Errorf("Decode on a cast plan = %v, want ErrUnsupported", err)
	}
}

func TestDecodeInto(t *testing.T) {
	doc := mustDoc(t, map[string]any{
		"package": map[string]any{"name": "left-pad", "edition": 2021},
	})
	var m manifest
	if err := treeq.MustCompile(".package >> (manifest)").DecodeInto(doc, &m); err != nil {
		t.Fatal(err)
	}
	if m.Name != "left-pad" || m.Edition != 2021 {
		t.Errorf("DecodeInto = %+v", m)
	}

	var missing manifest
	err := treeq.MustCompile(".nope >> (manifest)").DecodeInto(doc, &missing)
	if !errors.Is(err, treeq.ErrNotFound) {
		t.Errorf("DecodeInto on a missing path = %v, want ErrNotFound", err)
	}
}

func TestGetConversions(t *testing.T) {
	doc := mustDoc(t, map[string]any{"n": 42, "f": 1.5})

	if got, ok := treeq.Get[int](treeq.MustCompile(".n -> int"), doc); !ok || got != 42 {
		t.Errorf("Get[int] = %d, %v", got, ok)
	}
	if got, ok := treeq.Get[int32](treeq.MustCompile(".n -> int"), doc); !ok || got != 42 {
		t.Errorf("Get[int32] = %d, %v", got, ok)
	}
	if got, ok := treeq.Get[float32](treeq.MustCompile(".f -> float"), doc); !ok || got != 1.5 {
		t.Errorf("Get[float32] = %v, %v", got, ok)
	}
	// float results do not silently truncate to ints
	if _, ok := treeq.Get[int](treeq.MustCompile(".f -> float"), doc); ok {
		t.Error("Get[int] of a float cast succeeded")
	}
}

func TestOutcomeAccessors(t *testing.T) {
	doc := mustDoc(t, map[string]any{"x": 1})

	o := treeq.MustCompile(".x").Eval(doc)
	if !o.Found() || o.Err() != nil {
		t.Fatalf("Eval(.x) = %v", o.Err())
	}
	if o.Node() == nil || o.Val() != any(o.Node()) {
		t.Errorf("uncast outcome Val() should be the node")
	}

	o = treeq.MustCompile(".x -> int").Eval(doc)
	if v, ok := o.Val().(int64); !ok || v != 1 {
		t.Errorf("cast outcome Val() = %v", o.Val())
	}

	o = treeq.MustCompile(".missing").Eval(doc)
	if o.Found() || o.Node() != nil || o.Val() != nil {
		t.Errorf("failed outcome leaked a value: %v %v", o.Node(), o.Val())
	}
}
