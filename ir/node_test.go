package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/treeq-dev/treeq"
)

func TestFromMapGet(t *testing.T) {
	node := FromMap(map[string]*Node{
		"b": FromInt(2),
		"a": FromString("x"),
	})
	if node.Type != ObjectType || len(node.Fields) != 2 {
		t.Fatalf("FromMap = %v fields", len(node.Fields))
	}
	// sorted key order
	if node.Fields[0].String != "a" || node.Fields[1].String != "b" {
		t.Errorf("field order = %q, %q", node.Fields[0].String, node.Fields[1].String)
	}
	if got := Get(node, "a"); got == nil || got.String != "x" {
		t.Errorf("Get(a) = %v", got)
	}
	if got := Get(node, "missing"); got != nil {
		t.Errorf("Get(missing) = %v", got)
	}
	for i, v := range node.Values {
		if v.Parent != node || v.ParentIndex != i {
			t.Errorf("value %d has wrong parent backlink", i)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := FromMap(map[string]*Node{
		"list": FromSlice([]*Node{FromInt(1), FromInt(2)}),
	})
	cl := orig.Clone()
	if diff := cmp.Diff(ToMap(orig)["list"].Values[0].Int64, ToMap(cl)["list"].Values[0].Int64); diff != "" {
		t.Fatalf("clone differs: %s", diff)
	}
	cl.Values[0].Values[0].Replace(FromInt(99))
	if *orig.Values[0].Values[0].Int64 != 1 {
		t.Error("mutating the clone changed the original")
	}
}

func TestSetField(t *testing.T) {
	node := FromMap(map[string]*Node{"a": FromInt(1)})
	if err := node.SetField("b", FromInt(2)); err != nil {
		t.Fatal(err)
	}
	if got := Get(node, "b"); got == nil || *got.Int64 != 2 {
		t.Errorf("Get(b) = %v", got)
	}
	// replace keeps position
	if err := node.SetField("a", FromString("now a string")); err != nil {
		t.Fatal(err)
	}
	if got := Get(node, "a"); got.Type != StringType {
		t.Errorf("Get(a) after SetField = %s", got.Type)
	}
	if len(node.Fields) != 2 {
		t.Errorf("field count = %d, want 2", len(node.Fields))
	}
	if err := FromInt(1).SetField("x", Null()); err == nil {
		t.Error("SetField on a scalar succeeded")
	}
}

func TestRemoveField(t *testing.T) {
	node := FromMap(map[string]*Node{
		"a": FromInt(1),
		"b": FromInt(2),
		"c": FromInt(3),
	})
	if err := node.RemoveField("b"); err != nil {
		t.Fatal(err)
	}
	if Get(node, "b") != nil {
		t.Error("b still present after removal")
	}
	// backlinks reindexed
	if got := Get(node, "c"); got.ParentIndex != 1 {
		t.Errorf("c.ParentIndex = %d, want 1", got.ParentIndex)
	}
	if err := node.RemoveField("nope"); err != nil {
		t.Errorf("removing an absent field: %v", err)
	}
}

func TestAppendReplace(t *testing.T) {
	arr := FromSlice([]*Node{FromString("a")})
	if err := arr.Append(FromString("b")); err != nil {
		t.Fatal(err)
	}
	if len(arr.Values) != 2 || arr.Values[1].ParentIndex != 1 {
		t.Fatalf("append: %v", arr.Values)
	}
	if err := FromString("x").Append(Null()); err == nil {
		t.Error("Append on a scalar succeeded")
	}

	arr.Values[0].Replace(FromInt(5))
	if arr.Values[0].Type != NumberType || *arr.Values[0].Int64 != 5 {
		t.Errorf("replace: %v", arr.Values[0])
	}
	if arr.Values[0].Parent != arr || arr.Values[0].ParentIndex != 0 {
		t.Error("replace lost the node's position")
	}
}

func TestPath(t *testing.T) {
	root := FromMap(map[string]*Node{
		"a": FromSlice([]*Node{
			FromMap(map[string]*Node{
				"b":       FromInt(1),
				"odd key": FromInt(2),
			}),
		}),
	})
	if got := root.Path(); got != "" {
		t.Errorf("root path = %q", got)
	}
	obj := root.Values[0].Values[0]
	if got := Get(obj, "b").Path(); got != "a[0].b" {
		t.Errorf("path = %q, want a[0].b", got)
	}
	if got := Get(obj, "odd key").Path(); got != "a[0].'odd key'" {
		t.Errorf("path = %q, want a[0].'odd key'", got)
	}
}

func TestVisit(t *testing.T) {
	node := FromMap(map[string]*Node{
		"a": FromSlice([]*Node{FromInt(1), FromInt(2)}),
	})
	pre, post := 0, 0
	err := node.Visit(func(y *Node, isPost bool) (bool, error) {
		if isPost {
			post++
		} else {
			pre++
		}
		return true, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if pre != 4 || post != 4 {
		t.Errorf("visit counts = %d pre, %d post; want 4, 4", pre, post)
	}
}

func TestLookupCapability(t *testing.T) {
	node := FromMap(map[string]*Node{
		"arr": FromSlice([]*Node{FromString("x")}),
	})
	child, ok := node.Lookup(treeq.FieldOf("arr"))
	if !ok {
		t.Fatal("Lookup(arr) not found")
	}
	elem, ok := child.Lookup(treeq.IndexOf(0))
	if !ok || elem.(*Node).String != "x" {
		t.Fatalf("Lookup([0]) = %v, %v", elem, ok)
	}
	if _, ok := child.Lookup(treeq.IndexOf(1)); ok {
		t.Error("out-of-range index found")
	}
	if _, ok := child.Lookup(treeq.FieldOf("x")); ok {
		t.Error("field lookup on an array found")
	}
	if _, ok := node.Lookup(treeq.IndexOf(0)); ok {
		t.Error("index lookup on an object found")
	}
}

func TestShapeCapability(t *testing.T) {
	i := FromInt(42)
	if v, ok := i.AsShape(treeq.IntShape); !ok || v.(int64) != 42 {
		t.Errorf("AsShape(int) = %v, %v", v, ok)
	}
	if v, ok := i.AsShape(treeq.FloatShape); !ok || v.(float64) != 42 {
		t.Errorf("AsShape(float) = %v, %v", v, ok)
	}
	if _, ok := i.AsShape(treeq.StringShape); ok {
		t.Error("int node cast to str")
	}
	if _, ok := FromInt(-1).AsShape(treeq.UintShape); ok {
		t.Error("negative cast to uint")
	}
	f := FromFloat(1.5)
	if _, ok := f.AsShape(treeq.IntShape); ok {
		t.Error("float node cast to int")
	}
	if v, ok := f.AsShape(treeq.NumberShape); !ok || v.(float64) != 1.5 {
		t.Errorf("AsShape(number) = %v, %v", v, ok)
	}
	if v, ok := Null().AsShape(treeq.NullShape); !ok || v != nil {
		t.Errorf("AsShape(null) = %v, %v", v, ok)
	}

	obj := FromMap(map[string]*Node{"k": FromString("v")})
	if v, ok := obj.AsShape(treeq.ObjectShape); !ok || len(v.(map[string]*Node)) != 1 {
		t.Errorf("AsShape(object) = %v, %v", v, ok)
	}
	if _, ok := obj.AsShapeMut(treeq.ArrayShape); ok {
		t.Error("object cast to mutable array")
	}
	if v, ok := obj.AsShapeMut(treeq.ObjectShape); !ok || v.(*Node) != obj {
		t.Error("mutable object cast should alias the node")
	}
}
