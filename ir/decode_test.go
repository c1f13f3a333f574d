package ir

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type address struct {
	Street string `treeq:"street"`
	City   string `treeq:"city"`
}

type person struct {
	Name    string `treeq:"name"`
	Age     int    `treeq:"age"`
	Email   string `treeq:"-"`
	Address address
	Tags    map[string]string `treeq:"tags"`
	Scores  []float64         `treeq:"scores"`
}

func TestDecodeStruct(t *testing.T) {
	node, err := FromAny(map[string]any{
		"name":    "ada",
		"age":     36,
		"Email":   "ignored",
		"Address": map[string]any{"street": "s", "city": "c"},
		"tags":    map[string]any{"k": "v"},
		"scores":  []any{1.5, 2.5},
	})
	if err != nil {
		t.Fatal(err)
	}
	var got person
	if err := node.Decode(&got); err != nil {
		t.Fatal(err)
	}
	want := person{
		Name:    "ada",
		Age:     36,
		Address: address{Street: "s", City: "c"},
		Tags:    map[string]string{"k": "v"},
		Scores:  []float64{1.5, 2.5},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("decode mismatch (-want +got):\n%s", diff)
	}
	if got.Email != "" {
		t.Errorf("skipped field decoded: %q", got.Email)
	}
}

func TestDecodeCaseFold(t *testing.T) {
	node, err := FromAny(map[string]any{"NAME": "ada"})
	if err != nil {
		t.Fatal(err)
	}
	var got struct{ Name string }
	if err := node.Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Name != "ada" {
		t.Errorf("case-insensitive match = %q, want ada", got.Name)
	}
}

func TestDecodeEmbedded(t *testing.T) {
	type Base struct {
		ID int `treeq:"id"`
	}
	type item struct {
		Base
		Name string `treeq:"name"`
	}
	node, err := FromAny(map[string]any{"id": 7, "name": "x"})
	if err != nil {
		t.Fatal(err)
	}
	var got item
	if err := node.Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.ID != 7 || got.Name != "x" {
		t.Errorf("embedded decode = %+v", got)
	}
}

func TestDecodeScalars(t *testing.T) {
	var s string
	if err := FromString("v").Decode(&s); err != nil || s != "v" {
		t.Errorf("string decode = %q, %v", s, err)
	}
	var i8 int8
	if err := FromInt(300).Decode(&i8); err == nil {
		t.Error("int8 overflow not detected")
	}
	var u uint
	if err := FromInt(-1).Decode(&u); err == nil {
		t.Error("negative to uint not detected")
	}
	var f float64
	if err := FromInt(2).Decode(&f); err != nil || f != 2 {
		t.Errorf("int to float decode = %v, %v", f, err)
	}
	var i int
	if err := FromFloat(1.5).Decode(&i); err == nil {
		t.Error("float to int decoded")
	}
	var b bool
	if err := FromBool(true).Decode(&b); err != nil || !b {
		t.Errorf("bool decode = %v, %v", b, err)
	}
	if err := FromString("x").Decode(nil); err == nil {
		t.Error("nil destination accepted")
	}
	if err := FromString("x").Decode(s); err == nil {
		t.Error("non-pointer destination accepted")
	}
}

func TestDecodeNull(t *testing.T) {
	var p *int
	v := 5
	p = &v
	if err := Null().Decode(&p); err != nil {
		t.Fatal(err)
	}
	if p != nil {
		t.Errorf("null decode left %v", *p)
	}
	var s string
	if err := Null().Decode(&s); err != nil || s != "" {
		t.Errorf("null into string = %q, %v", s, err)
	}
}

func TestDecodeInterface(t *testing.T) {
	node, err := FromAny(map[string]any{
		"n":   1,
		"f":   1.5,
		"s":   "x",
		"b":   true,
		"z":   nil,
		"arr": []any{int64(1), "two"},
	})
	if err != nil {
		t.Fatal(err)
	}
	var got any
	if err := node.Decode(&got); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"n":   int64(1),
		"f":   1.5,
		"s":   "x",
		"b":   true,
		"z":   nil,
		"arr": []any{int64(1), "two"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("interface decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeTime(t *testing.T) {
	stamp := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	node := FromString(stamp.Format(time.RFC3339))
	var got time.Time
	if err := node.Decode(&got); err != nil {
		t.Fatal(err)
	}
	if !got.Equal(stamp) {
		t.Errorf("time decode = %v, want %v", got, stamp)
	}
	var bad time.Time
	if err := FromString("not a time").Decode(&bad); err == nil {
		t.Error("invalid timestamp decoded")
	}
}

func TestDecodeNodeDestination(t *testing.T) {
	orig := FromMap(map[string]*Node{"a": FromInt(1)})
	var dst *Node
	if err := orig.Decode(&dst); err != nil {
		t.Fatal(err)
	}
	if dst == orig {
		t.Fatal("node destination aliases the source")
	}
	dst.SetField("a", FromInt(2))
	if *Get(orig, "a").Int64 != 1 {
		t.Error("mutating the decoded copy changed the source")
	}
}

func TestDecodeStringToNumber(t *testing.T) {
	var i int
	if err := FromString("42").Decode(&i); err != nil || i != 42 {
		t.Errorf("string to int = %d, %v", i, err)
	}
	var f float64
	if err := FromString("1.5").Decode(&f); err != nil || f != 1.5 {
		t.Errorf("string to float = %v, %v", f, err)
	}
	if err := FromString("nope").Decode(&i); err == nil {
		t.Error("non-numeric string decoded to int")
	}
}
