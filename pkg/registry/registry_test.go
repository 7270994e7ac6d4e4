package registry

import (
	"reflect"
	"testing"
)

type node struct{ id int }

func TestMap_StoreAndLookup(t *testing.T) {
	m := NewMap[*node]()
	a := &node{1}

	m.Store(a, "root.a")

	got, ok := m.Lookup("root.a")
	if !ok || got != a {
		t.Errorf("Lookup(root.a) = %v, %v; want %v, true", got, ok, a)
	}
	if _, ok := m.Lookup("root.b"); ok {
		t.Error("Lookup(root.b) found an entry")
	}
}

func TestMap_StoreOverwritesName(t *testing.T) {
	m := NewMap[*node]()
	a, b := &node{1}, &node{2}

	m.Store(a, "x")
	m.Store(b, "x")

	got, _ := m.Lookup("x")
	if got != b {
		t.Errorf("Lookup(x) = %v, want %v", got, b)
	}
	// Removing a must not disturb b's mapping.
	m.Remove(a)
	if got, ok := m.Lookup("x"); !ok || got != b {
		t.Errorf("Lookup(x) after Remove(a) = %v, %v; want %v, true", got, ok, b)
	}
}

func TestMap_RemoveDropsEveryNameForKey(t *testing.T) {
	m := NewMap[*node]()
	a, b := &node{1}, &node{2}
	m.Store(a, "one")
	m.Store(a, "uno")
	m.Store(b, "two")

	m.Remove(a)
	m.Remove(&node{3})

	if got := m.Names(); !reflect.DeepEqual(got, []string{"two"}) {
		t.Errorf("Names() = %v, want [two]", got)
	}
}

func TestMap_Clear(t *testing.T) {
	m := NewMap[int]()
	m.Store(1, "a")
	m.Store(2, "b")

	m.Clear()

	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
}

func TestDefault_InitAndClear(t *testing.T) {
	Init()
	defer Clear()

	Default().Store("k", "name")
	if Default().Len() != 1 {
		t.Fatalf("Len() = %d, want 1", Default().Len())
	}

	Clear()
	if _, ok := Default().Lookup("name"); ok {
		t.Error("Lookup found entry after Clear")
	}
}

func TestAs_TypedView(t *testing.T) {
	m := NewMap[any]()
	view := As[*node](m)
	a := &node{1}

	view.Store(a, "a")
	m.Store("not a node", "b")

	if got, ok := view.Lookup("a"); !ok || got != a {
		t.Errorf("Lookup(a) = %v, %v; want %v, true", got, ok, a)
	}
	if _, ok := view.Lookup("b"); ok {
		t.Error("Lookup(b) returned a non-node key")
	}
	view.Remove(a)
	if m.Len() != 1 {
		t.Errorf("Len() = %d after Remove, want 1", m.Len())
	}
}
