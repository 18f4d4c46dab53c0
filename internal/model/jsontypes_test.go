package model

import (
	"testing"
)

func TestStringSetAdd(t *testing.T) {
	var s StringSet

	if !s.Add("a") {
		t.Error("adding to empty set reported no change")
	}
	if s.Add("a") {
		t.Error("duplicate add reported a change")
	}
	s.Add("b")

	if len(s) != 2 || s[0] != "a" || s[1] != "b" {
		t.Errorf("set = %v, want insertion order [a b]", s)
	}
	if !s.Contains("a") || s.Contains("c") {
		t.Error("Contains misreported membership")
	}
}

func TestStringSetScanRoundTrip(t *testing.T) {
	original := StringSet{"first_step", "protector"}
	val, err := original.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var back StringSet
	if err := back.Scan(val); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(back) != 2 || back[0] != "first_step" {
		t.Errorf("round trip = %v", back)
	}
}

func TestNilCollectionsMarshalAsEmpty(t *testing.T) {
	var s StringSet
	v, err := s.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if string(v.([]byte)) != "[]" {
		t.Errorf("nil StringSet stored as %s, want []", v)
	}

	var m CounterMap
	v, err = m.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if string(v.([]byte)) != "{}" {
		t.Errorf("nil CounterMap stored as %s, want {}", v)
	}
}

func TestScanNullColumn(t *testing.T) {
	var s StringSet
	if err := s.Scan(nil); err != nil {
		t.Fatalf("Scan(nil): %v", err)
	}
	if s != nil {
		t.Errorf("null column produced %v", s)
	}
}
