package event

import "testing"

func TestKindSpace_Sequential(t *testing.T) {
	s := kindSpace{next: 100, limit: 110}

	first, ok := s.register(3)
	if !ok || first != 100 {
		t.Fatalf("register(3) = %v, %v, want 100, true", first, ok)
	}
	second, ok := s.register(2)
	if !ok || second != 103 {
		t.Fatalf("register(2) = %v, %v, want 103, true", second, ok)
	}
}

func TestKindSpace_Exhaustion(t *testing.T) {
	s := kindSpace{next: 100, limit: 104}

	if _, ok := s.register(5); ok {
		t.Error("oversized registration succeeded")
	}
	if _, ok := s.register(4); !ok {
		t.Error("exact-fit registration failed")
	}
	// Exhaustion is permanent.
	if _, ok := s.register(1); ok {
		t.Error("registration succeeded after exhaustion")
	}
}

func TestKindSpace_InvalidCount(t *testing.T) {
	s := kindSpace{next: 100, limit: 200}
	for _, n := range []int{0, -1} {
		if _, ok := s.register(n); ok {
			t.Errorf("register(%d) succeeded", n)
		}
	}
}

func TestRegisterKinds_DistinctFromBuiltins(t *testing.T) {
	k, ok := RegisterKinds(3)
	if !ok {
		t.Fatal("RegisterKinds(3) failed")
	}
	for _, builtin := range []Kind{KindNone, KindQuit, KindKeyDown, KindKeyUp} {
		if k == builtin || k+1 == builtin || k+2 == builtin {
			t.Errorf("registered kind %d collides with builtin %d", k, builtin)
		}
	}
}
