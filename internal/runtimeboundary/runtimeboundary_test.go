package runtimeboundary

import "testing"

func TestModuleNamesMatchesModulesOrder(t *testing.T) {
	names := ModuleNames()
	if len(names) != len(Modules) {
		t.Fatalf("len(ModuleNames()) = %d, want %d", len(names), len(Modules))
	}
	for i, m := range Modules {
		if names[i] != m.Name {
			t.Fatalf("ModuleNames()[%d] = %q, want %q", i, names[i], m.Name)
		}
	}
}

func TestLookupFindsKnownModule(t *testing.T) {
	m, ok := Lookup("str")
	if !ok {
		t.Fatal("expected str module to be found")
	}
	if m.Name != "str" {
		t.Fatalf("got module named %q", m.Name)
	}
}

func TestLookupMissesUnknownModule(t *testing.T) {
	if _, ok := Lookup("not-a-module"); ok {
		t.Fatal("expected unknown module to be absent")
	}
}

func TestHasFunctionRecognizesDocumentedContract(t *testing.T) {
	cases := []struct {
		module, fn string
		want       bool
	}{
		{"str", "char_at", true},
		{"str", "not_a_real_fn", false},
		{"math", "sqrt", true},
		{"channel", "try_recv", true},
		{"fs", "readFile", true},
		{"not-a-module", "anything", false},
	}
	for _, c := range cases {
		if got := HasFunction(c.module, c.fn); got != c.want {
			t.Errorf("HasFunction(%q, %q) = %v, want %v", c.module, c.fn, got, c.want)
		}
	}
}

func TestCollectionModulesShareContract(t *testing.T) {
	for _, name := range []string{"vec", "hashmap", "hashset", "btreemap", "btreeset", "deque"} {
		m, ok := Lookup(name)
		if !ok {
			t.Fatalf("expected collection module %q", name)
		}
		for _, fn := range []string{"insert", "remove", "get", "len", "iter"} {
			found := false
			for _, f := range m.Functions {
				if f.Name == fn {
					found = true
				}
			}
			if !found {
				t.Errorf("module %q missing shared function %q", name, fn)
			}
		}
	}
}
