// Package runtimeboundary is a names-only contract: it documents the
// functions and modules the target-language runtime is assumed to
// expose, without implementing any of them. Nothing in this package
// executes at emit time or at runtime — internal/codegen/target imports
// its module names to build the fixed preamble import list, and the
// editor service and documentation generators can walk Modules to answer
// "what does `str.` offer" without duplicating the list by hand.
package runtimeboundary

// Function describes one runtime-boundary binding's calling shape.
// Arity is -1 for variadic or overloaded bindings (e.g. http.fetch and
// the http method helpers get/post/put/delete).
type Function struct {
	Name  string
	Arity int
	Async bool
}

// Module is one named group of runtime-boundary bindings (io, str,
// math, ...), or a bare tagged-value contract with no functions of its
// own (Option, Result).
type Module struct {
	Name      string
	Functions []Function
}

// Modules is the full runtime library boundary, grounded directly in
// spec §6.5's enumerated contract. Order matches the specification's
// listing.
var Modules = []Module{
	{
		Name: "io",
		Functions: []Function{
			{"print", 1, false},
			{"println", 1, false},
			{"eprint", 1, false},
			{"eprintln", 1, false},
			{"readLine", 0, false},
			{"readLineAsync", 0, true},
			{"printJson", 1, false},
		},
	},
	{
		Name: "str",
		Functions: []Function{
			{"length", 1, false},
			{"concat", 2, false},
			{"substring", 3, false},
			{"split", 2, false},
			{"trim", 1, false},
			{"contains", 2, false},
			{"eq", 2, false},
			{"char_at", 2, false}, // returns Option<String>, bounds-clamped
			{"is_whitespace", 1, false},
			{"is_digit", 1, false},
			{"to_int", 1, false},
			{"to_float", 1, false},
			{"from_int", 1, false},
			{"from_float", 1, false},
		},
	},
	{
		Name: "math",
		Functions: []Function{
			{"abs", 1, false},
			{"min", 2, false},
			{"max", 2, false},
			{"absf", 1, false},
			{"minf", 2, false},
			{"maxf", 2, false},
			{"sqrt", 1, false},
			{"pow", 2, false},
			{"floor", 1, false},
			{"ceil", 1, false},
			{"round", 1, false},
			{"pi", 0, false},
			{"e", 0, false},
		},
	},
	{
		Name: "fs",
		Functions: []Function{
			{"readFile", 1, true},
			{"writeFile", 2, true},
		},
	},
	{
		Name: "http",
		Functions: []Function{
			// fetch and its method helpers share one URL-safety contract:
			// non-http(s) protocols, loopback/localhost, private IPv4
			// ranges, and cloud metadata addresses are all rejected before
			// any request leaves the process.
			{"fetch", -1, true},
			{"get", -1, true},
			{"post", -1, true},
			{"put", -1, true},
			{"delete", -1, true},
		},
	},
	collectionModule("vec"),
	collectionModule("hashmap"),
	collectionModule("hashset"),
	collectionModule("btreemap"),
	collectionModule("btreeset"),
	collectionModule("deque"),
	{
		Name: "channel",
		Functions: []Function{
			{"new", 0, false},
			{"bounded", 1, false}, // bounded(0) is rendezvous; negative capacities behave unbounded
			{"send", 2, true},
			{"recv", 1, true},
			{"try_recv", 1, false},
			{"close_send", 1, false},
			{"close_recv", 1, false},
		},
	},
	{Name: "Option"}, // tagged { $tag: "Some"|"None", $payload? }
	{Name: "Result"}, // tagged { $tag: "Ok"|"Err", $payload? }
}

// collectionModule builds the shared contract every ordered/unordered
// collection module exposes. The two tree variants additionally respect
// a registered Ord implementation for iteration order, falling back to
// natural order — a runtime behavior this package only documents, since
// it has no code of its own to enforce it.
func collectionModule(name string) Module {
	return Module{
		Name: name,
		Functions: []Function{
			{"insert", 2, false},
			{"remove", 2, false},
			{"get", 2, false},
			{"len", 1, false},
			{"iter", 1, false},
		},
	}
}

// ModuleNames returns the runtime-boundary module names in contract
// order, for callers (the target emitter's preamble, documentation
// generators) that only need the name list and not each module's
// function contract.
func ModuleNames() []string {
	names := make([]string, len(Modules))
	for i, m := range Modules {
		names[i] = m.Name
	}
	return names
}

// Lookup returns the module named name and true, or a zero Module and
// false if the runtime boundary has no such module.
func Lookup(name string) (Module, bool) {
	for _, m := range Modules {
		if m.Name == name {
			return m, true
		}
	}
	return Module{}, false
}

// HasFunction reports whether moduleName.fnName is part of the
// documented runtime-boundary contract.
func HasFunction(moduleName, fnName string) bool {
	m, ok := Lookup(moduleName)
	if !ok {
		return false
	}
	for _, f := range m.Functions {
		if f.Name == fnName {
			return true
		}
	}
	return false
}
