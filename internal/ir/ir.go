// Package ir lowers a (post-monomorphization) typed AST into a linear,
// function-scoped three-address intermediate form and runs a small,
// order-dependent optimization pipeline over it. The IR is
// SSA-ish, not strictly SSA: a `let` binding is a single static
// definition, but a variable mutated inside a loop body keeps one
// function-scoped mutable slot across iterations instead of being
// renamed on every back-edge, since a real SSA rename would require
// phi nodes at the loop header that nothing downstream consumes.
package ir

import "fmt"

// Operand is anything an instruction can read: an immediate constant, a
// previously defined temporary, or a plain identifier reference (a
// function parameter or a global/top-level name resolved later by
// codegen).
type Operand interface {
	isOperand()
	String() string
}

type ConstInt struct{ Value int64 }
type ConstFloat struct{ Value float64 }
type ConstString struct{ Value string }
type ConstBool struct{ Value bool }

// Temp is a function-scoped fresh temporary, named positionally (%t1,
// %t2, ...) rather than after any source identifier, so two lowerings of
// the same source produce identical temp names (determinism requirement
// carried over from the target emitter, internal/codegen/target).
type Temp struct{ Name string }

// Ident is a plain name reference that isn't a temp or a mutable slot —
// a parameter, a top-level function, or an enum/struct constructor.
type Ident struct{ Name string }

func (ConstInt) isOperand()    {}
func (ConstFloat) isOperand()  {}
func (ConstString) isOperand() {}
func (ConstBool) isOperand()   {}
func (Temp) isOperand()        {}
func (Ident) isOperand()       {}

func (c ConstInt) String() string    { return fmt.Sprintf("%d", c.Value) }
func (c ConstFloat) String() string  { return fmt.Sprintf("%g", c.Value) }
func (c ConstString) String() string { return fmt.Sprintf("%q", c.Value) }
func (c ConstBool) String() string   { return fmt.Sprintf("%t", c.Value) }
func (t Temp) String() string        { return t.Name }
func (i Ident) String() string       { return i.Name }

// Instr is one three-address instruction. Every instruction that defines
// a value stores its destination in Dst (a Temp name); instructions with
// no Dst are pure control flow or side-effecting writes.
type Instr interface {
	isInstr()
	String() string
}

// BinOp computes Op(Left, Right) into Dst.
type BinOp struct {
	Dst         string
	Op          string
	Left, Right Operand
}

// UnOp computes Op(X) into Dst.
type UnOp struct {
	Dst string
	Op  string
	X   Operand
}

// Move is a plain value copy — the lowering of both a bare identifier
// reference materialized into a temp and the `move` keyword, which is a
// compile-time ownership transfer with no distinct runtime instruction.
type Move struct {
	Dst string
	Src Operand
}

// Load reads a named mutable slot (a `let mut` binding, or a loop-mutated
// variable) into Dst.
type Load struct {
	Dst  string
	Slot string
}

// Store writes Src into a named mutable slot, allocating it on first use.
type Store struct {
	Slot string
	Src  Operand
}

// Call invokes Callee (a plain name, possibly enum- or member-qualified
// by codegen's own resolution, not this package's concern) with Args,
// placing the result in Dst. Every Call is treated as having observable
// side effects, so dead-code elimination never removes one solely
// because Dst is unused.
type Call struct {
	Dst    string
	Callee string
	Args   []Operand
}

// MakeStruct builds a struct value of TypeName from field operands.
type MakeStruct struct {
	Dst      string
	TypeName string
	Fields   []FieldInit
}

type FieldInit struct {
	Name  string
	Value Operand
}

// MakeEnum builds a tagged enum value: {$tag: Variant, $payload: ...}.
type MakeEnum struct {
	Dst      string
	EnumName string
	Variant  string
	Args     []Operand
}

// MakeArray/MakeTuple build a fixed-length composite from operands.
type MakeArray struct {
	Dst   string
	Elems []Operand
}

type MakeTuple struct {
	Dst   string
	Elems []Operand
}

// MakeRange builds an iterator-range value for `for x in start..end`.
type MakeRange struct {
	Dst             string
	Start, End      Operand
	Inclusive       bool
}

// GetField reads a struct/tuple field or positional enum payload slot.
type GetField struct {
	Dst   string
	X     Operand
	Field string
}

// SetField writes a struct field in place (used for `x.field = value`).
type SetField struct {
	X     Operand
	Field string
	Value Operand
}

// Index reads X[Idx] into Dst.
type Index struct {
	Dst   string
	X     Operand
	Idx   Operand
}

// SetIndex writes X[Idx] = Value.
type SetIndex struct {
	X     Operand
	Idx   Operand
	Value Operand
}

// TryUnwrap lowers the `?` operator: extract X's Ok payload into Dst, or
// (at codegen's discretion, since this IR has no early-return-from-the-
// middle-of-a-block control edge of its own) propagate X itself as the
// enclosing function's return value when X is an Err. Codegen expands
// this into the target's native early-return form.
type TryUnwrap struct {
	Dst string
	X   Operand
}

// Await lowers the `await` expression.
type Await struct {
	Dst string
	X   Operand
}

// PatternTest evaluates whether X matches a single enum variant pattern,
// producing a bool into Dst — the lowering of IsExpr and of a WhileLet's
// per-iteration test.
type PatternTest struct {
	Dst      string
	X        Operand
	EnumName string
	Variant  string
}

// MakeClosure materializes a lambda value referencing a lifted function
// by name (the function itself is appended to the enclosing Program's
// Functions list under a synthesized name).
type MakeClosure struct {
	Dst    string
	FnName string
}

// Label marks a jump target. Jump/JumpIfFalse/JumpIfTrue are this IR's
// only control-flow instructions — if/else become labeled branches,
// while becomes a loop-header label plus a back-edge jump, and match
// becomes a switch dispatch table built from internal/dtree's decision
// tree (see lower_match.go).
type Label struct{ Name string }

type Jump struct{ Target string }

type JumpIfFalse struct {
	Cond   Operand
	Target string
}

type JumpIfTrue struct {
	Cond   Operand
	Target string
}

// Switch dispatches on Scrutinee's tag/value to one of Cases' labels, or
// Default if nothing matches — the flattened form of a dtree.SwitchNode.
type Switch struct {
	Scrutinee Operand
	Cases     map[interface{}]string
	Default   string
}

// Return exits the function; Value is nil for a bare `return;`.
type Return struct{ Value Operand }

func (BinOp) isInstr()       {}
func (UnOp) isInstr()        {}
func (Move) isInstr()        {}
func (Load) isInstr()        {}
func (Store) isInstr()       {}
func (Call) isInstr()        {}
func (MakeStruct) isInstr()  {}
func (MakeEnum) isInstr()    {}
func (MakeArray) isInstr()   {}
func (MakeTuple) isInstr()   {}
func (MakeRange) isInstr()   {}
func (GetField) isInstr()    {}
func (SetField) isInstr()    {}
func (Index) isInstr()       {}
func (SetIndex) isInstr()    {}
func (TryUnwrap) isInstr()   {}
func (Await) isInstr()       {}
func (PatternTest) isInstr() {}
func (MakeClosure) isInstr() {}
func (Label) isInstr()       {}
func (Jump) isInstr()        {}
func (JumpIfFalse) isInstr() {}
func (JumpIfTrue) isInstr()  {}
func (Switch) isInstr()      {}
func (Return) isInstr()      {}

func (i BinOp) String() string  { return fmt.Sprintf("%s = %s %s %s", i.Dst, i.Left, i.Op, i.Right) }
func (i UnOp) String() string   { return fmt.Sprintf("%s = %s%s", i.Dst, i.Op, i.X) }
func (i Move) String() string   { return fmt.Sprintf("%s = %s", i.Dst, i.Src) }
func (i Load) String() string   { return fmt.Sprintf("%s = load %s", i.Dst, i.Slot) }
func (i Store) String() string  { return fmt.Sprintf("store %s = %s", i.Slot, i.Src) }
func (i Call) String() string   { return fmt.Sprintf("%s = call %s(...)", i.Dst, i.Callee) }
func (i MakeStruct) String() string {
	return fmt.Sprintf("%s = %s{...}", i.Dst, i.TypeName)
}
func (i MakeEnum) String() string {
	return fmt.Sprintf("%s = %s.%s(...)", i.Dst, i.EnumName, i.Variant)
}
func (i MakeArray) String() string { return fmt.Sprintf("%s = [...]", i.Dst) }
func (i MakeTuple) String() string { return fmt.Sprintf("%s = (...)", i.Dst) }
func (i MakeRange) String() string { return fmt.Sprintf("%s = range(%s, %s)", i.Dst, i.Start, i.End) }
func (i GetField) String() string  { return fmt.Sprintf("%s = %s.%s", i.Dst, i.X, i.Field) }
func (i SetField) String() string  { return fmt.Sprintf("%s.%s = %s", i.X, i.Field, i.Value) }
func (i Index) String() string     { return fmt.Sprintf("%s = %s[%s]", i.Dst, i.X, i.Idx) }
func (i SetIndex) String() string  { return fmt.Sprintf("%s[%s] = %s", i.X, i.Idx, i.Value) }
func (i TryUnwrap) String() string { return fmt.Sprintf("%s = try %s", i.Dst, i.X) }
func (i Await) String() string     { return fmt.Sprintf("%s = await %s", i.Dst, i.X) }
func (i PatternTest) String() string {
	return fmt.Sprintf("%s = %s is %s.%s", i.Dst, i.X, i.EnumName, i.Variant)
}
func (i MakeClosure) String() string { return fmt.Sprintf("%s = closure(%s)", i.Dst, i.FnName) }
func (i Label) String() string       { return i.Name + ":" }
func (i Jump) String() string        { return "jump " + i.Target }
func (i JumpIfFalse) String() string { return fmt.Sprintf("jump_if_false %s, %s", i.Cond, i.Target) }
func (i JumpIfTrue) String() string  { return fmt.Sprintf("jump_if_true %s, %s", i.Cond, i.Target) }
func (i Switch) String() string      { return fmt.Sprintf("switch %s (%d cases)", i.Scrutinee, len(i.Cases)) }
func (i Return) String() string {
	if i.Value == nil {
		return "return"
	}
	return "return " + i.Value.String()
}

// Function is the lowered form of one ast.FnDecl.
type Function struct {
	Name   string
	Params []string
	Body   []Instr

	// LoopMutated names every variable assigned to (by `=` or a compound
	// assignment operator) somewhere inside a loop body. Constant
	// propagation must never fold a reference to one of these names past
	// the loop header it's mutated in, and SSA lowering keeps the
	// variable in one function-scoped mutable slot across iterations
	// instead of renaming it.
	LoopMutated map[string]bool
}

// Program is a whole lowered compilation unit: every top-level function
// plus every lambda lifted out of an expression position during
// lowering.
type Program struct {
	Functions []*Function
}
