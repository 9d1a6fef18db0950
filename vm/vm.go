// Package vm executes a compiled chunk.Chunk: a straight-line
// fetch-decode-execute loop over a fixed-capacity value stack, with a
// separate map holding global bindings.
package vm

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"lox/chunk"
	"lox/compiler"
	"lox/opcode"
	"lox/value"
)

// VM is a single bytecode interpreter instance. Globals persist across
// calls to Interpret/Run, so a REPL can hold one VM open across lines and
// have "var x = 1;" on one line visible to "print x;" on the next.
type VM struct {
	stack   stack
	globals map[string]value.Value
	chunk   *chunk.Chunk
	ip      int
	out     io.Writer
}

// New returns a VM with empty globals, printing to out.
func New(out io.Writer) *VM {
	return &VM{globals: make(map[string]value.Value), out: out}
}

// Interpret compiles source and runs the resulting chunk. Compile errors
// are wrapped so callers can tell a source problem from a runtime one
// without inspecting message text.
func (vm *VM) Interpret(source string) error {
	c, err := compiler.Compile(source)
	if err != nil {
		return errors.Wrap(err, "compile")
	}
	return vm.Run(c)
}

// Run executes c from its first instruction. The value stack is reset
// before execution starts; globals carry over from any previous Run on
// the same VM.
func (vm *VM) Run(c *chunk.Chunk) (err error) {
	vm.chunk = c
	vm.ip = 0
	vm.stack.reset()

	defer func() {
		if r := recover(); r != nil {
			switch e := r.(type) {
			case *stackOverflowError:
				err = errors.Wrapf(e, "recovered @ip=%d/%d, stack %d/%d", vm.ip, len(c.Code), vm.stack.top, stackCapacity)
			case *stackUnderflowError:
				err = &RuntimeError{Line: e.Line, Message: "stack underflow"}
			default:
				panic(r)
			}
		}
	}()

	for vm.ip < len(c.Code) {
		line := c.LineAt(vm.ip)
		op := opcode.Code(vm.readByte())

		switch op {
		case opcode.Constant:
			vm.stack.push(vm.readConstant(), line)

		case opcode.NilOp:
			vm.stack.push(value.Nil, line)
		case opcode.True:
			vm.stack.push(value.Bool(true), line)
		case opcode.False:
			vm.stack.push(value.Bool(false), line)

		case opcode.Pop:
			vm.stack.pop(line)

		case opcode.GetGlobal:
			name := vm.readConstant().AsString()
			v, ok := vm.globals[name]
			if !ok {
				return &RuntimeError{Line: line, Message: fmt.Sprintf("Undefined variable '%s'", name)}
			}
			vm.stack.push(v, line)

		case opcode.DefineGlobal:
			name := vm.readConstant().AsString()
			vm.globals[name] = vm.stack.pop(line)

		case opcode.SetGlobal:
			name := vm.readConstant().AsString()
			if _, ok := vm.globals[name]; !ok {
				return &RuntimeError{Line: line, Message: fmt.Sprintf("Undefined variable '%s'", name)}
			}
			vm.globals[name] = vm.stack.peek(0, line)

		case opcode.Equal:
			b := vm.stack.pop(line)
			a := vm.stack.pop(line)
			vm.stack.push(value.Bool(a.Equal(b)), line)

		case opcode.Greater:
			if err := vm.binaryComparison(line, func(a, b float64) bool { return a > b }); err != nil {
				return err
			}
		case opcode.Less:
			if err := vm.binaryComparison(line, func(a, b float64) bool { return a < b }); err != nil {
				return err
			}

		case opcode.Add:
			if err := vm.add(line); err != nil {
				return err
			}
		case opcode.Subtract:
			if err := vm.binaryArithmetic(line, func(a, b float64) float64 { return a - b }); err != nil {
				return err
			}
		case opcode.Multiply:
			if err := vm.binaryArithmetic(line, func(a, b float64) float64 { return a * b }); err != nil {
				return err
			}
		case opcode.Divide:
			if err := vm.binaryArithmetic(line, func(a, b float64) float64 { return a / b }); err != nil {
				return err
			}

		case opcode.Not:
			v := vm.stack.pop(line)
			vm.stack.push(value.Bool(v.IsFalsy()), line)

		case opcode.Negate:
			v := vm.stack.peek(0, line)
			if !v.IsNumber() {
				return &RuntimeError{Line: line, Message: "Operand must be a number"}
			}
			vm.stack.pop(line)
			vm.stack.push(value.Number(-v.AsNumber()), line)

		case opcode.Print:
			fmt.Fprintln(vm.out, vm.stack.pop(line).String())

		case opcode.Return:
			// A bare end-of-program halt: print whatever is left on the
			// stack, if anything, then stop cleanly.
			if vm.stack.top > 0 {
				fmt.Fprintln(vm.out, vm.stack.pop(line).String())
			}
			return nil

		default:
			return &RuntimeError{Line: line, Message: fmt.Sprintf("unknown opcode 0x%02x", byte(op))}
		}
	}
	return nil
}

func (vm *VM) readByte() byte {
	b := vm.chunk.ReadByte(vm.ip)
	vm.ip++
	return b
}

func (vm *VM) readConstant() value.Value {
	v := vm.chunk.ReadConstant(vm.ip)
	vm.ip++
	return v
}

func (vm *VM) add(line int) error {
	b := vm.stack.peek(0, line)
	a := vm.stack.peek(1, line)
	switch {
	case a.IsNumber() && b.IsNumber():
		vm.stack.pop(line)
		vm.stack.pop(line)
		vm.stack.push(value.Number(a.AsNumber()+b.AsNumber()), line)
		return nil
	case a.IsString() && b.IsString():
		vm.stack.pop(line)
		vm.stack.pop(line)
		vm.stack.push(value.FromObject(value.NewString(a.AsString()+b.AsString())), line)
		return nil
	default:
		return &RuntimeError{Line: line, Message: "Operands must be two numbers or two strings"}
	}
}

func (vm *VM) binaryArithmetic(line int, op func(a, b float64) float64) error {
	b := vm.stack.peek(0, line)
	a := vm.stack.peek(1, line)
	if !a.IsNumber() || !b.IsNumber() {
		return &RuntimeError{Line: line, Message: "Operands must be numbers"}
	}
	vm.stack.pop(line)
	vm.stack.pop(line)
	vm.stack.push(value.Number(op(a.AsNumber(), b.AsNumber())), line)
	return nil
}

func (vm *VM) binaryComparison(line int, op func(a, b float64) bool) error {
	b := vm.stack.peek(0, line)
	a := vm.stack.peek(1, line)
	if !a.IsNumber() || !b.IsNumber() {
		return &RuntimeError{Line: line, Message: "Operands must be numbers"}
	}
	vm.stack.pop(line)
	vm.stack.pop(line)
	vm.stack.push(value.Bool(op(a.AsNumber(), b.AsNumber())), line)
	return nil
}
