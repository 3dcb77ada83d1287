package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// StreamVM executes the textual instruction stream the compiler emits.
// It models a small media-playback machine: an operand stack, a flat
// 256-cell variable memory, four writable registers (POS, SPEED, R0,
// R1), and three read-only sensors (DURATION, IS_PLAYING, ENDED) fed
// by a simulated video session.
//
// Program output (PRINT, PRINTS) goes to Stdout; the playback trace
// ([STREAM]/[VM] messages) goes to Trace. Either may be nil.

// Instr is one decoded VM instruction.
type Instr struct {
	Op   string
	Args []string
}

const MemorySize = 256

// DefaultDuration is the simulated length of any opened video.
const DefaultDuration = 180

type VM struct {
	Registers map[string]int64
	Sensors   map[string]int64
	Memory    [MemorySize]int64
	Stack     []int64

	Stdout io.Writer
	Trace  io.Writer

	program []Instr
	labels  map[string]int
	pc      int
	halted  bool
	steps   int

	videoTitle  string
	videoLoaded bool
}

func NewVM() *VM {
	return &VM{
		Registers: map[string]int64{"POS": 0, "SPEED": 1, "R0": 0, "R1": 0},
		Sensors:   map[string]int64{"DURATION": 0, "IS_PLAYING": 0, "ENDED": 0},
		labels:    make(map[string]int),
	}
}

// Load parses an assembly listing. Blank lines and `;`/`#` comments are
// skipped. The first pass collects label definitions (`name:`), the
// second decodes instructions.
func (vm *VM) Load(source string) error {
	vm.program = vm.program[:0]
	vm.labels = make(map[string]int)
	vm.Stack = vm.Stack[:0]
	vm.pc = 0
	vm.halted = false
	vm.steps = 0

	lines := strings.Split(source, "\n")

	idx := 0
	for _, raw := range lines {
		line := stripComment(raw)
		if line == "" {
			continue
		}
		if strings.HasSuffix(line, ":") {
			label := strings.TrimSpace(strings.TrimSuffix(line, ":"))
			if label == "" {
				return fmt.Errorf("empty label definition")
			}
			if _, dup := vm.labels[label]; dup {
				return fmt.Errorf("duplicate label: %s", label)
			}
			vm.labels[label] = idx
		} else {
			idx++
		}
	}

	for _, raw := range lines {
		line := stripComment(raw)
		if line == "" || strings.HasSuffix(line, ":") {
			continue
		}
		vm.program = append(vm.program, decodeInstr(line))
	}
	return nil
}

func stripComment(raw string) string {
	if i := strings.IndexByte(raw, ';'); i >= 0 {
		raw = raw[:i]
	}
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	return strings.TrimSpace(raw)
}

func decodeInstr(line string) Instr {
	// A quoted operand is a single argument with the quotes removed.
	if strings.Contains(line, "\"") {
		parts := strings.SplitN(line, " ", 2)
		op := strings.ToUpper(parts[0])
		if len(parts) == 2 {
			rest := strings.TrimSpace(parts[1])
			if strings.HasPrefix(rest, "\"") && strings.HasSuffix(rest, "\"") && len(rest) >= 2 {
				return Instr{Op: op, Args: []string{rest[1 : len(rest)-1]}}
			}
			return Instr{Op: op, Args: strings.Fields(strings.ReplaceAll(rest, ",", " "))}
		}
		return Instr{Op: op}
	}
	fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
	return Instr{Op: strings.ToUpper(fields[0]), Args: fields[1:]}
}

func (vm *VM) Halted() bool {
	return vm.halted
}

func (vm *VM) Steps() int {
	return vm.steps
}

func (vm *VM) trace(format string, args ...any) {
	if vm.Trace != nil {
		fmt.Fprintf(vm.Trace, format+"\n", args...)
	}
}

func (vm *VM) print(format string, args ...any) {
	if vm.Stdout != nil {
		fmt.Fprintf(vm.Stdout, format+"\n", args...)
	}
}

func (vm *VM) pop() (int64, error) {
	if len(vm.Stack) == 0 {
		return 0, fmt.Errorf("cannot pop from empty stack")
	}
	val := vm.Stack[len(vm.Stack)-1]
	vm.Stack = vm.Stack[:len(vm.Stack)-1]
	return val, nil
}

func (vm *VM) pop2() (a, b int64, err error) {
	b, err = vm.pop()
	if err != nil {
		return
	}
	a, err = vm.pop()
	return
}

func (vm *VM) push(val int64) {
	vm.Stack = append(vm.Stack, val)
}

// operand resolves an argument that may name a register or be an
// integer literal.
func (vm *VM) operand(arg string) (int64, error) {
	if val, ok := vm.Registers[strings.ToUpper(arg)]; ok {
		return val, nil
	}
	n, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid operand %q", arg)
	}
	return n, nil
}

func (vm *VM) jump(label string) error {
	target, ok := vm.labels[label]
	if !ok {
		return fmt.Errorf("unknown label: %s", label)
	}
	vm.pc = target
	return nil
}

// Step executes one instruction.
func (vm *VM) Step() error {
	if vm.halted {
		return nil
	}
	if vm.pc < 0 || vm.pc >= len(vm.program) {
		vm.halted = true
		return nil
	}

	instr := vm.program[vm.pc]
	vm.steps++

	if err := vm.exec(instr); err != nil {
		vm.halted = true
		return fmt.Errorf("%s at instruction %d: %w", instr.Op, vm.pc, err)
	}
	return nil
}

func (vm *VM) exec(instr Instr) error {
	op := instr.Op
	args := instr.Args

	switch op {
	case "PUSH":
		val, err := vm.operand(args[0])
		if err != nil {
			return err
		}
		vm.push(val)
		vm.pc++

	case "POP":
		reg := strings.ToUpper(args[0])
		if _, ok := vm.Registers[reg]; !ok {
			return fmt.Errorf("unknown register %q", args[0])
		}
		val, err := vm.pop()
		if err != nil {
			return err
		}
		vm.Registers[reg] = val
		vm.pc++

	case "LOAD":
		addr, err := vm.address(args[0])
		if err != nil {
			return err
		}
		vm.push(vm.Memory[addr])
		vm.pc++

	case "STORE":
		addr, err := vm.address(args[0])
		if err != nil {
			return err
		}
		val, err := vm.pop()
		if err != nil {
			return err
		}
		vm.Memory[addr] = val
		vm.pc++

	case "ADD", "SUB", "MUL", "DIV":
		a, b, err := vm.pop2()
		if err != nil {
			return err
		}
		switch op {
		case "ADD":
			vm.push(a + b)
		case "SUB":
			vm.push(a - b)
		case "MUL":
			vm.push(a * b)
		case "DIV":
			if b == 0 {
				return fmt.Errorf("division by zero")
			}
			vm.push(a / b)
		}
		vm.pc++

	case "NEG":
		a, err := vm.pop()
		if err != nil {
			return err
		}
		vm.push(-a)
		vm.pc++

	case "EQ", "NE", "LT", "LE", "GT", "GE":
		a, b, err := vm.pop2()
		if err != nil {
			return err
		}
		vm.push(boolToInt(compare(op, a, b)))
		vm.pc++

	case "GOTO":
		return vm.jump(args[0])

	case "JUMPZ":
		val, err := vm.pop()
		if err != nil {
			return err
		}
		if val == 0 {
			return vm.jump(args[0])
		}
		vm.pc++

	case "JUMPI":
		val, err := vm.pop()
		if err != nil {
			return err
		}
		if val != 0 {
			return vm.jump(args[0])
		}
		vm.pc++

	case "DECJZ":
		reg := strings.ToUpper(args[0])
		if _, ok := vm.Registers[reg]; !ok {
			return fmt.Errorf("unknown register %q", args[0])
		}
		if vm.Registers[reg] == 0 {
			return vm.jump(args[1])
		}
		vm.Registers[reg]--
		vm.pc++

	case "OPEN":
		vm.videoTitle = args[0]
		vm.videoLoaded = true
		// Simulated video metadata
		vm.Sensors["DURATION"] = DefaultDuration
		vm.Sensors["IS_PLAYING"] = 0
		vm.Sensors["ENDED"] = 0
		vm.Registers["POS"] = 0
		vm.trace("[STREAM] Opened video: '%s'", vm.videoTitle)
		vm.pc++

	case "PLAY":
		if !vm.videoLoaded {
			return fmt.Errorf("no video loaded")
		}
		speed := int64(1)
		if len(args) > 0 {
			var err error
			speed, err = vm.operand(args[0])
			if err != nil {
				return err
			}
		}
		vm.Registers["SPEED"] = speed
		vm.Sensors["IS_PLAYING"] = 1
		vm.trace("[STREAM] Playing at speed %dx", speed)
		vm.pc++

	case "PAUSE":
		vm.Sensors["IS_PLAYING"] = 0
		vm.trace("[STREAM] Paused at position %ds", vm.Registers["POS"])
		vm.pc++

	case "STOP":
		vm.Sensors["IS_PLAYING"] = 0
		vm.Registers["POS"] = 0
		vm.trace("[STREAM] Stopped")
		vm.pc++

	case "SEEK":
		pos, err := vm.operand(args[0])
		if err != nil {
			return err
		}
		vm.Registers["POS"] = pos
		vm.trace("[STREAM] Seeked to %ds", pos)
		vm.pc++

	case "FORWARD":
		delta, err := vm.operand(args[0])
		if err != nil {
			return err
		}
		vm.Registers["POS"] += delta
		vm.trace("[STREAM] Forwarded %ds to position %ds", delta, vm.Registers["POS"])
		vm.pc++

	case "REWIND":
		delta, err := vm.operand(args[0])
		if err != nil {
			return err
		}
		vm.Registers["POS"] -= delta
		if vm.Registers["POS"] < 0 {
			vm.Registers["POS"] = 0
		}
		vm.trace("[STREAM] Rewinded %ds to position %ds", delta, vm.Registers["POS"])
		vm.pc++

	case "WAIT":
		t, err := vm.operand(args[0])
		if err != nil {
			return err
		}
		if vm.Sensors["IS_PLAYING"] != 0 {
			vm.Registers["POS"] += t * vm.Registers["SPEED"]
			if vm.Registers["POS"] >= vm.Sensors["DURATION"] {
				vm.Registers["POS"] = vm.Sensors["DURATION"]
				vm.Sensors["ENDED"] = 1
				vm.Sensors["IS_PLAYING"] = 0
			}
		}
		vm.trace("[STREAM] Waited %ds (now at %ds)", t, vm.Registers["POS"])
		vm.pc++

	case "GET_POS":
		vm.push(vm.Registers["POS"])
		vm.pc++

	case "GET_DUR":
		vm.push(vm.Sensors["DURATION"])
		vm.pc++

	case "GET_ENDED":
		vm.push(vm.Sensors["ENDED"])
		vm.pc++

	case "GET_PLAYING":
		vm.push(vm.Sensors["IS_PLAYING"])
		vm.pc++

	case "PRINT":
		val, err := vm.pop()
		if err != nil {
			return err
		}
		vm.print("%d", val)
		vm.pc++

	case "PRINTS":
		vm.print("%s", args[0])
		vm.pc++

	case "HALT":
		vm.trace("[VM] Execution halted")
		vm.halted = true

	default:
		return fmt.Errorf("unknown opcode")
	}
	return nil
}

func (vm *VM) address(arg string) (int64, error) {
	addr, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q", arg)
	}
	if addr < 0 || addr >= MemorySize {
		return 0, fmt.Errorf("address %d out of range", addr)
	}
	return addr, nil
}

func compare(op string, a, b int64) bool {
	switch op {
	case "EQ":
		return a == b
	case "NE":
		return a != b
	case "LT":
		return a < b
	case "LE":
		return a <= b
	case "GT":
		return a > b
	default: // GE
		return a >= b
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// DefaultMaxSteps bounds Run against non-terminating programs.
const DefaultMaxSteps = 10000

// Run executes until HALT, the end of the program, or the step limit
// (DefaultMaxSteps when maxSteps <= 0).
func (vm *VM) Run(maxSteps int) error {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	for !vm.halted {
		if vm.steps >= maxSteps {
			return fmt.Errorf("step limit reached (possible infinite loop)")
		}
		if err := vm.Step(); err != nil {
			return err
		}
	}
	return nil
}
