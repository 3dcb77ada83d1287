package main

import (
	"bytes"
	"fmt"
)

// CodeGen lowers an AST into the StreamVM textual instruction stream.
// Each CodeGen owns its symbol table and label counter, so separate
// compilations in one process cannot interfere.
type CodeGen struct {
	out       bytes.Buffer
	syms      *SymbolTable
	nextLabel int
}

func NewCodeGen() *CodeGen {
	return &CodeGen{syms: NewSymbolTable()}
}

// Symbols exposes the slot assignments after generation.
func (cg *CodeGen) Symbols() *SymbolTable {
	return cg.syms
}

// Generate emits code for the whole program and terminates it with
// HALT. The AST must come from ParseProgram; arity violations are the
// caller's bug and will panic on child access.
func (cg *CodeGen) Generate(root *ASTNode) string {
	cg.genStmt(root)
	cg.emit("HALT")
	return cg.out.String()
}

func (cg *CodeGen) emit(format string, args ...any) {
	fmt.Fprintf(&cg.out, format+"\n", args...)
}

// newLabel mints a fresh jump-target name. Labels are never reused,
// so nested and repeated constructs cannot collide.
func (cg *CodeGen) newLabel() string {
	label := fmt.Sprintf("L%d", cg.nextLabel)
	cg.nextLabel++
	return label
}

func (cg *CodeGen) genStmt(node *ASTNode) {
	switch node.Kind {
	case NodeProgram, NodeBlock:
		// Slots are program-global; a block introduces no scope.
		for _, stmt := range node.Children {
			cg.genStmt(stmt)
		}

	case NodeIntDecl:
		slot := cg.syms.SlotOf(node.String)
		if len(node.Children) == 1 {
			cg.genExpr(node.Children[0])
		} else {
			cg.emit("PUSH 0")
		}
		cg.emit("STORE %d", slot)

	case NodeStrDecl:
		// Strings are not materialized in the instruction stream; the
		// name still claims its slot in first-occurrence order.
		cg.syms.SlotOf(node.String)

	case NodeAssign:
		slot := cg.syms.SlotOf(node.Children[0].String)
		value := node.Children[1]
		if value.Kind == NodeString {
			// No string stores in this instruction set; dropped, and
			// reported by the semantic pass.
			return
		}
		cg.genExpr(value)
		cg.emit("STORE %d", slot)

	case NodeIf:
		cg.genExpr(node.Children[0])
		if len(node.Children) == 2 {
			end := cg.newLabel()
			cg.emit("JUMPZ %s", end)
			cg.genStmt(node.Children[1])
			cg.emit("%s:", end)
		} else {
			elseLabel := cg.newLabel()
			cg.emit("JUMPZ %s", elseLabel)
			cg.genStmt(node.Children[1])
			end := cg.newLabel()
			cg.emit("GOTO %s", end)
			cg.emit("%s:", elseLabel)
			cg.genStmt(node.Children[2])
			cg.emit("%s:", end)
		}

	case NodeWhile:
		loop := cg.newLabel()
		cg.emit("%s:", loop)
		cg.genExpr(node.Children[0])
		end := cg.newLabel()
		cg.emit("JUMPZ %s", end)
		cg.genStmt(node.Children[1])
		cg.emit("GOTO %s", loop)
		cg.emit("%s:", end)

	case NodePrint:
		if len(node.Children) == 0 {
			cg.emit("PRINTS \"%s\"", node.String)
		} else {
			cg.genExpr(node.Children[0])
			cg.emit("PRINT")
		}

	case NodeOpen:
		arg := node.Children[0]
		if arg.Kind == NodeString {
			cg.emit("OPEN \"%s\"", arg.String)
		}
		// Opening by numeric id has no instruction; dropped, and
		// reported by the semantic pass.

	case NodePlay:
		if len(node.Children) == 1 {
			cg.genExpr(node.Children[0])
			cg.emit("POP R0")
			cg.emit("PLAY R0")
		} else {
			cg.emit("PLAY 1")
		}

	case NodePause:
		cg.emit("PAUSE")

	case NodeStop:
		cg.emit("STOP")

	case NodeSeek:
		cg.genRegisterCommand("SEEK", node.Children[0])

	case NodeForward:
		cg.genRegisterCommand("FORWARD", node.Children[0])

	case NodeRewind:
		cg.genRegisterCommand("REWIND", node.Children[0])

	case NodeWait:
		cg.genRegisterCommand("WAIT", node.Children[0])

	case NodeEmpty:
		// no-op
	}
}

// genRegisterCommand evaluates the operand on the stack, pops it into
// the R0 scratch register, and emits the command with R0 as operand.
func (cg *CodeGen) genRegisterCommand(opcode string, arg *ASTNode) {
	cg.genExpr(arg)
	cg.emit("POP R0")
	cg.emit("%s R0", opcode)
}

// genExpr emits post-order stack code: every expression leaves exactly
// one value on the VM stack.
func (cg *CodeGen) genExpr(node *ASTNode) {
	switch node.Kind {
	case NodeNumber:
		cg.emit("PUSH %d", node.Integer)

	case NodeIdent:
		cg.emit("LOAD %d", cg.syms.SlotOf(node.String))

	case NodeBinary:
		cg.genExpr(node.Children[0])
		cg.genExpr(node.Children[1])
		cg.emit("%s", binaryOpcode(node.String))

	case NodeUnary:
		cg.genExpr(node.Children[0])
		cg.emit("NEG")

	case NodePosition:
		cg.emit("GET_POS")

	case NodeDuration:
		cg.emit("GET_DUR")

	case NodeEnded:
		cg.emit("GET_ENDED")

	case NodeIsPlaying:
		cg.emit("GET_PLAYING")

	case NodeString:
		// String literals generate no expression code.
	}
}

func binaryOpcode(op string) string {
	switch op {
	case "+":
		return "ADD"
	case "-":
		return "SUB"
	case "*":
		return "MUL"
	case "/":
		return "DIV"
	case "==":
		return "EQ"
	case "!=":
		return "NE"
	case "<":
		return "LT"
	case "<=":
		return "LE"
	case ">":
		return "GT"
	case ">=":
		return "GE"
	default:
		panic("unsupported binary operator: " + op)
	}
}
