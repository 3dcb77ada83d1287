package main

import "strconv"

// NodeKind represents different types of AST nodes
type NodeKind string

const (
	// Statements
	NodeProgram NodeKind = "NodeProgram"
	NodeBlock   NodeKind = "NodeBlock"
	NodeIntDecl NodeKind = "NodeIntDecl"
	NodeStrDecl NodeKind = "NodeStrDecl"
	NodeAssign  NodeKind = "NodeAssign"
	NodeIf      NodeKind = "NodeIf"
	NodeWhile   NodeKind = "NodeWhile"
	NodePrint   NodeKind = "NodePrint"
	NodeOpen    NodeKind = "NodeOpen"
	NodePlay    NodeKind = "NodePlay"
	NodePause   NodeKind = "NodePause"
	NodeStop    NodeKind = "NodeStop"
	NodeSeek    NodeKind = "NodeSeek"
	NodeForward NodeKind = "NodeForward"
	NodeRewind  NodeKind = "NodeRewind"
	NodeWait    NodeKind = "NodeWait"
	NodeEmpty   NodeKind = "NodeEmpty"

	// Expressions
	NodeIdent     NodeKind = "NodeIdent"
	NodeNumber    NodeKind = "NodeNumber"
	NodeString    NodeKind = "NodeString"
	NodeBinary    NodeKind = "NodeBinary"
	NodeUnary     NodeKind = "NodeUnary"
	NodePosition  NodeKind = "NodePosition"
	NodeDuration  NodeKind = "NodeDuration"
	NodeEnded     NodeKind = "NodeEnded"
	NodeIsPlaying NodeKind = "NodeIsPlaying"
)

// ASTNode represents a node in the Abstract Syntax Tree.
//
// The meaning of the payload fields and the arity of Children are
// fixed per Kind:
//
//   - NodeIdent, NodeString: String holds the name / literal text.
//   - NodeNumber: Integer holds the literal value.
//   - NodeBinary: String holds the operator ("+", "==", ...); exactly
//     two children, left then right.
//   - NodeUnary: one child, the operand.
//   - NodeIntDecl, NodeStrDecl: String holds the variable name; zero
//     or one child (the initializer).
//   - NodeAssign: two children, target identifier then value.
//   - NodeIf: two children without else, three with.
//   - NodeWhile: condition then body.
//   - NodePrint: either String holds a literal to print (no children)
//     or one child, the argument expression.
//   - NodeOpen: one child, a NodeString title or a numeric expression.
//   - NodePlay: zero or one child (the speed expression).
//   - NodeSeek, NodeForward, NodeRewind, NodeWait: one child.
type ASTNode struct {
	Kind     NodeKind
	Line     int // source line, for diagnostics
	String   string
	Integer  int64
	Children []*ASTNode
}

// ToSExpr converts an AST node to s-expression string representation
func ToSExpr(node *ASTNode) string {
	switch node.Kind {
	case NodeIdent:
		return "(ident \"" + node.String + "\")"
	case NodeString:
		return "(string \"" + node.String + "\")"
	case NodeNumber:
		return "(number " + strconv.FormatInt(node.Integer, 10) + ")"
	case NodeBinary:
		left := ToSExpr(node.Children[0])
		right := ToSExpr(node.Children[1])
		return "(binary \"" + node.String + "\" " + left + " " + right + ")"
	case NodeUnary:
		return "(neg " + ToSExpr(node.Children[0]) + ")"
	case NodePosition:
		return "(position)"
	case NodeDuration:
		return "(duration)"
	case NodeEnded:
		return "(ended)"
	case NodeIsPlaying:
		return "(is_playing)"
	case NodeProgram:
		return sexprList("program", node.Children)
	case NodeBlock:
		return sexprList("block", node.Children)
	case NodeIntDecl:
		result := "(int-decl \"" + node.String + "\""
		if len(node.Children) == 1 {
			result += " " + ToSExpr(node.Children[0])
		}
		return result + ")"
	case NodeStrDecl:
		result := "(str-decl \"" + node.String + "\""
		if len(node.Children) == 1 {
			result += " " + ToSExpr(node.Children[0])
		}
		return result + ")"
	case NodeAssign:
		target := ToSExpr(node.Children[0])
		value := ToSExpr(node.Children[1])
		return "(assign " + target + " " + value + ")"
	case NodeIf:
		return sexprList("if", node.Children)
	case NodeWhile:
		return sexprList("while", node.Children)
	case NodePrint:
		if len(node.Children) == 0 {
			return "(print (string \"" + node.String + "\"))"
		}
		return "(print " + ToSExpr(node.Children[0]) + ")"
	case NodeOpen:
		return "(open " + ToSExpr(node.Children[0]) + ")"
	case NodePlay:
		return sexprList("play", node.Children)
	case NodePause:
		return "(pause)"
	case NodeStop:
		return "(stop)"
	case NodeSeek:
		return "(seek " + ToSExpr(node.Children[0]) + ")"
	case NodeForward:
		return "(forward " + ToSExpr(node.Children[0]) + ")"
	case NodeRewind:
		return "(rewind " + ToSExpr(node.Children[0]) + ")"
	case NodeWait:
		return "(wait " + ToSExpr(node.Children[0]) + ")"
	case NodeEmpty:
		return "(empty)"
	default:
		return ""
	}
}

func sexprList(head string, children []*ASTNode) string {
	result := "(" + head
	for _, child := range children {
		result += " " + ToSExpr(child)
	}
	return result + ")"
}
