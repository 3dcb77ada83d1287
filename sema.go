package main

// Semantic analysis is a separate, optional pass: the parser and code
// generator accept programs the original toolchain accepted silently
// (use before declaration, int/string mixing, constructs the generator
// drops). Analyze surfaces those as diagnostics without changing what
// gets emitted.

type varKind int

const (
	varInt varKind = iota
	varString
)

type analyzer struct {
	declared map[string]varKind
	diags    *ErrorList
}

// Analyze walks the program and reports every semantic problem found.
// Unlike parsing, analysis does not stop at the first diagnostic.
func Analyze(root *ASTNode) *ErrorList {
	a := &analyzer{
		declared: make(map[string]varKind),
		diags:    NewErrorList(),
	}
	a.checkStmt(root)
	return a.diags
}

func (a *analyzer) checkStmt(node *ASTNode) {
	switch node.Kind {
	case NodeProgram, NodeBlock:
		for _, stmt := range node.Children {
			a.checkStmt(stmt)
		}

	case NodeIntDecl:
		a.declare(node, varInt)
		if len(node.Children) == 1 {
			a.checkExpr(node.Children[0])
		}

	case NodeStrDecl:
		a.declare(node, varString)

	case NodeAssign:
		target := node.Children[0]
		value := node.Children[1]
		kind, ok := a.declared[target.String]
		if !ok {
			a.diags.Add(target.Line, "variable '%s' is assigned without a declaration", target.String)
		}
		if value.Kind == NodeString {
			if ok && kind == varInt {
				a.diags.Add(node.Line, "cannot assign a string literal to int variable '%s'", target.String)
			}
			a.diags.Add(node.Line, "string assignment to '%s' generates no code", target.String)
		} else {
			if ok && kind == varString {
				a.diags.Add(node.Line, "cannot assign a numeric expression to string variable '%s'", target.String)
			}
			a.checkExpr(value)
		}

	case NodeIf, NodeWhile:
		a.checkExpr(node.Children[0])
		for _, child := range node.Children[1:] {
			a.checkStmt(child)
		}

	case NodePrint:
		if len(node.Children) == 1 {
			a.checkExpr(node.Children[0])
		}

	case NodeOpen:
		arg := node.Children[0]
		if arg.Kind != NodeString {
			a.diags.Add(node.Line, "open with a numeric id generates no code")
			a.checkExpr(arg)
		}

	case NodePlay:
		if len(node.Children) == 1 {
			a.checkExpr(node.Children[0])
		}

	case NodeSeek, NodeForward, NodeRewind, NodeWait:
		a.checkExpr(node.Children[0])

	case NodePause, NodeStop, NodeEmpty:
		// nothing to check
	}
}

func (a *analyzer) declare(node *ASTNode, kind varKind) {
	if _, ok := a.declared[node.String]; ok {
		a.diags.Add(node.Line, "variable '%s' is already declared", node.String)
		return
	}
	a.declared[node.String] = kind
}

func (a *analyzer) checkExpr(node *ASTNode) {
	switch node.Kind {
	case NodeIdent:
		if kind, ok := a.declared[node.String]; !ok {
			a.diags.Add(node.Line, "use of undeclared variable '%s'", node.String)
		} else if kind == varString {
			a.diags.Add(node.Line, "string variable '%s' used in a numeric expression", node.String)
		}

	case NodeBinary:
		a.checkExpr(node.Children[0])
		a.checkExpr(node.Children[1])

	case NodeUnary:
		a.checkExpr(node.Children[0])
	}
}
