package transformer

import (
	"fmt"
	goast "go/ast"
	"go/token"
	"strconv"

	"github.com/FedeBP/js2ast/pkg/ast"
	"golang.org/x/tools/go/ast/astutil"
)

// Transformer lowers a program into a Go file whose main function runs the
// same declarations and branches.
type Transformer struct {
	renamed map[string]string
}

func NewTransformer() *Transformer {
	return &Transformer{
		renamed: make(map[string]string),
	}
}

// Renamed reports the identifiers that had to be renamed because they are Go
// keywords, keyed by their original name.
func (t *Transformer) Renamed() map[string]string {
	return t.renamed
}

func (t *Transformer) Transform(program *ast.Program) (*goast.File, error) {
	if program == nil {
		return nil, fmt.Errorf("nil program")
	}

	body, err := t.transformStatements(program.Body)
	if err != nil {
		return nil, err
	}

	file := &goast.File{
		Name: goast.NewIdent("main"),
		Decls: []goast.Decl{
			&goast.FuncDecl{
				Name: goast.NewIdent("main"),
				Type: &goast.FuncType{Params: &goast.FieldList{}},
				Body: &goast.BlockStmt{List: body},
			},
		},
	}

	// Source identifiers may be Go keywords (var, func, type, ...).
	astutil.Apply(file, nil, func(c *astutil.Cursor) bool {
		id, ok := c.Node().(*goast.Ident)
		if !ok || !token.IsKeyword(id.Name) {
			return true
		}
		name := id.Name + "_"
		t.renamed[id.Name] = name
		c.Replace(goast.NewIdent(name))
		return true
	})

	return file, nil
}

func (t *Transformer) transformStatements(stmts []ast.Statement) ([]goast.Stmt, error) {
	var out []goast.Stmt
	for _, stmt := range stmts {
		goStmts, err := t.transformNode(stmt)
		if err != nil {
			return nil, err
		}
		out = append(out, goStmts...)
	}
	return out, nil
}

func (t *Transformer) transformNode(node ast.Statement) ([]goast.Stmt, error) {
	switch n := node.(type) {
	case *ast.VariableDeclaration:
		if n != nil {
			return t.transformVariableDeclaration(n)
		}
	case *ast.IfStatement:
		if n != nil {
			stmt, err := t.transformIfStatement(n)
			if err != nil {
				return nil, err
			}
			return []goast.Stmt{stmt}, nil
		}
	}
	return nil, fmt.Errorf("unsupported node type: %T", node)
}

func (t *Transformer) transformVariableDeclaration(decl *ast.VariableDeclaration) ([]goast.Stmt, error) {
	if decl.ID == nil {
		return nil, fmt.Errorf("variable declaration without identifier")
	}
	value, err := t.transformOperand(decl.Init)
	if err != nil {
		return nil, err
	}

	// Go constants need constant initializers, so only literal consts stay const.
	tok := token.VAR
	if _, isLit := decl.Init.(*ast.Literal); isLit && decl.Kind == ast.Const {
		tok = token.CONST
	}

	stmts := []goast.Stmt{
		&goast.DeclStmt{
			Decl: &goast.GenDecl{
				Tok: tok,
				Specs: []goast.Spec{
					&goast.ValueSpec{
						Names:  []*goast.Ident{goast.NewIdent(decl.ID.Name)},
						Values: []goast.Expr{value},
					},
				},
			},
		},
	}
	if tok == token.VAR {
		stmts = append(stmts, &goast.AssignStmt{
			Lhs: []goast.Expr{goast.NewIdent("_")},
			Tok: token.ASSIGN,
			Rhs: []goast.Expr{goast.NewIdent(decl.ID.Name)},
		})
	}
	return stmts, nil
}

func (t *Transformer) transformIfStatement(stmt *ast.IfStatement) (*goast.IfStmt, error) {
	if stmt.Test == nil {
		return nil, fmt.Errorf("if statement without test")
	}
	cond, err := t.transformExpression(stmt.Test)
	if err != nil {
		return nil, err
	}

	body, err := t.transformStatements(stmt.Consequent)
	if err != nil {
		return nil, err
	}

	ifStmt := &goast.IfStmt{
		Cond: cond,
		Body: &goast.BlockStmt{List: body},
	}

	if stmt.Alternate != nil {
		elseBody, err := t.transformStatements(stmt.Alternate)
		if err != nil {
			return nil, err
		}
		ifStmt.Else = &goast.BlockStmt{List: elseBody}
	}

	return ifStmt, nil
}

func (t *Transformer) transformExpression(expr *ast.Expression) (goast.Expr, error) {
	left, err := t.transformOperand(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := t.transformOperand(expr.Right)
	if err != nil {
		return nil, err
	}

	var op token.Token
	switch expr.Operator {
	case ast.StrictEqual, ast.Equal:
		op = token.EQL
	case ast.StrictNotEqual, ast.NotEqual:
		op = token.NEQ
	default:
		return nil, fmt.Errorf("unsupported operator: %s", expr.Operator)
	}

	return &goast.BinaryExpr{X: left, Op: op, Y: right}, nil
}

func (t *Transformer) transformOperand(op ast.Operand) (goast.Expr, error) {
	switch o := op.(type) {
	case *ast.Identifier:
		if o != nil {
			return goast.NewIdent(o.Name), nil
		}
	case *ast.Literal:
		if o != nil {
			return transformLiteral(o)
		}
	}
	return nil, fmt.Errorf("unsupported expression type: %T", op)
}

func transformLiteral(lit *ast.Literal) (goast.Expr, error) {
	switch v := lit.Value.(type) {
	case ast.StringValue:
		return &goast.BasicLit{Kind: token.STRING, Value: strconv.Quote(string(v))}, nil
	case ast.NumberValue:
		return &goast.BasicLit{Kind: token.INT, Value: v.Source()}, nil
	case ast.BooleanValue:
		return goast.NewIdent(v.Source()), nil
	}
	return nil, fmt.Errorf("unsupported literal value: %T", lit.Value)
}
