package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// The JSON shape mirrors the ESTree-like layout: every node is an object with a
// "type" discriminator. Positions are never encoded.

func (p *Program) MarshalJSON() ([]byte, error) {
	body := p.Body
	if body == nil {
		body = []Statement{}
	}
	return json.Marshal(struct {
		Type NodeType    `json:"type"`
		Body []Statement `json:"body"`
	}{ProgramNode, body})
}

func (vd *VariableDeclaration) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type NodeType        `json:"type"`
		ID   *Identifier     `json:"id"`
		Kind DeclarationKind `json:"kind"`
		Init Operand         `json:"init"`
	}{VariableDeclarationNode, vd.ID, vd.Kind, vd.Init})
}

func (is *IfStatement) MarshalJSON() ([]byte, error) {
	consequent := is.Consequent
	if consequent == nil {
		consequent = []Statement{}
	}
	return json.Marshal(struct {
		Type       NodeType    `json:"type"`
		Test       *Expression `json:"test"`
		Consequent []Statement `json:"consequent"`
		Alternate  []Statement `json:"alternate,omitempty"`
	}{IfStatementNode, is.Test, consequent, is.Alternate})
}

func (e *Expression) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     NodeType `json:"type"`
		Left     Operand  `json:"left"`
		Operator Operator `json:"operator"`
		Right    Operand  `json:"right"`
	}{ExpressionNode, e.Left, e.Operator, e.Right})
}

func (i *Identifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type NodeType `json:"type"`
		Name string   `json:"name"`
	}{IdentifierNode, i.Name})
}

func (l *Literal) MarshalJSON() ([]byte, error) {
	if l.Value == nil {
		return nil, fmt.Errorf("literal has no value")
	}
	return json.Marshal(struct {
		Type  NodeType `json:"type"`
		Value Value    `json:"value"`
	}{LiteralNode, l.Value})
}

// UnmarshalJSON decodes a Program previously produced by MarshalJSON (or by any
// tool emitting the same shape).
func (p *Program) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type NodeType          `json:"type"`
		Body []json.RawMessage `json:"body"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Type != ProgramNode {
		return fmt.Errorf("expected %s node, got %q", ProgramNode, raw.Type)
	}
	body, err := decodeStatements(raw.Body)
	if err != nil {
		return err
	}
	if body == nil {
		body = []Statement{}
	}
	p.Body = body
	return nil
}

func nodeTypeOf(data json.RawMessage) (NodeType, error) {
	var head struct {
		Type NodeType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return "", err
	}
	return head.Type, nil
}

func decodeStatements(raws []json.RawMessage) ([]Statement, error) {
	if len(raws) == 0 {
		return nil, nil
	}
	stmts := make([]Statement, 0, len(raws))
	for i, raw := range raws {
		stmt, err := decodeStatement(raw)
		if err != nil {
			return nil, fmt.Errorf("statement %d: %w", i, err)
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func decodeStatement(data json.RawMessage) (Statement, error) {
	typ, err := nodeTypeOf(data)
	if err != nil {
		return nil, err
	}

	switch typ {
	case VariableDeclarationNode:
		var raw struct {
			ID   json.RawMessage `json:"id"`
			Kind DeclarationKind `json:"kind"`
			Init json.RawMessage `json:"init"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		if raw.Kind != Const && raw.Kind != Let {
			return nil, fmt.Errorf("invalid declaration kind %q", raw.Kind)
		}
		id, err := decodeOperand(raw.ID)
		if err != nil {
			return nil, fmt.Errorf("id: %w", err)
		}
		ident, ok := id.(*Identifier)
		if !ok {
			return nil, fmt.Errorf("id: expected %s, got %s", IdentifierNode, id.Type())
		}
		init, err := decodeOperand(raw.Init)
		if err != nil {
			return nil, fmt.Errorf("init: %w", err)
		}
		return &VariableDeclaration{ID: ident, Kind: raw.Kind, Init: init}, nil

	case IfStatementNode:
		var raw struct {
			Test       json.RawMessage   `json:"test"`
			Consequent []json.RawMessage `json:"consequent"`
			Alternate  []json.RawMessage `json:"alternate"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		test, err := decodeExpression(raw.Test)
		if err != nil {
			return nil, fmt.Errorf("test: %w", err)
		}
		consequent, err := decodeStatements(raw.Consequent)
		if err != nil {
			return nil, fmt.Errorf("consequent: %w", err)
		}
		alternate, err := decodeStatements(raw.Alternate)
		if err != nil {
			return nil, fmt.Errorf("alternate: %w", err)
		}
		return &IfStatement{Test: test, Consequent: consequent, Alternate: alternate}, nil
	}

	return nil, fmt.Errorf("unknown statement type %q", typ)
}

func decodeExpression(data json.RawMessage) (*Expression, error) {
	var raw struct {
		Type     NodeType        `json:"type"`
		Left     json.RawMessage `json:"left"`
		Operator string          `json:"operator"`
		Right    json.RawMessage `json:"right"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw.Type != ExpressionNode {
		return nil, fmt.Errorf("expected %s node, got %q", ExpressionNode, raw.Type)
	}
	if !IsComparison(raw.Operator) {
		return nil, fmt.Errorf("unsupported operator %q", raw.Operator)
	}
	left, err := decodeOperand(raw.Left)
	if err != nil {
		return nil, fmt.Errorf("left: %w", err)
	}
	right, err := decodeOperand(raw.Right)
	if err != nil {
		return nil, fmt.Errorf("right: %w", err)
	}
	return &Expression{Left: left, Operator: Operator(raw.Operator), Right: right}, nil
}

func decodeOperand(data json.RawMessage) (Operand, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("missing operand")
	}
	typ, err := nodeTypeOf(data)
	if err != nil {
		return nil, err
	}

	switch typ {
	case IdentifierNode:
		var raw struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return &Identifier{Name: raw.Name}, nil

	case LiteralNode:
		var raw struct {
			Value interface{} `json:"value"`
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		switch v := raw.Value.(type) {
		case string:
			return NewString(v), nil
		case bool:
			return NewBoolean(v), nil
		case json.Number:
			n, err := v.Int64()
			if err != nil {
				return nil, fmt.Errorf("literal %s is not an integer", v)
			}
			return NewNumber(n), nil
		default:
			return nil, fmt.Errorf("unsupported literal value %v", raw.Value)
		}
	}

	return nil, fmt.Errorf("unknown operand type %q", typ)
}
