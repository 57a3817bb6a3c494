package upirtext

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/synapse-lang/synapsec/internal/upir"
)

// parser is a plain recursive-descent reader over the token stream: one
// token of lookahead, no backtracking.
type parser struct {
	lex *lexer
	tok token

	m *upir.Module

	// typeByText dedupes freshly-parsed types by their canonical textual
	// shape, the same dedup key internal/lower's typeTable uses (there it
	// keys on checktypes.Type.String(); here the text already came from
	// Print, so it is its own canonical key).
	typeByText map[string]upir.TypeID
	nextType   upir.TypeID
}

// Parse reads the textual form Print produces back into a Module. Equal
// shapes intern to the same TypeID, the same dedup discipline
// internal/lower's type table applies when building a module forward.
func Parse(src string) (*upir.Module, error) {
	p := &parser{lex: newLexer(src), typeByText: make(map[string]upir.TypeID), nextType: 1}
	p.advance()
	return p.parseModule()
}

func (p *parser) advance() { p.tok = p.lex.next() }

func (p *parser) errorf(format string, args ...interface{}) error {
	return &ParseError{Line: p.tok.line, Col: p.tok.col, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(k tokenKind, what string) (token, error) {
	if p.tok.kind != k {
		return token{}, p.errorf("expected %s, got %q", what, p.tok.text)
	}
	t := p.tok
	p.advance()
	return t, nil
}

func (p *parser) isIdent(text string) bool {
	return p.tok.kind == tokIdent && p.tok.text == text
}

func (p *parser) parseModule() (*upir.Module, error) {
	if !p.isIdent("module") {
		return nil, p.errorf("expected 'module', got %q", p.tok.text)
	}
	p.advance()
	name, err := p.expect(tokAtName, "module name")
	if err != nil {
		return nil, err
	}
	p.m = upir.NewModule(name.text)
	if _, err := p.expect(tokLBrace, "{"); err != nil {
		return nil, err
	}

	for p.isIdent("func") {
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		p.m.Functions = append(p.m.Functions, fn)
	}
	if _, err := p.expect(tokRBrace, "}"); err != nil {
		return nil, err
	}
	return p.m, nil
}

func (p *parser) parseFunction() (*upir.Function, error) {
	p.advance() // 'func'
	name, err := p.expect(tokAtName, "function name")
	if err != nil {
		return nil, err
	}
	fn := &upir.Function{Name: name.text}

	if _, err := p.expect(tokLParen, "("); err != nil {
		return nil, err
	}
	for p.tok.kind != tokRParen {
		if _, err := p.expect(tokValueRef, "argument value"); err != nil {
			return nil, err
		}
		if _, err := p.expect(tokColon, ":"); err != nil {
			return nil, err
		}
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		fn.Signature.ArgTypes = append(fn.Signature.ArgTypes, ty)
		if p.tok.kind == tokComma {
			p.advance()
		}
	}
	p.advance() // ')'

	if _, err := p.expect(tokArrow, "->"); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokLParen, "("); err != nil {
		return nil, err
	}
	for p.tok.kind != tokRParen {
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		fn.Signature.ResultTypes = append(fn.Signature.ResultTypes, ty)
		if p.tok.kind == tokComma {
			p.advance()
		}
	}
	p.advance() // ')'

	if _, err := p.expect(tokLBrace, "{"); err != nil {
		return nil, err
	}
	var blocks []*upir.Block
	for p.tok.kind == tokBlockRef {
		blk, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, blk)
	}
	if _, err := p.expect(tokRBrace, "}"); err != nil {
		return nil, err
	}
	fn.Regions = []*upir.Region{{Blocks: blocks}}
	return fn, nil
}

func (p *parser) parseBlock() (*upir.Block, error) {
	bb, err := p.expect(tokBlockRef, "block label")
	if err != nil {
		return nil, err
	}
	blk := &upir.Block{ID: upir.BlockID(bb.num)}

	if _, err := p.expect(tokLParen, "("); err != nil {
		return nil, err
	}
	for p.tok.kind != tokRParen {
		v, err := p.expect(tokValueRef, "block argument")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokColon, ":"); err != nil {
			return nil, err
		}
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		blk.Args = append(blk.Args, upir.BlockArgument{Value: upir.ValueID(v.num), Type: ty})
		if p.tok.kind == tokComma {
			p.advance()
		}
	}
	p.advance() // ')'
	if _, err := p.expect(tokColon, ":"); err != nil {
		return nil, err
	}

	for p.tok.kind == tokValueRef || p.tok.kind == tokIdent {
		op, err := p.parseOperation()
		if err != nil {
			return nil, err
		}
		blk.Operations = append(blk.Operations, op)
	}
	return blk, nil
}

func (p *parser) parseOperation() (*upir.Operation, error) {
	op := &upir.Operation{}

	if p.tok.kind == tokValueRef {
		for {
			v, err := p.expect(tokValueRef, "result value")
			if err != nil {
				return nil, err
			}
			op.Results = append(op.Results, upir.ValueID(v.num))
			if p.tok.kind != tokComma {
				break
			}
			p.advance()
		}
		if _, err := p.expect(tokColon, ":"); err != nil {
			return nil, err
		}
		for {
			ty, err := p.parseType()
			if err != nil {
				return nil, err
			}
			op.ResultTypes = append(op.ResultTypes, ty)
			if p.tok.kind != tokComma {
				break
			}
			p.advance()
		}
		if _, err := p.expect(tokEquals, "="); err != nil {
			return nil, err
		}
	}

	name, err := p.expect(tokIdent, "operation name")
	if err != nil {
		return nil, err
	}
	op.Name = name.text

	if _, err := p.expect(tokLParen, "("); err != nil {
		return nil, err
	}
	for p.tok.kind == tokValueRef {
		v, _ := p.expect(tokValueRef, "operand")
		op.Operands = append(op.Operands, upir.ValueID(v.num))
		if p.tok.kind == tokComma {
			p.advance()
		}
	}
	if p.tok.kind == tokSemi {
		p.advance()
		op.Attributes = make(map[string]upir.Attribute)
		for p.tok.kind == tokIdent {
			key, _ := p.expect(tokIdent, "attribute name")
			if _, err := p.expect(tokEquals, "="); err != nil {
				return nil, err
			}
			val, err := p.parseAttrValue()
			if err != nil {
				return nil, err
			}
			op.Attributes[key.text] = val
			if p.tok.kind == tokComma {
				p.advance()
			}
		}
	}
	if _, err := p.expect(tokRParen, ")"); err != nil {
		return nil, err
	}

	if p.tok.kind == tokLBrace {
		p.advance()
		for p.isIdent("arm") {
			region, arm, err := p.parseMatchArm()
			if err != nil {
				return nil, err
			}
			op.Regions = append(op.Regions, region)
			op.MatchArms = append(op.MatchArms, arm)
		}
		if _, err := p.expect(tokRBrace, "}"); err != nil {
			return nil, err
		}
	}
	return op, nil
}

func (p *parser) parseMatchArm() (*upir.Region, upir.MatchArmInfo, error) {
	p.advance() // 'arm'
	ctor, err := p.expect(tokIdent, "constructor name")
	if err != nil {
		return nil, upir.MatchArmInfo{}, err
	}
	if _, err := p.expect(tokLParen, "("); err != nil {
		return nil, upir.MatchArmInfo{}, err
	}
	var binders []upir.ValueID
	for p.tok.kind == tokValueRef {
		v, _ := p.expect(tokValueRef, "binder")
		if _, err := p.expect(tokColon, ":"); err != nil {
			return nil, upir.MatchArmInfo{}, err
		}
		if _, err := p.parseType(); err != nil {
			return nil, upir.MatchArmInfo{}, err
		}
		binders = append(binders, upir.ValueID(v.num))
		if p.tok.kind == tokComma {
			p.advance()
		}
	}
	if _, err := p.expect(tokRParen, ")"); err != nil {
		return nil, upir.MatchArmInfo{}, err
	}
	if _, err := p.expect(tokLBrace, "{"); err != nil {
		return nil, upir.MatchArmInfo{}, err
	}
	var blocks []*upir.Block
	for p.tok.kind == tokBlockRef {
		blk, err := p.parseBlock()
		if err != nil {
			return nil, upir.MatchArmInfo{}, err
		}
		blocks = append(blocks, blk)
	}
	if _, err := p.expect(tokRBrace, "}"); err != nil {
		return nil, upir.MatchArmInfo{}, err
	}
	return &upir.Region{Blocks: blocks}, upir.MatchArmInfo{CtorName: ctor.text, BinderValues: binders}, nil
}

func (p *parser) parseAttrValue() (upir.Attribute, error) {
	switch p.tok.kind {
	case tokAtName:
		v := p.tok.text
		p.advance()
		return upir.StringAttr(v), nil
	case tokInt:
		n, err := strconv.ParseInt(p.tok.text, 10, 64)
		if err != nil {
			return upir.Attribute{}, p.errorf("invalid integer attribute %q", p.tok.text)
		}
		p.advance()
		return upir.IntAttr(n), nil
	case tokIdent:
		text := p.tok.text
		p.advance()
		if text == "true" || text == "false" {
			return upir.BoolAttr(text == "true"), nil
		}
		return upir.StringAttr(text), nil
	default:
		return upir.Attribute{}, p.errorf("expected an attribute value, got %q", p.tok.text)
	}
}

func (p *parser) parseType() (upir.TypeID, error) {
	switch {
	case p.isIdent("int"):
		p.advance()
		return p.internDesc("int", upir.TypeDesc{Kind: upir.TyInt}), nil
	case p.isIdent("bool"):
		p.advance()
		return p.internDesc("bool", upir.TypeDesc{Kind: upir.TyBool}), nil
	case p.isIdent("unit"):
		p.advance()
		return p.internDesc("unit", upir.TypeDesc{Kind: upir.TyUnit}), nil
	case p.isIdent("ref"):
		p.advance()
		if _, err := p.expect(tokLAngle, "<"); err != nil {
			return 0, err
		}
		elem, err := p.parseType()
		if err != nil {
			return 0, err
		}
		if _, err := p.expect(tokRAngle, ">"); err != nil {
			return 0, err
		}
		key := fmt.Sprintf("ref<%s>", typeText(p.m, elem))
		return p.internDesc(key, upir.TypeDesc{Kind: upir.TyRef, Elem: elem}), nil
	case p.tok.kind == tokLParen:
		p.advance()
		param, err := p.parseType()
		if err != nil {
			return 0, err
		}
		if _, err := p.expect(tokRParen, ")"); err != nil {
			return 0, err
		}
		if _, err := p.expect(tokArrow, "->"); err != nil {
			return 0, err
		}
		result, err := p.parseType()
		if err != nil {
			return 0, err
		}
		key := fmt.Sprintf("(%s) -> %s", typeText(p.m, param), typeText(p.m, result))
		return p.internDesc(key, upir.TypeDesc{Kind: upir.TyFn, Param: param, Result: result}), nil
	case p.tok.kind == tokIdent:
		name := p.tok.text
		p.advance()
		var args []upir.TypeID
		if p.tok.kind == tokLAngle {
			p.advance()
			for p.tok.kind != tokRAngle {
				a, err := p.parseType()
				if err != nil {
					return 0, err
				}
				args = append(args, a)
				if p.tok.kind == tokComma {
					p.advance()
				}
			}
			p.advance() // '>'
		}
		key := name
		if len(args) > 0 {
			parts := make([]string, len(args))
			for i, a := range args {
				parts[i] = typeText(p.m, a)
			}
			key = fmt.Sprintf("%s<%s>", name, strings.Join(parts, ", "))
		}
		return p.internDesc(key, upir.TypeDesc{Kind: upir.TyADT, ADTName: name, ADTArgs: args}), nil
	default:
		return 0, p.errorf("expected a type, got %q", p.tok.text)
	}
}

func (p *parser) internDesc(key string, desc upir.TypeDesc) upir.TypeID {
	if id, ok := p.typeByText[key]; ok {
		return id
	}
	id := p.nextType
	p.nextType++
	p.typeByText[key] = id
	p.m.TypeTable[id] = desc
	return id
}
