package parser

import (
	"fmt"
	"strings"

	"github.com/sambeau/brine/pkg/brine/ast"
	"github.com/sambeau/brine/pkg/brine/errors"
	"github.com/sambeau/brine/pkg/brine/lexer"
)

// ExpectedSingleError reports that one specific token was required.
type ExpectedSingleError struct {
	Expected lexer.TokenType
	Found    lexer.Token
}

func (e *ExpectedSingleError) Error() string {
	return fmt.Sprintf("expected %s, got %s", e.Expected.Readable(), e.Found.Type.Readable())
}

// ExpectedAlternativesError reports that any one of several tokens would
// have been accepted.
type ExpectedAlternativesError struct {
	Expected []lexer.TokenType
	Found    lexer.Token
}

func (e *ExpectedAlternativesError) Error() string {
	return fmt.Sprintf("expected one of %s, got %s", alternatives(e.Expected), e.Found.Type.Readable())
}

// ExpectedNodeError reports that a whole construct, such as "expression"
// or "type", was required.
type ExpectedNodeError struct {
	Expected string
	Found    lexer.Token
}

func (e *ExpectedNodeError) Error() string {
	return fmt.Sprintf("expected %s, got %s", e.Expected, e.Found.Type.Readable())
}

// OuterExpressionError reports a top-level expression statement that is
// missing its ';'.
type OuterExpressionError struct {
	Statement *ast.ExpressionStatement
}

func (e *OuterExpressionError) Error() string {
	return "expression at top level must end with ';'"
}

func alternatives(types []lexer.TokenType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.Readable()
	}
	if len(names) <= 2 {
		return strings.Join(names, " or ")
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}

// diagnostic turns a parse error into a catalogued BrineError that still
// unwraps to the original.
func (p *Parser) diagnostic(err error) *errors.BrineError {
	var d *errors.BrineError
	switch e := err.(type) {
	case *errors.BrineError:
		return e

	case *ExpectedSingleError:
		d = errors.NewAt("PARSE-0001", e.Found.Start, e.Found.End, map[string]any{
			"Expected": e.Expected.Readable(),
			"Got":      e.Found.Describe(p.src),
		})

	case *ExpectedAlternativesError:
		d = errors.NewAt("PARSE-0002", e.Found.Start, e.Found.End, map[string]any{
			"Expected": alternatives(e.Expected),
			"Got":      e.Found.Describe(p.src),
		})

	case *ExpectedNodeError:
		d = errors.NewAt("PARSE-0003", e.Found.Start, e.Found.End, map[string]any{
			"Expected": e.Expected,
			"Got":      e.Found.Describe(p.src),
		})

	case *OuterExpressionError:
		d = errors.NewAt("PARSE-0004", e.Statement.Pos(), e.Statement.EndToken.Start, nil)
		// "fun main() ..." reads as an identifier followed by a call-like group.
		if id, ok := e.Statement.Expression.(*ast.Identifier); ok {
			if suggestion := errors.FindClosestMatch(id.Name, errors.Keywords); suggestion != "" {
				d.Hints = append([]string{"Did you mean `" + suggestion + "`?"}, d.Hints...)
			}
		}

	default:
		d = errors.NewSimple(errors.ClassParse, err.Error())
		d.Offset = p.current().Start
		d.End = p.current().End
	}
	return d.WithCause(err)
}
