// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package translation

import (
	"fmt"
	"strings"
	"time"

	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"

	"github.com/taibuivan/lexicon/internal/platform/apperr"
	"github.com/taibuivan/lexicon/internal/platform/database/schema"
	"github.com/taibuivan/lexicon/pkg/query"
)

// Expression is a parsed and type-checked AIP-160 filter.
type Expression struct {
	raw  string
	expr *expr.Expr
}

// String returns the filter as the caller wrote it.
func (e *Expression) String() string { return e.raw }

// filterColumns maps filter identifiers to translation columns (alias t).
var filterColumns = map[string]string{
	"key":        "t." + schema.CoreTranslation.Key,
	"value":      "t." + schema.CoreTranslation.Value,
	"locale_id":  "t." + schema.CoreTranslation.LocaleID,
	"created_at": "t." + schema.CoreTranslation.CreatedAt,
	"updated_at": "t." + schema.CoreTranslation.UpdatedAt,
}

func declarations() (*filtering.Declarations, error) {
	return filtering.NewDeclarations(
		filtering.DeclareStandardFunctions(),
		filtering.DeclareIdent("key", filtering.TypeString),
		filtering.DeclareIdent("value", filtering.TypeString),
		filtering.DeclareIdent("locale_id", filtering.TypeInt),
		filtering.DeclareIdent("created_at", filtering.TypeTimestamp),
		filtering.DeclareIdent("updated_at", filtering.TypeTimestamp),
	)
}

// ParseFilter parses and type-checks an AIP-160 filter such as
//
//	key = "app.*" AND locale_id = 2 AND updated_at > timestamp("2026-01-01T00:00:00Z")
//
// A trailing "*" in a string comparison turns it into a prefix match.
// An empty filter yields a nil expression.
func ParseFilter(raw string) (*Expression, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	decls, err := declarations()
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("filter declarations: %w", err))
	}

	parsed, err := filtering.ParseFilterString(raw, decls)
	if err != nil {
		return nil, invalidFilter(err)
	}

	expression := &Expression{raw: raw, expr: parsed.CheckedExpr.GetExpr()}

	// Reject what parses but cannot be expressed in SQL before it reaches storage.
	if _, _, err := compileFilter(expression, nil); err != nil {
		return nil, invalidFilter(err)
	}
	return expression, nil
}

func invalidFilter(err error) error {
	return apperr.ValidationError("Invalid filter", apperr.FieldError{Field: FieldFilter, Message: err.Error()})
}

// compileFilter renders the expression as a SQL predicate. Parameters are
// appended to args and referenced by position.
func compileFilter(expression *Expression, args []any) (string, []any, error) {
	if expression == nil || expression.expr == nil {
		return "", args, nil
	}
	compiler := &filterCompiler{args: args}
	clause, err := compiler.compile(expression.expr)
	return clause, compiler.args, err
}

type filterCompiler struct {
	args []any
}

func (compiler *filterCompiler) bind(value any) string {
	compiler.args = append(compiler.args, value)
	return query.Placeholder(len(compiler.args))
}

func (compiler *filterCompiler) compile(e *expr.Expr) (string, error) {
	call, ok := e.GetExprKind().(*expr.Expr_CallExpr)
	if !ok {
		return "", fmt.Errorf("unsupported expression type: %T", e.GetExprKind())
	}

	fn := call.CallExpr.GetFunction()
	args := call.CallExpr.GetArgs()

	switch fn {
	case filtering.FunctionAnd, "_&&_":
		return compiler.binary(args, "AND")
	case filtering.FunctionOr, "_||_":
		return compiler.binary(args, "OR")
	case filtering.FunctionNot, "!_":
		if len(args) != 1 {
			return "", fmt.Errorf("NOT requires 1 argument")
		}
		inner, err := compiler.compile(args[0])
		if err != nil {
			return "", err
		}
		return "(NOT " + inner + ")", nil
	case filtering.FunctionEquals, "_==_":
		return compiler.comparison(args, "=")
	case filtering.FunctionNotEquals, "_!=_":
		return compiler.comparison(args, "<>")
	case filtering.FunctionLessThan, "_<_":
		return compiler.comparison(args, "<")
	case filtering.FunctionLessEquals, "_<=_":
		return compiler.comparison(args, "<=")
	case filtering.FunctionGreaterThan, "_>_":
		return compiler.comparison(args, ">")
	case filtering.FunctionGreaterEquals, "_>=_":
		return compiler.comparison(args, ">=")
	default:
		return "", fmt.Errorf("unsupported function: %s", fn)
	}
}

func (compiler *filterCompiler) binary(args []*expr.Expr, op string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("%s requires 2 arguments", op)
	}

	left, err := compiler.compile(args[0])
	if err != nil {
		return "", err
	}
	right, err := compiler.compile(args[1])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s %s %s)", left, op, right), nil
}

func (compiler *filterCompiler) comparison(args []*expr.Expr, op string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("comparison requires 2 arguments")
	}

	ident, ok := args[0].GetExprKind().(*expr.Expr_IdentExpr)
	if !ok {
		return "", fmt.Errorf("expected identifier on the left of %s", op)
	}
	column, ok := filterColumns[ident.IdentExpr.GetName()]
	if !ok {
		return "", fmt.Errorf("unknown field: %s", ident.IdentExpr.GetName())
	}

	value, err := constantValue(args[1])
	if err != nil {
		return "", err
	}

	// "abc*" means starts-with for equality on strings.
	if text, isString := value.(string); isString && strings.HasSuffix(text, "*") && (op == "=" || op == "<>") {
		like := "LIKE"
		if op == "<>" {
			like = "NOT LIKE"
		}
		return fmt.Sprintf("%s %s %s", column, like, compiler.bind(query.LikePrefix(strings.TrimSuffix(text, "*")))), nil
	}

	return fmt.Sprintf("%s %s %s", column, op, compiler.bind(value)), nil
}

func constantValue(e *expr.Expr) (any, error) {
	switch kind := e.GetExprKind().(type) {
	case *expr.Expr_ConstExpr:
		switch constant := kind.ConstExpr.GetConstantKind().(type) {
		case *expr.Constant_StringValue:
			return constant.StringValue, nil
		case *expr.Constant_Int64Value:
			return constant.Int64Value, nil
		case *expr.Constant_Uint64Value:
			return int64(constant.Uint64Value), nil
		default:
			return nil, fmt.Errorf("unsupported constant type: %T", constant)
		}
	case *expr.Expr_CallExpr:
		if kind.CallExpr.GetFunction() == filtering.FunctionTimestamp && len(kind.CallExpr.GetArgs()) == 1 {
			return timestampValue(kind.CallExpr.GetArgs()[0])
		}
		return nil, fmt.Errorf("unsupported function in value position: %s", kind.CallExpr.GetFunction())
	default:
		return nil, fmt.Errorf("expected constant, got %T", kind)
	}
}

func timestampValue(e *expr.Expr) (time.Time, error) {
	constant, ok := e.GetConstExpr().GetConstantKind().(*expr.Constant_StringValue)
	if !ok {
		return time.Time{}, fmt.Errorf("timestamp argument must be a constant string")
	}

	parsed, err := time.Parse(time.RFC3339Nano, constant.StringValue)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp: %s", constant.StringValue)
	}
	return parsed.UTC(), nil
}
