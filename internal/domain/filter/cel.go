package filter

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/cel-go/cel"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/entity"
)

// Variables visible to expressions.
const (
	VarItem = "item" // map of entity.Item.Fields
	VarNow  = "now"  // evaluation timestamp
)

var fieldPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Predicate is a compiled boolean expression over a single item.
type Predicate struct {
	expr    string
	program cel.Program
}

// Expression returns the source expression.
func (p *Predicate) Expression() string {
	return p.expr
}

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable(VarItem, cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable(VarNow, cel.TimestampType),
		cel.CrossTypeNumericComparisons(true),
	)
}

// Compile parses and type-checks expr. The expression must evaluate to bool.
func Compile(expr string) (*Predicate, error) {
	env, err := newEnv()
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("cel env: %w", err))
	}

	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, apperror.NewInvalidFilter(expr, iss.Err())
	}

	out := ast.OutputType()
	if !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, apperror.NewInvalidFilter(expr, fmt.Errorf("expression yields %s, want bool", out))
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, apperror.NewInvalidFilter(expr, err)
	}

	return &Predicate{expr: expr, program: prg}, nil
}

// CompileItems builds a predicate from structured rows.
func CompileItems(rows ...Item) (*Predicate, error) {
	expr, err := ToCEL(rows...)
	if err != nil {
		return nil, err
	}
	return Compile(expr)
}

// Match evaluates the predicate for it at the given instant.
func (p *Predicate) Match(it entity.Item, now time.Time) (bool, error) {
	out, _, err := p.program.Eval(map[string]any{
		VarItem: it.Fields(),
		VarNow:  now,
	})
	if err != nil {
		return false, apperror.NewInvalidFilter(p.expr, err).WithDetail("id", it.GetID())
	}

	matched, ok := out.Value().(bool)
	if !ok {
		return false, apperror.NewInvalidFilter(p.expr, fmt.Errorf("result %v is not bool", out.Value())).
			WithDetail("id", it.GetID())
	}
	return matched, nil
}

// ToCEL renders rows as a single CEL expression. No rows yields "true".
func ToCEL(rows ...Item) (string, error) {
	if len(rows) == 0 {
		return "true", nil
	}

	parts := make([]string, 0, len(rows))
	for _, row := range rows {
		part, err := rowToCEL(row)
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " && "), nil
}

func rowToCEL(row Item) (string, error) {
	if !fieldPattern.MatchString(row.Field) {
		return "", apperror.NewValidation("invalid filter field").WithDetail("field", row.Field)
	}
	ref := VarItem + "." + row.Field

	switch row.Operator {
	case IsNull:
		return fmt.Sprintf("!has(%s)", ref), nil
	case IsNotNull:
		return fmt.Sprintf("has(%s)", ref), nil
	case InList, NotInList:
		list, err := listLiteral(row.Value)
		if err != nil {
			return "", rowError(row, err)
		}
		if row.Operator == NotInList {
			return fmt.Sprintf("!(%s in %s)", ref, list), nil
		}
		return fmt.Sprintf("%s in %s", ref, list), nil
	}

	lit, err := literal(row.Value)
	if err != nil {
		return "", rowError(row, err)
	}

	switch row.Operator {
	case Equal:
		return fmt.Sprintf("%s == %s", ref, lit), nil
	case NotEqual:
		return fmt.Sprintf("%s != %s", ref, lit), nil
	case Less:
		return fmt.Sprintf("%s < %s", ref, lit), nil
	case LessOrEqual:
		return fmt.Sprintf("%s <= %s", ref, lit), nil
	case Greater:
		return fmt.Sprintf("%s > %s", ref, lit), nil
	case GreaterOrEqual:
		return fmt.Sprintf("%s >= %s", ref, lit), nil
	case Contains:
		return fmt.Sprintf("%s.contains(%s)", ref, lit), nil
	case NotContains:
		return fmt.Sprintf("!%s.contains(%s)", ref, lit), nil
	}

	return "", apperror.NewValidation("unsupported filter operator").
		WithDetail("field", row.Field).
		WithDetail("operator", string(row.Operator))
}

func rowError(row Item, err error) error {
	return apperror.NewValidation("invalid filter value").
		WithCause(err).
		WithDetail("field", row.Field).
		WithDetail("operator", string(row.Operator))
}

func literal(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return strconv.Quote(val), nil
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.FormatInt(int64(val), 10), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float32:
		return floatLiteral(float64(val)), nil
	case float64:
		return floatLiteral(val), nil
	case time.Time:
		return fmt.Sprintf("timestamp(%q)", val.UTC().Format(time.RFC3339)), nil
	case time.Duration:
		return fmt.Sprintf("duration(%q)", val.String()), nil
	}
	return "", fmt.Errorf("unsupported filter value type %T", v)
}

func floatLiteral(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func listLiteral(v any) (string, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return "", fmt.Errorf("in/nin requires a list value, got %T", v)
	}

	elems := make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		lit, err := literal(rv.Index(i).Interface())
		if err != nil {
			return "", err
		}
		elems = append(elems, lit)
	}
	return "[" + strings.Join(elems, ", ") + "]", nil
}
