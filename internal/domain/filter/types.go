// Package filter provides item selection rules: structured rows and CEL expressions.
package filter

// ComparisonType defines the comparison applied by a filter row.
type ComparisonType string

const (
	Equal          ComparisonType = "eq"
	NotEqual       ComparisonType = "neq"
	Less           ComparisonType = "lt"
	LessOrEqual    ComparisonType = "lte"
	Greater        ComparisonType = "gt"
	GreaterOrEqual ComparisonType = "gte"
	InList         ComparisonType = "in"
	NotInList      ComparisonType = "nin"
	Contains       ComparisonType = "contains"  // substring match on text fields
	NotContains    ComparisonType = "ncontains" // negated substring match

	IsNull    ComparisonType = "null"     // field absent for this variant
	IsNotNull ComparisonType = "not_null" // field present
)

// Item is one filter row. Rows are combined with AND.
type Item struct {
	Field    string         `json:"field"`    // attribute name (snake_case), see entity.Item.Fields
	Operator ComparisonType `json:"operator"` // comparison
	Value    any            `json:"value"`    // scalar, or a slice for in/nin
}
