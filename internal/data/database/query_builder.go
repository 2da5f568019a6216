// Package database builds sanitized list queries for the sort defaults store.
package database

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/target/sortparam/internal/domain/model"
)

type ConditionType string

const (
	Equal              ConditionType = "="
	NotEqual           ConditionType = "!="
	GreaterThan        ConditionType = ">"
	LessThan           ConditionType = "<"
	LessThanOrEqual    ConditionType = "<="
	GreaterThanOrEqual ConditionType = ">="
	Like               ConditionType = "LIKE"
	ILike              ConditionType = "ILIKE"
	defaultLimit                     = -1
	defaultOffset                    = -1
)

var aliasRe = regexp.MustCompile(`(?i)\s+AS\s+`)

// Condition compares one column against a bound value.
type Condition struct {
	Field string
	Type  ConditionType
	Value any
}

func WhereCond(field string, condType ConditionType, value any) Condition {
	return Condition{Field: field, Type: condType, Value: value}
}

type ListQueryOptions struct {
	Table       string
	Columns     []string
	CountOnly   bool
	Conditions  []Condition
	Sort        model.Sort
	SortColumns map[string]string
	Limit       int
	Offset      int
}

type ListQueryOption func(*ListQueryOptions)

func NewListQueryOptions(table string, opts ...ListQueryOption) *ListQueryOptions {
	options := &ListQueryOptions{
		Table:  table,
		Limit:  defaultLimit,
		Offset: defaultOffset,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithColumns sets the columns to select.
func WithColumns(cols ...string) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.Columns = cols
	}
}

// WithCondition adds a single condition.
func WithCondition(cond Condition) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.Conditions = append(o.Conditions, cond)
	}
}

// WithSort appends every order of s to the ORDER BY clause, in order.
func WithSort(s model.Sort) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.Sort = o.Sort.And(s)
	}
}

// WithSortColumns restricts sortable properties to the keys of mapping and renders each as
// the mapped column. Orders on other properties are skipped.
func WithSortColumns(mapping map[string]string) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.SortColumns = mapping
	}
}

// WithLimit sets the limit. Accepts 0.
func WithLimit(limit int) ListQueryOption {
	return func(o *ListQueryOptions) {
		if limit >= 0 {
			o.Limit = limit
		}
	}
}

// WithOffset sets the offset. Accepts 0.
func WithOffset(offset int) ListQueryOption {
	return func(o *ListQueryOptions) {
		if offset >= 0 {
			o.Offset = offset
		}
	}
}

// WithCountOnly sets the query to count only.
func WithCountOnly() ListQueryOption {
	return func(o *ListQueryOptions) {
		o.CountOnly = true
	}
}

func sanitizeIdentifier(ident string) string {
	return pgx.Identifier{ident}.Sanitize()
}

// sanitizeQualifiedIdentifier quotes each part of "table.column" separately.
func sanitizeQualifiedIdentifier(ident string) string {
	return pgx.Identifier(strings.Split(ident, ".")).Sanitize()
}

// processColumnSpec quotes "column" and "column AS alias" specs.
func processColumnSpec(spec string) string {
	parts := aliasRe.Split(spec, 2)
	if len(parts) == 2 {
		return fmt.Sprintf("%s AS %s",
			sanitizeQualifiedIdentifier(strings.TrimSpace(parts[0])),
			sanitizeIdentifier(strings.TrimSpace(parts[1])))
	}
	return sanitizeQualifiedIdentifier(spec)
}

func buildSelectClause(options *ListQueryOptions) string {
	if options.CountOnly {
		return "SELECT COUNT(*) "
	}
	if len(options.Columns) == 0 {
		return "SELECT * "
	}
	cols := make([]string, len(options.Columns))
	for i, col := range options.Columns {
		cols[i] = processColumnSpec(col)
	}
	return fmt.Sprintf("SELECT %s ", strings.Join(cols, ", "))
}

// buildOrderClause renders options.Sort as `ORDER BY "a" ASC, "b" DESC`.
func buildOrderClause(options *ListQueryOptions) string {
	terms := make([]string, 0, options.Sort.Len())
	for _, o := range options.Sort.Orders() {
		column := o.Property
		if options.SortColumns != nil {
			mapped, ok := options.SortColumns[o.Property]
			if !ok {
				continue
			}
			column = mapped
		}
		terms = append(terms, sanitizeQualifiedIdentifier(column)+" "+strings.ToUpper(o.Direction.String()))
	}
	if len(terms) == 0 {
		return ""
	}
	return " ORDER BY " + strings.Join(terms, ", ")
}

func buildPaginationClause(options *ListQueryOptions, paramCount int, args []any) (string, []any) {
	var clause strings.Builder
	if options.Limit != defaultLimit {
		clause.WriteString(fmt.Sprintf(" LIMIT $%d", paramCount))
		args = append(args, options.Limit)
		paramCount++
	}
	if options.Offset != defaultOffset {
		clause.WriteString(fmt.Sprintf(" OFFSET $%d", paramCount))
		args = append(args, options.Offset)
	}
	return clause.String(), args
}

// BuildListQuery constructs a SQL query string and arguments from options, sanitizing identifiers.
//
//	options := NewListQueryOptions("sort_defaults",
//		WithColumns("site", "updated_at"),
//		WithCondition(WhereCond("site", ILike, "%user%")),
//		WithSort(model.SortOf(model.Desc("updated"), model.Asc("site"))),
//		WithSortColumns(map[string]string{"site": "site", "updated": "updated_at"}),
//		WithLimit(10),
//	)
//	query, args := BuildListQuery(options)
func BuildListQuery(options *ListQueryOptions) (string, []any) {
	if options == nil {
		return "", nil
	}

	var query strings.Builder
	query.WriteString(buildSelectClause(options))
	query.WriteString("FROM ")
	query.WriteString(sanitizeIdentifier(options.Table))

	whereClause, args, nextParam := buildWhereClause(options.Conditions, 1)
	if whereClause != "" {
		query.WriteString(" ")
		query.WriteString(whereClause)
	}
	if options.CountOnly {
		return query.String(), args
	}

	query.WriteString(buildOrderClause(options))
	pagination, args := buildPaginationClause(options, nextParam, args)
	query.WriteString(pagination)
	return query.String(), args
}

func processCondition(cond Condition, paramCount int) (string, []any, int) {
	if cond.Field == "" {
		return "", nil, paramCount
	}
	field := sanitizeIdentifier(cond.Field)

	switch cond.Type {
	case Equal, NotEqual, GreaterThan, LessThan, LessThanOrEqual, GreaterThanOrEqual, Like, ILike:
		return fmt.Sprintf("%s %s $%d", field, cond.Type, paramCount), []any{cond.Value}, paramCount + 1
	}
	return "", nil, paramCount
}

func buildWhereClause(inputConditions []Condition, paramCount int) (string, []any, int) {
	conditions := make([]string, 0, len(inputConditions))
	args := []any{}

	for _, cond := range inputConditions {
		sql, condArgs, next := processCondition(cond, paramCount)
		if sql != "" {
			conditions = append(conditions, sql)
			args = append(args, condArgs...)
			paramCount = next
		}
	}

	if len(conditions) == 0 {
		return "", args, paramCount
	}
	return "WHERE " + strings.Join(conditions, " AND "), args, paramCount
}
