// ABOUTME: Safe SQL query builder for SQLite cache operations
// ABOUTME: Enforces parameterization and validates keys before they reach the database

package sqlite

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Logger is the minimal logging surface needed here, kept local to
// avoid a dependency on core/interfaces.
type Logger interface {
	Warn(msg string, fields map[string]interface{})
}

var (
	safeNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

	maxKeyLength   = 255
	maxValueLength = 1024 * 1024 // 1MB
)

// QueryBuilder builds parameterized SQL statements from validated identifiers
type QueryBuilder struct {
	query  string
	params []interface{}
}

// NewQueryBuilder creates a new query builder instance
func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{
		params: make([]interface{}, 0),
	}
}

// validateName rejects table or column names outside [a-zA-Z0-9_]
func (qb *QueryBuilder) validateName(name string) error {
	if name == "" {
		return errors.New("name cannot be empty")
	}
	if !safeNamePattern.MatchString(name) {
		return fmt.Errorf("invalid name: %s (only alphanumeric and underscore allowed)", name)
	}
	if len(name) > 64 {
		return fmt.Errorf("name too long: %s (max 64 characters)", name)
	}
	return nil
}

// Select builds a SELECT query
func (qb *QueryBuilder) Select(columns ...string) *QueryBuilder {
	for _, col := range columns {
		if err := qb.validateName(col); err != nil {
			qb.query = "SELECT * "
			return qb
		}
	}

	if len(columns) == 0 {
		qb.query = "SELECT * "
	} else {
		qb.query = "SELECT " + strings.Join(columns, ", ") + " "
	}
	return qb
}

// From adds the FROM clause
func (qb *QueryBuilder) From(table string) *QueryBuilder {
	if err := qb.validateName(table); err != nil {
		return qb
	}
	qb.query += "FROM " + table + " "
	return qb
}

// Where adds a parameterized WHERE condition
func (qb *QueryBuilder) Where(column string, operator string, value interface{}) *QueryBuilder {
	if err := qb.validateName(column); err != nil {
		return qb
	}

	allowedOperators := map[string]bool{
		"=": true, "!=": true, ">": true, "<": true, ">=": true, "<=": true,
	}
	if !allowedOperators[operator] {
		operator = "="
	}

	if strings.Contains(qb.query, "WHERE") {
		qb.query += "AND "
	} else {
		qb.query += "WHERE "
	}

	qb.query += column + " " + operator + " ? "
	qb.params = append(qb.params, value)
	return qb
}

// InsertOrReplace builds an INSERT OR REPLACE query
func (qb *QueryBuilder) InsertOrReplace(table string) *QueryBuilder {
	if err := qb.validateName(table); err != nil {
		return qb
	}
	qb.query = "INSERT OR REPLACE INTO " + table + " "
	return qb
}

// Values adds the column list and placeholders
func (qb *QueryBuilder) Values(columns []string, values []interface{}) *QueryBuilder {
	if len(columns) != len(values) {
		return qb
	}

	validColumns := make([]string, 0, len(columns))
	validValues := make([]interface{}, 0, len(values))
	for i, col := range columns {
		if err := qb.validateName(col); err == nil {
			validColumns = append(validColumns, col)
			validValues = append(validValues, values[i])
		}
	}
	if len(validColumns) == 0 {
		return qb
	}

	placeholders := make([]string, len(validColumns))
	for i := range placeholders {
		placeholders[i] = "?"
	}

	qb.query += "(" + strings.Join(validColumns, ", ") + ") VALUES (" + strings.Join(placeholders, ", ") + ")"
	qb.params = append(qb.params, validValues...)
	return qb
}

// Delete builds a DELETE query
func (qb *QueryBuilder) Delete(table string) *QueryBuilder {
	if err := qb.validateName(table); err != nil {
		return qb
	}
	qb.query = "DELETE FROM " + table + " "
	return qb
}

// Build returns the built query and parameters
func (qb *QueryBuilder) Build() (string, []interface{}) {
	return strings.TrimSpace(qb.query), qb.params
}

// ValidateKey rejects keys that are empty, oversized, or contain null bytes.
// Suspicious characters are logged but not rejected since parameterization
// already neutralizes them.
func ValidateKey(key string, logger Logger) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if len(key) > maxKeyLength {
		return fmt.Errorf("key too long: max %d characters", maxKeyLength)
	}
	if strings.Contains(key, "\x00") {
		return errors.New("key cannot contain null bytes")
	}

	suspiciousPatterns := []string{"--", "/*", "*/", ";", "'", "\"", "\\", "\n", "\r", "\t"}
	for _, pattern := range suspiciousPatterns {
		if strings.Contains(key, pattern) {
			if logger != nil {
				logger.Warn("Suspicious pattern detected in cache key", map[string]interface{}{
					"pattern":     pattern,
					"key_length":  len(key),
					"key_preview": truncateKey(key),
				})
			}
		}
	}
	return nil
}

// truncateKey returns a safe preview of the key for logging
func truncateKey(key string) string {
	const maxPreview = 50
	if len(key) <= maxPreview {
		return key
	}
	return key[:maxPreview] + "..."
}

// ValidateValue validates cache value size
func ValidateValue(value []byte) error {
	if len(value) == 0 {
		return errors.New("value cannot be empty")
	}
	if len(value) > maxValueLength {
		return fmt.Errorf("value too large: max %d bytes", maxValueLength)
	}
	return nil
}

// CacheQueryBuilder provides pre-built queries for cache operations
type CacheQueryBuilder struct{}

// NewCacheQueryBuilder creates a cache-specific query builder
func NewCacheQueryBuilder() *CacheQueryBuilder {
	return &CacheQueryBuilder{}
}

// GetQuery builds the parameterized lookup query
func (cq *CacheQueryBuilder) GetQuery() (string, int) {
	qb := NewQueryBuilder()
	qb.Select("value", "expiry").
		From("cache").
		Where("key", "=", nil).
		Where("expiry", ">", nil)

	query, _ := qb.Build()
	return query, 2
}

// SetQuery builds the parameterized upsert query
func (cq *CacheQueryBuilder) SetQuery() (string, int) {
	qb := NewQueryBuilder()
	qb.InsertOrReplace("cache").
		Values([]string{"key", "value", "expiry"}, []interface{}{nil, nil, nil})

	query, _ := qb.Build()
	return query, 3
}

// DeleteQuery builds the parameterized delete query
func (cq *CacheQueryBuilder) DeleteQuery() (string, int) {
	qb := NewQueryBuilder()
	qb.Delete("cache").Where("key", "=", nil)

	query, _ := qb.Build()
	return query, 1
}

// CleanupQuery builds the expired-row sweep query
func (cq *CacheQueryBuilder) CleanupQuery() (string, int) {
	qb := NewQueryBuilder()
	qb.Delete("cache").Where("expiry", "<=", nil)

	query, _ := qb.Build()
	return query, 1
}
