package store

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"

	"github.com/goalscanpro/goalscan/internal/logger"
	_ "modernc.org/sqlite"
)

// Tag-driven sqlite persistence. Entities declare their schema with
// struct tags (column, dbtype, primary, index) and the store derives
// DDL and queries by reflection. Fields without a dbtype tag, or
// tagged persist:"false", stay in memory only.

var db *sql.DB

// Persistable is implemented by every stored entity
type Persistable interface {
	TableName() string
	PrimaryKey() map[string]any
	BeforeSave() error
}

// Open opens (or creates) the database at the given path and verifies
// the connection. Use ":memory:" for an ephemeral store.
func Open(path string) error {
	if db != nil {
		return nil
	}
	d, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if path == ":memory:" {
		// each pooled connection would otherwise see its own empty database
		d.SetMaxOpenConns(1)
	}
	if err := d.Ping(); err != nil {
		d.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}
	db = d
	logger.Info("Database opened", path)
	return nil
}

// Close closes the database connection
func Close() error {
	if db == nil {
		return nil
	}
	err := db.Close()
	db = nil
	return err
}

func getDB() (*sql.DB, error) {
	if db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	return db, nil
}

// column describes one persisted struct field
type column struct {
	name    string
	dbType  string
	primary bool
	indexed bool
	field   int
}

// tableColumns derives the column plan from an entity's struct tags
func tableColumns(obj any) []column {
	objType := reflect.TypeOf(obj)
	if objType.Kind() == reflect.Ptr {
		objType = objType.Elem()
	}

	var columns []column
	for i := 0; i < objType.NumField(); i++ {
		field := objType.Field(i)
		if !field.IsExported() || field.Tag.Get("persist") == "false" {
			continue
		}
		dbType := field.Tag.Get("dbtype")
		if dbType == "" {
			continue
		}
		name := field.Tag.Get("column")
		if name == "" {
			name = strings.ToLower(field.Name)
		}
		columns = append(columns, column{
			name:    name,
			dbType:  dbType,
			primary: field.Tag.Get("primary") == "true",
			indexed: field.Tag.Get("index") != "",
			field:   i,
		})
	}
	return columns
}

// CreateTable creates the entity's table and indexes if missing
func CreateTable(obj Persistable) error {
	d, err := getDB()
	if err != nil {
		return err
	}

	columns := tableColumns(obj)
	var defs, keys []string
	for _, c := range columns {
		defs = append(defs, fmt.Sprintf("%s %s", c.name, c.dbType))
		if c.primary {
			keys = append(keys, c.name)
		}
	}
	if len(keys) > 0 {
		defs = append(defs, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(keys, ", ")))
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", obj.TableName(), strings.Join(defs, ", "))
	logger.Debug("Creating table", ddl)
	if _, err := d.Exec(ddl); err != nil {
		return fmt.Errorf("failed to create table %s: %w", obj.TableName(), err)
	}

	for _, c := range columns {
		if !c.indexed {
			continue
		}
		stmt := fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%s_%s ON %s(%s)",
			obj.TableName(), c.name, obj.TableName(), c.name)
		if _, err := d.Exec(stmt); err != nil {
			logger.Warn("Failed to create index", err)
		}
	}
	return nil
}

// Save inserts the entity, or updates it when its primary key already
// exists
func Save(obj Persistable) error {
	if err := obj.BeforeSave(); err != nil {
		return fmt.Errorf("before save hook failed: %w", err)
	}

	exists, err := Exists(obj)
	if err != nil {
		return err
	}
	if exists {
		return update(obj)
	}
	return insert(obj)
}

func insert(obj Persistable) error {
	d, err := getDB()
	if err != nil {
		return err
	}

	objValue := reflect.ValueOf(obj).Elem()
	var names, marks []string
	var values []any
	for _, c := range tableColumns(obj) {
		names = append(names, c.name)
		marks = append(marks, "?")
		values = append(values, objValue.Field(c.field).Interface())
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		obj.TableName(), strings.Join(names, ", "), strings.Join(marks, ", "))
	logger.Debug("Insert SQL", query)
	if _, err := d.Exec(query, values...); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", obj.TableName(), err)
	}
	return nil
}

func update(obj Persistable) error {
	d, err := getDB()
	if err != nil {
		return err
	}

	objValue := reflect.ValueOf(obj).Elem()
	var pairs []string
	var values []any
	for _, c := range tableColumns(obj) {
		if c.primary {
			continue
		}
		pairs = append(pairs, fmt.Sprintf("%s = ?", c.name))
		values = append(values, objValue.Field(c.field).Interface())
	}
	where, keyValues := whereClause(obj.PrimaryKey())
	values = append(values, keyValues...)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s", obj.TableName(), strings.Join(pairs, ", "), where)
	logger.Debug("Update SQL", query)
	if _, err := d.Exec(query, values...); err != nil {
		return fmt.Errorf("failed to update %s: %w", obj.TableName(), err)
	}
	return nil
}

// Exists reports whether a row with the entity's primary key is stored
func Exists(obj Persistable) (bool, error) {
	d, err := getDB()
	if err != nil {
		return false, err
	}

	where, values := whereClause(obj.PrimaryKey())
	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", obj.TableName(), where)
	if err := d.QueryRow(query, values...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check existence in %s: %w", obj.TableName(), err)
	}
	return count > 0, nil
}

// Load populates the entity from the row matching its primary key
func Load(obj Persistable) error {
	d, err := getDB()
	if err != nil {
		return err
	}

	names, destinations := scanTargets(obj)
	where, values := whereClause(obj.PrimaryKey())

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s", strings.Join(names, ", "), obj.TableName(), where)
	logger.Debug("Load SQL", query)
	if err := d.QueryRow(query, values...).Scan(destinations...); err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("record not found in %s", obj.TableName())
		}
		return fmt.Errorf("failed to scan row from %s: %w", obj.TableName(), err)
	}
	return nil
}

// Delete removes the row matching the entity's primary key
func Delete(obj Persistable) error {
	d, err := getDB()
	if err != nil {
		return err
	}

	where, values := whereClause(obj.PrimaryKey())
	query := fmt.Sprintf("DELETE FROM %s WHERE %s", obj.TableName(), where)
	if _, err := d.Exec(query, values...); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", obj.TableName(), err)
	}
	return nil
}

// DeleteWhere removes all rows matching the clause and reports how
// many were deleted
func DeleteWhere(obj Persistable, where string, args ...any) (int64, error) {
	d, err := getDB()
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE %s", obj.TableName(), where)
	logger.Debug("DeleteWhere SQL", query)
	result, err := d.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete from %s: %w", obj.TableName(), err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}

// FindWhere returns all rows of the entity's type matching the clause.
// Each result is a pointer of the same concrete type as obj.
func FindWhere(obj Persistable, where string, args ...any) ([]any, error) {
	d, err := getDB()
	if err != nil {
		return nil, err
	}

	names, _ := scanTargets(obj)
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(names, ", "), obj.TableName())
	if where != "" {
		query += " WHERE " + where
	}
	logger.Debug("FindWhere SQL", query)

	rows, err := d.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", obj.TableName(), err)
	}
	defer rows.Close()

	objType := reflect.TypeOf(obj).Elem()
	var results []any
	for rows.Next() {
		next := reflect.New(objType).Interface()
		_, destinations := scanTargets(next)
		if err := rows.Scan(destinations...); err != nil {
			return nil, fmt.Errorf("failed to scan row from %s: %w", obj.TableName(), err)
		}
		results = append(results, next)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows from %s: %w", obj.TableName(), err)
	}
	return results, nil
}

// scanTargets returns column names and matching scan destinations
func scanTargets(obj any) ([]string, []any) {
	objValue := reflect.ValueOf(obj).Elem()
	var names []string
	var destinations []any
	for _, c := range tableColumns(obj) {
		names = append(names, c.name)
		destinations = append(destinations, objValue.Field(c.field).Addr().Interface())
	}
	return names, destinations
}

func whereClause(key map[string]any) (string, []any) {
	var conditions []string
	var values []any
	for name, value := range key {
		conditions = append(conditions, fmt.Sprintf("%s = ?", name))
		values = append(values, value)
	}
	return strings.Join(conditions, " AND "), values
}
