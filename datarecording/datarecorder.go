// Package datarecording stores simulation records in a SQLite database.
package datarecording

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/fatih/structs"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// ErrUnsupportedField is returned when an entry has a field that cannot be
// stored in a column.
var ErrUnsupportedField = errors.New("entry field type is not supported")

// DataRecorder is a backend that can record and store data.
type DataRecorder interface {
	// CreateTable creates a new table whose columns are the fields of the
	// sample entry.
	CreateTable(tableName string, sampleEntry any) error

	// InsertData buffers an entry for a table that already exists.
	InsertData(tableName string, entry any) error

	// ListTables returns the names of all tables, sorted.
	ListTables() []string

	// Flush writes all the buffered entries into the database.
	Flush() error

	// Close flushes and releases the database.
	Close() error
}

type table struct {
	structType reflect.Type
	entries    []any
}

// SQLiteWriter is the DataRecorder that writes into a SQLite database.
type SQLiteWriter struct {
	*sql.DB

	dbName     string
	tables     map[string]*table
	batchSize  int
	entryCount int
	ownsDB     bool
}

// New creates a recorder backed by the file <path>.sqlite3. An empty path
// selects a unique generated name. The file must not exist yet. Buffered
// entries are flushed when the program exits through atexit.
func New(path string) (*SQLiteWriter, error) {
	w := &SQLiteWriter{
		dbName:    path,
		batchSize: 100000,
		tables:    make(map[string]*table),
		ownsDB:    true,
	}

	if err := w.init(); err != nil {
		return nil, err
	}

	atexit.Register(func() { _ = w.Flush() })

	return w, nil
}

// NewWithDB creates a recorder that writes into an already opened database.
func NewWithDB(db *sql.DB) *SQLiteWriter {
	return &SQLiteWriter{
		DB:        db,
		batchSize: 100000,
		tables:    make(map[string]*table),
	}
}

// FileName returns the name of the database file, or an empty string if the
// recorder was given an opened database.
func (w *SQLiteWriter) FileName() string {
	if w.dbName == "" {
		return ""
	}

	return w.dbName + ".sqlite3"
}

func (w *SQLiteWriter) init() error {
	if w.dbName == "" {
		w.dbName = "cachesim_recording_" + xid.New().String()
	}

	filename := w.FileName()

	if _, err := os.Stat(filename); err == nil {
		return fmt.Errorf("file %s already exists", filename)
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return err
	}

	w.DB = db

	return nil
}

func isAllowedKind(kind reflect.Kind) bool {
	switch kind {
	case
		reflect.Bool,
		reflect.Int,
		reflect.Int8,
		reflect.Int16,
		reflect.Int32,
		reflect.Int64,
		reflect.Uint,
		reflect.Uint8,
		reflect.Uint16,
		reflect.Uint32,
		reflect.Uint64,
		reflect.Float32,
		reflect.Float64,
		reflect.String:
		return true
	default:
		return false
	}
}

func checkStructFields(entry any) error {
	t := reflect.TypeOf(entry)
	if t == nil || t.Kind() != reflect.Struct {
		return fmt.Errorf("%w: entry must be a struct", ErrUnsupportedField)
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !isAllowedKind(field.Type.Kind()) {
			return fmt.Errorf("%w: %s is %s",
				ErrUnsupportedField, field.Name, field.Type.Kind())
		}
	}

	return nil
}

// CreateTable creates a table with one column per field of the sample entry.
func (w *SQLiteWriter) CreateTable(tableName string, sampleEntry any) error {
	if err := checkStructFields(sampleEntry); err != nil {
		return err
	}

	fields := strings.Join(structs.Names(sampleEntry), ", \n\t")
	createTableSQL := `CREATE TABLE ` + tableName +
		` (` + "\n\t" + fields + "\n" + `);`

	if _, err := w.Exec(createTableSQL); err != nil {
		return fmt.Errorf("creating table %s: %w", tableName, err)
	}

	w.tables[tableName] = &table{
		structType: reflect.TypeOf(sampleEntry),
	}

	return nil
}

// InsertData buffers the entry. The buffer is flushed once it holds
// batchSize entries.
func (w *SQLiteWriter) InsertData(tableName string, entry any) error {
	t, exists := w.tables[tableName]
	if !exists {
		return fmt.Errorf("table %s does not exist", tableName)
	}

	if reflect.TypeOf(entry) != t.structType {
		return fmt.Errorf("entry of type %T does not match table %s",
			entry, tableName)
	}

	t.entries = append(t.entries, entry)

	w.entryCount++
	if w.entryCount >= w.batchSize {
		return w.Flush()
	}

	return nil
}

// ListTables returns the names of all the tables created.
func (w *SQLiteWriter) ListTables() []string {
	tables := make([]string, 0, len(w.tables))
	for name := range w.tables {
		tables = append(tables, name)
	}

	sort.Strings(tables)

	return tables
}

// Flush writes the buffered entries in a single transaction.
func (w *SQLiteWriter) Flush() error {
	if w.entryCount == 0 {
		return nil
	}

	tx, err := w.Begin()
	if err != nil {
		return err
	}

	for name, t := range w.tables {
		if len(t.entries) == 0 {
			continue
		}

		if err := insertEntries(tx, name, t.entries); err != nil {
			_ = tx.Rollback()
			return err
		}

		t.entries = nil
	}

	w.entryCount = 0

	return tx.Commit()
}

func insertEntries(tx *sql.Tx, tableName string, entries []any) error {
	placeholders := structs.Names(entries[0])
	for i := range placeholders {
		placeholders[i] = "?"
	}

	stmt, err := tx.Prepare("INSERT INTO " + tableName +
		" VALUES (" + strings.Join(placeholders, ", ") + ")")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, entry := range entries {
		value := reflect.ValueOf(entry)

		v := make([]any, 0, value.NumField())
		for i := 0; i < value.NumField(); i++ {
			v = append(v, value.Field(i).Interface())
		}

		if _, err := stmt.Exec(v...); err != nil {
			return err
		}
	}

	return nil
}

// Close flushes the buffered entries. The database is closed only if the
// recorder opened it.
func (w *SQLiteWriter) Close() error {
	if err := w.Flush(); err != nil {
		return err
	}

	if !w.ownsDB {
		return nil
	}

	return w.DB.Close()
}
