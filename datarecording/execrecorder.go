package datarecording

import (
	"os"
	"strings"
	"time"
)

const timeFormat = "2006-01-02 15:04:05.000000000"

type execInfo struct {
	Property string
	Value    string
}

// ExecRecorder records facts about a simulation run, such as the command
// line, the cache configuration and the final results, into the exec_info
// table.
type ExecRecorder struct {
	tableName string
	recorder  DataRecorder
	entries   []execInfo
}

// NewExecRecorder creates the exec_info table in the recorder.
func NewExecRecorder(recorder DataRecorder) (*ExecRecorder, error) {
	e := &ExecRecorder{
		tableName: "exec_info",
		recorder:  recorder,
	}

	if err := recorder.CreateTable(e.tableName, execInfo{}); err != nil {
		return nil, err
	}

	return e, nil
}

// Start records the start time, the command and the working directory.
func (e *ExecRecorder) Start() {
	e.Record("Start Time", time.Now().Format(timeFormat))
	e.Record("Command", strings.Join(os.Args, " "))

	if cwd, err := os.Getwd(); err == nil {
		e.Record("Working Directory", cwd)
	}
}

// Record adds a property of the run.
func (e *ExecRecorder) Record(property, value string) {
	e.entries = append(e.entries, execInfo{Property: property, Value: value})
}

// End records the end time and writes all properties into the database.
func (e *ExecRecorder) End() error {
	e.Record("End Time", time.Now().Format(timeFormat))

	for _, entry := range e.entries {
		if err := e.recorder.InsertData(e.tableName, entry); err != nil {
			return err
		}
	}

	e.entries = nil

	return e.recorder.Flush()
}
