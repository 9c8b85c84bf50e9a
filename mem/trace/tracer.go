// Package trace reads address traces and records how a cache served them.
package trace

import (
	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/mem/cache"
)

const accessTable = "cache_accesses"

// accessEntry represents a cache access in the database.
type accessEntry struct {
	ID      string
	Cache   string
	Seq     uint64
	Address uint64
	SetID   int
	WayID   int
	Tag     uint64
	Outcome string
}

// A logTracer is a hook that logs every access served by a cache.
type logTracer struct {
	logger *logrus.Logger
	seq    uint64
}

// NewLogTracer creates a hook that logs each access at debug level.
func NewLogTracer(logger *logrus.Logger) cache.Hook {
	return &logTracer{logger: logger}
}

// Func logs the access.
func (t *logTracer) Func(ctx cache.HookCtx) {
	if ctx.Pos != cache.HookPosAccess {
		return
	}

	t.seq++

	t.logger.WithFields(logrus.Fields{
		"cache":   ctx.Domain.Name(),
		"seq":     t.seq,
		"address": ctx.Item.Address,
		"set":     ctx.Item.SetID,
		"way":     ctx.Item.WayID,
		"tag":     ctx.Item.Tag,
	}).Debug(ctx.Item.Outcome())
}

// A dbTracer is a hook that records every access into a database using the
// data recorder.
type dbTracer struct {
	dataRecorder datarecording.DataRecorder
	seq          uint64
	err          error
}

// DBTracer is a hook that stores accesses with a data recorder. Err reports
// the first failure to record an access.
type DBTracer interface {
	cache.Hook
	Err() error
}

// NewDBTracer creates the access table and returns a hook that fills it.
func NewDBTracer(dataRecorder datarecording.DataRecorder) (DBTracer, error) {
	err := dataRecorder.CreateTable(accessTable, accessEntry{})
	if err != nil {
		return nil, err
	}

	return &dbTracer{dataRecorder: dataRecorder}, nil
}

// Func records the access.
func (t *dbTracer) Func(ctx cache.HookCtx) {
	if ctx.Pos != cache.HookPosAccess || t.err != nil {
		return
	}

	t.seq++

	entry := accessEntry{
		ID:      xid.New().String(),
		Cache:   ctx.Domain.Name(),
		Seq:     t.seq,
		Address: ctx.Item.Address,
		SetID:   ctx.Item.SetID,
		WayID:   ctx.Item.WayID,
		Tag:     ctx.Item.Tag,
		Outcome: ctx.Item.Outcome(),
	}

	t.err = t.dataRecorder.InsertData(accessTable, entry)
}

func (t *dbTracer) Err() error {
	return t.err
}
