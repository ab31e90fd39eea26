package logging

import "go.uber.org/zap"

// Field helpers so call sites never import zap directly, matching the
// teacher's logging.String/logging.Uint64/logging.Error call sites in
// matching/side.go and matching/validation.go.

func String(key, val string) zap.Field { return zap.String(key, val) }

func Uint64(key string, val uint64) zap.Field { return zap.Uint64(key, val) }

func Uint32(key string, val uint32) zap.Field { return zap.Uint32(key, val) }

func Int64(key string, val int64) zap.Field { return zap.Int64(key, val) }

func Bool(key string, val bool) zap.Field { return zap.Bool(key, val) }

func Error(err error) zap.Field { return zap.Error(err) }

func OrderID(id string) zap.Field { return zap.String("orderID", id) }
