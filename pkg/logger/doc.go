// Package logger provides structured logging for the Graph API client.
//
// It wraps zerolog behind a small Logger interface so packages can accept a
// logger without depending on zerolog directly:
//
//	log, err := logger.New(&cfg.Logging)
//	log.WithField("user_id", id).Info("fetching user")
//	log.DebugWithFields("request completed", map[string]interface{}{
//	    "status":   200,
//	    "duration": time.Since(start),
//	})
//
// Console output is used unless Logging.File is set or Logging.Format is
// "json". Tests use NewTestLogger to capture messages or NewNopLogger to
// discard them.
package logger
