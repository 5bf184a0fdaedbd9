// Package logger provides structured JSON logging on top of Uber's Zap,
// with a map-based field API and an Fx module for dependency injection.
//
//	log := logger.NewLoggerClient(logger.Config{Level: logger.Info, ServiceName: "search-store"})
//	log.Info("started", nil, map[string]interface{}{"port": 6334})
package logger
