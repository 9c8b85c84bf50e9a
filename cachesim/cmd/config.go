package cmd

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Environment variables that provide defaults for flags.
const (
	envSeed        = "CACHESIM_SEED"
	envAddressSize = "CACHESIM_ADDRESS_SIZE"
	envLogLevel    = "LOG_LEVEL"
)

func envUint(name string, fallback uint64) uint64 {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return fallback
	}

	parsed, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		logrus.Warnf("Invalid value '%s' for %s; Using %d", v, name, fallback)
		return fallback
	}

	return parsed
}

func envString(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		return v
	}

	return fallback
}

func setupLogger(lvl string, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	switch strings.ToLower(lvl) {
	case "trace":
		logger.SetLevel(logrus.TraceLevel)
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "info":
		logger.SetLevel(logrus.InfoLevel)
	case "warn", "warning", "":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.WarnLevel)
		logger.Warnf("Invalid log level '%s'; Using WARN", lvl)
	}

	return logger
}
