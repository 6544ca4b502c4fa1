package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	errConfigIsNil           = errors.New("logger config is nil")
	errUnhandledOutputWriter = errors.New("unhandled output writer")
	errSubLoggerNotFound     = errors.New("sub logger not found")

	defaultOutput io.Writer = os.Stdout
	defaultConfig           = GenDefaultSettings()
)

func boolPtr(b bool) *bool { return &b }

// GenDefaultSettings return struct with known sane/working logger settings
func GenDefaultSettings() Config {
	return Config{
		Enabled: boolPtr(true),
		SubLoggerConfig: SubLoggerConfig{
			Level:  "INFO|WARN|ERROR",
			Output: "console",
		},
		AdvancedSettings: advancedSettings{
			ShowLogSystemName: boolPtr(true),
			Spacer:            spacer,
			TimeStampFormat:   timestampFormat,
			Headers: headers{
				Info:  "[INFO]",
				Warn:  "[WARN]",
				Debug: "[DEBUG]",
				Error: "[ERROR]",
			},
		},
	}
}

func getWriters(s *SubLoggerConfig) (io.Writer, error) {
	mw := &multiWriter{}
	for _, out := range strings.Split(s.Output, "|") {
		var w io.Writer
		switch strings.ToLower(out) {
		case "stdout", "console":
			w = os.Stdout
		case "stderr":
			w = os.Stderr
		default:
			return nil, fmt.Errorf("%w: %s", errUnhandledOutputWriter, out)
		}
		if err := mw.Add(w); err != nil {
			return nil, err
		}
	}
	return mw, nil
}

// SetupGlobalLogger applies the config to the header settings and every
// registered sub logger. Named sub logger entries override the global level
// and output.
func SetupGlobalLogger(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNil
	}
	global, err := getWriters(&cfg.SubLoggerConfig)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(cfg)
	enabled := cfg.Enabled == nil || *cfg.Enabled
	for _, sl := range subLoggers {
		sl.output = global
		if enabled {
			sl.levels = splitLevel(cfg.Level)
		} else {
			sl.levels = Levels{}
		}
	}
	if !enabled {
		return nil
	}
	for i := range cfg.SubLoggers {
		sl, ok := subLoggers[strings.ToUpper(cfg.SubLoggers[i].Name)]
		if !ok {
			return fmt.Errorf("%w: %s", errSubLoggerNotFound, cfg.SubLoggers[i].Name)
		}
		out, err := getWriters(&cfg.SubLoggers[i])
		if err != nil {
			return err
		}
		sl.output = out
		sl.levels = splitLevel(cfg.SubLoggers[i].Level)
	}
	return nil
}

func newLogger(c *Config) Logger {
	showName := c.AdvancedSettings.ShowLogSystemName != nil && *c.AdvancedSettings.ShowLogSystemName
	return Logger{
		ShowLogSystemName: showName,
		TimestampFormat:   c.AdvancedSettings.TimeStampFormat,
		Spacer:            c.AdvancedSettings.Spacer,
		InfoHeader:        c.AdvancedSettings.Headers.Info,
		ErrorHeader:       c.AdvancedSettings.Headers.Error,
		DebugHeader:       c.AdvancedSettings.Headers.Debug,
		WarnHeader:        c.AdvancedSettings.Headers.Warn,
	}
}

func splitLevel(level string) (l Levels) {
	for _, lvl := range strings.Split(level, "|") {
		switch strings.ToUpper(lvl) {
		case "DEBUG":
			l.Debug = true
		case "INFO":
			l.Info = true
		case "WARN":
			l.Warn = true
		case "ERROR":
			l.Error = true
		}
	}
	return
}
