package log

import (
	"errors"
	"io"
	"strings"
)

var errSubLoggerAlreadyRegistered = errors.New("sub logger already registered")

// Global vars related to the logger package
var (
	subLoggers = map[string]*SubLogger{}

	Global      *SubLogger
	ConfigMgr   *SubLogger
	RequestSys  *SubLogger
	ExchangeSys *SubLogger
)

// SubLogger defines a sub logger can be used externally for packages wanted to
// leverage GCT library logger features.
type SubLogger struct {
	name   string
	levels Levels
	output io.Writer
}

// NewSubLogger allows for a new sub logger to be registered.
func NewSubLogger(name string) (*SubLogger, error) {
	if name == "" {
		return nil, errors.New("new sub logger name is empty")
	}
	name = strings.ToUpper(name)
	mu.Lock()
	defer mu.Unlock()
	if _, ok := subLoggers[name]; ok {
		return nil, errSubLoggerAlreadyRegistered
	}
	return registerNewSubLogger(name), nil
}

// GetName returns the sub logger name
func (sl *SubLogger) GetName() string {
	if sl == nil {
		return "GLOBAL"
	}
	return sl.name
}

// SetLevels overrides the enabled levels of the sub logger
func (sl *SubLogger) SetLevels(l Levels) {
	mu.Lock()
	sl.levels = l
	mu.Unlock()
}

// SetOutput overrides the sub logger writer
func (sl *SubLogger) SetOutput(w io.Writer) {
	mu.Lock()
	sl.output = w
	mu.Unlock()
}

// enabled reports whether the level behind header is switched on
func (sl *SubLogger) enabled(header string) bool {
	switch header {
	case logger.InfoHeader:
		return sl.levels.Info
	case logger.WarnHeader:
		return sl.levels.Warn
	case logger.ErrorHeader:
		return sl.levels.Error
	case logger.DebugHeader:
		return sl.levels.Debug
	}
	return false
}

func registerNewSubLogger(name string) *SubLogger {
	sl := &SubLogger{
		name:   strings.ToUpper(name),
		levels: splitLevel("INFO|WARN|ERROR"),
		output: defaultOutput,
	}
	subLoggers[sl.name] = sl
	return sl
}

func init() {
	logger = newLogger(&defaultConfig)
	Global = registerNewSubLogger("LOG")
	ConfigMgr = registerNewSubLogger("CONFIG")
	RequestSys = registerNewSubLogger("REQUESTER")
	ExchangeSys = registerNewSubLogger("EXCHANGE")
}
