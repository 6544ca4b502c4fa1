package log

import (
	"fmt"
	"strings"
	"time"
)

// Infof takes a pointer subLogger struct, string and interface formats sends to the writer
func Infof(sl *SubLogger, data string, v ...any) {
	stagef(sl, logger.InfoHeader, data, v...)
}

// Infoln takes a pointer subLogger struct and interface sends to the writer
func Infoln(sl *SubLogger, v ...any) {
	stageln(sl, logger.InfoHeader, v...)
}

// Debugf takes a pointer subLogger struct, string and interface formats sends to the writer
func Debugf(sl *SubLogger, data string, v ...any) {
	stagef(sl, logger.DebugHeader, data, v...)
}

// Debugln takes a pointer subLogger struct, string and interface sends to the writer
func Debugln(sl *SubLogger, v ...any) {
	stageln(sl, logger.DebugHeader, v...)
}

// Warnf takes a pointer subLogger struct, string and interface formats sends to the writer
func Warnf(sl *SubLogger, data string, v ...any) {
	stagef(sl, logger.WarnHeader, data, v...)
}

// Warnln takes a pointer subLogger struct & interface formats and sends to the writer
func Warnln(sl *SubLogger, v ...any) {
	stageln(sl, logger.WarnHeader, v...)
}

// Errorf takes a pointer subLogger struct, string and interface formats sends to the writer
func Errorf(sl *SubLogger, data string, v ...any) {
	stagef(sl, logger.ErrorHeader, data, v...)
}

// Errorln takes a pointer subLogger struct, string & interface formats and sends to the writer
func Errorln(sl *SubLogger, v ...any) {
	stageln(sl, logger.ErrorHeader, v...)
}

func stagef(sl *SubLogger, header, data string, v ...any) {
	stage(sl, header, func() string { return fmt.Sprintf(data, v...) }, v...)
}

func stageln(sl *SubLogger, header string, v ...any) {
	stage(sl, header, func() string { return strings.TrimSuffix(fmt.Sprintln(v...), "\n") }, v...)
}

func stage(sl *SubLogger, header string, msg func() string, v ...any) {
	if sl == nil {
		sl = Global
	}
	mu.RLock()
	defer mu.RUnlock()
	if customLogHook != nil && customLogHook(header, sl.name, v...) {
		return
	}
	if !sl.enabled(header) || sl.output == nil {
		return
	}

	var b strings.Builder
	b.WriteString(header)
	if logger.ShowLogSystemName {
		b.WriteString(logger.Spacer)
		b.WriteString(sl.name)
	}
	b.WriteString(logger.Spacer)
	if logger.TimestampFormat != "" {
		b.WriteString(time.Now().Format(logger.TimestampFormat))
		b.WriteString(logger.Spacer)
	}
	b.WriteString(msg())
	b.WriteByte('\n')
	if _, err := sl.output.Write([]byte(b.String())); err != nil {
		fmt.Printf("Logger write error: %v\n", err)
	}
}
