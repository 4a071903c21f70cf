// Package logger holds the process wide structured logger.
package logger

import (
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	Logger     *zap.SugaredLogger
	JSONOutput bool
)

func init() {
	// usable before Initialize is called
	Logger = zap.NewNop().Sugar()
}

// Initialize replaces the global logger: JSON lines for machines or a console
// encoder for humans. An empty level means info.
func Initialize(jsonOutput bool, level string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	JSONOutput = jsonOutput

	var zl *zap.Logger
	if jsonOutput {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(lvl)
		config.OutputPaths = []string{"stderr"}
		zl, err = config.Build()
		if err != nil {
			return errors.Wrap(err, "build json logger")
		}
	} else {
		encoder := zap.NewDevelopmentEncoderConfig()
		encoder.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zl = zap.New(zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoder),
			zapcore.AddSync(os.Stderr),
			lvl,
		))
	}
	Logger = zl.Sugar()
	return nil
}

func ParseLevel(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return lvl, errors.WithHint(errors.Wrapf(err, "log level %q", level), "use one of debug, info, warn, error")
	}
	return lvl, nil
}

// Named gives a child of the global logger tagged with the component name.
func Named(component string) *zap.SugaredLogger {
	return Logger.With(FieldComponent, component)
}

func Sync() {
	_ = Logger.Sync()
}
