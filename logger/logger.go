package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// LogLevel представляет уровень логирования
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

// String возвращает строковое представление уровня логирования
func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel парсит строку в LogLevel
func ParseLogLevel(level string) LogLevel {
	switch strings.ToUpper(level) {
	case "TRACE", "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARN", "WARNING":
		return WARN
	case "ERROR", "FATAL":
		return ERROR
	default:
		return INFO // по умолчанию INFO
	}
}

func (l LogLevel) toLogrus() logrus.Level {
	switch l {
	case DEBUG:
		return logrus.DebugLevel
	case WARN:
		return logrus.WarnLevel
	case ERROR:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

func fromLogrus(level logrus.Level) LogLevel {
	switch {
	case level >= logrus.DebugLevel:
		return DEBUG
	case level == logrus.InfoLevel:
		return INFO
	case level == logrus.WarnLevel:
		return WARN
	default:
		return ERROR
	}
}

// Fields - структурированные поля записи лога
type Fields = logrus.Fields

// ApplicationField - имя поля с названием функции-приложения
const ApplicationField = "application"

// EnvironmentField - имя поля с окружением (NODE_ENV)
const EnvironmentField = "environment"

// Logger представляет логгер с уровнями поверх logrus.
// Логгеры, порожденные через ForApp/WithFields, делят общий вывод и уровень.
type Logger struct {
	base  *logrus.Logger
	entry *logrus.Entry
}

// New создает новый логгер с указанным уровнем
func New(level LogLevel) *Logger {
	base := logrus.New()
	base.SetOutput(os.Stdout)
	base.SetFormatter(&LineFormatter{})
	base.SetLevel(level.toLogrus())
	return &Logger{base: base, entry: logrus.NewEntry(base)}
}

// SetLevel устанавливает уровень логирования
func (l *Logger) SetLevel(level LogLevel) {
	l.base.SetLevel(level.toLogrus())
}

// GetLevel возвращает текущий уровень логирования
func (l *Logger) GetLevel() LogLevel {
	return fromLogrus(l.base.GetLevel())
}

// SetOutput перенаправляет вывод логгера
func (l *Logger) SetOutput(w io.Writer) {
	l.base.SetOutput(w)
}

// ForApp возвращает логгер, помеченный именем приложения
func (l *Logger) ForApp(name string) *Logger {
	return l.WithFields(Fields{ApplicationField: name})
}

// WithFields возвращает логгер с дополнительными полями
func (l *Logger) WithFields(fields Fields) *Logger {
	return &Logger{base: l.base, entry: l.entry.WithFields(fields)}
}

// Debug выводит отладочное сообщение
func (l *Logger) Debug(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

// Info выводит информационное сообщение
func (l *Logger) Info(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

// Warn выводит предупреждение
func (l *Logger) Warn(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

// Error выводит сообщение об ошибке
func (l *Logger) Error(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

// Глобальный логгер
var globalLogger = New(INFO)

// SetGlobalLevel устанавливает уровень для глобального логгера
func SetGlobalLevel(level LogLevel) {
	globalLogger.SetLevel(level)
}

// GetGlobalLevel возвращает уровень глобального логгера
func GetGlobalLevel() LogLevel {
	return globalLogger.GetLevel()
}

// SetGlobalOutput перенаправляет вывод глобального логгера
func SetGlobalOutput(w io.Writer) {
	globalLogger.SetOutput(w)
}

// SetEnvironment помечает все последующие записи окружением запуска
func SetEnvironment(env string) {
	if env == "" {
		return
	}
	globalLogger.entry = globalLogger.entry.WithField(EnvironmentField, env)
}

// ForApp возвращает логгер конкретной функции на базе глобального
func ForApp(name string) *Logger {
	return globalLogger.ForApp(name)
}

// Глобальные функции для удобства
func Debug(format string, args ...interface{}) {
	globalLogger.Debug(format, args...)
}

func Info(format string, args ...interface{}) {
	globalLogger.Info(format, args...)
}

func Warn(format string, args ...interface{}) {
	globalLogger.Warn(format, args...)
}

func Error(format string, args ...interface{}) {
	globalLogger.Error(format, args...)
}
