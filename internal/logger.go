package internal

import (
	"alba/entity"
	"alba/services"
	"context"
	"fmt"
	"log"
	"time"
)

const (
	levelDebug = "debug"
	levelInfo  = "info"
	levelWarn  = "warn"
	levelError = "error"

	writeTimeout = 5 * time.Second
)

// Logger prints records with a category prefix and, when a database is set,
// also stores them in the payment log. Storing is best effort.
type Logger struct {
	category string
	debug    bool
	database services.Database
}

func NewLogger(category string, debug bool, database services.Database) *Logger {
	return &Logger{
		category: category,
		debug:    debug,
		database: database,
	}
}

func (l *Logger) Debug(text string) {
	if !l.debug {
		return
	}
	l.write(levelDebug, text)
}

func (l *Logger) Info(text string) {
	l.write(levelInfo, text)
}

func (l *Logger) Warn(text string) {
	l.write(levelWarn, text)
}

func (l *Logger) Error(text string, err error) {
	if err != nil {
		text = fmt.Sprintf("%s: %v", text, err)
	}
	l.write(levelError, text)
}

func (l *Logger) write(level, text string) {
	log.Printf("[%s] %s: %s", l.category, level, text)
	if l.database == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	message := &entity.LogMessage{
		Time:     time.Now(),
		Level:    level,
		Category: l.category,
		Text:     text,
	}
	if err := l.database.WriteLogMessage(ctx, message); err != nil {
		log.Printf("[%s] write log message: %v", l.category, err)
	}
}
