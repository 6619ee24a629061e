package types

import (
	"strconv"
	"sync/atomic"
)

// Notice is a notification payload for item-driven toasts
type Notice struct {
	Key     string
	Level   Level
	Title   string
	Message string
}

// ID implements domain.Identifiable
func (n Notice) ID() string {
	return n.Key
}

// Level indicates the severity of a notice
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

// String returns the level name
func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

var noticeSeq atomic.Uint64

// NewNotice creates a notice with a process-unique key
func NewNotice(level Level, message string) Notice {
	return Notice{
		Key:     "notice-" + strconv.FormatUint(noticeSeq.Add(1), 10),
		Level:   level,
		Message: message,
	}
}

// WithTitle returns a copy of the notice with a title
func (n Notice) WithTitle(title string) Notice {
	n.Title = title
	return n
}
