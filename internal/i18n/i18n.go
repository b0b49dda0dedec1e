// Package i18n holds Taskal's message catalog and language negotiation.
//
// Messages are registered with golang.org/x/text/message at init time for
// every supported language; callers format them through a Printer for the
// tag resolved from the request.
package i18n

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys.
const (
	KeyInProgressLimit  = "task.in_progress_limit"
	KeyOpenTasks        = "project.open_tasks"
	KeyOpenTasksMore    = "project.open_tasks_more"
	KeyOpenTasksHeader  = "project.open_tasks_header"
	KeyValidationFailed = "error.validation_failed"
)

var supported = []language.Tag{language.Japanese, language.English}

var matcher = language.NewMatcher(supported)

var weekdayKeys = [7]string{
	"weekday.sun", "weekday.mon", "weekday.tue", "weekday.wed",
	"weekday.thu", "weekday.fri", "weekday.sat",
}

var catalog = map[language.Tag]map[string]string{
	language.Japanese: {
		"weekday.sun":       "日",
		"weekday.mon":       "月",
		"weekday.tue":       "火",
		"weekday.wed":       "水",
		"weekday.thu":       "木",
		"weekday.fri":       "金",
		"weekday.sat":       "土",
		KeyInProgressLimit:  "仕掛中のタスクが既に%d個以上あります。\n他のタスクを完了または休止してから変更してください。",
		KeyOpenTasks:        "このプロジェクトには未完了のタスクが%d件あります。\nプロジェクトを完了するには、全てのタスクを完了させてください。",
		KeyOpenTasksMore:    "...他%d件",
		KeyOpenTasksHeader:  "未完了タスク:",
		KeyValidationFailed: "入力内容に誤りがあります",

		"status.not_started": "未着手",
		"status.in_progress": "仕掛中",
		"status.paused":      "休止中",
		"status.done":        "完了",
	},
	language.English: {
		"weekday.sun":       "Sun",
		"weekday.mon":       "Mon",
		"weekday.tue":       "Tue",
		"weekday.wed":       "Wed",
		"weekday.thu":       "Thu",
		"weekday.fri":       "Fri",
		"weekday.sat":       "Sat",
		KeyInProgressLimit:  "You already have %d or more tasks in progress.\nComplete or pause another task before changing this one.",
		KeyOpenTasks:        "This project still has %d incomplete tasks.\nComplete all of its tasks before completing the project.",
		KeyOpenTasksMore:    "...and %d more",
		KeyOpenTasksHeader:  "Incomplete tasks:",
		KeyValidationFailed: "Validation failed",

		"status.not_started": "Not started",
		"status.in_progress": "In progress",
		"status.paused":      "Paused",
		"status.done":        "Done",
	},
}

func init() {
	// ALLOW-PANIC: a catalog that cannot be registered is a programmer error
	if err := register(catalog); err != nil {
		panic(err)
	}
}

// register adds every message of c to the default x/text catalog.
func register(c map[language.Tag]map[string]string) error {
	for tag, messages := range c {
		for key, msg := range messages {
			if err := message.SetString(tag, key, msg); err != nil {
				return fmt.Errorf("register %s message %q: %w", tag, key, err)
			}
		}
	}
	return nil
}

// Supported returns the list of supported language tags.
func Supported() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// DefaultTag returns the language used when nothing else matches.
func DefaultTag() language.Tag {
	return language.Japanese
}

// ParseTag parses value and reports whether it names a supported language.
// Regional variants resolve to their base language.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.Und, false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return language.Und, false
	}
	_, idx, conf := matcher.Match(tag)
	if conf < language.High {
		return language.Und, false
	}
	return supported[idx], true
}

// Match picks the best supported language for the given preference list,
// falling back to fallback when none is acceptable.
func Match(fallback language.Tag, prefs ...language.Tag) language.Tag {
	if len(prefs) == 0 {
		return fallback
	}
	_, idx, conf := matcher.Match(prefs...)
	if conf == language.No {
		return fallback
	}
	return supported[idx]
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// Sprintf formats the catalog message key for tag.
func Sprintf(tag language.Tag, key string, args ...interface{}) string {
	return Printer(tag).Sprintf(key, args...)
}

// Weekday returns the short localized name of d.
func Weekday(tag language.Tag, d time.Weekday) string {
	if d < time.Sunday || d > time.Saturday {
		return ""
	}
	return Sprintf(tag, weekdayKeys[d])
}

// TaskStatus returns the localized label of a task status value. Unknown
// values are returned unchanged.
func TaskStatus(tag language.Tag, status string) string {
	key := "status." + status
	if _, ok := catalog[language.Japanese][key]; !ok {
		return status
	}
	return Sprintf(tag, key)
}
