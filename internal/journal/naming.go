package journal

import (
	"strings"
	"time"

	"github.com/rxtech-lab/argo-tradelog/internal/timefmt"
)

const defaultExt = ".log"

// FileNaming decides the file name of a channel for a calendar date:
// <YYYY-MM-DD><Suffix><Ext>, e.g. 2025-03-01.log or 2025-03-01_error.log.
type FileNaming struct {
	Suffix string `yaml:"suffix" json:"suffix"`
	Ext    string `yaml:"ext" json:"ext"`
}

// GeneralNaming is the naming of the general channel.
var GeneralNaming = FileNaming{Suffix: "", Ext: defaultExt}

// ErrorNaming is the naming of the error channel.
var ErrorNaming = FileNaming{Suffix: "_error", Ext: defaultExt}

func (f FileNaming) ext() string {
	if f.Ext == "" {
		return defaultExt
	}

	return f.Ext
}

// FileName returns the file name for date (YYYY-MM-DD).
func (f FileNaming) FileName(date string) string {
	return date + f.Suffix + f.ext()
}

// ParseDate extracts the rotation date from a file name owned by this naming.
// ok is false for files of other channels or unrelated files.
func (f FileNaming) ParseDate(name string, loc *time.Location) (time.Time, bool) {
	stem, found := strings.CutSuffix(name, f.ext())
	if !found {
		return time.Time{}, false
	}

	stem, found = strings.CutSuffix(stem, f.Suffix)
	if !found || len(stem) != len(timefmt.DateLayout) {
		return time.Time{}, false
	}

	date, err := time.ParseInLocation(timefmt.DateLayout, stem, loc)
	if err != nil {
		return time.Time{}, false
	}

	return date, true
}
