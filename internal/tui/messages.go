package tui

import (
	"github.com/matheuskafuri/dexterm/internal/catalog"
)

type entriesLoadedMsg struct {
	entries []catalog.Entry
}

type loadErrMsg struct {
	err error
}

type filterDoneMsg struct {
	result catalog.FilterResult
}

type pageDoneMsg struct {
	result catalog.PageResult
}

type errMsg struct {
	err error
}
