package tui

import (
	"explaindeck/internal/fetch"
)

type recordsLoadedMsg struct {
	result fetch.Result
}

type loadErrMsg struct {
	err error
}

type generateDoneMsg struct {
	err error
}
