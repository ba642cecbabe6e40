package tui

type state int

const (
	loadingState state = iota
	homeState
	detailsState
	errorState
)
