package constant

// runtime.GOOS values the launcher code branches on.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)
