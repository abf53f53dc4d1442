package constant

// Values of runtime.GOOS that change how an item page is opened.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
	Android = "android"
)
