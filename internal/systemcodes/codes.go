package systemcodes

const (
	ErrorCodeGeneric = 3
	// ErrorCodeConfig is returned when the configuration cannot be loaded
	ErrorCodeConfig    = 4
	ErrorCodeTransport = 5
	// ErrorCodeRejected is returned when the server answered a merge
	// with a non-2xx status
	ErrorCodeRejected = 6
)
