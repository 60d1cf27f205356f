package systemcodes

const (
	ErrorCodeGeneric       = 1
	ErrorCodeConfiguration = 3
	ErrorCodeFetchFailed   = 4
)
