package domain

type StatusKind string

const (
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// Status is the banner shown after an action settles.
type Status struct {
	Kind    StatusKind `json:"kind"`
	Message string     `json:"message"`
}

func SuccessStatus(message string) Status {
	return Status{Kind: StatusSuccess, Message: message}
}

func ErrorStatus(message string) Status {
	return Status{Kind: StatusError, Message: message}
}

func (s Status) IsError() bool {
	return s.Kind == StatusError
}
