package models

// Response is the envelope every JSON reply is wrapped in.
type Response struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Errors  []error `json:"errors"`
	Data    any     `json:"data"`
}
