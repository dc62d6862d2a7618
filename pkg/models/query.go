package models

type QueryResponse struct {
	Response string `json:"response"`
}

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
