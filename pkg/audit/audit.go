package audit

type QueryData struct {
	Query     string
	Client    string
	Timestamp int64
}

type Audit interface {
	Write(q *QueryData) error
}
