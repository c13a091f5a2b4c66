package store

// User is the public projection of a users row; the row id is not exposed.
type User struct {
	UserID   string `json:"userid"`
	Username string `json:"username"`
}

type Message struct {
	ID       int64  `json:"id"`
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Message  string `json:"message"`
}

// NewMessage carries the fields of a message insert. Values are bound as
// given; nil is written as NULL and left for the schema to reject.
type NewMessage struct {
	Sender   any
	Receiver any
	Message  any
}
