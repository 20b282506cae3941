package shared

const (
	UserID    = "user_id"
	User      = "user"
	Token     = "token"
	RequestID = "request_id"

	EventTypeLesson = "lesson"
	EventTypeQuiz   = "quiz"
	EventTypeVideo  = "video"
)
