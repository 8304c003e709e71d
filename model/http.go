package model

type ErrorResponse struct {
	Error string `json:"detail"`
}

type ExerciseOverview struct {
	Id      string `json:"id"`
	Name    string `json:"name"`
	Summary string `json:"summary"`
}

type CreateSessionRequestBody struct {
	ExerciseId string `json:"exercise_id" validate:"required"`
}

type AnswerRequestBody struct {
	Answer string `json:"answer" validate:"required"`
}

type AnswerResponse struct {
	Correct          bool          `json:"correct"`
	QuestionComplete bool          `json:"question_complete"`
	Session          SessionStatus `json:"session"`
}

type SegmentStatus struct {
	Answer   *string `json:"answer"`
	WasWrong bool    `json:"was_wrong"`
}

type SessionStatus struct {
	Id                      string           `json:"id"`
	ExerciseId              string           `json:"exercise_id"`
	Name                    string           `json:"name"`
	AnswerList              AnswerList       `json:"answer_list"`
	Settings                ExerciseSettings `json:"settings"`
	TotalCorrectAnswers     int              `json:"total_correct_answers"`
	TotalQuestions          int              `json:"total_questions"`
	CurrentSegmentToAnswer  int              `json:"current_segment_to_answer"`
	CurrentlyPlayingSegment *int             `json:"currently_playing_segment"`
	CurrentAnswers          []SegmentStatus  `json:"current_answers"`
}
