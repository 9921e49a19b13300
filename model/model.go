package model

import "time"

// Form statuses recognised by the submission workflow. Stored statuses are
// free-form and compared case-insensitively.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusClosed    = "closed"
)

type Form struct {
	ID            int64      `json:"form_id"`
	Name          string     `json:"name"`
	Description   *string    `json:"description"`
	Status        string     `json:"status"`
	DateCreated   time.Time  `json:"date_created"`
	DateUpdated   time.Time  `json:"date_updated"`
	DatePublished *time.Time `json:"date_published"`
	DateClosed    *time.Time `json:"date_closed"`
}

type CreateForm struct {
	Name          string     `json:"name"`
	Description   *string    `json:"description"`
	Status        string     `json:"status"`
	DatePublished *time.Time `json:"date_published"`
	DateClosed    *time.Time `json:"date_closed"`
}

type UpdateForm struct {
	Name          *string             `json:"name"`
	Description   Nullable[string]    `json:"description"`
	Status        *string             `json:"status"`
	DatePublished Nullable[time.Time] `json:"date_published"`
	DateClosed    Nullable[time.Time] `json:"date_closed"`
}

type Field struct {
	ID           int64     `json:"field_id"`
	FormID       int64     `json:"form_id"`
	QuestionText string    `json:"question_text"`
	AnswerType   string    `json:"answer_type"`
	OptionsJSON  *string   `json:"options_json"`
	DateUpdated  time.Time `json:"date_updated"`
}

type CreateField struct {
	FormID       int64   `json:"form_id"`
	QuestionText string  `json:"question_text"`
	AnswerType   string  `json:"answer_type"`
	OptionsJSON  *string `json:"options_json"`
}

type UpdateField struct {
	QuestionText *string          `json:"question_text"`
	AnswerType   *string          `json:"answer_type"`
	OptionsJSON  Nullable[string] `json:"options_json"`
}

type Client struct {
	ID            int64     `json:"client_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	FormID        *int64    `json:"form_id"`
	DateResponded time.Time `json:"date_responded"`
}

type CreateClient struct {
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	FormID        *int64    `json:"form_id"`
	DateResponded time.Time `json:"date_responded"`
}

type UpdateClient struct {
	Name          *string         `json:"name"`
	Email         *string         `json:"email"`
	FormID        Nullable[int64] `json:"form_id"`
	DateResponded *time.Time      `json:"date_responded"`
}

type Response struct {
	ID           int64  `json:"response_id"`
	ClientID     int64  `json:"client_id"`
	FieldID      int64  `json:"field_id"`
	ResponseText string `json:"response_text"`
}

type CreateResponse struct {
	ClientID     int64  `json:"client_id"`
	FieldID      int64  `json:"field_id"`
	ResponseText string `json:"response_text"`
}

type UpdateResponse struct {
	ResponseText *string `json:"response_text"`
}

// Submission is the public payload for answering a form. Answers are keyed by
// field id.
type Submission struct {
	Name    string            `json:"name"`
	Email   string            `json:"email"`
	Answers map[string]Answer `json:"answers"`
}
