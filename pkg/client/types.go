package client

import "time"

// User mirrors the API's user payload. The API never returns a password field.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	School    string    `json:"school,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Lesson mirrors the API's lesson payload.
type Lesson struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Subject     string    `json:"subject"`
	Class       string    `json:"class"`
	Date        time.Time `json:"date"`
	Duration    int       `json:"duration"`
	Objectives  string    `json:"objectives"`
	Content     string    `json:"content"`
	Methodology string    `json:"methodology"`
	Resources   string    `json:"resources"`
	Evaluation  string    `json:"evaluation"`
	Homework    string    `json:"homework"`
	Notes       string    `json:"notes"`
	Status      string    `json:"status"`
	Teacher     string    `json:"teacher"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// StatusCount is one bucket of the stats grouping.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// Stats is the aggregate statistics payload.
type Stats struct {
	Total    int64         `json:"total"`
	ByStatus []StatusCount `json:"byStatus"`
	Subjects int           `json:"subjects"`
	Classes  int           `json:"classes"`
}

// RegisterRequest is the registration form.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	School   string `json:"school,omitempty"`
}

// LoginRequest is the login form.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LessonRequest carries the fields for creating a lesson. Date uses the
// YYYY-MM-DD or RFC 3339 wire format.
type LessonRequest struct {
	Title       string `json:"title"`
	Subject     string `json:"subject"`
	Class       string `json:"class"`
	Date        string `json:"date"`
	Duration    int    `json:"duration"`
	Objectives  string `json:"objectives"`
	Content     string `json:"content"`
	Methodology string `json:"methodology"`
	Resources   string `json:"resources,omitempty"`
	Evaluation  string `json:"evaluation,omitempty"`
	Homework    string `json:"homework,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Status      string `json:"status,omitempty"`
}

// LessonUpdate is a partial lesson update; nil fields are left untouched.
type LessonUpdate struct {
	Title       *string `json:"title,omitempty"`
	Subject     *string `json:"subject,omitempty"`
	Class       *string `json:"class,omitempty"`
	Date        *string `json:"date,omitempty"`
	Duration    *int    `json:"duration,omitempty"`
	Objectives  *string `json:"objectives,omitempty"`
	Content     *string `json:"content,omitempty"`
	Methodology *string `json:"methodology,omitempty"`
	Resources   *string `json:"resources,omitempty"`
	Evaluation  *string `json:"evaluation,omitempty"`
	Homework    *string `json:"homework,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// ListFilter narrows ListLessons. Zero values mean "no filter".
type ListFilter struct {
	Subject   string
	Class     string
	Status    string
	StartDate string
	EndDate   string
}

func (f ListFilter) queryParams() map[string]string {
	params := make(map[string]string)
	if f.Subject != "" {
		params["subject"] = f.Subject
	}
	if f.Class != "" {
		params["class"] = f.Class
	}
	if f.Status != "" {
		params["status"] = f.Status
	}
	if f.StartDate != "" {
		params["startDate"] = f.StartDate
	}
	if f.EndDate != "" {
		params["endDate"] = f.EndDate
	}
	return params
}

// --- Response envelopes ---

type authEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
	User    *User  `json:"user"`
}

type profileEnvelope struct {
	Success bool  `json:"success"`
	User    *User `json:"user"`
}

type lessonEnvelope struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Lesson  *Lesson `json:"lesson"`
}

type listEnvelope struct {
	Success bool     `json:"success"`
	Count   int      `json:"count"`
	Lessons []Lesson `json:"lessons"`
}

type statsEnvelope struct {
	Success bool   `json:"success"`
	Stats   *Stats `json:"stats"`
}
