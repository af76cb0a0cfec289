package dto

import (
	"github.com/google/uuid"

	"acadattend_backend/internals/features/academics/classctx"
	m "acadattend_backend/internals/features/academics/students/model"
	svc "acadattend_backend/internals/features/academics/students/service"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

// ResolveRosterRequest carries raw class identity from the query
// string. Normalization happens server-side.
type ResolveRosterRequest struct {
	Year       string `query:"year" validate:"required,max=20"`
	Semester   string `query:"semester" validate:"required,max=20"`
	Section    string `query:"section" validate:"required,max=3"`
	Batch      string `query:"batch" validate:"required,max=12"`
	Department string `query:"department" validate:"required,max=30"`

	// Opt-in for corrective writes when a non-canonical strategy wins.
	AuthorizeCorrections bool `query:"authorize_corrections"`
}

func (r ResolveRosterRequest) ToRaw() classctx.Raw {
	return classctx.Raw{
		Year:       r.Year,
		Semester:   r.Semester,
		Section:    r.Section,
		Batch:      r.Batch,
		Department: r.Department,
	}
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type StudentResponse struct {
	StudentID         uuid.UUID `json:"student_id"`
	StudentName       string    `json:"student_name"`
	StudentRollNumber string    `json:"student_roll_number"`
	StudentEmail      string    `json:"student_email"`
	StudentDepartment string    `json:"student_department"`
}

func NewStudentResponse(mdl *m.StudentModel) StudentResponse {
	return StudentResponse{
		StudentID:         mdl.StudentID,
		StudentName:       mdl.StudentName,
		StudentRollNumber: mdl.StudentRollNumber,
		StudentEmail:      mdl.StudentEmail,
		StudentDepartment: mdl.StudentDepartment,
	}
}

type RosterResponse struct {
	CompositeKey string            `json:"composite_key"`
	StrategyUsed string            `json:"strategy_used"`
	Corrected    int               `json:"corrected"`
	Students     []StudentResponse `json:"students"`
}

func NewRosterResponse(cc classctx.Context, res *svc.RosterResult) RosterResponse {
	out := RosterResponse{
		CompositeKey: cc.CompositeKey(),
		StrategyUsed: string(res.StrategyUsed),
		Corrected:    res.Corrected,
		Students:     make([]StudentResponse, 0, len(res.Students)),
	}
	for i := range res.Students {
		out.Students = append(out.Students, NewStudentResponse(&res.Students[i]))
	}
	return out
}
