package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"acadattend_backend/internals/constants"
	"acadattend_backend/internals/features/academics/classes/model"
)

func TestDecide(t *testing.T) {
	creator := uuid.New()
	owner := uuid.New()
	stranger := uuid.New()

	group := &model.ClassGroupModel{
		ClassGroupDepartment: "CSE",
		ClassGroupCreatedBy:  creator,
		ClassGroupFacultyID:  &owner,
	}

	tests := []struct {
		name          string
		group         *model.ClassGroupModel
		facultyID     uuid.UUID
		meta          CallerMeta
		hasEnrollment bool
		enrollDept    string
		want          bool
		reason        string
	}{
		{
			name:      "creator is authorized",
			group:     group,
			facultyID: creator,
			meta:      CallerMeta{Role: constants.RoleFaculty, Department: "CSE"},
			want:      true,
			reason:    "class creator",
		},
		{
			name:      "current owner is authorized",
			group:     group,
			facultyID: owner,
			meta:      CallerMeta{Role: constants.RoleFaculty, Department: "CSE"},
			want:      true,
			reason:    "current class owner",
		},
		{
			name:          "enrollment binding is authorized",
			group:         group,
			facultyID:     stranger,
			meta:          CallerMeta{Role: constants.RoleFaculty, Department: "CSE"},
			hasEnrollment: true,
			want:          true,
			reason:        "faculty bound via enrollment",
		},
		{
			name:      "hod of same department is authorized",
			group:     group,
			facultyID: stranger,
			meta:      CallerMeta{Role: constants.RoleHOD, Department: "CSE"},
			want:      true,
			reason:    "administrative role in department",
		},
		{
			name:      "department mismatch denies even the creator",
			group:     group,
			facultyID: creator,
			meta:      CallerMeta{Role: constants.RoleHOD, Department: "ECE"},
			want:      false,
			reason:    "department mismatch",
		},
		{
			name:          "department mismatch denies enrollment binding",
			group:         group,
			facultyID:     stranger,
			meta:          CallerMeta{Role: constants.RoleFaculty, Department: "ECE"},
			hasEnrollment: true,
			want:          false,
			reason:        "department mismatch",
		},
		{
			name:      "unbound faculty is denied",
			group:     group,
			facultyID: stranger,
			meta:      CallerMeta{Role: constants.RoleFaculty, Department: "CSE"},
			want:      false,
			reason:    "no active binding for faculty",
		},
		{
			name:          "no group, enrollment department governs",
			group:         nil,
			facultyID:     stranger,
			meta:          CallerMeta{Role: constants.RoleFaculty, Department: "CSE"},
			hasEnrollment: true,
			enrollDept:    "CSE",
			want:          true,
			reason:        "faculty bound via enrollment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decide(tt.group, tt.facultyID, tt.meta, tt.hasEnrollment, tt.enrollDept)
			assert.Equal(t, tt.want, got.Authorized)
			assert.Equal(t, tt.reason, got.Reason)
		})
	}
}
