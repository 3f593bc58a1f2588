package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Role
		wantErr bool
	}{
		{"teacher", "Teacher", RoleTeacher, false},
		{"student", "Student", RoleStudent, false},
		{"lowercase teacher", "teacher", "", true},
		{"uppercase student", "STUDENT", "", true},
		{"empty", "", "", true},
		{"unknown", "Admin", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRole(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidRole)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSDKRoleTypeMapping(t *testing.T) {
	require.Equal(t, 1, RoleTeacher.SDKRoleType())
	require.Equal(t, 0, RoleStudent.SDKRoleType())
}

func TestNewMeetingNumberIsTenDigits(t *testing.T) {
	for range 100 {
		n := NewMeetingNumber()
		require.GreaterOrEqual(t, n, int64(1_000_000_000))
		require.LessOrEqual(t, n, int64(9_999_999_999))
	}
}
