package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	cases := []struct {
		input string
		want  Status
		ok    bool
	}{
		{"pending", StatusPending, true},
		{"in_progress", StatusInProgress, true},
		{"completed", StatusCompleted, true},
		{"on_hold", StatusOnHold, true},
		// 历史遗留值归一化
		{"active", StatusInProgress, true},
		{"archived", "", false},
		{"", "", false},
		{"Completed", "", false},
		{"IN_PROGRESS", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseStatus(tc.input)
		require.Equal(t, tc.ok, ok, "input=%q", tc.input)
		require.Equal(t, tc.want, got, "input=%q", tc.input)
	}
}

func TestParseFileType(t *testing.T) {
	cases := []struct {
		input string
		want  FileType
		ok    bool
	}{
		{"", FileTypePDF, true}, // 缺省回退 PDF
		{"application/pdf", FileTypePDF, true},
		{"image/*", FileTypeImage, true},
		{"text/plain", "", false},
		{"pdf", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseFileType(tc.input)
		require.Equal(t, tc.ok, ok, "input=%q", tc.input)
		require.Equal(t, tc.want, got, "input=%q", tc.input)
	}
}

func TestRoleRank(t *testing.T) {
	require.Equal(t, 3, RoleRank(RoleAdmin))
	require.Equal(t, 2, RoleRank(RoleChecker))
	require.Equal(t, 1, RoleRank(RoleMaker))
	require.Equal(t, 0, RoleRank(RoleUser))
	require.Equal(t, 0, RoleRank("unknown"))
}
