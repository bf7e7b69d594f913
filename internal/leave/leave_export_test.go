package leave_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"go-leave/internal/leave"
	"go-leave/internal/manager"

	"github.com/stretchr/testify/assert"
)

func exportRows(t *testing.T, data []byte) [][]string {
	t.Helper()
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	assert.NoError(t, err)
	return records
}

func TestBuildCSV_Header(t *testing.T) {
	data, err := leave.BuildCSV(nil)

	assert.NoError(t, err)
	assert.Equal(t,
		"ID,Employee ID,Department,Reason,Leave Date,Location,Status,Approved By,Approved At,Rejection Reason,Created At\n",
		string(data),
	)
}

func TestBuildCSV_PendingRowLeavesDecisionColumnsEmpty(t *testing.T) {
	data, err := leave.BuildCSV([]leave.LeaveRequest{{
		ID:         1,
		EmployeeID: "EMP001",
		Department: leave.DepartmentIT,
		Reason:     "Medical appointment",
		LeaveDate:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Location:   "New York Office",
		Status:     leave.StatusPending,
		CreatedAt:  time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC),
	}})

	assert.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "1,EMP001,IT,Medical appointment,2024-01-15,New York Office,PENDING,,,,2024-01-10", lines[1])
}

func TestBuildCSV_RoundTripsAwkwardText(t *testing.T) {
	approvedBy := uint(3)
	approvedAt := time.Date(2024, 1, 12, 16, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		reason string
	}{
		{"comma", "Family event, out of town"},
		{"quotes", `Doctor said "rest" for a day`},
		{"newline", "Line one\nLine two"},
		{"carriage return", "first\r\nsecond"},
		{"leading space", "  indented"},
		{"plain", "Insufficient notice period"},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			reason := tt.reason
			data, err := leave.BuildCSV([]leave.LeaveRequest{{
				ID:              7,
				EmployeeID:      "EMP007",
				Department:      leave.DepartmentHR,
				Reason:          tt.reason,
				LeaveDate:       time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
				Location:        "Branch, Floor 2",
				Status:          leave.StatusRejected,
				ApprovedBy:      &approvedBy,
				ApprovedAt:      &approvedAt,
				RejectionReason: &reason,
				Approver:        &manager.Manager{ID: approvedBy, Name: `Dana "DJ" Jones`},
			}})
			assert.NoError(t, err)

			records := exportRows(t, data)
			assert.Len(t, records, 2)
			row := records[1]
			assert.Len(t, row, 11)
			assert.Equal(t, "Branch, Floor 2", row[5])
			assert.Equal(t, `Dana "DJ" Jones`, row[7])
			assert.Equal(t, "2024-01-12", row[8])

			want := strings.ReplaceAll(tt.reason, "\r\n", "\n")
			assert.Equal(t, want, row[3])
			assert.Equal(t, want, row[9])
		})
	}
}

func TestBuildCSV_KeepsGivenOrder(t *testing.T) {
	data, err := leave.BuildCSV([]leave.LeaveRequest{
		{ID: 3, EmployeeID: "C", Status: leave.StatusPending},
		{ID: 1, EmployeeID: "A", Status: leave.StatusApproved},
	})

	assert.NoError(t, err)
	records := exportRows(t, data)
	assert.Equal(t, "3", records[1][0])
	assert.Equal(t, "1", records[2][0])
	assert.Equal(t, "", records[2][7])
}
