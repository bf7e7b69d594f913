package leave

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var exportHeader = []string{
	"ID",
	"Employee ID",
	"Department",
	"Reason",
	"Leave Date",
	"Location",
	"Status",
	"Approved By",
	"Approved At",
	"Rejection Reason",
	"Created At",
}

// escapeCSVField quotes a field only when it holds a comma, a double quote
// or a line break, doubling any embedded quotes.
func escapeCSVField(s string) string {
	if !strings.ContainsAny(s, ",\"\r\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func writeCSVRecord(w io.Writer, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, escapeCSVField(f)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func exportRecord(l LeaveRequest) []string {
	return []string{
		strconv.FormatUint(uint64(l.ID), 10),
		l.EmployeeID,
		string(l.Department),
		l.Reason,
		formatDate(&l.LeaveDate),
		l.Location,
		string(l.Status),
		l.ApproverName(),
		formatDate(l.ApprovedAt),
		derefString(l.RejectionReason),
		formatDate(&l.CreatedAt),
	}
}

// WriteCSV writes the header and one row per request, in the given order.
func WriteCSV(w io.Writer, leaves []LeaveRequest) error {
	if err := writeCSVRecord(w, exportHeader); err != nil {
		return err
	}
	for _, l := range leaves {
		if err := writeCSVRecord(w, exportRecord(l)); err != nil {
			return err
		}
	}
	return nil
}

func BuildCSV(leaves []LeaveRequest) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, leaves); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
