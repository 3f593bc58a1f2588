package sqlite

import (
	"context"
	"database/sql"

	"github.com/classmeet/classmeet/internal/domain"
)

type meetingsRepo struct {
	db *sql.DB
}

const meetingColumns = `id, meeting_number, topic, owner_id, student_id, created_at, updated_at`

func (r *meetingsRepo) GetMeetingByID(ctx context.Context, id string) (domain.Meeting, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+meetingColumns+` FROM meetings WHERE id = ?`, id)
	return scanMeeting(row)
}

func (r *meetingsRepo) CreateMeeting(ctx context.Context, m domain.Meeting) error {
	now := nowUTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO meetings (id, meeting_number, topic, owner_id, student_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.MeetingNumber, m.Topic, m.OwnerID, nullString(m.StudentID), now, now)
	return mapConstraint(err)
}

func (r *meetingsRepo) UpdateMeeting(ctx context.Context, m domain.Meeting) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE meetings SET topic = ?, student_id = ?, updated_at = ? WHERE id = ?`,
		m.Topic, nullString(m.StudentID), nowUTC(), m.ID)
	return requireRow(res, err)
}

func (r *meetingsRepo) DeleteMeeting(ctx context.Context, id string) error {
	return requireRow(r.db.ExecContext(ctx, `DELETE FROM meetings WHERE id = ?`, id))
}

func (r *meetingsRepo) ListMeetings(ctx context.Context) ([]domain.Meeting, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+meetingColumns+` FROM meetings ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meetings []domain.Meeting
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, m)
	}
	return meetings, rows.Err()
}

func scanMeeting(row rowScanner) (domain.Meeting, error) {
	var m domain.Meeting
	var student sql.NullString
	err := row.Scan(
		&m.ID, &m.MeetingNumber, &m.Topic, &m.OwnerID,
		&student, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return domain.Meeting{}, mapNotFound(err)
	}
	if student.Valid {
		m.StudentID = student.String
	}
	return m, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
