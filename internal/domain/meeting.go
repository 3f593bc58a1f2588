package domain

import (
	"crypto/rand"
	"math/big"
	"time"
)

// Meeting is a lesson between a teacher (the owner) and, optionally, an
// assigned student. OwnerID always identifies a Teacher at creation time;
// StudentID, when set, identifies a Student. Only the owner may mutate it.
type Meeting struct {
	ID            string
	MeetingNumber int64 // 10-digit number handed to the meeting SDK
	Topic         string
	OwnerID       string
	StudentID     string // empty when no student is assigned
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

const (
	meetingNumberMin = 1_000_000_000
	meetingNumberMax = 9_999_999_999
)

// NewMeetingNumber generates a random 10-digit meeting number.
func NewMeetingNumber() int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(meetingNumberMax-meetingNumberMin+1))
	if err != nil {
		// crypto/rand failing means the process has no entropy source;
		// nothing sensible to do per-meeting.
		panic(err)
	}
	return meetingNumberMin + n.Int64()
}
