package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/classmeet/classmeet/internal/domain"
	"github.com/classmeet/classmeet/internal/policy"
	"github.com/classmeet/classmeet/internal/store"
	"github.com/classmeet/classmeet/pkg/sdkjwt"
)

// MeetingService owns meeting lifecycle and visibility. Every operation
// runs existence checks before permission checks, so NotFound consistently
// wins over Forbidden.
type MeetingService struct {
	Store      store.Store
	Signatures *sdkjwt.Generator
}

type CreateMeetingRequest struct {
	Topic string `json:"topic"`
	// StudentID optionally assigns a student at creation time.
	StudentID string `json:"studentId,omitempty"`
	// ExpirationSeconds optionally overrides the join signature lifetime.
	ExpirationSeconds int64 `json:"expirationSeconds,omitempty"`
}

type UpdateMeetingRequest struct {
	Topic     string `json:"topic"`
	StudentID string `json:"studentId,omitempty"`
}

type MeetingResponse struct {
	ID            string `json:"id"`
	MeetingNumber int64  `json:"meetingNumber"`
	Topic         string `json:"topic"`
	OwnerID       string `json:"ownerId"`
	StudentID     string `json:"studentId,omitempty"`
}

// CreateMeetingResponse carries the stored meeting plus the SDK join
// signature the caller hands to the meeting client.
type CreateMeetingResponse struct {
	MeetingResponse

	Signature string `json:"signature"`
}

// Create stores a new meeting owned by the acting teacher and returns it
// together with a join signature. Only teachers may create meetings; an
// assigned student must exist and hold the Student role.
func (s *MeetingService) Create(
	ctx context.Context,
	req CreateMeetingRequest,
	actor domain.AuthContext,
) (CreateMeetingResponse, error) {
	if err := policy.CanCreateMeeting(actor); err != nil {
		return CreateMeetingResponse{}, err
	}

	if req.StudentID != "" {
		if err := s.checkStudent(ctx, req.StudentID); err != nil {
			return CreateMeetingResponse{}, err
		}
	}

	meeting := domain.Meeting{
		ID:            uuid.NewString(),
		MeetingNumber: domain.NewMeetingNumber(),
		Topic:         req.Topic,
		OwnerID:       actor.ID,
		StudentID:     req.StudentID,
	}

	// Sign before persisting: an out-of-range expiration override must not
	// leave a meeting behind.
	signature, err := s.Signatures.SignVideo(meeting.Topic, actor.Role.SDKRoleType(), req.ExpirationSeconds)
	if err != nil {
		return CreateMeetingResponse{}, err
	}

	if err := s.Store.Meetings().CreateMeeting(ctx, meeting); err != nil {
		return CreateMeetingResponse{}, fmt.Errorf("%w: %v", ErrStorageTransaction, err)
	}

	return CreateMeetingResponse{
		MeetingResponse: toMeetingResponse(meeting),
		Signature:       signature,
	}, nil
}

// GetByID returns a meeting visible to the actor: its owner or its
// assigned student.
func (s *MeetingService) GetByID(
	ctx context.Context,
	id string,
	actor domain.AuthContext,
) (MeetingResponse, error) {
	meeting, err := s.getMeeting(ctx, id)
	if err != nil {
		return MeetingResponse{}, err
	}
	if err := policy.CanReadMeeting(actor, meeting); err != nil {
		return MeetingResponse{}, err
	}
	return toMeetingResponse(meeting), nil
}

// List returns the meetings the actor may see. Filtered, never denied.
func (s *MeetingService) List(ctx context.Context, actor domain.AuthContext) ([]MeetingResponse, error) {
	meetings, err := s.Store.Meetings().ListMeetings(ctx)
	if err != nil {
		return nil, err
	}

	visible := policy.VisibleMeetings(actor, meetings)
	responses := make([]MeetingResponse, 0, len(visible))
	for _, m := range visible {
		responses = append(responses, toMeetingResponse(m))
	}
	return responses, nil
}

// Update changes topic and student assignment. Owner only.
func (s *MeetingService) Update(
	ctx context.Context,
	id string,
	req UpdateMeetingRequest,
	actor domain.AuthContext,
) (MeetingResponse, error) {
	meeting, err := s.getMeeting(ctx, id)
	if err != nil {
		return MeetingResponse{}, err
	}
	if err := policy.CanMutateMeeting(actor, meeting); err != nil {
		return MeetingResponse{}, err
	}

	if req.StudentID != "" && req.StudentID != meeting.StudentID {
		if err := s.checkStudent(ctx, req.StudentID); err != nil {
			return MeetingResponse{}, err
		}
	}

	meeting.Topic = req.Topic
	meeting.StudentID = req.StudentID

	if err := s.Store.Meetings().UpdateMeeting(ctx, meeting); err != nil {
		return MeetingResponse{}, fmt.Errorf("%w: %v", ErrStorageTransaction, err)
	}
	return toMeetingResponse(meeting), nil
}

// Delete removes a meeting. Owner only.
func (s *MeetingService) Delete(ctx context.Context, id string, actor domain.AuthContext) error {
	meeting, err := s.getMeeting(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.CanMutateMeeting(actor, meeting); err != nil {
		return err
	}

	if err := s.Store.Meetings().DeleteMeeting(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageTransaction, err)
	}
	return nil
}

func (s *MeetingService) getMeeting(ctx context.Context, id string) (domain.Meeting, error) {
	meeting, err := s.Store.Meetings().GetMeetingByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Meeting{}, ErrMeetingNotFound
		}
		return domain.Meeting{}, err
	}
	return meeting, nil
}

// checkStudent verifies the requested student exists and holds the Student
// role.
func (s *MeetingService) checkStudent(ctx context.Context, studentID string) error {
	student, err := s.Store.Users().GetUserByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidStudentID
		}
		return err
	}

	role, err := domain.ParseRole(student.Role)
	if err != nil {
		return err
	}
	if role != domain.RoleStudent {
		return ErrInvalidRoleForRequestedStudent
	}
	return nil
}

func toMeetingResponse(m domain.Meeting) MeetingResponse {
	return MeetingResponse{
		ID:            m.ID,
		MeetingNumber: m.MeetingNumber,
		Topic:         m.Topic,
		OwnerID:       m.OwnerID,
		StudentID:     m.StudentID,
	}
}
