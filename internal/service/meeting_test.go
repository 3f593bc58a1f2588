package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/classmeet/classmeet/internal/domain"
	"github.com/classmeet/classmeet/internal/policy"
	"github.com/classmeet/classmeet/internal/store/memory"
	"github.com/classmeet/classmeet/pkg/sdkjwt"
)

const (
	sdkTestKey    = "sdk-app-key"
	sdkTestSecret = "sdk-shared-secret"
)

var (
	teacherActor = domain.AuthContext{ID: "teacher-1", Email: "t@example.com", Role: domain.RoleTeacher}
	otherTeacher = domain.AuthContext{ID: "teacher-2", Email: "o@example.com", Role: domain.RoleTeacher}
	studentActor = domain.AuthContext{ID: "student-1", Email: "s@example.com", Role: domain.RoleStudent}
)

func newMeetingService(t *testing.T) *MeetingService {
	t.Helper()

	st := memory.NewStore()
	require.NoError(t, st.Users().CreateUser(context.Background(), domain.User{
		ID:    studentActor.ID,
		Email: studentActor.Email,
		Role:  string(domain.RoleStudent),
	}))
	require.NoError(t, st.Users().CreateUser(context.Background(), domain.User{
		ID:    otherTeacher.ID,
		Email: otherTeacher.Email,
		Role:  string(domain.RoleTeacher),
	}))

	return &MeetingService{
		Store:      st,
		Signatures: sdkjwt.New(sdkTestKey, sdkTestSecret),
	}
}

func TestMeetingCreate(t *testing.T) {
	svc := newMeetingService(t)
	ctx := context.Background()

	resp, err := svc.Create(ctx, CreateMeetingRequest{
		Topic:     "Algebra",
		StudentID: studentActor.ID,
	}, teacherActor)
	require.NoError(t, err)

	require.NotEmpty(t, resp.ID)
	require.Equal(t, teacherActor.ID, resp.OwnerID)
	require.Equal(t, studentActor.ID, resp.StudentID)
	require.GreaterOrEqual(t, resp.MeetingNumber, int64(1_000_000_000))
	require.LessOrEqual(t, resp.MeetingNumber, int64(9_999_999_999))

	// The returned signature verifies against the shared secret and carries
	// the host role for a teacher.
	token, err := jwt.Parse(resp.Signature, func(*jwt.Token) (any, error) {
		return []byte(sdkTestSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	require.NoError(t, err)

	claims := token.Claims.(jwt.MapClaims)
	require.Equal(t, "Algebra", claims["tpc"])
	require.EqualValues(t, sdkjwt.RoleHost, claims["role_type"])
}

func TestMeetingCreateStudentForbidden(t *testing.T) {
	svc := newMeetingService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateMeetingRequest{Topic: "Nope"}, studentActor)
	require.ErrorIs(t, err, policy.ErrWrongPermissions)

	// Nothing was persisted.
	meetings, err := svc.Store.Meetings().ListMeetings(ctx)
	require.NoError(t, err)
	require.Empty(t, meetings)
}

func TestMeetingCreateStudentValidation(t *testing.T) {
	svc := newMeetingService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateMeetingRequest{
		Topic:     "Ghost student",
		StudentID: "no-such-user",
	}, teacherActor)
	require.ErrorIs(t, err, ErrInvalidStudentID)

	// Assigning a teacher as the student is rejected.
	_, err = svc.Create(ctx, CreateMeetingRequest{
		Topic:     "Wrong role",
		StudentID: otherTeacher.ID,
	}, teacherActor)
	require.ErrorIs(t, err, ErrInvalidRoleForRequestedStudent)

	meetings, err := svc.Store.Meetings().ListMeetings(ctx)
	require.NoError(t, err)
	require.Empty(t, meetings)
}

func TestMeetingCreateExpirationOutOfRange(t *testing.T) {
	svc := newMeetingService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateMeetingRequest{
		Topic:             "Too short",
		ExpirationSeconds: 60,
	}, teacherActor)
	require.ErrorIs(t, err, sdkjwt.ErrExpirationOutOfRange)

	meetings, err := svc.Store.Meetings().ListMeetings(ctx)
	require.NoError(t, err)
	require.Empty(t, meetings)
}

func TestMeetingGetByIDVisibility(t *testing.T) {
	svc := newMeetingService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateMeetingRequest{
		Topic:     "Geometry",
		StudentID: studentActor.ID,
	}, teacherActor)
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, created.ID, teacherActor)
	require.NoError(t, err)
	require.Equal(t, created.MeetingResponse, got)

	_, err = svc.GetByID(ctx, created.ID, studentActor)
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, created.ID, otherTeacher)
	require.ErrorIs(t, err, policy.ErrWrongPermissions)

	_, err = svc.GetByID(ctx, "missing", teacherActor)
	require.ErrorIs(t, err, ErrMeetingNotFound)
}

func TestMeetingList(t *testing.T) {
	svc := newMeetingService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateMeetingRequest{
		Topic: "Owned with student", StudentID: studentActor.ID,
	}, teacherActor)
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateMeetingRequest{Topic: "Owned alone"}, teacherActor)
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateMeetingRequest{Topic: "Someone else's"}, otherTeacher)
	require.NoError(t, err)

	owned, err := svc.List(ctx, teacherActor)
	require.NoError(t, err)
	require.Len(t, owned, 2)

	assigned, err := svc.List(ctx, studentActor)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	require.Equal(t, "Owned with student", assigned[0].Topic)
}

func TestMeetingUpdate(t *testing.T) {
	svc := newMeetingService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateMeetingRequest{Topic: "Draft"}, teacherActor)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, UpdateMeetingRequest{
		Topic:     "Final",
		StudentID: studentActor.ID,
	}, teacherActor)
	require.NoError(t, err)
	require.Equal(t, "Final", updated.Topic)
	require.Equal(t, studentActor.ID, updated.StudentID)

	// Neither the assigned student nor another teacher may update.
	_, err = svc.Update(ctx, created.ID, UpdateMeetingRequest{Topic: "Hijack"}, studentActor)
	require.ErrorIs(t, err, policy.ErrWrongPermissions)
	_, err = svc.Update(ctx, created.ID, UpdateMeetingRequest{Topic: "Hijack"}, otherTeacher)
	require.ErrorIs(t, err, policy.ErrWrongPermissions)

	_, err = svc.Update(ctx, created.ID, UpdateMeetingRequest{
		Topic: "Bad student", StudentID: "no-such-user",
	}, teacherActor)
	require.ErrorIs(t, err, ErrInvalidStudentID)

	_, err = svc.Update(ctx, "missing", UpdateMeetingRequest{Topic: "x"}, teacherActor)
	require.ErrorIs(t, err, ErrMeetingNotFound)
}

func TestMeetingDelete(t *testing.T) {
	svc := newMeetingService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateMeetingRequest{Topic: "Ephemeral"}, teacherActor)
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(ctx, created.ID, otherTeacher), policy.ErrWrongPermissions)

	// A denied delete leaves the meeting retrievable.
	_, err = svc.GetByID(ctx, created.ID, teacherActor)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID, teacherActor))
	_, err = svc.GetByID(ctx, created.ID, teacherActor)
	require.ErrorIs(t, err, ErrMeetingNotFound)

	require.ErrorIs(t, svc.Delete(ctx, created.ID, teacherActor), ErrMeetingNotFound)
}

func TestSignatureService(t *testing.T) {
	svc := &SignatureService{Signatures: sdkjwt.New(sdkTestKey, sdkTestSecret)}
	ctx := context.Background()

	video, err := svc.SignVideo(ctx, VideoSignatureRequest{Topic: "Physics"}, studentActor)
	require.NoError(t, err)
	require.NotEmpty(t, video.Signature)

	meeting, err := svc.SignMeeting(ctx, MeetingSignatureRequest{MeetingNumber: 1234567890}, teacherActor)
	require.NoError(t, err)
	require.NotEmpty(t, meeting.Signature)

	_, err = svc.SignVideo(ctx, VideoSignatureRequest{Topic: "x", ExpirationSeconds: 1}, studentActor)
	require.ErrorIs(t, err, sdkjwt.ErrExpirationOutOfRange)

	// Student signatures carry the participant role.
	token, err := jwt.Parse(video.Signature, func(*jwt.Token) (any, error) {
		return []byte(sdkTestSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	require.EqualValues(t, sdkjwt.RoleParticipant, claims["role_type"])
}
