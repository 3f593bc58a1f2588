package service

import (
	"context"

	"github.com/classmeet/classmeet/internal/domain"
	"github.com/classmeet/classmeet/pkg/sdkjwt"
)

// SignatureService issues standalone SDK join signatures for an already
// authenticated actor. The role baked into the signature always comes from
// the actor's verified role, never from the request.
type SignatureService struct {
	Signatures *sdkjwt.Generator
}

type VideoSignatureRequest struct {
	Topic string `json:"topic"`
	// ExpirationSeconds optionally overrides the signature lifetime.
	ExpirationSeconds int64 `json:"expirationSeconds,omitempty"`
}

type MeetingSignatureRequest struct {
	MeetingNumber     int64 `json:"meetingNumber"`
	ExpirationSeconds int64 `json:"expirationSeconds,omitempty"`
}

type SignatureResponse struct {
	Signature string `json:"signature"`
}

// SignVideo issues a video-session signature bound to a session topic.
func (s *SignatureService) SignVideo(
	_ context.Context,
	req VideoSignatureRequest,
	actor domain.AuthContext,
) (SignatureResponse, error) {
	sig, err := s.Signatures.SignVideo(req.Topic, actor.Role.SDKRoleType(), req.ExpirationSeconds)
	if err != nil {
		return SignatureResponse{}, err
	}
	return SignatureResponse{Signature: sig}, nil
}

// SignMeeting issues a meeting-join signature bound to a meeting number.
func (s *SignatureService) SignMeeting(
	_ context.Context,
	req MeetingSignatureRequest,
	actor domain.AuthContext,
) (SignatureResponse, error) {
	sig, err := s.Signatures.SignMeeting(req.MeetingNumber, actor.Role.SDKRoleType(), req.ExpirationSeconds)
	if err != nil {
		return SignatureResponse{}, err
	}
	return SignatureResponse{Signature: sig}, nil
}
