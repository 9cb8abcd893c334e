package utils

import (
	"context"
)

type contextKey string

const (
	UserIDKey  contextKey = "user_id"
	ProfileKey contextKey = "profile"
)

// Profile carries the identity provider's claims for the current session.
// User IDs are opaque provider strings, never parsed locally.
type Profile struct {
	UserID    string
	Username  string
	Name      string
	AvatarURL string
}

func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userIDVal := ctx.Value(UserIDKey)
	if userIDVal == nil {
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return "", false
	}

	return userID, true
}

func GetProfileFromContext(ctx context.Context) (Profile, bool) {
	profileVal := ctx.Value(ProfileKey)
	if profileVal == nil {
		return Profile{}, false
	}

	profile, ok := profileVal.(Profile)
	return profile, ok
}

func SetUserContext(ctx context.Context, profile Profile) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, profile.UserID)
	ctx = context.WithValue(ctx, ProfileKey, profile)
	return ctx
}
