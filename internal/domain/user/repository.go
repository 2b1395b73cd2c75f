package user

import "context"

// Repository describes the auth and profile endpoints. Me, Profile and
// UploadAvatar act for the session user found in ctx.
type Repository interface {
	Login(ctx context.Context, credentials Credentials) (AuthResult, error)
	Register(ctx context.Context, registration Registration) (AuthResult, error)
	Me(ctx context.Context) (User, error)
	Profile(ctx context.Context) (Profile, error)
	UploadAvatar(ctx context.Context, avatar Avatar) (User, error)
}
