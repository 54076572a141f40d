package screen

import (
	"context"

	"github.com/uma-arai/sbcntr-restaurant-client/internal/model"
)

// ProfileSettings はプロフィール設定画面です
type ProfileSettings struct {
	base

	Form model.UserProfile
}

// NewProfileSettings は新しいProfileSettingsを作成します
func NewProfileSettings(deps Deps) *ProfileSettings {
	return &ProfileSettings{base: newBase(deps)}
}

// Load はログイン中のユーザーを取得してフォームに反映します
func (p *ProfileSettings) Load(ctx context.Context) (err error) {
	ctx, seg := beginSubsegment(ctx, "ProfileSettings.Load")
	defer func() { closeSegment(seg, err) }()

	s, err := p.activate()
	if err != nil {
		return err
	}
	addSessionMetadata(seg, s)

	user, err := p.deps.Users.Get(ctx, s.UserID)
	if err != nil {
		return p.fail("Load user", "Failed to load user data", err)
	}
	p.Form = model.UserProfile{Name: user.Name, Email: user.Email}
	return nil
}

// Submit は名前とメールアドレスを更新します
func (p *ProfileSettings) Submit(ctx context.Context) (err error) {
	ctx, seg := beginSubsegment(ctx, "ProfileSettings.Submit")
	defer func() { closeSegment(seg, err) }()

	s, err := p.activate()
	if err != nil {
		return err
	}
	addSessionMetadata(seg, s)

	if err := p.deps.Users.Update(ctx, s.UserID, p.Form); err != nil {
		return p.fail("Update user", "Failed to update user", err)
	}
	p.succeed("Profile updated!")
	return nil
}
