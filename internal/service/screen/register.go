package screen

import (
	"context"
	"errors"
	"log"

	"github.com/uma-arai/sbcntr-restaurant-client/internal/model"
	"github.com/uma-arai/sbcntr-restaurant-client/internal/repository"
)

// Registration は新規登録画面です。セッションは不要です
// 失敗はアラートではなく ErrorMessage に表示します
type Registration struct {
	users     repository.UserRepository
	navigator Navigator
	notifier  Notifier

	Form         model.Registration
	ErrorMessage string
}

// NewRegistration は新しいRegistrationを作成します
func NewRegistration(deps Deps) *Registration {
	return &Registration{users: deps.Users, navigator: deps.Navigator, notifier: deps.Notifier}
}

// Submit はユーザーを登録し、成功するとログイン画面へ遷移します
func (r *Registration) Submit(ctx context.Context) (err error) {
	ctx, seg := beginSubsegment(ctx, "Registration.Submit")
	defer func() { closeSegment(seg, err) }()

	r.ErrorMessage = ""
	if !r.Form.Complete() {
		r.ErrorMessage = "All fields are required!"
		return &ValidationError{Title: "Missing Info", Message: r.ErrorMessage}
	}

	err = r.users.Register(ctx, r.Form)
	if err != nil {
		var transportErr *repository.TransportError
		switch {
		case errors.As(err, &transportErr):
			r.ErrorMessage = "Error: Unable to register."
		default:
			r.ErrorMessage = "Registration failed"
			if m, ok := repository.ServerMessage(err); ok {
				r.ErrorMessage = m
			}
		}
		log.Printf("Register error: %v", err)
		return &ActionError{Title: "Error", Message: r.ErrorMessage, Err: err}
	}

	r.notifier.Notify(model.NewSuccessNotification("User registered successfully!"))
	r.navigator.ToLogin()
	return nil
}
