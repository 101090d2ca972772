package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/loganlanou/reqres-dashboard/internal/httpclient"
	"github.com/loganlanou/reqres-dashboard/internal/session"
	"github.com/loganlanou/reqres-dashboard/internal/users"
)

const DefaultProfileUserID = 2

var (
	ErrMissingToken = errors.New("login response did not include a token")

	emailPattern = regexp.MustCompile(`^[\w\-.]+@([\w-]+\.)+[\w-]{2,4}$`)
)

// Credentials is the login form.
type Credentials struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Validate checks the form before anything is sent to the API.
func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(
			&c.Email,
			validation.Required.Error("Email is required"),
			validation.Match(emailPattern).Error("Invalid email address"),
		),
		validation.Field(
			&c.Password,
			validation.Required.Error("Password is required"),
		),
	)
}

// FieldErrors flattens a validation error into field name -> message.
// Errors that are not per-field are reported under "general".
func FieldErrors(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		for field, fieldErr := range verrs {
			out[field] = fieldErr.Error()
		}
		return out
	}

	out["general"] = err.Error()
	return out
}

type loginResponse struct {
	Token string `json:"token"`
}

// Service talks to the remote login and profile endpoints.
type Service struct {
	client        *httpclient.Client
	profileUserID int
}

func NewService(client *httpclient.Client, profileUserID int) *Service {
	if profileUserID <= 0 {
		profileUserID = DefaultProfileUserID
	}
	return &Service{
		client:        client,
		profileUserID: profileUserID,
	}
}

// Login exchanges credentials for a token.
func (s *Service) Login(ctx context.Context, creds Credentials) (string, error) {
	var out loginResponse
	if err := s.client.Post(ctx, "/login", creds, nil, &out); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if out.Token == "" {
		return "", ErrMissingToken
	}
	return out.Token, nil
}

// FetchProfile loads the signed-in user's profile. reqres tokens are not
// tied to a user, so the profile always comes from a fixed user id.
func (s *Service) FetchProfile(ctx context.Context, token string) (*session.Profile, error) {
	var out struct {
		Data users.Record `json:"data"`
	}

	headers := httpclient.Headers{"Authorization": "Bearer " + token}
	if err := s.client.Get(ctx, "/users/"+strconv.Itoa(s.profileUserID), headers, &out); err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}

	return &session.Profile{
		ID:     out.Data.ID,
		Avatar: out.Data.Avatar,
		Name:   out.Data.FullName(),
		Email:  out.Data.Email,
	}, nil
}
