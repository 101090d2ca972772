package users

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/loganlanou/reqres-dashboard/internal/httpclient"
)

type Record struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar"`
}

func (r Record) FullName() string {
	return r.FirstName + " " + r.LastName
}

type Page struct {
	Data       []Record `json:"data"`
	Page       int      `json:"page"`
	PerPage    int      `json:"per_page"`
	Total      int      `json:"total"`
	TotalPages int      `json:"total_pages"`
}

// Update is the body of PUT /users/{id}.
type Update struct {
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
	Email     string `json:"email" form:"email"`
}

type UpdateResult struct {
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type single struct {
	Data Record `json:"data"`
}

// Service calls the remote /users endpoints.
type Service struct {
	client *httpclient.Client
}

func NewService(client *httpclient.Client) *Service {
	return &Service{client: client}
}

func (s *Service) List(ctx context.Context, page int) (*Page, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))

	var out Page
	if err := s.client.Get(ctx, "/users?"+q.Encode(), nil, &out); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return &out, nil
}

func (s *Service) Get(ctx context.Context, id int) (*Record, error) {
	var out single
	if err := s.client.Get(ctx, userPath(id), nil, &out); err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &out.Data, nil
}

func (s *Service) Update(ctx context.Context, id int, u Update) (*UpdateResult, error) {
	var out UpdateResult
	if err := s.client.Put(ctx, userPath(id), u, nil, &out); err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}
	return &out, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.client.Delete(ctx, userPath(id), nil, nil); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}

func userPath(id int) string {
	return "/users/" + strconv.Itoa(id)
}
