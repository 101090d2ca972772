package reqresfake

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/loganlanou/reqres-dashboard/internal/users"
)

type errorBody struct {
	Error string `json:"error"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Missing email or username"})
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = strings.TrimSpace(req.Username)
	}
	if email == "" {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Missing email or username"})
	}
	if req.Password == "" {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Missing password"})
	}

	s.mu.RLock()
	found := false
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			found = true
			break
		}
	}
	s.mu.RUnlock()

	if !found {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "user not found"})
	}

	return c.JSON(http.StatusOK, map[string]string{"token": Token})
}

func (s *Server) handleList(c echo.Context) error {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}

	perPage := s.perPage
	if raw := c.QueryParam("per_page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			perPage = n
		}
	}

	s.mu.RLock()
	total := len(s.users)
	start := min((page-1)*perPage, total)
	end := min(start+perPage, total)
	data := make([]users.Record, end-start)
	copy(data, s.users[start:end])
	s.mu.RUnlock()

	return c.JSON(http.StatusOK, users.Page{
		Data:       data,
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: (total + perPage - 1) / perPage,
	})
}

func (s *Server) handleGet(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, struct{}{})
	}

	u, found := s.User(id)
	if !found {
		return c.JSON(http.StatusNotFound, struct{}{})
	}

	return c.JSON(http.StatusOK, map[string]users.Record{"data": u})
}

func (s *Server) handleUpdate(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, struct{}{})
	}

	var req users.Update
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid body"})
	}

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return c.JSON(http.StatusNotFound, struct{}{})
	}
	if req.FirstName != "" {
		s.users[i].FirstName = req.FirstName
	}
	if req.LastName != "" {
		s.users[i].LastName = req.LastName
	}
	if req.Email != "" {
		s.users[i].Email = req.Email
	}
	s.mu.Unlock()

	return c.JSON(http.StatusOK, users.UpdateResult{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		UpdatedAt: time.Now().UTC().Truncate(time.Millisecond),
	})
}

func (s *Server) handleDelete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, struct{}{})
	}

	s.mu.Lock()
	i := s.indexOf(id)
	if i >= 0 {
		s.users = append(s.users[:i], s.users[i+1:]...)
	}
	s.mu.Unlock()

	if i < 0 {
		return c.JSON(http.StatusNotFound, struct{}{})
	}
	return c.NoContent(http.StatusNoContent)
}
