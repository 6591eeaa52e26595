package tracker_api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/klokku/timesheet/pkg/time_entry"
	"github.com/klokku/timesheet/pkg/user"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

var ErrUnauthenticated = errors.New("not authenticated with the time tracker API")
var ErrInvalidCredentials = errors.New("invalid email or password")

type LoginResponse struct {
	AccessToken string
	User        user.User
}

type userDTO struct {
	Id          string    `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	DateOfBirth string    `json:"dateOfBirth"`
	IsAdmin     bool      `json:"isAdmin"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type timeTrackerDTO struct {
	Id        string    `json:"id"`
	UserId    string    `json:"userId"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Client interface {
	// POST /auth/login
	Login(ctx context.Context, email string, password string) (LoginResponse, error)
	// GET /time-trackers, scoped by the backend to what the token's owner may see
	GetTimeTrackers(ctx context.Context, accessToken string) ([]time_entry.TimeEntry, error)
	// GET /users, administrators only
	GetUsers(ctx context.Context, accessToken string) ([]user.User, error)
}

type ClientImpl struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *ClientImpl {
	return &ClientImpl{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *ClientImpl) Login(ctx context.Context, email string, password string) (LoginResponse, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return LoginResponse{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return LoginResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute login request: %v", err)
		return LoginResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest {
		return LoginResponse{}, ErrInvalidCredentials
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		err := fmt.Errorf("time tracker API returned non-OK status: %d", resp.StatusCode)
		log.Error(err)
		return LoginResponse{}, err
	}

	var response struct {
		AccessToken string  `json:"accessToken"`
		User        userDTO `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		log.Errorf("Failed to decode login response: %v", err)
		return LoginResponse{}, err
	}

	return LoginResponse{
		AccessToken: response.AccessToken,
		User:        dtoToUser(response.User),
	}, nil
}

func (c *ClientImpl) GetTimeTrackers(ctx context.Context, accessToken string) ([]time_entry.TimeEntry, error) {
	var response []timeTrackerDTO
	if err := c.getJSON(ctx, accessToken, "/time-trackers", &response); err != nil {
		return nil, err
	}

	entries := make([]time_entry.TimeEntry, 0, len(response))
	for _, dto := range response {
		entries = append(entries, time_entry.TimeEntry{
			Id:        dto.Id,
			UserId:    dto.UserId,
			Date:      dto.Date,
			StartTime: dto.StartTime,
			EndTime:   dto.EndTime,
			CreatedAt: dto.CreatedAt,
			UpdatedAt: dto.UpdatedAt,
		})
	}
	return entries, nil
}

func (c *ClientImpl) GetUsers(ctx context.Context, accessToken string) ([]user.User, error) {
	var response []userDTO
	if err := c.getJSON(ctx, accessToken, "/users", &response); err != nil {
		return nil, err
	}

	users := make([]user.User, 0, len(response))
	for _, dto := range response {
		users = append(users, dtoToUser(dto))
	}
	return users, nil
}

// authorizedClient returns an HTTP client that sends the access token as a bearer token.
func (c *ClientImpl) authorizedClient(ctx context.Context, accessToken string) (*http.Client, error) {
	if accessToken == "" {
		log.Debug("no access token, authentication is required")
		return nil, ErrUnauthenticated
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	})), nil
}

func (c *ClientImpl) getJSON(ctx context.Context, accessToken string, path string, target any) error {
	client, err := c.authorizedClient(ctx, accessToken)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		log.Errorf("Failed to execute request %s: %v", path, err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthenticated
	}
	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("time tracker API returned non-OK status for %s: %d", path, resp.StatusCode)
		log.Error(err)
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		log.Errorf("Failed to decode response of %s: %v", path, err)
		return err
	}
	return nil
}

func dtoToUser(dto userDTO) user.User {
	return user.User{
		Id:          dto.Id,
		Email:       dto.Email,
		FirstName:   dto.FirstName,
		LastName:    dto.LastName,
		DateOfBirth: dto.DateOfBirth,
		IsAdmin:     dto.IsAdmin,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
	}
}
