package repository

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/uma-arai/sbcntr-restaurant-client/internal/common/config"
	"github.com/uma-arai/sbcntr-restaurant-client/internal/model"
)

var testSigningKey = []byte("test-secret")

type staticToken string

func (s staticToken) Token() string { return string(s) }

func mintToken(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(testSigningKey)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}
	return signed
}

// fakeAPI はテスト用の予約APIサーバーです
type fakeAPI struct {
	mu           sync.Mutex
	requests     []*http.Request
	bodies       []map[string]interface{}
	reservations []model.Reservation
	single       []model.Reservation
	users        []map[string]interface{}
}

func (f *fakeAPI) record(r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	body := map[string]interface{}{}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}
	f.requests = append(f.requests, r)
	f.bodies = append(f.bodies, body)
}

func (f *fakeAPI) last() (*http.Request, map[string]interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := len(f.requests)
	return f.requests[n-1], f.bodies[n-1]
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requireAuth はベアラートークンをHS256で検証します
func requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		_, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
			return testSigningKey, nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid token"})
			return
		}
		next(w, r)
	}
}

func (f *fakeAPI) router() *mux.Router {
	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			f.record(req)
			next.ServeHTTP(w, req)
		})
	})

	r.HandleFunc("/restaurants", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, []model.Restaurant{
			{RestaurantID: "1", Name: "Trattoria Maria", Location: "Rome"},
			{RestaurantID: "2", Name: "Sushi Ichi", Location: "Tokyo"},
		})
	}).Methods(http.MethodGet)
	r.HandleFunc("/restaurants/search", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, []model.Restaurant{{RestaurantID: "2", Name: "Sushi Ichi"}})
	}).Methods(http.MethodGet)
	r.HandleFunc("/restaurants", requireAuth(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusCreated, model.Restaurant{RestaurantID: "3", Name: "New"})
	})).Methods(http.MethodPost)
	r.HandleFunc("/restaurants/{id}", requireAuth(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "Admin access required"})
	})).Methods(http.MethodDelete)

	r.HandleFunc("/reservations", requireAuth(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, f.reservations)
	})).Methods(http.MethodGet)
	r.HandleFunc("/reservations", requireAuth(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]string{"message": "created"})
	})).Methods(http.MethodPost)
	r.HandleFunc("/reservations/reservation/{id}", requireAuth(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, f.single)
	})).Methods(http.MethodGet)
	r.HandleFunc("/reservations/reservation/{id}", requireAuth(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Reservation " + mux.Vars(req)["id"] + " updated"})
	})).Methods(http.MethodPut)
	r.HandleFunc("/reservations/reservation/{id}", requireAuth(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>oops</html>"))
	})).Methods(http.MethodDelete)
	r.HandleFunc("/reservations/{userId}", requireAuth(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, f.reservations[:1])
	})).Methods(http.MethodGet)

	r.HandleFunc("/users/register", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"error": "Email already registered"})
	}).Methods(http.MethodPost)
	r.HandleFunc("/users", requireAuth(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, f.users)
	})).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", requireAuth(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]interface{}{})
	})).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", requireAuth(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	})).Methods(http.MethodPut)
	return r
}

func newTestClient(t *testing.T, f *fakeAPI, token string) *APIClient {
	t.Helper()
	server := httptest.NewServer(f.router())
	t.Cleanup(server.Close)
	return NewAPIClient(config.APIConfig{BaseURL: server.URL + "/", Timeout: 5 * time.Second}, staticToken(token), false)
}

func TestRestaurantRepository(t *testing.T) {
	ctx, seg := xray.BeginSegment(context.Background(), "TestRestaurantRepository")
	defer seg.Close(nil)

	f := &fakeAPI{}
	repo := NewRestaurantRepository(newTestClient(t, f, mintToken(t, "1")))

	restaurants, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(restaurants) != 2 || restaurants[0].RestaurantID != "1" {
		t.Errorf("List() = %v", restaurants)
	}
	req, _ := f.last()
	if req.Header.Get("Authorization") != "" {
		t.Error("List() should not send a bearer token")
	}
	if _, err := uuid.Parse(req.Header.Get("X-Request-ID")); err != nil {
		t.Errorf("X-Request-ID = %q is not a uuid", req.Header.Get("X-Request-ID"))
	}

	if _, err := repo.Search(ctx, "sushi bar"); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	req, _ = f.last()
	if got := req.URL.Query().Get("q"); got != "sushi bar" {
		t.Errorf("q = %q, want %q", got, "sushi bar")
	}

	created, err := repo.Create(ctx, model.RestaurantInput{Name: "New", Location: "Osaka", Description: "Ramen"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.RestaurantID != "3" {
		t.Errorf("Create() id = %v, want 3", created.RestaurantID)
	}
	req, body := f.last()
	if !strings.HasPrefix(req.Header.Get("Authorization"), "Bearer ") {
		t.Error("Create() should send a bearer token")
	}
	if body["location"] != "Osaka" {
		t.Errorf("body = %v", body)
	}

	_, err = repo.Delete(ctx, "1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Delete() error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusForbidden || !apiErr.IsUnauthorized() {
		t.Errorf("StatusCode = %v", apiErr.StatusCode)
	}
	if msg, ok := ServerMessage(err); !ok || msg != "Admin access required" {
		t.Errorf("ServerMessage() = %q, %v", msg, ok)
	}
}

func TestReservationRepository(t *testing.T) {
	ctx := context.Background()

	f := &fakeAPI{
		reservations: []model.Reservation{
			{ReservationID: "10", UserID: "1", RestaurantID: "2", Date: "2030-01-01T00:00:00.000Z", Time: "19:00:00", PeopleCount: 2},
			{ReservationID: "11", UserID: "2", RestaurantID: "1", Date: "2020-01-01", Time: "12:00", PeopleCount: 4},
		},
		single: []model.Reservation{{ReservationID: "10", Date: "2030-01-01T00:00:00.000Z", PeopleCount: 2}},
	}
	repo := NewReservationRepository(newTestClient(t, f, mintToken(t, "1")))

	all, err := repo.ListAll(ctx)
	if err != nil || len(all) != 2 {
		t.Fatalf("ListAll() = %v, %v", all, err)
	}
	own, err := repo.ListByUser(ctx, "1")
	if err != nil || len(own) != 1 {
		t.Fatalf("ListByUser() = %v, %v", own, err)
	}
	req, _ := f.last()
	if req.URL.Path != "/reservations/1" {
		t.Errorf("path = %v", req.URL.Path)
	}

	got, err := repo.Get(ctx, "10")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ReservationID != "10" {
		t.Errorf("Get() = %v", got)
	}

	f.single = nil
	if _, err := repo.Get(ctx, "10"); !errors.Is(err, ErrEmptyResult) {
		t.Errorf("Get() on empty array error = %v, want ErrEmptyResult", err)
	}

	err = repo.Create(ctx, model.ReservationRequest{UserID: "1", RestaurantID: "2", Date: "2024-03-15", Time: "19:00", PeopleCount: 2})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	_, body := f.last()
	if body["date"] != "2024-03-15" || body["people_count"] != float64(2) || body["user_id"] != float64(1) {
		t.Errorf("Create() body = %v", body)
	}

	msg, err := repo.Update(ctx, "10", model.ReservationUpdate{Date: "2030-01-02", Time: "20:00", PeopleCount: model.CoercePeopleCount("3")})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if msg != "Reservation 10 updated" {
		t.Errorf("Update() message = %q", msg)
	}

	_, err = repo.Delete(ctx, "10")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok := ServerMessage(err); ok {
		t.Error("non-JSON error body should not yield a server message")
	}
}

func TestReservationRepository_Unauthorized(t *testing.T) {
	f := &fakeAPI{}
	repo := NewReservationRepository(newTestClient(t, f, "not-a-jwt"))

	_, err := repo.ListAll(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("ListAll() error = %v, want 401", err)
	}
	if msg, _ := ServerMessage(err); msg != "Invalid token" {
		t.Errorf("ServerMessage() = %q", msg)
	}
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	f := &fakeAPI{
		users: []map[string]interface{}{
			{"user_id": 1, "name": "Maria", "email": "maria@example.com"},
			{"id": 2, "name": "John", "email": "john@example.com"},
		},
	}
	repo := NewUserRepository(newTestClient(t, f, mintToken(t, "1")))

	users, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(users) != 2 || users[1].UserID != "2" {
		t.Errorf("List() = %v", users)
	}

	if _, err := repo.Get(ctx, "1"); !errors.Is(err, ErrEmptyResult) {
		t.Errorf("Get() error = %v, want ErrEmptyResult", err)
	}

	if err := repo.Update(ctx, "1", model.UserProfile{Name: "Maria", Email: "m@example.com"}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	// 登録は201のみ成功とみなす
	err = repo.Register(ctx, model.Registration{Name: "A", Email: "a@example.com", Password: "p"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusOK {
		t.Fatalf("Register() error = %v, want APIError with 200", err)
	}
	if msg, _ := ServerMessage(err); msg != "Email already registered" {
		t.Errorf("ServerMessage() = %q", msg)
	}
}

func TestAPIClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client := NewAPIClient(config.APIConfig{BaseURL: baseURL, Timeout: time.Second}, nil, false)
	_, err := NewRestaurantRepository(client).List(context.Background())
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("List() error = %v, want *TransportError", err)
	}
}
