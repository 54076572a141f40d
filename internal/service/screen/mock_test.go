package screen

import (
	"context"
	"time"

	"github.com/uma-arai/sbcntr-restaurant-client/internal/model"
)

type fakeSession struct {
	session    model.Session
	clearError error
	cleared    bool
}

func (f *fakeSession) Current() model.Session { return f.session }

func (f *fakeSession) Clear(ctx context.Context) error {
	f.cleared = true
	f.session = model.Session{}
	return f.clearError
}

type fakeNavigator struct {
	toLogin int
	back    int
	editIDs []model.ID
}

func (f *fakeNavigator) ToLogin()                      { f.toLogin++ }
func (f *fakeNavigator) Back()                         { f.back++ }
func (f *fakeNavigator) ToEditReservation(id model.ID) { f.editIDs = append(f.editIDs, id) }

type fakeNotifier struct {
	notifications []model.Notification
}

func (f *fakeNotifier) Notify(n model.Notification) { f.notifications = append(f.notifications, n) }

func (f *fakeNotifier) last() model.Notification {
	if len(f.notifications) == 0 {
		return model.Notification{}
	}
	return f.notifications[len(f.notifications)-1]
}

type fakeConfirmer struct {
	answer bool
	asked  int
}

func (f *fakeConfirmer) Confirm(title, message string) bool {
	f.asked++
	return f.answer
}

// MockRestaurantRepository はテスト用のモックリポジトリです
type MockRestaurantRepository struct {
	restaurants   []model.Restaurant
	searchResult  []model.Restaurant
	created       *model.Restaurant
	deleteMessage string
	listError     error
	searchError   error
	createError   error
	deleteError   error
	listCalls     int
	searchCalls   int
	createCalls   int
	deleteCalls   int
	lastQuery     string
	lastInput     model.RestaurantInput
	lastDeletedID model.ID
}

func (m *MockRestaurantRepository) List(ctx context.Context) ([]model.Restaurant, error) {
	m.listCalls++
	if m.listError != nil {
		return nil, m.listError
	}
	return append([]model.Restaurant(nil), m.restaurants...), nil
}

func (m *MockRestaurantRepository) Search(ctx context.Context, query string) ([]model.Restaurant, error) {
	m.searchCalls++
	m.lastQuery = query
	return m.searchResult, m.searchError
}

func (m *MockRestaurantRepository) Create(ctx context.Context, input model.RestaurantInput) (*model.Restaurant, error) {
	m.createCalls++
	m.lastInput = input
	if m.createError != nil {
		return nil, m.createError
	}
	return m.created, nil
}

func (m *MockRestaurantRepository) Delete(ctx context.Context, id model.ID) (string, error) {
	m.deleteCalls++
	m.lastDeletedID = id
	return m.deleteMessage, m.deleteError
}

// MockReservationRepository はテスト用のモックリポジトリです
type MockReservationRepository struct {
	all           []model.Reservation
	own           []model.Reservation
	single        *model.Reservation
	updateMessage string
	listError     error
	getError      error
	createError   error
	updateError   error
	deleteError   error
	listAllCalls  int
	listOwnCalls  int
	getCalls      int
	createCalls   int
	updateCalls   int
	deleteCalls   int
	lastUserID    string
	lastRequest   model.ReservationRequest
	lastUpdate    model.ReservationUpdate
	lastUpdateID  model.ID
}

func (m *MockReservationRepository) ListAll(ctx context.Context) ([]model.Reservation, error) {
	m.listAllCalls++
	return m.all, m.listError
}

func (m *MockReservationRepository) ListByUser(ctx context.Context, userID string) ([]model.Reservation, error) {
	m.listOwnCalls++
	m.lastUserID = userID
	return m.own, m.listError
}

func (m *MockReservationRepository) Get(ctx context.Context, id model.ID) (*model.Reservation, error) {
	m.getCalls++
	return m.single, m.getError
}

func (m *MockReservationRepository) Create(ctx context.Context, req model.ReservationRequest) error {
	m.createCalls++
	m.lastRequest = req
	return m.createError
}

func (m *MockReservationRepository) Update(ctx context.Context, id model.ID, update model.ReservationUpdate) (string, error) {
	m.updateCalls++
	m.lastUpdateID = id
	m.lastUpdate = update
	return m.updateMessage, m.updateError
}

func (m *MockReservationRepository) Delete(ctx context.Context, id model.ID) (string, error) {
	m.deleteCalls++
	return "", m.deleteError
}

func (m *MockReservationRepository) calls() int {
	return m.listAllCalls + m.listOwnCalls + m.getCalls + m.createCalls + m.updateCalls + m.deleteCalls
}

// MockUserRepository はテスト用のモックリポジトリです
type MockUserRepository struct {
	user          *model.User
	users         []model.User
	registerError error
	getError      error
	updateError   error
	listError     error
	registerCalls int
	getCalls      int
	updateCalls   int
	listCalls     int
	lastProfile   model.UserProfile
}

func (m *MockUserRepository) Register(ctx context.Context, registration model.Registration) error {
	m.registerCalls++
	return m.registerError
}

func (m *MockUserRepository) Get(ctx context.Context, userID string) (*model.User, error) {
	m.getCalls++
	return m.user, m.getError
}

func (m *MockUserRepository) Update(ctx context.Context, userID string, profile model.UserProfile) error {
	m.updateCalls++
	m.lastProfile = profile
	return m.updateError
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	m.listCalls++
	return m.users, m.listError
}

type testEnv struct {
	session      *fakeSession
	navigator    *fakeNavigator
	notifier     *fakeNotifier
	confirmer    *fakeConfirmer
	restaurants  *MockRestaurantRepository
	reservations *MockReservationRepository
	users        *MockUserRepository
	deps         Deps
}

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestEnv(s model.Session) *testEnv {
	env := &testEnv{
		session:      &fakeSession{session: s},
		navigator:    &fakeNavigator{},
		notifier:     &fakeNotifier{},
		confirmer:    &fakeConfirmer{},
		restaurants:  &MockRestaurantRepository{},
		reservations: &MockReservationRepository{},
		users:        &MockUserRepository{},
	}
	env.deps = Deps{
		Session:      env.session,
		Navigator:    env.navigator,
		Notifier:     env.notifier,
		Confirmer:    env.confirmer,
		Restaurants:  env.restaurants,
		Reservations: env.reservations,
		Users:        env.users,
		Now:          func() time.Time { return testNow },
	}
	return env
}

var (
	userSession  = model.Session{UserID: "1", AuthToken: "token"}
	adminSession = model.Session{UserID: "99", AuthToken: "token", IsAdmin: true}
)
