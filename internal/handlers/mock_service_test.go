package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"mindful_companion/internal/breathing"
	"mindful_companion/internal/models"
	"mindful_companion/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error
	anonID        int
	anonToken     string
	anonErr       error
	linkErr       error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
	lastLinkUserID     int
	lastLinkUsername   string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) SignInAnonymous() (int, string, error) {
	return m.anonID, m.anonToken, m.anonErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}
func (m *mockAuth) LinkCredentials(userID int, username, password string) error {
	m.lastLinkUserID = userID
	m.lastLinkUsername = username
	return m.linkErr
}

type mockBreathing struct {
	state    breathing.Snapshot
	stateErr error
	cmdErr   error
	durErr   error
	updates  chan breathing.Snapshot

	startCalled int
	stopCalled  int
	resetCalled int
	lastUserID  int
	lastSeconds int
}

func (m *mockBreathing) Start(ctx context.Context, userID int) (breathing.Snapshot, error) {
	m.startCalled++
	m.lastUserID = userID
	return m.state, m.cmdErr
}
func (m *mockBreathing) Stop(ctx context.Context, userID int) (breathing.Snapshot, error) {
	m.stopCalled++
	m.lastUserID = userID
	return m.state, m.cmdErr
}
func (m *mockBreathing) Reset(ctx context.Context, userID int) (breathing.Snapshot, error) {
	m.resetCalled++
	m.lastUserID = userID
	return m.state, m.cmdErr
}
func (m *mockBreathing) SetDuration(ctx context.Context, userID, seconds int) (breathing.Snapshot, error) {
	m.lastUserID = userID
	m.lastSeconds = seconds
	return m.state, m.durErr
}
func (m *mockBreathing) State(ctx context.Context, userID int) (breathing.Snapshot, error) {
	m.lastUserID = userID
	return m.state, m.stateErr
}
func (m *mockBreathing) Pattern() breathing.Config {
	return breathing.DefaultConfig()
}
func (m *mockBreathing) Subscribe(userID int) (<-chan breathing.Snapshot, func()) {
	m.lastUserID = userID
	if m.updates == nil {
		m.updates = make(chan breathing.Snapshot, 1)
	}
	return m.updates, func() {}
}

type mockCheckIns struct {
	created   models.CheckIn
	createErr error
	list      []models.CheckIn
	trend     []models.MoodPoint
	err       error

	lastUserID int
	lastMood   string
	lastNotes  string
}

func (m *mockCheckIns) Create(ctx context.Context, userID int, mood, notes string) (models.CheckIn, error) {
	m.lastUserID = userID
	m.lastMood = mood
	m.lastNotes = notes
	return m.created, m.createErr
}
func (m *mockCheckIns) List(ctx context.Context, userID int) ([]models.CheckIn, error) {
	m.lastUserID = userID
	return m.list, m.err
}
func (m *mockCheckIns) Trend(ctx context.Context, userID int) ([]models.MoodPoint, error) {
	m.lastUserID = userID
	return m.trend, m.err
}

type mockJournal struct {
	created   models.JournalEntry
	createErr error
	list      []models.JournalEntry
	err       error

	lastTitle   string
	lastContent string
}

func (m *mockJournal) Create(ctx context.Context, userID int, title, content string) (models.JournalEntry, error) {
	m.lastTitle = title
	m.lastContent = content
	return m.created, m.createErr
}
func (m *mockJournal) List(ctx context.Context, userID int) ([]models.JournalEntry, error) {
	return m.list, m.err
}

type mockProfile struct {
	profile models.Profile
	getErr  error
	setErr  error

	lastName string
}

func (m *mockProfile) Get(ctx context.Context, userID int) (models.Profile, error) {
	return m.profile, m.getErr
}
func (m *mockProfile) SetDisplayName(ctx context.Context, userID int, name string) (models.Profile, error) {
	m.lastName = name
	if m.setErr != nil {
		return models.Profile{}, m.setErr
	}
	p := m.profile
	p.DisplayName = name
	return p, nil
}

type mockResources struct {
	items []models.Resource
}

func (m *mockResources) List() []models.Resource { return m.items }

type mockActivityLog struct {
	resp     []models.ActivityEvent
	err      error
	lastUser int
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockActivityLog) List(ctx context.Context, userID int, f service.LogFilter) ([]models.ActivityEvent, error) {
	m.lastUser = userID
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// authedRequest builds a request carrying a bearer token and an optional JSON body.
func authedRequest(method, path, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	return req
}
