package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/edenzconsultants/portal-api/internal/application"
	"github.com/edenzconsultants/portal-api/internal/auth"
	"github.com/edenzconsultants/portal-api/internal/chat"
	"github.com/edenzconsultants/portal-api/internal/config"
	"github.com/edenzconsultants/portal-api/internal/consult"
	"github.com/edenzconsultants/portal-api/internal/document"
	"github.com/edenzconsultants/portal-api/internal/models"
)

func testRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// per-test named in-memory db; a bare :memory: DSN gives every pooled
	// connection a different database
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&chat.Session{},
		&chat.Message{},
		&chat.Job{},
		&consult.Consultation{},
		&document.Document{},
		&application.Application{},
		&application.HistoryEntry{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	cfg := config.Config{
		JWTSecret:         "test-secret",
		AIProvider:        "openrouter", // no API key: every turn takes the fallback path
		ChatHistoryWindow: 10,
	}
	return NewRouter(db, cfg, nil, nil), db
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope (%s %s, status %d): %v: %s", method, path, w.Code, err, w.Body.String())
	}
	return w, env
}

func TestChatEndpoint_FallbackReply(t *testing.T) {
	r, _ := testRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/chat", "", gin.H{
		"message": "Tell me about studying in the USA",
	})
	if w.Code != http.StatusOK || env.Code != 0 {
		t.Fatalf("status=%d code=%d body=%s", w.Code, env.Code, w.Body.String())
	}

	var data struct {
		Response  string `json:"response"`
		SessionID string `json:"session_id"`
		Action    string `json:"action"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if !strings.Contains(data.Response, "Harvard") || !strings.Contains(data.Response, "$25,000-$60,000") {
		t.Fatalf("expected canned USA reply, got %q", data.Response)
	}
	if data.SessionID == "" {
		t.Fatalf("expected a session id")
	}
	if data.Action != "" {
		t.Fatalf("expected no action, got %q", data.Action)
	}
}

func TestChatEndpoint_BookingIntent(t *testing.T) {
	r, _ := testRouter(t)

	_, env := doJSON(t, r, http.MethodPost, "/chat", "", gin.H{
		"message": "I'd like to book an appointment",
	})
	var data struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Action != "booking_intent" {
		t.Fatalf("expected booking_intent action, got %q", data.Action)
	}
}

func TestChatEndpoint_RejectsMissingMessage(t *testing.T) {
	r, _ := testRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/chat", "", gin.H{})
	if w.Code != http.StatusBadRequest || env.Code == 0 {
		t.Fatalf("expected 400 with app code, got status=%d code=%d", w.Code, env.Code)
	}
}

func TestChatEndpoint_ListMessages(t *testing.T) {
	r, _ := testRouter(t)

	_, env := doJSON(t, r, http.MethodPost, "/chat", "", gin.H{"message": "hello"})
	var sent struct {
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(env.Data, &sent); err != nil {
		t.Fatalf("decode data: %v", err)
	}

	w, env := doJSON(t, r, http.MethodGet, "/chat/sessions/"+sent.SessionID+"/messages", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status=%d body=%s", w.Code, w.Body.String())
	}
	var data struct {
		Messages []chat.Message `json:"messages"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(data.Messages) != 2 {
		t.Fatalf("expected user+bot turns, got %d", len(data.Messages))
	}
}

func TestAsyncChat_UnavailableWithoutBroker(t *testing.T) {
	r, _ := testRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/chat/async", "", gin.H{"message": "hi"})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without broker, got %d", w.Code)
	}
}

// registerAndLogin creates a student through the public endpoint and
// returns the login token plus the new user id.
func registerAndLogin(t *testing.T, r *gin.Engine, email string) (string, uint64) {
	t.Helper()
	_, env := doJSON(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"email":    email,
		"password": "secret-password",
	})
	if env.Code != 0 {
		t.Fatalf("register failed: %+v", env)
	}
	var reg struct {
		ID uint64 `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &reg); err != nil || reg.ID == 0 {
		t.Fatalf("no id in register response: %s", string(env.Data))
	}

	_, env = doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"email":    email,
		"password": "secret-password",
	})
	if env.Code != 0 {
		t.Fatalf("login failed: %+v", env)
	}
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Token == "" {
		t.Fatalf("no token in login response: %s", string(env.Data))
	}
	return data.Token, reg.ID
}

// seedStaffAndLogin provisions a staff account directly, the way the
// bootstrap does, and logs in through the endpoint.
func seedStaffAndLogin(t *testing.T, r *gin.Engine, db *gorm.DB, email, role string) string {
	t.Helper()
	hash, err := auth.HashPassword("secret-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := db.Create(&models.User{
		Email:        email,
		Role:         role,
		PasswordHash: hash,
	}).Error; err != nil {
		t.Fatalf("seed staff: %v", err)
	}

	_, env := doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"email":    email,
		"password": "secret-password",
	})
	if env.Code != 0 {
		t.Fatalf("staff login failed: %+v", env)
	}
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Token == "" {
		t.Fatalf("no token in login response: %s", string(env.Data))
	}
	return data.Token
}

func TestAuthFlow_MeAndRoleGuard(t *testing.T) {
	r, db := testRouter(t)

	studentToken, _ := registerAndLogin(t, r, "student@example.com")
	adminToken := seedStaffAndLogin(t, r, db, "admin@example.com", models.RoleAdmin)

	w, env := doJSON(t, r, http.MethodGet, "/me", studentToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me: status=%d", w.Code)
	}
	var me struct {
		Role string `json:"role"`
	}
	if err := json.Unmarshal(env.Data, &me); err != nil || me.Role != "student" {
		t.Fatalf("unexpected me payload: %s", string(env.Data))
	}

	// unauthenticated
	if w, _ := doJSON(t, r, http.MethodGet, "/me", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	// student must not see the admin consultation list
	if w, _ := doJSON(t, r, http.MethodGet, "/consultations", studentToken, nil); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for student, got %d", w.Code)
	}
	if w, _ := doJSON(t, r, http.MethodGet, "/consultations", adminToken, nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", w.Code)
	}
}

func TestConsultationBookingFlow(t *testing.T) {
	r, db := testRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/consultations", "", gin.H{
		"name":    "Ali Raza",
		"email":   "ali@example.com",
		"phone":   "+92-321-1234567",
		"date":    "2026-09-20",
		"time":    "15:30",
		"service": "UK admissions",
	})
	if w.Code != http.StatusOK || env.Code != 0 {
		t.Fatalf("booking failed: status=%d body=%s", w.Code, w.Body.String())
	}
	var created struct {
		ID     uint64 `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if created.ID == 0 || created.Status != consult.StatusPending {
		t.Fatalf("unexpected booking: %+v", created)
	}

	adminToken := seedStaffAndLogin(t, r, db, "ops@example.com", models.RoleAdmin)

	path := fmt.Sprintf("/consultations/%d/status", created.ID)
	if w, _ := doJSON(t, r, http.MethodPatch, path, adminToken, gin.H{"status": "confirmed"}); w.Code != http.StatusOK {
		t.Fatalf("update status: %d", w.Code)
	}
	if w, _ := doJSON(t, r, http.MethodPatch, path, adminToken, gin.H{"status": "nonsense"}); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid status, got %d", w.Code)
	}

	// missing required fields
	if w, _ := doJSON(t, r, http.MethodPost, "/consultations", "", gin.H{"name": "x"}); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for incomplete booking, got %d", w.Code)
	}
}

func TestRegister_NeverGrantsStaffRoles(t *testing.T) {
	r, _ := testRouter(t)

	// a role in the payload must be ignored, not honored
	_, env := doJSON(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"email":    "attacker@example.com",
		"password": "secret-password",
		"role":     "admin",
	})
	if env.Code != 0 {
		t.Fatalf("register failed: %+v", env)
	}
	var reg struct {
		Role  string `json:"role"`
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &reg); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if reg.Role != models.RoleStudent {
		t.Fatalf("registered role = %q, want student", reg.Role)
	}

	// and the token must not open staff routes
	if w, _ := doJSON(t, r, http.MethodGet, "/consultations", reg.Token, nil); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 on staff route, got %d", w.Code)
	}
}

func TestChatEndpoint_RejectsOverlongSessionID(t *testing.T) {
	r, _ := testRouter(t)

	long := strings.Repeat("a", 64)
	w, _ := doJSON(t, r, http.MethodPost, "/chat", "", gin.H{
		"message":    "hello",
		"session_id": long,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for overlong session_id, got %d", w.Code)
	}
}

func TestProfileUpdate(t *testing.T) {
	r, _ := testRouter(t)

	token, _ := registerAndLogin(t, r, "amira@example.com")

	w, env := doJSON(t, r, http.MethodPatch, "/me", token, gin.H{
		"name": "Amira Shah",
		"bio":  "Applying for a UK masters",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update profile: status=%d body=%s", w.Code, w.Body.String())
	}
	var me struct {
		Name string `json:"name"`
		Bio  string `json:"bio"`
	}
	if err := json.Unmarshal(env.Data, &me); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if me.Name != "Amira Shah" || me.Bio != "Applying for a UK masters" {
		t.Fatalf("profile not updated: %+v", me)
	}

	// empty patch is rejected
	if w, _ := doJSON(t, r, http.MethodPatch, "/me", token, gin.H{}); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty update, got %d", w.Code)
	}
}

func TestDocumentWorkflow(t *testing.T) {
	r, db := testRouter(t)

	studentToken, studentID := registerAndLogin(t, r, "zain@example.com")
	staffToken := seedStaffAndLogin(t, r, db, "reviewer@example.com", models.RoleProcessing)

	w, env := doJSON(t, r, http.MethodPost, "/documents", studentToken, gin.H{
		"name":     "transcript.pdf",
		"type":     "academic",
		"file_url": "https://files.example.com/transcript.pdf",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("upload: status=%d body=%s", w.Code, w.Body.String())
	}
	var uploaded struct {
		ID     uint64 `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(env.Data, &uploaded); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if uploaded.Status != "pending" {
		t.Fatalf("fresh upload status = %q, want pending", uploaded.Status)
	}

	// unknown document type
	if w, _ := doJSON(t, r, http.MethodPost, "/documents", studentToken, gin.H{
		"name": "x", "type": "selfie", "file_url": "https://x/y",
	}); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid type, got %d", w.Code)
	}

	// students cannot review
	reviewPath := fmt.Sprintf("/documents/%d/feedback", uploaded.ID)
	if w, _ := doJSON(t, r, http.MethodPut, reviewPath, studentToken, gin.H{"status": "approved"}); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for student review, got %d", w.Code)
	}

	if w, _ := doJSON(t, r, http.MethodPut, reviewPath, staffToken, gin.H{
		"status":   "approved",
		"feedback": "verified against the original",
	}); w.Code != http.StatusOK {
		t.Fatalf("review: %d", w.Code)
	}

	// the student sees the verdict
	_, env = doJSON(t, r, http.MethodGet, "/documents", studentToken, nil)
	var mine struct {
		Documents []document.Document `json:"documents"`
	}
	if err := json.Unmarshal(env.Data, &mine); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(mine.Documents) != 1 || mine.Documents[0].Status != document.StatusApproved {
		t.Fatalf("unexpected document list: %+v", mine.Documents)
	}

	// staff can pull the student's file by id
	_, env = doJSON(t, r, http.MethodGet, fmt.Sprintf("/students/%d/documents", studentID), staffToken, nil)
	var theirs struct {
		Documents []document.Document `json:"documents"`
	}
	if err := json.Unmarshal(env.Data, &theirs); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(theirs.Documents) != 1 {
		t.Fatalf("expected 1 document for student, got %d", len(theirs.Documents))
	}
}

func TestApplicationTracking(t *testing.T) {
	r, db := testRouter(t)

	studentToken, studentID := registerAndLogin(t, r, "bilal@example.com")
	otherToken, _ := registerAndLogin(t, r, "other@example.com")
	staffToken := seedStaffAndLogin(t, r, db, "processing@example.com", models.RoleProcessing)

	// students cannot open applications
	if w, _ := doJSON(t, r, http.MethodPost, "/applications", studentToken, gin.H{
		"student_id": studentID, "university_name": "u", "program_name": "p", "intake": "i",
	}); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for student create, got %d", w.Code)
	}

	w, env := doJSON(t, r, http.MethodPost, "/applications", staffToken, gin.H{
		"student_id":      studentID,
		"university_name": "University of Toronto",
		"program_name":    "MEng",
		"intake":          "Fall 2026",
		"tuition_fee":     58000.0,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create: status=%d body=%s", w.Code, w.Body.String())
	}
	var created struct {
		ID       uint64 `json:"id"`
		Status   string `json:"status"`
		Progress int    `json:"progress"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if created.Status != application.StatusNew || created.Progress != 10 {
		t.Fatalf("unexpected fresh application: %+v", created)
	}

	// unknown student
	if w, _ := doJSON(t, r, http.MethodPost, "/applications", staffToken, gin.H{
		"student_id": 9999, "university_name": "u", "program_name": "p", "intake": "i",
	}); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown student, got %d", w.Code)
	}

	updatePath := fmt.Sprintf("/applications/%d", created.ID)
	if w, _ := doJSON(t, r, http.MethodPut, updatePath, staffToken, gin.H{
		"status":         "submitted",
		"progress":       60,
		"update_message": "Submitted to the university portal",
	}); w.Code != http.StatusOK {
		t.Fatalf("update: %d", w.Code)
	}
	if w, _ := doJSON(t, r, http.MethodPut, updatePath, staffToken, gin.H{"status": "bogus"}); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid status, got %d", w.Code)
	}
	if w, _ := doJSON(t, r, http.MethodPut, updatePath, staffToken, gin.H{"progress": 150}); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for out-of-range progress, got %d", w.Code)
	}

	// student tracking view
	_, env = doJSON(t, r, http.MethodGet, "/applications", studentToken, nil)
	var mine struct {
		Applications []application.Application `json:"applications"`
	}
	if err := json.Unmarshal(env.Data, &mine); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(mine.Applications) != 1 || mine.Applications[0].Status != application.StatusSubmitted {
		t.Fatalf("unexpected tracking view: %+v", mine.Applications)
	}

	// the timeline has create + update, newest first
	historyPath := fmt.Sprintf("/applications/%d/history", created.ID)
	_, env = doJSON(t, r, http.MethodGet, historyPath, studentToken, nil)
	var timeline struct {
		History []application.HistoryEntry `json:"history"`
	}
	if err := json.Unmarshal(env.Data, &timeline); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(timeline.History) != 2 || timeline.History[0].Notes != "Submitted to the university portal" {
		t.Fatalf("unexpected timeline: %+v", timeline.History)
	}

	// another student cannot read it
	if w, _ := doJSON(t, r, http.MethodGet, historyPath, otherToken, nil); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for foreign history, got %d", w.Code)
	}
}
