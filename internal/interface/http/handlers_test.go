package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Renanf68/nlw2-server/internal/application"
	"github.com/Renanf68/nlw2-server/internal/domain/entity"
	"github.com/Renanf68/nlw2-server/internal/domain/repository"
	"github.com/Renanf68/nlw2-server/pkg/helpers"
	"github.com/Renanf68/nlw2-server/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	os.Exit(m.Run())
}

type fakeClasses struct {
	listings []entity.ClassListing
	err      error
	enrolled []application.EnrollInput
}

func (f *fakeClasses) Search(_ context.Context, subject, weekDay, clock string) ([]entity.ClassListing, error) {
	if subject == "" || weekDay == "" || clock == "" {
		return nil, application.ErrMissingFilter
	}
	return f.listings, f.err
}

func (f *fakeClasses) Enroll(_ context.Context, in application.EnrollInput) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.enrolled = append(f.enrolled, in)
	return int64(len(f.enrolled)), nil
}

func do(r *gin.Engine, method, target string, body io.Reader, contentType string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func classRouter(svc ClassUseCases) *gin.Engine {
	r := gin.New()
	h := NewClassHandler(svc, helpers.NewNopLogger())
	r.GET("/api/classes", h.Index)
	r.POST("/api/classes", h.Create)
	return r
}

func TestClassIndex(t *testing.T) {
	svc := &fakeClasses{listings: []entity.ClassListing{{
		Class: entity.Class{ID: 3, Subject: "Physics", Cost: 80, UserID: 9},
		User:  entity.User{ID: 9, Name: "Diego", Whatsapp: "5511999999999"},
	}}}
	w, body := do(classRouter(svc), http.MethodGet, "/api/classes?subject=Physics&week_day=1&time=10:00", nil, "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}
	classes, ok := body["classes"].([]any)
	if !ok || len(classes) != 1 {
		t.Fatalf("expected one class, got %v", body)
	}
	first := classes[0].(map[string]any)
	if first["name"] != "Diego" || first["subject"] != "Physics" || first["user_id"] != float64(9) {
		t.Errorf("unexpected class payload %v", first)
	}
}

func TestClassIndex_EmptyIsArray(t *testing.T) {
	w, _ := do(classRouter(&fakeClasses{}), http.MethodGet, "/api/classes?subject=X&week_day=1&time=10:00", nil, "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"classes":[]`) {
		t.Errorf("expected empty classes array, got %d %s", w.Code, w.Body)
	}
}

func TestClassIndex_Errors(t *testing.T) {
	tests := []struct {
		name   string
		svcErr error
		query  string
		status int
		msg    string
	}{
		{"missing filter", nil, "subject=Physics&week_day=1", http.StatusBadRequest, "Missing filters for classes search"},
		{"bad week day", fmt.Errorf("%w: %q", application.ErrInvalidWeekDay, "x"), "subject=P&week_day=x&time=10:00", http.StatusBadRequest, ""},
		{"bad time", fmt.Errorf("time: %w", entity.ErrInvalidFormat), "subject=P&week_day=1&time=1000", http.StatusBadRequest, ""},
		{"store failure", fmt.Errorf("%w: conn refused", application.ErrStoreFailure), "subject=P&week_day=1&time=10:00", http.StatusInternalServerError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := do(classRouter(&fakeClasses{err: tt.svcErr}), http.MethodGet, "/api/classes?"+tt.query, nil, "")
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, w.Code)
			}
			if body["error"] == nil || body["error"] == "" {
				t.Errorf("expected error message, got %v", body)
			}
			if tt.msg != "" && body["error"] != tt.msg {
				t.Errorf("expected %q, got %v", tt.msg, body["error"])
			}
		})
	}
}

const validClass = `{
	"name": "Diego", "avatar": "https://cdn.test/a.png", "whatsapp": "5511999999999",
	"bio": "Physics tutor", "subject": "Physics", "cost": 80,
	"schedule": [{"week_day": 0, "from": "8:00", "to": "12:00"}]
}`

func TestClassCreate(t *testing.T) {
	svc := &fakeClasses{}
	w, body := do(classRouter(svc), http.MethodPost, "/api/classes", strings.NewReader(validClass), "application/json")

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body)
	}
	if body["message"] != "class created successfully" {
		t.Errorf("unexpected body %v", body)
	}
	if len(svc.enrolled) != 1 {
		t.Fatalf("expected one enrollment, got %d", len(svc.enrolled))
	}
	got := svc.enrolled[0]
	if got.Subject != "Physics" || got.Cost != 80 || len(got.Schedule) != 1 {
		t.Errorf("unexpected enroll input %+v", got)
	}
	if got.Schedule[0] != (application.ScheduleInput{WeekDay: 0, From: "8:00", To: "12:00"}) {
		t.Errorf("unexpected schedule %+v", got.Schedule[0])
	}
}

func TestClassCreate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing name", strings.Replace(validClass, `"name": "Diego", `, "", 1), "name"},
		{"bad clock", strings.Replace(validClass, `"12:00"`, `"12h"`, 1), "schedule[0].to"},
		{"missing week day", strings.Replace(validClass, `"week_day": 0, `, "", 1), "schedule[0].week_day"},
		{"missing cost", strings.Replace(validClass, `"cost": 80,`, "", 1), "cost"},
		{"negative cost", strings.Replace(validClass, `"cost": 80,`, `"cost": -1,`, 1), "cost"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeClasses{}
			w, body := do(classRouter(svc), http.MethodPost, "/api/classes", strings.NewReader(tt.body), "application/json")
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body)
			}
			details, _ := body["details"].(map[string]any)
			if _, ok := details[tt.field]; !ok {
				t.Errorf("expected details for %s, got %v", tt.field, body)
			}
			if len(svc.enrolled) != 0 {
				t.Error("expected service not to be called")
			}
		})
	}
}

func TestClassCreate_FreeClass(t *testing.T) {
	svc := &fakeClasses{}
	body := strings.Replace(validClass, `"cost": 80,`, `"cost": 0,`, 1)
	w, _ := do(classRouter(svc), http.MethodPost, "/api/classes", strings.NewReader(body), "application/json")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for a free class, got %d: %s", w.Code, w.Body)
	}
	if len(svc.enrolled) != 1 || svc.enrolled[0].Cost != 0 {
		t.Errorf("unexpected enroll input %+v", svc.enrolled)
	}
}

// countingRepo lets the real ClassService run behind the handler.
type countingRepo struct{ searches int }

func (r *countingRepo) Search(context.Context, string, entity.SearchWindow) ([]entity.ClassListing, error) {
	r.searches++
	return []entity.ClassListing{}, nil
}

func (r *countingRepo) Enroll(context.Context, *repository.Enrollment) error { return nil }

func TestClassIndex_WeekDayOutOfRange(t *testing.T) {
	repo := &countingRepo{}
	r := classRouter(application.NewClassService(repo, nil, helpers.NewNopLogger()))

	for _, day := range []string{"7", "-1", "65537"} {
		w, body := do(r, http.MethodGet, "/api/classes?subject=Math&week_day="+day+"&time=08:30", nil, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("week_day=%s: expected 400, got %d", day, w.Code)
		}
		if body["error"] == nil {
			t.Errorf("week_day=%s: expected error message, got %v", day, body)
		}
	}
	if repo.searches != 0 {
		t.Errorf("expected no store access, got %d searches", repo.searches)
	}

	if w, _ := do(r, http.MethodGet, "/api/classes?subject=Math&week_day=6&time=08:30", nil, ""); w.Code != http.StatusOK {
		t.Errorf("expected saturday to be searchable, got %d", w.Code)
	}
}

func TestClassCreate_EnrollFailure(t *testing.T) {
	svc := &fakeClasses{err: fmt.Errorf("%w: insert class: boom", application.ErrTransactionAborted)}
	w, body := do(classRouter(svc), http.MethodPost, "/api/classes", strings.NewReader(validClass), "application/json")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if body["error"] != "Unexpected error while creating new class" {
		t.Errorf("unexpected body %v", body)
	}
}

type fakeConnections struct {
	total int64
	err   error
}

func (f *fakeConnections) Create(_ context.Context, userID int64) error {
	if f.err != nil {
		return f.err
	}
	if userID != 1 {
		return repository.ErrUserNotFound
	}
	f.total++
	return nil
}

func (f *fakeConnections) Total(context.Context) (int64, error) { return f.total, f.err }

func TestConnections(t *testing.T) {
	svc := &fakeConnections{}
	r := gin.New()
	h := NewConnectionHandler(svc)
	r.GET("/api/connections", h.Index)
	r.POST("/api/connections", h.Create)

	w, _ := do(r, http.MethodPost, "/api/connections", strings.NewReader(`{"user_id":1}`), "application/json")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	w, _ = do(r, http.MethodPost, "/api/connections", strings.NewReader(`{"user_id":2}`), "application/json")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown user, got %d", w.Code)
	}
	w, _ = do(r, http.MethodPost, "/api/connections", strings.NewReader(`{}`), "application/json")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing user_id, got %d", w.Code)
	}
	w, body := do(r, http.MethodGet, "/api/connections", nil, "")
	if w.Code != http.StatusOK || body["total"] != float64(1) {
		t.Errorf("expected total 1, got %d %v", w.Code, body)
	}

	svc.err = errors.New("down")
	w, _ = do(r, http.MethodGet, "/api/connections", nil, "")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

type fakeSuggester struct{ err error }

func (f fakeSuggester) Suggest(_ context.Context, prefix string, _ int) ([]string, error) {
	return []string{prefix + "ysics"}, f.err
}

func TestSubjects(t *testing.T) {
	r := gin.New()
	r.GET("/api/subjects", NewSubjectHandler(fakeSuggester{}).Index)
	w, body := do(r, http.MethodGet, "/api/subjects?q=Ph", nil, "")
	subjects, _ := body["subjects"].([]any)
	if w.Code != http.StatusOK || len(subjects) != 1 || subjects[0] != "Physics" {
		t.Errorf("unexpected response %d %v", w.Code, body)
	}

	r = gin.New()
	r.GET("/api/subjects", NewSubjectHandler(fakeSuggester{err: errors.New("es down")}).Index)
	w, _ = do(r, http.MethodGet, "/api/subjects?q=Ph", nil, "")
	if w.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", w.Code)
	}
}

type fakeUploader struct{ err error }

func (f fakeUploader) Upload(_ context.Context, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	_, _ = io.Copy(io.Discard, r)
	return "https://cdn.test/avatars/x.png", nil
}

func multipartBody(t *testing.T, field string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, "me.png")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = fw.Write(data)
	_ = mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestAvatarUpload(t *testing.T) {
	tests := []struct {
		name   string
		field  string
		svcErr error
		status int
	}{
		{"ok", "file", nil, http.StatusCreated},
		{"missing file", "other", nil, http.StatusBadRequest},
		{"storage disabled", "file", application.ErrStorageDisabled, http.StatusServiceUnavailable},
		{"not an image", "file", application.ErrUnsupportedImage, http.StatusUnsupportedMediaType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/api/avatars", NewAvatarHandler(fakeUploader{err: tt.svcErr}).Upload)
			body, ct := multipartBody(t, tt.field, []byte("img"))
			w, out := do(r, http.MethodPost, "/api/avatars", body, ct)
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, w.Code, w.Body)
			}
			if tt.status == http.StatusCreated && out["url"] == nil {
				t.Errorf("expected url in body, got %v", out)
			}
		})
	}
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestHealth(t *testing.T) {
	r := gin.New()
	r.GET("/ok", NewHealthHandler(fakePinger{}, helpers.NewNopLogger()).Check)
	r.GET("/down", NewHealthHandler(fakePinger{err: errors.New("down")}, helpers.NewNopLogger()).Check)

	if w, body := do(r, http.MethodGet, "/ok", nil, ""); w.Code != http.StatusOK || body["status"] != "ok" {
		t.Errorf("expected ok, got %d %v", w.Code, body)
	}
	if w, _ := do(r, http.MethodGet, "/down", nil, ""); w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
}
