package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Anees44/trae-dating-project/internal/backend/transport"
	"github.com/Anees44/trae-dating-project/internal/models"
	"github.com/stretchr/testify/require"
)

// fakeBackend — httptest-сервер с одним обработчиком и счётчиком запросов.
type fakeBackend struct {
	srv   *httptest.Server
	calls atomic.Int32
}

func newFake(t *testing.T, h http.HandlerFunc) (*Client, *fakeBackend) {
	t.Helper()

	fb := &fakeBackend{}
	fb.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fb.calls.Add(1)
		h(w, r)
	}))
	t.Cleanup(fb.srv.Close)

	c, err := New(fb.srv.URL+"/api/", nil)
	require.NoError(t, err)

	return c, fb
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNew_RejectsRelativeURL(t *testing.T) {
	t.Parallel()

	_, err := New("/api", nil)
	require.Error(t, err)

	_, err = New("http://backend:5000/api", nil)
	require.NoError(t, err)
}

func TestMyProfile_OK_SendsBearer(t *testing.T) {
	t.Parallel()

	c, fb := newFake(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/profiles/me", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{"_id": "p1", "fullName": "Aisha", "age": 25, "isMuslim": false})
	})

	p, err := c.MyProfile(context.Background(), "tok")
	require.NoError(t, err)
	require.Equal(t, "p1", p.ID)
	require.Equal(t, "Aisha", p.FullName)
	require.False(t, p.Muslim())
	require.EqualValues(t, 1, fb.calls.Load())
}

func TestErrors_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
		message  string
	}{
		{name: "404", status: http.StatusNotFound, body: `{"message":"Profile not found"}`, sentinel: ErrNotFound, message: "Profile not found"},
		{name: "401", status: http.StatusUnauthorized, body: `{"message":"jwt expired"}`, sentinel: ErrUnauthorized, message: "jwt expired"},
		{name: "403", status: http.StatusForbidden, body: ``, sentinel: ErrUnauthorized, message: "Forbidden"},
		{name: "500 error field", status: http.StatusInternalServerError, body: `{"error":"db down"}`, message: "db down"},
		{name: "502 html", status: http.StatusBadGateway, body: `<html>bad</html>`, message: "Bad Gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newFake(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := c.Matches(context.Background(), "tok")
			require.Error(t, err)

			var be *Error
			require.True(t, errors.As(err, &be))
			require.Equal(t, tt.status, be.Status)
			require.Equal(t, tt.message, be.Message)
			require.Equal(t, "backend/Matches", be.Op)

			if tt.sentinel != nil {
				require.ErrorIs(t, err, tt.sentinel)
			} else {
				require.NotErrorIs(t, err, ErrNotFound)
				require.NotErrorIs(t, err, ErrUnauthorized)
			}
		})
	}
}

func TestMessage_Fallback(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Email already in use", Message(&Error{Status: 400, Message: "Email already in use"}, "fallback"))
	require.Equal(t, "fallback", Message(&Error{Status: 500, Message: "Internal Server Error"}, "fallback"))
	require.Equal(t, "fallback", Message(errors.New("x"), "fallback"))
}

func TestUnavailable_OnTransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(url, nil)
	require.NoError(t, err)

	_, err = c.Dashboard(context.Background(), "admin")
	require.ErrorIs(t, err, ErrUnavailable)
	require.True(t, IsTransport(err))
}

func TestTimeout_FromTransportChain(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c, err := New(srv.URL, transport.Chain(http.DefaultTransport, transport.WithTimeout(50*time.Millisecond)))
	require.NoError(t, err)

	_, err = c.Conversations(context.Background(), "tok")
	require.Error(t, err)
	require.True(t, IsTransport(err))
}

func TestCreateAndUpdateProfile_Multipart(t *testing.T) {
	t.Parallel()

	var seen []string
	c, _ := newFake(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		require.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data; boundary="))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "Aisha", r.FormValue("fullName"))
		writeJSON(w, http.StatusOK, map[string]any{"_id": "p1", "fullName": "Aisha"})
	})

	body := models.Multipart{
		ContentType: "multipart/form-data; boundary=xyz",
		Body:        []byte("--xyz\r\nContent-Disposition: form-data; name=\"fullName\"\r\n\r\nAisha\r\n--xyz--\r\n"),
	}

	p, err := c.CreateProfile(context.Background(), "tok", body)
	require.NoError(t, err)
	require.Equal(t, "p1", p.ID)

	_, err = c.UpdateProfile(context.Background(), "tok", "p1", body)
	require.NoError(t, err)

	require.Equal(t, []string{"POST /api/profiles", "PUT /api/profiles/p1"}, seen)
}

func TestSettingsOperations(t *testing.T) {
	t.Parallel()

	c, _ := newFake(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "PUT /api/profiles/me":
			var acc models.Account
			require.NoError(t, json.NewDecoder(r.Body).Decode(&acc))
			require.Equal(t, "Aisha", acc.FullName)
			w.WriteHeader(http.StatusOK)
		case "PUT /api/profiles/change-password":
			var req models.ChangePasswordRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Equal(t, "old", req.OldPassword)
			require.Equal(t, "new", req.NewPassword)
			writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
		case "PUT /api/profiles/change-email":
			writeJSON(w, http.StatusOK, map[string]string{"email": "new@example.com"})
		case "DELETE /api/profiles/delete":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
	})

	ctx := context.Background()
	require.NoError(t, c.UpdateAccount(ctx, "tok", models.Account{FullName: "Aisha"}))
	require.NoError(t, c.ChangePassword(ctx, "tok", models.ChangePasswordRequest{OldPassword: "old", NewPassword: "new"}))

	res, err := c.ChangeEmail(ctx, "tok", models.ChangeEmailRequest{NewEmail: "new@example.com"})
	require.NoError(t, err)
	require.Equal(t, "new@example.com", res.Email)

	require.NoError(t, c.DeleteAccount(ctx, "tok"))
}

func TestLogin(t *testing.T) {
	t.Parallel()

	c, _ := newFake(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{"token": "jwt", "user": map[string]any{"_id": "u1", "name": "A"}})
	})

	res, err := c.Login(context.Background(), models.LoginRequest{Email: "a@b.c", Password: "p"})
	require.NoError(t, err)
	require.Equal(t, "jwt", res.Token)
	require.Equal(t, "u1", res.User.ID)
}

func TestMessagesAndSend(t *testing.T) {
	t.Parallel()

	sendReply := `{"_id":"m3","text":"hi","chatId":"c1"}`
	c, _ := newFake(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /api/messages/conversations":
			writeJSON(w, http.StatusOK, []map[string]any{{"_id": "c1", "user": map[string]any{"_id": "u2", "name": "B"}}})
		case "GET /api/messages/c1":
			writeJSON(w, http.StatusOK, []map[string]any{{"_id": "m1", "text": "a"}, {"_id": "m2", "text": "b"}})
		case "POST /api/messages":
			var req models.SendMessageRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Equal(t, "c1", req.ChatID)
			_, _ = io.WriteString(w, sendReply)
		}
	})

	ctx := context.Background()

	convs, err := c.Conversations(ctx, "tok")
	require.NoError(t, err)
	require.Len(t, convs, 1)
	require.Equal(t, "B", convs[0].Peer.Name)

	msgs, err := c.Messages(ctx, "tok", "c1")
	require.NoError(t, err)
	require.Equal(t, "m1", msgs[0].ID)
	require.Equal(t, "m2", msgs[1].ID)

	m, err := c.SendMessage(ctx, "tok", models.SendMessageRequest{ChatID: "c1", Text: "hi"})
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, "m3", m.ID)

	sendReply = `{"success":true}`
	m, err = c.SendMessage(ctx, "tok", models.SendMessageRequest{ChatID: "c1", Text: "hi"})
	require.NoError(t, err)
	require.Nil(t, m)
}

func TestAdminOperations(t *testing.T) {
	t.Parallel()

	toggleReply := `{"message":"ok","user":{"_id":"u1","name":"A","email":"a@b.c","status":"blocked"}}`
	c, fb := newFake(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))
		switch r.Method + " " + r.URL.Path {
		case "GET /api/dashboard":
			writeJSON(w, http.StatusOK, map[string]any{
				"stats": map[string]int{"totalUsers": 2, "activeUsers": 1, "blockedUsers": 1},
				"users": []map[string]string{{"_id": "u1", "status": "active"}, {"_id": "u2", "status": "blocked"}},
			})
		case "PUT /api/users/u1/toggle-status":
			_, _ = io.WriteString(w, toggleReply)
		case "DELETE /api/users/u2":
			w.WriteHeader(http.StatusOK)
		}
	})

	ctx := context.Background()

	d, err := c.Dashboard(ctx, "admin-token")
	require.NoError(t, err)
	require.Equal(t, 2, d.Stats.TotalUsers)
	require.Len(t, d.Users, 2)

	u, err := c.ToggleUserStatus(ctx, "admin-token", "u1")
	require.NoError(t, err)
	require.NotNil(t, u)
	require.Equal(t, models.StatusBlocked, u.Status)

	toggleReply = ``
	u, err = c.ToggleUserStatus(ctx, "admin-token", "u1")
	require.NoError(t, err)
	require.Nil(t, u)

	require.NoError(t, c.DeleteUser(ctx, "admin-token", "u2"))
	require.EqualValues(t, 4, fb.calls.Load())
}
