package hacauth_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// fakeConsole is a minimal stand-in for the administration console: a
// CSRF-protected login form, a home page that doubles as the validation
// probe target, and one protected endpoint.
type fakeConsole struct {
	srv *httptest.Server

	mu         sync.Mutex
	username   string
	password   string
	loginToken string
	preauthID  string
	route      string

	// sessions maps issued session ids to their current CSRF token.
	sessions map[string]string
	logins   int
	seq      int

	// behavior knobs
	csrfInMeta        bool
	noCSRF            bool
	omitSessionCookie bool
	redirectToLogin   bool
	homeStatus        int
	protectedStatus   int

	rotateTo       string
	protectedHits  int
	protectedBodys []string
}

const (
	authenticatedPage = `<html><body><h1>Administration Console</h1></body></html>`
)

func newFakeConsole(t *testing.T) *fakeConsole {
	t.Helper()

	f := &fakeConsole{
		username:   "admin",
		password:   "nimda",
		loginToken: "T1",
		preauthID:  "pre-1",
		route:      "node1",
		sessions:   make(map[string]string),
	}

	r := chi.NewRouter()
	r.Get("/hac/", f.home)
	r.Post("/hac/j_spring_security_check", f.login)
	r.Post("/hac/console/scripting/execute", f.protected)
	r.Get("/hac/console/scripting", f.protected)

	f.srv = httptest.NewServer(r)
	t.Cleanup(f.srv.Close)

	return f
}

func (f *fakeConsole) URL() string { return f.srv.URL }

func (f *fakeConsole) loginPage() string {
	if f.noCSRF {
		return `<html><body><form action="/hac/j_spring_security_check" method="post">
			<input type="text" name="j_username"/>
			<input type="password" name="j_password"/>
		</form></body></html>`
	}
	if f.csrfInMeta {
		return fmt.Sprintf(`<html><head><meta name="_csrf" content="%s"/></head>
			<body><form action="/hac/j_spring_security_check" method="post">
			<input type="text" name="j_username"/>
			</form></body></html>`, f.loginToken)
	}
	return fmt.Sprintf(`<html><body><form action="/hac/j_spring_security_check" method="post">
		<input type="text" name="j_username"/>
		<input type="password" name="j_password"/>
		<input type="hidden" name="_csrf" value="%s"/>
	</form></body></html>`, f.loginToken)
}

func (f *fakeConsole) authedSession(r *http.Request) (string, bool) {
	c, err := r.Cookie("JSESSIONID")
	if err != nil {
		return "", false
	}
	_, ok := f.sessions[c.Value]
	return c.Value, ok
}

// home serves the authenticated console page for valid sessions and the
// login page (or a redirect to it) otherwise.
func (f *fakeConsole) home(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.homeStatus != 0 {
		w.WriteHeader(f.homeStatus)
		return
	}

	if _, ok := f.authedSession(r); ok {
		_, _ = io.WriteString(w, authenticatedPage)
		return
	}

	if f.redirectToLogin {
		http.Redirect(w, r, "/hac/login", http.StatusFound)
		return
	}

	http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: f.preauthID, Path: "/"})
	_, _ = io.WriteString(w, f.loginPage())
}

// login validates the CSRF token bound to the pre-auth session and the
// submitted credentials, then issues a fresh session id and redirects to
// the console, mirroring the Spring Security form-login flow.
func (f *fakeConsole) login(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	pre, err := r.Cookie("JSESSIONID")
	if err != nil || pre.Value != f.preauthID || r.PostFormValue("_csrf") != f.loginToken {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	if r.PostFormValue("j_username") != f.username || r.PostFormValue("j_password") != f.password {
		http.Redirect(w, r, "/hac/login?error=true", http.StatusFound)
		return
	}

	f.logins++
	f.seq++
	sid := fmt.Sprintf("S%d", f.seq)
	f.sessions[sid] = f.loginToken

	if !f.omitSessionCookie {
		http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: sid, Path: "/"})
		if f.route != "" {
			http.SetCookie(w, &http.Cookie{Name: "ROUTE", Value: f.route, Path: "/"})
		}
	}

	http.Redirect(w, r, "/hac/", http.StatusFound)
}

// protected is an authenticated endpoint requiring the session cookie and
// the matching CSRF header.
func (f *fakeConsole) protected(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.protectedHits++
	body, _ := io.ReadAll(r.Body)
	f.protectedBodys = append(f.protectedBodys, string(body))

	if f.protectedStatus != 0 {
		w.WriteHeader(f.protectedStatus)
		return
	}

	sid, ok := f.authedSession(r)
	if !ok || r.Header.Get("X-CSRF-TOKEN") != f.sessions[sid] {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if f.rotateTo != "" {
		f.sessions[sid] = f.rotateTo
		w.Header().Set("X-CSRF-TOKEN", f.rotateTo)
		f.rotateTo = ""
	}

	_, _ = io.WriteString(w, `{"outputText":"ok"}`)
}

func (f *fakeConsole) loginCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.logins
}

func (f *fakeConsole) hits() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.protectedHits
}

func (f *fakeConsole) bodies() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.protectedBodys...)
}

// expireSessions invalidates every issued session server-side, simulating
// a console restart or session timeout.
func (f *fakeConsole) expireSessions() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions = make(map[string]string)
}

func (f *fakeConsole) set(fn func(*fakeConsole)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}
