package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/zeyal/storefront/api/web"
)

// The admin panel is rendered by the storefront frontend; these handlers only
// give the gate-protected subtree concrete endpoints so page requests flow
// through the middleware chain.

const loginPage = `<!doctype html>
<title>Admin Login</title>
<form id="login">
  <input type="password" id="password" placeholder="Password" autofocus>
  <button type="submit">Sign in</button>
</form>
<script>
document.getElementById("login").addEventListener("submit", async (e) => {
  e.preventDefault();
  const res = await fetch("/api/admin/login", {
    method: "POST",
    headers: {"Content-Type": "application/json"},
    body: JSON.stringify({password: document.getElementById("password").value}),
  });
  if (res.ok) {
    const next = new URLSearchParams(location.search).get("next");
    location.assign(next || "/admin");
  }
});
</script>
`

// HandleLoginPage serves the minimal login form. It sits outside the gate on
// purpose; everything else under /admin is behind it.
func HandleLoginPage() web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, err := fmt.Fprint(w, loginPage)
		return err
	}
}

// HandleAdminPage serves a placeholder for the admin panel shell.
func HandleAdminPage() web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, err := fmt.Fprint(w, "<!doctype html>\n<title>Admin</title>\n<h1>Storefront admin</h1>\n")
		return err
	}
}
