package auth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/aiko-cli/aiko/log"
)

// Port is where AniList redirects after authorization.
const Port = 8080

// DefaultTimeout bounds how long Login waits for the browser.
const DefaultTimeout = 5 * time.Minute

var logger = log.Component("auth")

// ErrTimeout means no token arrived before the context ended.
var ErrTimeout = errors.New("timed out waiting for the access token")

// callbackPage moves the implicit-grant fragment into a query string,
// since fragments never reach the server.
const callbackPage = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<title>aiko</title>
	<style>
		body { margin: 0; background: #0f0f11; color: #fff; font-family: -apple-system, "Segoe UI", sans-serif; display: flex; justify-content: center; align-items: center; height: 100vh; }
		p { color: #88888b; }
	</style>
</head>
<body>
	<div>
		<h1 id="title">Signing in...</h1>
		<p id="hint">Keep this tab open for a moment.</p>
	</div>
	<script>
		const fragment = window.location.hash.substring(1);
		fetch("/capture?" + fragment).then(function (res) {
			document.getElementById("title").textContent = res.ok ? "Authentication Successful" : "Authentication Failed";
			document.getElementById("hint").textContent = res.ok
				? "You may close this tab and return to the terminal."
				: "No access token was received.";
		});
	</script>
</body>
</html>`

const capturedMessage = "Token received. You can close this window now."

// Listener serves the OAuth redirect on localhost and hands over the token.
type Listener struct {
	server *http.Server
	ln     net.Listener
	tokens chan string
	errs   chan error
}

// Listen binds addr (":8080" when empty) and starts serving.
func Listen(addr string) (*Listener, error) {
	if addr == "" {
		addr = fmt.Sprintf(":%d", Port)
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	l := &Listener{
		ln:     ln,
		tokens: make(chan string, 1),
		errs:   make(chan error, 1),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/anilist_callback", l.handleCallback)
	mux.HandleFunc("/capture", l.handleCapture)
	l.server = &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := l.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.errs <- err
		}
	}()

	logger.Infof("local server started on %s, waiting for access token", ln.Addr())
	return l, nil
}

// Addr is the bound address.
func (l *Listener) Addr() string {
	return l.ln.Addr().String()
}

func (l *Listener) handleCallback(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(callbackPage))
}

// handleCapture takes access_token from the query. Parameters after it,
// such as token_type and expires_in, are ignored.
func (l *Listener) handleCapture(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("access_token")
	if token == "" {
		http.Error(w, "missing access_token", http.StatusBadRequest)
		return
	}

	select {
	case l.tokens <- token:
		logger.Info("access token received")
	default:
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(capturedMessage))
}

// Wait blocks until a token is captured or ctx ends, then shuts the server down.
func (l *Listener) Wait(ctx context.Context) (string, error) {
	defer l.Close()

	select {
	case token := <-l.tokens:
		return token, nil
	case err := <-l.errs:
		return "", err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", ctx.Err()
	}
}

// Close stops the server.
func (l *Listener) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return l.server.Shutdown(ctx)
}
