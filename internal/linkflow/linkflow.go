// Package linkflow runs the browser half of a provider connect: it
// starts a temporary localhost listener, hands the user the backend's
// start URL, and waits for the backend to redirect back with the
// outcome. Token exchange is entirely server-owned; the client only
// ever sees success/failure.
package linkflow

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/notidash/internal/api"
	"github.com/notidash/internal/models"
	"github.com/notidash/internal/state"
	"github.com/notidash/pkg/logger"
)

// Outcome is what the backend reports via the callback redirect
type Outcome struct {
	Provider models.Provider
	Success  bool
	Message  string
}

// Flow coordinates one connect attempt
type Flow struct {
	client *api.Client
	store  *state.Store
	port   int
	log    *logger.Logger
}

// New creates a connect flow listening on the given localhost port
func New(client *api.Client, store *state.Store, port int, log *logger.Logger) *Flow {
	return &Flow{
		client: client,
		store:  store,
		port:   port,
		log:    log.WithComponent("linkflow"),
	}
}

// generateState creates a random state for callback CSRF protection
func generateState() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// Run starts the callback listener and returns the URL the user must
// open. It blocks until the backend redirects back, the context ends,
// or the deadline passes, then persists the outcome for one-shot
// pickup by the UI.
func (f *Flow) Run(ctx context.Context, provider models.Provider) (*Outcome, error) {
	stateToken, err := generateState()
	if err != nil {
		return nil, err
	}

	callbackURL := fmt.Sprintf("http://localhost:%d/callback?state=%s", f.port, stateToken)
	startURL := f.client.StartURL(provider, callbackURL)

	outcomeChan := make(chan Outcome, 1)
	errChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != stateToken {
			errChan <- fmt.Errorf("state mismatch")
			http.Error(w, "State mismatch", http.StatusBadRequest)
			return
		}

		outcome := Outcome{Provider: provider}
		if errMsg := r.URL.Query().Get("error"); errMsg != "" {
			outcome.Message = errMsg
		} else {
			outcome.Success = true
			outcome.Message = r.URL.Query().Get("message")
			if outcome.Message == "" {
				outcome.Message = fmt.Sprintf("%s connected", provider)
			}
		}
		outcomeChan <- outcome

		w.Header().Set("Content-Type", "text/html")
		if outcome.Success {
			fmt.Fprint(w, `
				<html>
				<body style="font-family: sans-serif; text-align: center; padding: 50px;">
					<h1>✓ Account Connected!</h1>
					<p>You can close this window and return to the terminal.</p>
				</body>
				</html>
			`)
		} else {
			fmt.Fprintf(w, `
				<html>
				<body style="font-family: sans-serif; text-align: center; padding: 50px;">
					<h1>Connection Failed</h1>
					<p>%s</p>
				</body>
				</html>
			`, outcome.Message)
		}
	})

	server := &http.Server{Addr: fmt.Sprintf(":%d", f.port), Handler: mux}

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	f.log.WithProvider(string(provider)).Info().
		Str("url", startURL).
		Int("port", f.port).
		Msg("Callback listener started, waiting for redirect")
	fmt.Printf("Open this URL in your browser to connect %s:\n\n  %s\n\n", provider, startURL)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	select {
	case outcome := <-outcomeChan:
		server.Shutdown(shutdownCtx)
		f.persist(ctx, outcome)
		return &outcome, nil
	case err := <-errChan:
		server.Shutdown(shutdownCtx)
		return nil, err
	case <-ctx.Done():
		server.Shutdown(shutdownCtx)
		return nil, ctx.Err()
	}
}

// persist records the outcome so the next dashboard open can show it
// exactly once even if this process exits first.
func (f *Flow) persist(ctx context.Context, outcome Outcome) {
	if f.store == nil {
		return
	}
	if err := f.store.SaveLinkResult(ctx, outcome.Provider, outcome.Success, outcome.Message); err != nil {
		f.log.Warn().Err(err).Msg("Failed to persist link result")
	}
}
