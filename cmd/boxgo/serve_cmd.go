package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deepnoodle-ai/boxgo"
	boxerrors "github.com/deepnoodle-ai/boxgo/errors"
)

const maxRequestBytes = 1 << 20

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve transpilation over HTTP",
	Long: `Serve transpilation over HTTP. Endpoints:

  GET  /healthz     liveness check
  GET  /builtins    names of the built-in functions
  POST /transpile   JSON syntax tree in, Go source out
  POST /run         JSON syntax tree in, result and output out`,
	Args: cobra.NoArgs,
	RunE: serveHandler,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().Duration("run-timeout", 10*time.Second, "Maximum duration of a /run request")
	viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag("run-timeout", serveCmd.Flags().Lookup("run-timeout"))
	rootCmd.AddCommand(serveCmd)
}

func serveHandler(cmd *cobra.Command, args []string) error {
	logger := newLogger(os.Stderr)
	srv := &http.Server{
		Addr:              viper.GetString("addr"),
		Handler:           newRouter(logger, viper.GetDuration("run-timeout")),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	errc := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type server struct {
	logger     zerolog.Logger
	runTimeout time.Duration
}

func newRouter(logger zerolog.Logger, runTimeout time.Duration) http.Handler {
	s := &server{logger: logger, runTimeout: runTimeout}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/builtins", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string][]string{"builtins": boxgo.Builtins()})
	})
	r.Post("/transpile", s.transpile)
	r.Post("/run", s.run)
	return r
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

type transpileResponse struct {
	ID       string `json:"id"`
	Filename string `json:"filename,omitempty"`
	Source   string `json:"source"`
}

type runResponse struct {
	Result any    `json:"result"`
	Output string `json:"output"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *server) transpile(w http.ResponseWriter, r *http.Request) {
	data, ok := readBody(w, r)
	if !ok {
		return
	}
	filename := r.URL.Query().Get("filename")
	unit, err := boxgo.TranspileJSON(data, boxgo.WithFilename(filename))
	if err != nil {
		writeError(w, err)
		return
	}
	src, err := unit.GoSource()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transpileResponse{
		ID:       unit.ID.String(),
		Filename: unit.Filename,
		Source:   string(src),
	})
}

func (s *server) run(w http.ResponseWriter, r *http.Request) {
	data, ok := readBody(w, r)
	if !ok {
		return
	}
	unit, err := boxgo.TranspileJSON(data, boxgo.WithFilename(r.URL.Query().Get("filename")))
	if err != nil {
		writeError(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.runTimeout)
	defer cancel()
	var out bytes.Buffer
	result, err := boxgo.Run(ctx, unit, boxgo.WithOutput(&out), boxgo.WithLogger(s.logger))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, runResponse{Result: result, Output: out.String()})
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: err.Error()})
		} else {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return nil, false
	}
	return data, true
}

// writeError reports coded errors as unprocessable and anything else, such
// as a malformed tree, as a bad request.
func writeError(w http.ResponseWriter, err error) {
	if code, ok := boxerrors.CodeOf(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Code: string(code)})
		return
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
