package integration

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jwebster45206/tribe-engine/integration/runner"
	"github.com/jwebster45206/tribe-engine/internal/handlers"
	"github.com/jwebster45206/tribe-engine/internal/sessions"
	"github.com/jwebster45206/tribe-engine/pkg/dice"
	"github.com/jwebster45206/tribe-engine/pkg/engine"
	"github.com/jwebster45206/tribe-engine/pkg/storage"
	"github.com/stretchr/testify/require"
)

var caseFlag = flag.String("case", "", "Comma-separated case names from integration/cases/ to run (default: all)")
var errFlag = flag.String("err", "continue", "Error handling mode: 'continue' (run all steps) or 'exit' (stop on first failure)")

// baseURL points at API_BASE_URL when set. Otherwise it serves the API
// in-process with a roller fixed at 0.99, so every roll fails and the
// cases can expect exact numbers.
func baseURL(t *testing.T) string {
	t.Helper()
	if u := os.Getenv("API_BASE_URL"); u != "" {
		t.Logf("API Base URL: %s", u)
		return u
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := storage.NewMockStorage()
	reg := sessions.New(logger)
	opts := engine.Options{Roller: dice.Fixed(0.99), Seed: 7}
	router := handlers.NewRouter(
		handlers.NewSessionHandler(reg, store, opts, logger),
		handlers.NewHealthHandler(store, reg, logger),
	)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv.URL
}

func loadJobs(t *testing.T) []runner.TestJob {
	t.Helper()
	var files []string
	if *caseFlag == "" {
		found, err := runner.DiscoverCases("cases")
		require.NoError(t, err)
		files = found
	} else {
		for name := range strings.SplitSeq(*caseFlag, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if filepath.Ext(name) == "" {
				name += ".json"
			}
			files = append(files, filepath.Join("cases", name))
		}
	}
	require.NotEmpty(t, files, "no test cases found")

	jobs := make([]runner.TestJob, 0, len(files))
	for _, f := range files {
		suite, err := runner.LoadTestSuite(f)
		require.NoError(t, err)
		jobs = append(jobs, runner.TestJob{Name: suite.Name, Suite: suite, CaseFile: f})
	}
	return jobs
}

func TestPlaythroughs(t *testing.T) {
	flag.Parse()
	if *errFlag != "exit" && *errFlag != "continue" {
		t.Fatalf("Invalid -err flag value: %s (must be 'exit' or 'continue')", *errFlag)
	}

	r := runner.NewRunner(baseURL(t))
	r.ErrorHandlingMode = runner.ErrorHandlingMode(*errFlag)
	r.Logger = t.Logf

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	for _, job := range loadJobs(t) {
		t.Run(job.Name, func(t *testing.T) {
			result, err := r.RunSuite(ctx, job.Suite)
			for _, step := range result.Results {
				if step.Error != nil {
					t.Errorf("✗ %s: %v", step.StepName, step.Error)
				}
			}
			if err != nil && len(result.Results) == 0 {
				t.Fatalf("suite %s failed: %v", job.Name, err)
			}
			t.Logf("session %s finished in %v", result.Session, result.Duration)
		})
	}
}
