// Package runner plays scripted sessions against the tribe-engine HTTP API
// and checks the state after every step.
package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type ErrorHandlingMode string

const ErrorHandlingExit ErrorHandlingMode = "exit"
const ErrorHandlingContinue ErrorHandlingMode = "continue"

// Runner executes test suites against a running tribe-engine API.
type Runner struct {
	BaseURL           string
	Client            *http.Client
	Timeout           time.Duration
	Logger            func(format string, args ...any)
	ErrorHandlingMode ErrorHandlingMode
}

// NewRunner creates a new test runner
func NewRunner(baseURL string) *Runner {
	return &Runner{
		BaseURL:           strings.TrimSuffix(baseURL, "/"),
		Client:            &http.Client{Timeout: 30 * time.Second},
		Timeout:           10 * time.Second,
		Logger:            func(string, ...any) {},
		ErrorHandlingMode: ErrorHandlingContinue,
	}
}

// LoadTestSuite loads a suite from a .json, .yaml or .yml file.
func LoadTestSuite(filename string) (TestSuite, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return TestSuite{}, fmt.Errorf("failed to read test file %s: %w", filename, err)
	}

	var suite TestSuite
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &suite); err != nil {
			return TestSuite{}, fmt.Errorf("failed to parse YAML in %s: %w", filename, err)
		}
	default:
		if err := json.Unmarshal(content, &suite); err != nil {
			return TestSuite{}, fmt.Errorf("failed to parse JSON in %s: %w", filename, err)
		}
	}
	if suite.Name == "" {
		suite.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	for i, step := range suite.Steps {
		if _, err := step.Kind(); err != nil {
			return TestSuite{}, fmt.Errorf("%s: step %d: %w", filename, i, err)
		}
	}
	return suite, nil
}

// DiscoverCases lists the suite files in dir, sorted by name.
func DiscoverCases(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.json", "*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	slices.Sort(files)
	return files, nil
}

// RunSuite creates a session, runs every step against it and deletes it.
func (r *Runner) RunSuite(ctx context.Context, suite TestSuite) (TestRunResult, error) {
	start := time.Now()
	result := TestRunResult{
		Job:     TestJob{Name: suite.Name, Suite: suite},
		Results: make([]TestResult, 0, len(suite.Steps)),
	}

	var created sessionView
	status, _, err := r.call(ctx, http.MethodPost, "/v1/sessions", suite.Session, &created)
	if err != nil {
		result.Error = fmt.Errorf("failed to create session: %w", err)
		result.Duration = time.Since(start)
		return result, result.Error
	}
	if status != http.StatusCreated {
		result.Error = fmt.Errorf("create session returned %d", status)
		result.Duration = time.Since(start)
		return result, result.Error
	}
	result.Session = created.ID
	defer r.cleanup(created.ID)

	for i, step := range suite.Steps {
		stepResult := r.runStep(ctx, created.ID, step)
		result.Results = append(result.Results, stepResult)

		if stepResult.Error != nil {
			r.Logger("    [%d/%d] ✗ %s: %v", i+1, len(suite.Steps), step.Name, stepResult.Error)
			if result.Error == nil {
				result.Error = fmt.Errorf("step %d (%s) failed: %w", i, step.Name, stepResult.Error)
			}
			if r.ErrorHandlingMode == ErrorHandlingExit {
				break
			}
			continue
		}
		r.Logger("    [%d/%d] ✓ %s (%v)", i+1, len(suite.Steps), step.Name, stepResult.Duration)
	}

	result.Duration = time.Since(start)
	return result, result.Error
}

// cleanup removes the session and any save it made. Both may already be
// gone, so failures are ignored.
func (r *Runner) cleanup(id uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), r.Timeout)
	defer cancel()
	_, _, _ = r.call(ctx, http.MethodDelete, "/v1/sessions/"+id.String(), nil, nil)
	_, _, _ = r.call(ctx, http.MethodDelete, "/v1/saves/"+id.String(), nil, nil)
}

func (r *Runner) runStep(ctx context.Context, id uuid.UUID, step TestStep) TestResult {
	start := time.Now()
	result := TestResult{StepName: step.Name}
	fail := func(err error) TestResult {
		result.Error = err
		result.Duration = time.Since(start)
		return result
	}

	kind, err := step.Kind()
	if err != nil {
		return fail(err)
	}
	result.Kind = kind

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	base := "/v1/sessions/" + id.String()
	var (
		status int
		body   []byte
	)
	switch kind {
	case KindAction:
		status, body, err = r.call(ctx, http.MethodPost, base+"/actions", map[string]string{
			"action":          step.Action,
			"npc_id":          step.NPCID,
			"combat_decision": step.CombatDecision,
		}, nil)
	case KindEndDay:
		status, body, err = r.call(ctx, http.MethodPost, base+"/end-day", nil, nil)
	case KindDifficulty:
		status, body, err = r.call(ctx, http.MethodPost, base+"/difficulty", map[string]string{"difficulty": step.Difficulty}, nil)
	case KindSave:
		status, body, err = r.call(ctx, http.MethodPost, base+"/save", nil, nil)
	case KindLoad:
		status, body, err = r.call(ctx, http.MethodPost, "/v1/saves/"+id.String()+"/load", nil, nil)
	}
	if err != nil {
		return fail(fmt.Errorf("%s request failed: %w", kind, err))
	}

	var resp stepResponse
	if len(body) > 0 {
		if err := json.Unmarshal(body, &resp); err != nil {
			return fail(fmt.Errorf("failed to decode %s response: %w", kind, err))
		}
	}
	result.ResponseText = resp.text()

	var after sessionView
	if _, _, err := r.call(ctx, http.MethodGet, base, nil, &after); err != nil {
		return fail(fmt.Errorf("failed to get session after step: %w", err))
	}

	if err := checkExpectations(step.Expectations, status, resp, after); err != nil {
		return fail(fmt.Errorf("expectation failed: %w", err))
	}
	result.Success = true
	result.Duration = time.Since(start)
	return result
}

// call sends a JSON request. When out is set the response must be 2xx and
// is decoded into it; otherwise the raw body is returned with the status.
func (r *Runner) call(ctx context.Context, method, path string, in, out any) (int, []byte, error) {
	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, r.BaseURL+path, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create %s request: %w", method, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}
	if out == nil {
		return resp.StatusCode, body, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, body, fmt.Errorf("%s %s returned %d: %s", method, path, resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return resp.StatusCode, body, fmt.Errorf("failed to decode response: %w", err)
	}
	return resp.StatusCode, body, nil
}
