// Package contest talks to the contest server: it lists snapshots, downloads
// problem blobs and submits solutions. It only moves text files around and
// never looks inside them.
package contest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

const DefaultBaseURL = "http://2016sv.icfpcontest.org/api/"

var ErrNoSnapshots = errors.New("server has no snapshots")

// APIError is a non-2xx response, or a JSON reply with ok set to false.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("contest api: %d %s", e.StatusCode, e.Message)
}

type Snapshot struct {
	Time int64  `json:"snapshot_time"`
	Hash string `json:"snapshot_hash"`
}

type Problem struct {
	ID           int    `json:"problem_id"`
	Owner        string `json:"owner"`
	SpecHash     string `json:"problem_spec_hash"`
	ProblemSize  int    `json:"problem_size"`
	SolutionSize int    `json:"solution_size"`
	PublishTime  int64  `json:"publish_time"`
}

type SubmitResult struct {
	ProblemID    int     `json:"problem_id"`
	Resemblance  float64 `json:"resemblance"`
	SolutionHash string  `json:"solution_spec_hash"`
	SolutionSize int     `json:"solution_size"`
}

// Client is safe for concurrent use. Requests are spaced at least Interval
// apart, since the server rejects clients that go faster than one per second.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Interval   time.Duration
	Logger     *slog.Logger

	mu   sync.Mutex
	last time.Time
}

func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: http.DefaultClient,
		Interval:   time.Second,
		Logger:     slog.Default(),
	}
}

func (c *Client) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// Block until the next request is allowed, or ctx is done.
func (c *Client) regulate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.last.IsZero() {
		if wait := c.Interval - time.Since(c.last); wait > 0 {
			timer := time.NewTimer(wait)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	c.last = time.Now()
	return nil
}

func (c *Client) endpoint(path string) (string, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", errors.Wrapf(err, "base url %q", c.BaseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", errors.Wrapf(err, "api path %q", path)
	}
	return base.ResolveReference(ref).String(), nil
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	u, err := c.endpoint(path)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("X-API-Key", c.APIKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if err := c.regulate(ctx); err != nil {
		return nil, err
	}
	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	c.logger().Debug("contest request", "method", method, "path", path,
		"status", resp.StatusCode, "bytes", len(data), "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(data))}
	}
	return data, nil
}

// Decode a JSON reply, turning {"ok": false, "error": ...} into an APIError.
func decode(data []byte, out interface{}) error {
	var status struct {
		OK    *bool  `json:"ok"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &status); err != nil {
		return errors.Wrap(err, "decode reply")
	}
	if status.OK != nil && !*status.OK {
		return &APIError{StatusCode: http.StatusOK, Message: status.Error}
	}
	return errors.Wrap(json.Unmarshal(data, out), "decode reply")
}

func (c *Client) Snapshots(ctx context.Context) ([]Snapshot, error) {
	data, err := c.do(ctx, http.MethodGet, "snapshot/list", "", nil)
	if err != nil {
		return nil, err
	}
	var reply struct {
		Snapshots []Snapshot `json:"snapshots"`
	}
	if err := decode(data, &reply); err != nil {
		return nil, err
	}
	return reply.Snapshots, nil
}

// Blob fetches raw content by hash.
func (c *Client) Blob(ctx context.Context, hash string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, "blob/"+url.PathEscape(hash), "", nil)
}

// LatestProblems lists the problems in the newest snapshot.
func (c *Client) LatestProblems(ctx context.Context) ([]Problem, error) {
	snapshots, err := c.Snapshots(ctx)
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, ErrNoSnapshots
	}
	latest := snapshots[len(snapshots)-1]
	data, err := c.Blob(ctx, latest.Hash)
	if err != nil {
		return nil, errors.Wrapf(err, "snapshot %s", latest.Hash)
	}
	var snapshot struct {
		Problems []Problem `json:"problems"`
	}
	if err := decode(data, &snapshot); err != nil {
		return nil, errors.Wrapf(err, "snapshot %s", latest.Hash)
	}
	return snapshot.Problems, nil
}

func ProblemPath(dir string, id int) string {
	return filepath.Join(dir, fmt.Sprintf("%05d.problem.txt", id))
}

func SolutionPath(dir string, id int) string {
	return filepath.Join(dir, fmt.Sprintf("%05d.solution.txt", id))
}

// SaveProblems downloads every problem whose file isn't already in dir and
// returns how many were fetched.
func (c *Client) SaveProblems(ctx context.Context, dir string, problems []Problem) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, errors.Wrapf(err, "create %s", dir)
	}
	saved := 0
	for _, p := range problems {
		path := ProblemPath(dir, p.ID)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		data, err := c.Blob(ctx, p.SpecHash)
		if err != nil {
			return saved, errors.Wrapf(err, "problem %d", p.ID)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return saved, errors.Wrapf(err, "write %s", path)
		}
		c.logger().Info("saved problem", "id", p.ID, "path", path)
		saved++
	}
	return saved, nil
}

// Submit uploads a solution file for problemID.
func (c *Client) Submit(ctx context.Context, problemID int, solution io.Reader) (SubmitResult, error) {
	var result SubmitResult
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := w.WriteField("problem_id", strconv.Itoa(problemID)); err != nil {
		return result, errors.Wrap(err, "build form")
	}
	part, err := w.CreateFormFile("solution_spec", "solution.txt")
	if err != nil {
		return result, errors.Wrap(err, "build form")
	}
	if _, err := io.Copy(part, solution); err != nil {
		return result, errors.Wrap(err, "read solution")
	}
	if err := w.Close(); err != nil {
		return result, errors.Wrap(err, "build form")
	}

	data, err := c.do(ctx, http.MethodPost, "solution/submit", w.FormDataContentType(), &body)
	if err != nil {
		return result, errors.Wrapf(err, "submit problem %d", problemID)
	}
	if err := decode(data, &result); err != nil {
		return result, errors.Wrapf(err, "submit problem %d", problemID)
	}
	return result, nil
}
