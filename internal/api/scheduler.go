package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/notidash/internal/models"
	"github.com/notidash/internal/schedule"
)

// SchedulerStatus reports whether the backend scheduler loop is running
func (c *Client) SchedulerStatus(ctx context.Context) (*models.SchedulerStatus, error) {
	var status models.SchedulerStatus
	if err := c.get(ctx, "/api/scheduler/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Jobs lists all scheduled jobs
func (c *Client) Jobs(ctx context.Context) ([]models.Job, error) {
	var list models.JobList
	if err := c.get(ctx, "/api/scheduler/jobs", nil, &list); err != nil {
		return nil, err
	}
	return list.Jobs, nil
}

// RegisterJob registers a daily job of the given type ("weather",
// "finance/us", "finance/kr", "calendar") at hour:minute. The time is
// validated client-side before the request goes out.
func (c *Client) RegisterJob(ctx context.Context, jobType string, hour, minute int) (*models.ActionResult, error) {
	if jobType == "" {
		return nil, validationErr("job type is required")
	}
	if err := schedule.ValidateDaily(hour, minute); err != nil {
		return nil, validationErr(err.Error())
	}

	query := url.Values{}
	query.Set("hour", strconv.Itoa(hour))
	query.Set("minute", strconv.Itoa(minute))

	var result models.ActionResult
	if err := c.do(ctx, "POST", fmt.Sprintf("/api/scheduler/jobs/%s", jobType), query, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteJob removes one scheduled job. Confirmation is the caller's
// responsibility; this always deletes.
func (c *Client) DeleteJob(ctx context.Context, jobID string) error {
	if jobID == "" {
		return validationErr("job id is required")
	}
	return c.delete(ctx, fmt.Sprintf("/api/scheduler/jobs/%s", jobID))
}

// PauseJob pauses one job without removing it
func (c *Client) PauseJob(ctx context.Context, jobID string) (*models.ActionResult, error) {
	var result models.ActionResult
	if err := c.post(ctx, fmt.Sprintf("/api/scheduler/jobs/%s/pause", jobID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ResumeJob resumes a paused job
func (c *Client) ResumeJob(ctx context.Context, jobID string) (*models.ActionResult, error) {
	var result models.ActionResult
	if err := c.post(ctx, fmt.Sprintf("/api/scheduler/jobs/%s/resume", jobID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// TestNotification fires a one-off test send for the given type. The
// resulting log entry appears asynchronously; callers refresh logs after
// a short delay to surface it.
func (c *Client) TestNotification(ctx context.Context, testType string) (*models.ActionResult, error) {
	if testType == "" {
		return nil, validationErr("test type is required")
	}
	var result models.ActionResult
	if err := c.post(ctx, fmt.Sprintf("/api/scheduler/test/%s", testType), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
