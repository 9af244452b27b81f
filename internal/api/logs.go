package api

import (
	"fmt"
	"net/http"
	"net/url"

	"librio/pkg/domain"
)

func (c *Client) ActivityLogs() ([]domain.ActivityLog, error) {
	return c.logList("/api/activity-logs", nil)
}

func (c *Client) ActivityLogsByUser(userID int64) ([]domain.ActivityLog, error) {
	return c.logList(fmt.Sprintf("/api/activity-logs/user/%d", userID), nil)
}

func (c *Client) SearchActivityLogs(keyword string) ([]domain.ActivityLog, error) {
	return c.logList("/api/activity-logs/search", url.Values{"keyword": {keyword}})
}

func (c *Client) logList(path string, query url.Values) ([]domain.ActivityLog, error) {
	var logs []domain.ActivityLog
	if err := c.doJSON(http.MethodGet, path, query, nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (c *Client) DeleteActivityLog(id int64) error {
	return c.doJSON(http.MethodDelete, fmt.Sprintf("/api/activity-logs/%d", id), nil, nil, nil)
}

// DeleteAllActivityLogs clears the entire audit trail.
func (c *Client) DeleteAllActivityLogs() error {
	return c.doJSON(http.MethodDelete, "/api/activity-logs/all", nil, nil, nil)
}
