package api

import (
	"fmt"
	"net/http"
	"net/url"

	"librio/pkg/domain"
)

func (c *Client) Fines() ([]domain.Fine, error) {
	return c.fineList("/api/fines")
}

func (c *Client) PendingFines() ([]domain.Fine, error) {
	return c.fineList("/api/fines/pending")
}

func (c *Client) MyFines() ([]domain.Fine, error) {
	return c.fineList("/api/fines/my-fines")
}

func (c *Client) MyPendingFines() ([]domain.Fine, error) {
	return c.fineList("/api/fines/my-pending")
}

func (c *Client) fineList(path string) ([]domain.Fine, error) {
	var fines []domain.Fine
	if err := c.doJSON(http.MethodGet, path, nil, nil, &fines); err != nil {
		return nil, err
	}
	return fines, nil
}

// MyTotalFine returns the caller's outstanding fine total, 0 when the server
// sends no payload.
func (c *Client) MyTotalFine() (float64, error) {
	var total float64
	if err := c.doJSON(http.MethodGet, "/api/fines/my-total", nil, nil, &total); err != nil {
		return 0, err
	}
	return total, nil
}

// PayFine settles a PENDING fine.
func (c *Client) PayFine(id int64) (domain.Fine, error) {
	var fine domain.Fine
	path := fmt.Sprintf("/api/fines/%d/pay", id)
	if err := c.doJSON(http.MethodPut, path, nil, nil, &fine); err != nil {
		return domain.Fine{}, err
	}
	return fine, nil
}

// WaiveFine forgives a PENDING fine. The reason is recorded on the fine.
func (c *Client) WaiveFine(id int64, reason string) (domain.Fine, error) {
	var fine domain.Fine
	path := fmt.Sprintf("/api/fines/%d/waive", id)
	query := url.Values{"reason": {reason}}
	if err := c.doJSON(http.MethodPut, path, query, nil, &fine); err != nil {
		return domain.Fine{}, err
	}
	return fine, nil
}
